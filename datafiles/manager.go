// datafiles/manager.go
package datafiles

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ltp-analytics/dashboard/config"
	"github.com/ltp-analytics/dashboard/logger"
	"github.com/ltp-analytics/dashboard/models"
)

// Register kinds accepted by Replace and the upload endpoint.
const (
	KindLTP = "ltp"
	KindAFE = "afe"
)

var ErrUnknownKind = errors.New("unknown register kind")

// Manager owns the data directory holding the LTP Hub and AFE register files.
type Manager struct {
	Dir         string
	LTPHubFile  string
	AFEDataFile string

	now func() time.Time
}

// NewManager returns a Manager for the directory and file names in cfg.
func NewManager(cfg config.DataConfig) *Manager {
	return &Manager{
		Dir:         cfg.Directory,
		LTPHubFile:  cfg.LTPHubFile,
		AFEDataFile: cfg.AFEDataFile,
		now:         time.Now,
	}
}

func (m *Manager) LTPHubPath() string  { return filepath.Join(m.Dir, m.LTPHubFile) }
func (m *Manager) AFEDataPath() string { return filepath.Join(m.Dir, m.AFEDataFile) }

// Path returns the register file path for kind.
func (m *Manager) Path(kind string) (string, error) {
	switch strings.ToLower(kind) {
	case KindLTP:
		return m.LTPHubPath(), nil
	case KindAFE:
		return m.AFEDataPath(), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKind, kind)
}

// EnsureDir creates the data directory if it does not exist.
func (m *Manager) EnsureDir() error {
	if err := os.MkdirAll(m.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", m.Dir, err)
	}
	return nil
}

func fileInfo(path string) models.DataFileInfo {
	info := models.DataFileInfo{Path: path}
	st, err := os.Stat(path)
	if err != nil {
		return info
	}
	info.Exists = true
	info.Stats = &models.FileStats{
		Size:     st.Size(),
		Modified: st.ModTime(),
		IsFile:   st.Mode().IsRegular(),
	}
	return info
}

// Info reports path, existence and stats of both register files.
func (m *Manager) Info() models.DataFilesInfo {
	return models.DataFilesInfo{
		LTPHub:  fileInfo(m.LTPHubPath()),
		AFEData: fileInfo(m.AFEDataPath()),
	}
}

// List returns the names of all entries in the data directory, creating it
// first if needed.
func (m *Manager) List() ([]string, error) {
	if err := m.EnsureDir(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(m.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list data directory %s: %w", m.Dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// backupStamp is the ISO-8601 UTC time with ':' and '.' made filename safe,
// e.g. 2024-05-01T12-34-56-789Z.
func backupStamp(t time.Time) string {
	s := t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	return strings.NewReplacer(":", "-", ".", "-").Replace(s)
}

func backupName(kind, stamp string) string {
	if kind == KindLTP {
		return "ltphub_backup_" + stamp + ".csv"
	}
	return "AFE_data_backup_" + stamp + ".iqy"
}

// Backup copies each existing register file to a timestamped sibling and
// returns the backup paths written.
func (m *Manager) Backup() ([]string, error) {
	stamp := backupStamp(m.now())
	var written []string
	for _, kind := range []string{KindLTP, KindAFE} {
		path, err := m.backupKind(kind, stamp)
		if err != nil {
			return written, err
		}
		if path != "" {
			written = append(written, path)
		}
	}
	return written, nil
}

func (m *Manager) backupKind(kind, stamp string) (string, error) {
	src, _ := m.Path(kind)
	if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	dst := filepath.Join(m.Dir, backupName(kind, stamp))
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", src, err)
	}
	logger.Log.Infof("DataFiles: backed up %s to %s", filepath.Base(src), filepath.Base(dst))
	return dst, nil
}

// Replace backs up the current file of kind and writes r in its place. The
// new content lands in a temp file first so readers never see a partial file.
func (m *Manager) Replace(kind string, r io.Reader) (string, error) {
	dst, err := m.Path(kind)
	if err != nil {
		return "", err
	}
	if err := m.EnsureDir(); err != nil {
		return "", err
	}
	if _, err := m.backupKind(strings.ToLower(kind), backupStamp(m.now())); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(m.Dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file in %s: %w", m.Dir, err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to set permissions on temp file: %w", err)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write uploaded content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("failed to replace %s: %w", dst, err)
	}

	logger.Log.Infof("DataFiles: replaced %s", dst)
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
