// services/data_update_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ltp-analytics/dashboard/datafiles"
	"github.com/ltp-analytics/dashboard/logger"
	"github.com/ltp-analytics/dashboard/scraper"
)

// UpdateResult describes a stored register replacement.
type UpdateResult struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Records int    `json:"records"` // rows parsed; 0 for web query files
	Bytes   int    `json:"bytes"`
}

// DataUpdateService replaces the stored register files after checking that
// the new content can be read.
type DataUpdateService struct {
	Files *datafiles.Manager
}

func NewDataUpdateService(files *datafiles.Manager) *DataUpdateService {
	return &DataUpdateService{Files: files}
}

// UpdateRegister validates content for kind, then backs up the current file
// and stores the new one. Web query files are checked for a usable URL but
// are not run.
func (s *DataUpdateService) UpdateRegister(ctx context.Context, kind, name string, r io.Reader) (*UpdateResult, error) {
	kind = strings.ToLower(kind)
	logger.Log.Infof("Service: updating %s register from %s", kind, name)
	if _, err := s.Files.Path(kind); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded %s file %s: %w", kind, name, err)
	}

	records, err := validateRegister(ctx, kind, data)
	if err != nil {
		return nil, fmt.Errorf("uploaded %s file %s is not a valid register: %w", kind, name, err)
	}

	path, err := s.Files.Replace(kind, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	logger.Log.Infof("Service: stored %s register at %s (%d records)", kind, path, records)
	return &UpdateResult{Kind: kind, Path: path, Records: records, Bytes: len(data)}, nil
}

func validateRegister(ctx context.Context, kind string, data []byte) (int, error) {
	if scraper.HasWebHeader(data) {
		_, err := scraper.ParseIQY(bytes.NewReader(data))
		return 0, err
	}
	// plain delimited content never triggers a fetch, so no client is needed
	loader := scraper.NewLoader(nil)
	if kind == datafiles.KindLTP {
		projects, err := loader.LoadProjects(ctx, kind, bytes.NewReader(data))
		return len(projects), err
	}
	financials, err := loader.LoadFinancials(ctx, kind, bytes.NewReader(data))
	return len(financials), err
}
