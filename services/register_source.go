// services/register_source.go
package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ltp-analytics/dashboard/config"
	"github.com/ltp-analytics/dashboard/database"
	"github.com/ltp-analytics/dashboard/datafiles"
	"github.com/ltp-analytics/dashboard/models"
	"github.com/ltp-analytics/dashboard/scraper"
)

// RegisterSource supplies snapshots of the two registers.
type RegisterSource interface {
	LoadProjects(ctx context.Context) ([]models.ProjectRecord, error)
	LoadFinancials(ctx context.Context) ([]models.FinancialRecord, error)
}

// FileSource reads the registers from the data directory. Either file may be
// delimited text or a web query.
type FileSource struct {
	Files  *datafiles.Manager
	Loader *scraper.Loader
}

func (s *FileSource) LoadProjects(ctx context.Context) ([]models.ProjectRecord, error) {
	path := s.Files.LTPHubPath()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open LTP Hub file: %w", err)
	}
	defer f.Close()
	return s.Loader.LoadProjects(ctx, filepath.Base(path), f)
}

func (s *FileSource) LoadFinancials(ctx context.Context) ([]models.FinancialRecord, error) {
	path := s.Files.AFEDataPath()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open AFE data file: %w", err)
	}
	defer f.Close()
	return s.Loader.LoadFinancials(ctx, filepath.Base(path), f)
}

// DatabaseSource reads the registers from the ltp_projects and afe_requests
// tables through the shared database.DB pool.
type DatabaseSource struct{}

func (DatabaseSource) LoadProjects(ctx context.Context) ([]models.ProjectRecord, error) {
	return database.FetchProjectRecords(ctx)
}

func (DatabaseSource) LoadFinancials(ctx context.Context) ([]models.FinancialRecord, error) {
	return database.FetchFinancialRecords(ctx)
}

// NewRegisterSource picks the source named by cfg.Data.Source.
func NewRegisterSource(cfg config.Config, files *datafiles.Manager, loader *scraper.Loader) (RegisterSource, error) {
	switch cfg.Data.Source {
	case config.SourceFiles:
		return &FileSource{Files: files, Loader: loader}, nil
	case config.SourceMySQL:
		return DatabaseSource{}, nil
	}
	return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
}

// NewHTTPLoader returns a loader whose web queries time out after the
// configured fetch timeout.
func NewHTTPLoader(cfg config.DataConfig) *scraper.Loader {
	return scraper.NewLoader(&http.Client{Timeout: cfg.FetchTimeout})
}
