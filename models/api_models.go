// models/api_models.go
package models

import "time"

// ProjectListResponse is the body of GET /api/ltp-hub.
type ProjectListResponse struct {
	Success bool            `json:"success"`
	Data    []ProjectRecord `json:"data"`
	Count   int             `json:"count"`
}

// FinancialListResponse is the body of GET /api/afe-data.
type FinancialListResponse struct {
	Success bool              `json:"success"`
	Data    []FinancialRecord `json:"data"`
	Count   int               `json:"count"`
}

// DashboardResponse is the body of the dashboard endpoints.
type DashboardResponse struct {
	Success  bool                `json:"success"`
	Metrics  PipelineMetrics     `json:"metrics"`
	Planners []PlannerStatistics `json:"planners"`
}

// ErrorResponse is returned by every endpoint on failure.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// FileStats describes a file found in the data directory.
type FileStats struct {
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	IsFile   bool      `json:"isFile"`
}

// DataFileInfo reports where a register file lives and whether it exists.
type DataFileInfo struct {
	Path   string     `json:"path"`
	Exists bool       `json:"exists"`
	Stats  *FileStats `json:"stats"` // nil when the file does not exist
}

// DataFilesInfo groups the info of both register files.
type DataFilesInfo struct {
	LTPHub  DataFileInfo `json:"ltpHub"`
	AFEData DataFileInfo `json:"afeData"`
}

// FileInfoResponse is the body of GET /api/file-info.
type FileInfoResponse struct {
	Success       bool          `json:"success"`
	Files         DataFilesInfo `json:"files"`
	AllFiles      []string      `json:"allFiles"`
	DataDirectory string        `json:"dataDirectory"`
}
