// handlers/admin_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/ltp-analytics/dashboard/config"
	"github.com/ltp-analytics/dashboard/datafiles"
	"github.com/ltp-analytics/dashboard/logger"
	"github.com/ltp-analytics/dashboard/models"
)

// Helper to respond with JSON
func respondWithJSON(w http.ResponseWriter, r *http.Request, code int, payload interface{}) {
	render.Status(r, code)
	render.JSON(w, r, payload)
}

// Helper to respond with an error
func respondWithError(w http.ResponseWriter, r *http.Request, code int, message string, err error) {
	resp := models.ErrorResponse{Success: false, Error: message}
	if err != nil {
		resp.Details = err.Error()
		logger.Log.Warnf("API Error %d: %s: %v", code, message, err)
	} else {
		logger.Log.Warnf("API Error %d: %s", code, message)
	}
	respondWithJSON(w, r, code, resp)
}

// Ping handles GET /api/ping.
func (a *API) Ping(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, r, http.StatusOK, map[string]string{"message": a.Config.Server.PingMessage})
}

// Health handles GET /api/health. The database is only checked when it is
// the configured register source.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	if a.Config.Data.Source == config.SourceMySQL {
		if err := a.pingDB(r); err != nil {
			logger.Log.Errorf("Health check failed: DB ping error: %v", err)
			respondWithJSON(w, r, http.StatusInternalServerError, map[string]string{
				"status":  "error",
				"message": "database connection error",
			})
			return
		}
	}
	respondWithJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "LTP dashboard backend is healthy",
	})
}

func (a *API) pingDB(r *http.Request) error {
	if a.DBPing == nil {
		return errors.New("database connection is not initialized")
	}
	return a.DBPing(r.Context())
}

// FileInfo handles GET /api/file-info.
func (a *API) FileInfo(w http.ResponseWriter, r *http.Request) {
	all, err := a.Files.List()
	if err != nil {
		respondWithError(w, r, http.StatusInternalServerError, "Failed to get file information", err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, models.FileInfoResponse{
		Success:       true,
		Files:         a.Files.Info(),
		AllFiles:      all,
		DataDirectory: a.Files.Dir,
	})
}

// UploadRegister handles POST /api/upload/{kind} where kind is "ltp" or
// "afe". The multipart field "file" replaces the stored register after the
// current one is backed up.
func (a *API) UploadRegister(w http.ResponseWriter, r *http.Request) {
	kind := strings.ToLower(chi.URLParam(r, "kind"))
	if _, err := a.Files.Path(kind); err != nil {
		respondWithError(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid register kind %q. Expected 'ltp' or 'afe'", kind), nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes())
	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Missing 'file' in multipart form", err)
		return
	}
	defer file.Close()

	logger.Log.Infof("Handler: received %s register upload %s (%d bytes)", kind, header.Filename, header.Size)
	res, err := a.Updates.UpdateRegister(r.Context(), kind, header.Filename, file)
	if err != nil {
		if errors.Is(err, datafiles.ErrUnknownKind) {
			respondWithError(w, r, http.StatusBadRequest, "Invalid register kind", err)
			return
		}
		respondWithError(w, r, http.StatusUnprocessableEntity, "Failed to store uploaded register", err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, map[string]interface{}{"success": true, "data": res})
}

// BackupRegisters handles POST /api/backup. Each existing register file is
// copied to a timestamped backup in the data directory.
func (a *API) BackupRegisters(w http.ResponseWriter, r *http.Request) {
	written, err := a.Files.Backup()
	if err != nil {
		respondWithError(w, r, http.StatusInternalServerError, "Failed to back up data files", err)
		return
	}
	if written == nil {
		written = []string{}
	}
	logger.Log.Infof("Handler: backed up %d register files", len(written))
	respondWithJSON(w, r, http.StatusOK, map[string]interface{}{"success": true, "data": written, "count": len(written)})
}

func (a *API) maxUploadBytes() int64 {
	mb := a.Config.Data.MaxUploadMB
	if mb <= 0 {
		mb = 32
	}
	return mb << 20
}
