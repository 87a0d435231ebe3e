// handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	"github.com/ltp-analytics/dashboard/logger"
	"github.com/ltp-analytics/dashboard/models"
)

// LTPHubData handles GET /api/ltp-hub.
func (a *API) LTPHubData(w http.ResponseWriter, r *http.Request) {
	projects, err := a.Dashboard.Projects(r.Context())
	if err != nil {
		respondWithError(w, r, http.StatusInternalServerError, "Failed to fetch LTP Hub data", err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, models.ProjectListResponse{Success: true, Data: projects, Count: len(projects)})
}

// AFEData handles GET /api/afe-data.
func (a *API) AFEData(w http.ResponseWriter, r *http.Request) {
	financials, err := a.Dashboard.Financials(r.Context())
	if err != nil {
		respondWithError(w, r, http.StatusInternalServerError, "Failed to fetch AFE data", err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, models.FinancialListResponse{Success: true, Data: financials, Count: len(financials)})
}

// GetDashboard handles GET /api/dashboard over the stored registers.
func (a *API) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := a.Dashboard.Compute(r.Context())
	if err != nil {
		respondWithError(w, r, http.StatusInternalServerError, "Failed to compute dashboard", err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, dashboardResponse(result))
}

// ComputeDashboard handles POST /api/dashboard/compute. Both multipart fields
// "ltp" and "afe" are required; nothing is stored.
func (a *API) ComputeDashboard(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*a.maxUploadBytes())
	if err := r.ParseMultipartForm(a.maxUploadBytes()); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}

	ltp, ltpHeader, err := r.FormFile("ltp")
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Missing 'ltp' file in multipart form", err)
		return
	}
	defer ltp.Close()

	afe, afeHeader, err := r.FormFile("afe")
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Missing 'afe' file in multipart form", err)
		return
	}
	defer afe.Close()

	logger.Log.Infof("Handler: computing dashboard from uploads %s and %s", ltpHeader.Filename, afeHeader.Filename)
	result, err := a.Dashboard.ComputeUploaded(r.Context(), ltpHeader.Filename, ltp, afeHeader.Filename, afe)
	if err != nil {
		respondWithError(w, r, http.StatusUnprocessableEntity, "Failed to read uploaded registers", err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, dashboardResponse(result))
}

func dashboardResponse(result models.DashboardResult) models.DashboardResponse {
	return models.DashboardResponse{Success: true, Metrics: result.Metrics, Planners: result.Planners}
}
