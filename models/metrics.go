// models/metrics.go
package models

// PipelineMetrics holds the aggregate figures for the whole project pipeline.
// Gigawatt fields are converted from MW; revenue fields are raw currency units.
type PipelineMetrics struct {
	TotalGigawattsRequested float64 `json:"totalGigawattsRequested"`
	TotalGigawattsSubmitted float64 `json:"totalGigawattsSubmitted"` // projects with an AFE
	TotalRevenueRequested   float64 `json:"totalRevenueRequested"`
	TotalRevenuePlanned     float64 `json:"totalRevenuePlanned"` // projects with an AFE
	TotalRequests           int     `json:"totalRequests"`
	PendingRequests         int     `json:"pendingRequests"`
	AvgTimeToPlan           float64 `json:"avgTimeToPlan"` // days, DP request to AFE creation
}

// PlannerStatistics summarises the completed projects of one planner.
type PlannerStatistics struct {
	Name                  string  `json:"name"`
	CompletedProjects     int     `json:"completedProjects"`
	TotalLoadConnected    float64 `json:"totalLoadConnected"` // GW
	TotalRevenueConnected float64 `json:"totalRevenueConnected"`
	AvgTimeToComplete     float64 `json:"avgTimeToComplete"` // days
}

// DashboardResult bundles both engine outputs.
type DashboardResult struct {
	Metrics  PipelineMetrics     `json:"metrics"`
	Planners []PlannerStatistics `json:"planners"`
}
