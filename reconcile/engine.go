// reconcile/engine.go

// Package reconcile joins the LTP Hub project register with the AFE financial
// register and derives pipeline metrics and per-planner statistics.
//
// Everything here is a pure function of its inputs. It does no I/O and never
// modifies the input slices. Malformed numbers count as zero and
// malformed dates are left out of duration averages, so every call returns a
// fully populated result.
package reconcile

import (
	"sort"
	"strings"

	"github.com/ltp-analytics/dashboard/models"
	"github.com/shopspring/decimal"
)

// Compute runs both aggregations over the same pair of snapshots.
func Compute(projects []models.ProjectRecord, financials []models.FinancialRecord) models.DashboardResult {
	return models.DashboardResult{
		Metrics:  ComputePipelineMetrics(projects, financials),
		Planners: ComputePlannerStatistics(projects, financials),
	}
}

// ComputePipelineMetrics aggregates the whole pipeline. A project counts as
// submitted when any financial record shares its project number.
func ComputePipelineMetrics(projects []models.ProjectRecord, financials []models.FinancialRecord) models.PipelineMetrics {
	ix := NewIndex(financials)
	matched, unmatched := Match(projects, ix)

	return models.PipelineMetrics{
		TotalGigawattsRequested: totalGigawatts(projects),
		TotalGigawattsSubmitted: totalGigawatts(matched),
		TotalRevenueRequested:   totalBudget(projects),
		TotalRevenuePlanned:     totalBudget(matched),
		TotalRequests:           len(projects),
		PendingRequests:         len(unmatched),
		AvgTimeToPlan:           averageDays(matched, ix),
	}
}

// ComputePlannerStatistics returns one entry per planner seen in either
// register, ordered by completed projects (descending, stable).
//
// A planner's completed projects are matched only against the AFE records
// attributed to that same planner, which is narrower than the global match
// used by ComputePipelineMetrics. Names are compared verbatim.
func ComputePlannerStatistics(projects []models.ProjectRecord, financials []models.FinancialRecord) []models.PlannerStatistics {
	names := plannerNames(projects, financials)

	projectsByPlanner := make(map[string][]models.ProjectRecord, len(names))
	for _, p := range projects {
		projectsByPlanner[p.PlannerName] = append(projectsByPlanner[p.PlannerName], p)
	}
	financialsByPlanner := make(map[string][]models.FinancialRecord, len(names))
	for _, f := range financials {
		financialsByPlanner[f.PlannerName] = append(financialsByPlanner[f.PlannerName], f)
	}

	stats := make([]models.PlannerStatistics, 0, len(names))
	for _, name := range names {
		ix := NewIndex(financialsByPlanner[name])
		completed, _ := Match(projectsByPlanner[name], ix)
		stats = append(stats, models.PlannerStatistics{
			Name:                  name,
			CompletedProjects:     len(completed),
			TotalLoadConnected:    totalGigawatts(completed),
			TotalRevenueConnected: totalBudget(completed),
			AvgTimeToComplete:     averageDays(completed, ix),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].CompletedProjects > stats[j].CompletedProjects
	})
	return stats
}

// plannerNames lists distinct planner names, LTP planners first, then AFE
// planners, each in first-seen order. Blank names are skipped.
func plannerNames(projects []models.ProjectRecord, financials []models.FinancialRecord) []string {
	seen := make(map[string]struct{})
	var names []string
	add := func(name string) {
		if strings.TrimSpace(name) == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, p := range projects {
		add(p.PlannerName)
	}
	for _, f := range financials {
		add(f.PlannerName)
	}
	return names
}

func totalGigawatts(projects []models.ProjectRecord) float64 {
	var total float64
	for _, p := range projects {
		total += LoadGigawatts(p.TotalLoadProjection)
	}
	return total
}

func totalBudget(projects []models.ProjectRecord) float64 {
	total := decimal.Zero
	for _, p := range projects {
		total = total.Add(ParseBudget(p.EstimatedBudget))
	}
	return total.InexactFloat64()
}

// averageDays averages request-to-AFE durations over matched projects, each
// paired with the first AFE record for its project number in ix. Pairs
// without a usable non-negative duration are skipped; no samples gives 0.
func averageDays(matched []models.ProjectRecord, ix Index) float64 {
	var total float64
	var samples int
	for _, p := range matched {
		afe, ok := ix.First(p.ProjectNumber)
		if !ok {
			continue
		}
		days, ok := daysBetween(p.RequestDate, afe.DateCreated)
		if !ok {
			continue
		}
		total += days
		samples++
	}
	if samples == 0 {
		return 0
	}
	return total / float64(samples)
}
