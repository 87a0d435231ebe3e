package reconcile

import (
	"strconv"
	"testing"

	"github.com/ltp-analytics/dashboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

func project(number, planner, load, budget, requested string) models.ProjectRecord {
	return models.ProjectRecord{
		ProjectNumber:       number,
		PlannerName:         planner,
		TotalLoadProjection: load,
		EstimatedBudget:     budget,
		RequestDate:         requested,
	}
}

func afe(id, number, planner, created string) models.FinancialRecord {
	return models.FinancialRecord{
		ID:            id,
		ProjectNumber: number,
		PlannerName:   planner,
		DateCreated:   created,
	}
}

func TestComputeEmptyInput(t *testing.T) {
	result := Compute(nil, nil)

	assert.Equal(t, models.PipelineMetrics{}, result.Metrics)
	require.NotNil(t, result.Planners)
	assert.Empty(t, result.Planners)
}

func TestSingleMatchedProject(t *testing.T) {
	projects := []models.ProjectRecord{project("P1", "Alice", "150", "1000000", "2024-01-01")}
	financials := []models.FinancialRecord{afe("AFE-1", "P1", "Alice", "2024-01-11")}

	m := ComputePipelineMetrics(projects, financials)

	assert.InDelta(t, 0.15, m.TotalGigawattsRequested, delta)
	assert.InDelta(t, 0.15, m.TotalGigawattsSubmitted, delta)
	assert.InDelta(t, 1000000, m.TotalRevenueRequested, delta)
	assert.InDelta(t, 1000000, m.TotalRevenuePlanned, delta)
	assert.Equal(t, 1, m.TotalRequests)
	assert.Equal(t, 0, m.PendingRequests)
	assert.InDelta(t, 10, m.AvgTimeToPlan, delta)
}

func TestUnmatchedProject(t *testing.T) {
	projects := []models.ProjectRecord{project("P1", "Alice", "150", "1000000", "2024-01-01")}

	m := ComputePipelineMetrics(projects, nil)

	assert.InDelta(t, 0.15, m.TotalGigawattsRequested, delta)
	assert.Zero(t, m.TotalGigawattsSubmitted)
	assert.InDelta(t, 1000000, m.TotalRevenueRequested, delta)
	assert.Zero(t, m.TotalRevenuePlanned)
	assert.Equal(t, 1, m.PendingRequests)
	assert.Zero(t, m.AvgTimeToPlan)
}

func TestNegativeDurationStillMatches(t *testing.T) {
	projects := []models.ProjectRecord{project("P1", "Alice", "150", "1000000", "2024-01-04")}
	financials := []models.FinancialRecord{afe("AFE-1", "P1", "Alice", "2024-01-01")}

	m := ComputePipelineMetrics(projects, financials)

	assert.InDelta(t, 0.15, m.TotalGigawattsSubmitted, delta)
	assert.InDelta(t, 1000000, m.TotalRevenuePlanned, delta)
	assert.Equal(t, 0, m.PendingRequests)
	assert.Zero(t, m.AvgTimeToPlan)
}

func TestNegativeDurationExcludedFromAverage(t *testing.T) {
	projects := []models.ProjectRecord{
		project("P1", "Alice", "100", "0", "2024-01-04"),
		project("P2", "Alice", "100", "0", "2024-01-01"),
	}
	financials := []models.FinancialRecord{
		afe("AFE-1", "P1", "Alice", "2024-01-01"), // 3 days early
		afe("AFE-2", "P2", "Alice", "2024-01-07"),
	}

	m := ComputePipelineMetrics(projects, financials)
	assert.InDelta(t, 6, m.AvgTimeToPlan, delta)
}

func TestPlannerNamesAreCaseSensitive(t *testing.T) {
	projects := []models.ProjectRecord{
		project("P1", "Alice", "150", "1000", "2024-01-01"),
		project("P2", "alice", "150", "1000", "2024-01-01"),
	}
	financials := []models.FinancialRecord{
		afe("AFE-1", "P1", "Alice", "2024-01-11"),
		afe("AFE-2", "P2", "alice", "2024-01-11"),
	}

	stats := ComputePlannerStatistics(projects, financials)

	require.Len(t, stats, 2)
	assert.Equal(t, "Alice", stats[0].Name)
	assert.Equal(t, "alice", stats[1].Name)
	for _, s := range stats {
		assert.Equal(t, 1, s.CompletedProjects)
		assert.InDelta(t, 0.15, s.TotalLoadConnected, delta)
		assert.InDelta(t, 10, s.AvgTimeToComplete, delta)
	}
}

func TestMalformedBudgetCoercesToZero(t *testing.T) {
	projects := []models.ProjectRecord{
		project("P1", "Alice", "abc", "N/A", "2024-01-01"),
		project("P2", "Alice", "", "$2,500", "2024-01-01"),
	}

	m := ComputePipelineMetrics(projects, nil)

	assert.Zero(t, m.TotalGigawattsRequested)
	assert.InDelta(t, 2500, m.TotalRevenueRequested, delta)
}

func TestConservationAndNonNegativity(t *testing.T) {
	projects := []models.ProjectRecord{
		project("P1", "Alice", "150", "$1,000", "2024-01-01"),
		project("P2", "Bob", "n/a", "", "garbage"),
		project("P3", "Bob", "75.5", "200.50", "2024-02-01"),
		project("P1", "Carol", "10", "10", "2024-01-01"), // duplicate project number
	}
	financials := []models.FinancialRecord{
		afe("AFE-1", "P1", "Alice", "2024-01-05"),
		afe("AFE-2", "P9", "Dave", "2024-01-05"),
	}

	m := ComputePipelineMetrics(projects, financials)
	matched, _ := Match(projects, NewIndex(financials))

	assert.Equal(t, 4, m.TotalRequests)
	assert.Equal(t, m.TotalRequests, m.PendingRequests+len(matched))
	assert.Len(t, matched, 2)
	assert.GreaterOrEqual(t, m.TotalGigawattsRequested, 0.0)
	assert.GreaterOrEqual(t, m.TotalGigawattsSubmitted, 0.0)
	assert.GreaterOrEqual(t, m.TotalRevenueRequested, 0.0)
	assert.GreaterOrEqual(t, m.TotalRevenuePlanned, 0.0)
	assert.InDelta(t, 1010, m.TotalRevenuePlanned, delta)
}

func TestInvalidDatesGiveZeroAverage(t *testing.T) {
	projects := []models.ProjectRecord{
		project("P1", "Alice", "1", "1", ""),
		project("P2", "Alice", "1", "1", "not a date"),
	}
	financials := []models.FinancialRecord{
		afe("AFE-1", "P1", "Alice", "2024-01-01"),
		afe("AFE-2", "P2", "Alice", "2024-01-01"),
	}

	m := ComputePipelineMetrics(projects, financials)

	assert.Equal(t, 0, m.PendingRequests)
	assert.Zero(t, m.AvgTimeToPlan)
}

func TestFirstFinancialRecordIsPaired(t *testing.T) {
	projects := []models.ProjectRecord{project("P1", "Alice", "100", "100", "2024-01-01")}
	financials := []models.FinancialRecord{
		afe("AFE-1", "P1", "Alice", "2024-01-03"),
		afe("AFE-2", "P1", "Alice", "2024-01-31"),
	}

	m := ComputePipelineMetrics(projects, financials)

	assert.InDelta(t, 2, m.AvgTimeToPlan, delta)
	assert.InDelta(t, 0.1, m.TotalGigawattsSubmitted, delta)
	assert.InDelta(t, 100, m.TotalRevenuePlanned, delta)
}

func TestFirstPairWithBadDateIsNotReplaced(t *testing.T) {
	projects := []models.ProjectRecord{project("P1", "Alice", "100", "100", "2024-01-01")}
	financials := []models.FinancialRecord{
		afe("AFE-1", "P1", "Alice", ""),
		afe("AFE-2", "P1", "Alice", "2024-01-31"),
	}

	m := ComputePipelineMetrics(projects, financials)
	assert.Zero(t, m.AvgTimeToPlan)
}

func TestFractionalDays(t *testing.T) {
	projects := []models.ProjectRecord{project("P1", "Alice", "1", "1", "2024-01-01T00:00:00Z")}
	financials := []models.FinancialRecord{afe("AFE-1", "P1", "Alice", "2024-01-02T12:00:00Z")}

	m := ComputePipelineMetrics(projects, financials)
	assert.InDelta(t, 1.5, m.AvgTimeToPlan, delta)
}

func TestPlannerMatchingUsesOwnFinancials(t *testing.T) {
	projects := []models.ProjectRecord{
		project("P1", "Alice", "100", "1000", "2024-01-01"),
		project("P2", "Alice", "200", "2000", "2024-01-01"),
	}
	financials := []models.FinancialRecord{
		afe("AFE-1", "P1", "Alice", "2024-01-05"),
		afe("AFE-2", "P2", "Bob", "2024-01-09"), // attributed to another planner
	}

	m := ComputePipelineMetrics(projects, financials)
	stats := ComputePlannerStatistics(projects, financials)

	assert.Equal(t, 0, m.PendingRequests)
	assert.InDelta(t, 0.3, m.TotalGigawattsSubmitted, delta)

	require.Len(t, stats, 2)
	assert.Equal(t, models.PlannerStatistics{
		Name:                  "Alice",
		CompletedProjects:     1,
		TotalLoadConnected:    0.1,
		TotalRevenueConnected: 1000,
		AvgTimeToComplete:     4,
	}, stats[0])
	assert.Equal(t, models.PlannerStatistics{Name: "Bob"}, stats[1])
}

func TestPlannerPairsWithinOwnFinancials(t *testing.T) {
	projects := []models.ProjectRecord{project("P1", "Alice", "100", "1000", "2024-01-01")}
	financials := []models.FinancialRecord{
		afe("AFE-1", "P1", "Bob", "2024-01-03"),
		afe("AFE-2", "P1", "Alice", "2024-01-21"),
	}

	m := ComputePipelineMetrics(projects, financials)
	assert.InDelta(t, 2, m.AvgTimeToPlan, delta, "pipeline pairs with the first AFE overall")

	stats := ComputePlannerStatistics(projects, financials)
	require.Len(t, stats, 2)
	assert.Equal(t, "Alice", stats[0].Name)
	assert.Equal(t, 1, stats[0].CompletedProjects)
	assert.InDelta(t, 20, stats[0].AvgTimeToComplete, delta, "planner pairs with the first AFE of their own")
	assert.Equal(t, models.PlannerStatistics{Name: "Bob"}, stats[1])
}

func TestPlannerOrdering(t *testing.T) {
	projects := []models.ProjectRecord{
		project("P1", "Zed", "1", "1", ""),
		project("P2", "Amy", "1", "1", ""),
		project("P3", "Amy", "1", "1", ""),
		project("P4", "Kim", "1", "1", ""),
		project("P5", "", "1", "1", ""),
	}
	financials := []models.FinancialRecord{
		afe("A2", "P2", "Amy", ""),
		afe("A3", "P3", "Amy", ""),
		afe("A4", "P4", "Kim", ""),
		afe("A6", "P6", "Lou", ""),
		afe("A5", "P5", "   ", ""),
	}

	stats := ComputePlannerStatistics(projects, financials)

	var names []string
	for _, s := range stats {
		names = append(names, s.Name+":"+strconv.Itoa(s.CompletedProjects))
	}
	// ties keep first-seen order: Zed, Kim (LTP) before Lou (AFE only)
	assert.Equal(t, []string{"Amy:2", "Kim:1", "Zed:0", "Lou:0"}, names)
}

func TestComputeIsDeterministic(t *testing.T) {
	projects := []models.ProjectRecord{
		project("P1", "Alice", "150.7", "$1,234.56", "2024-01-01"),
		project("P2", "Bob", "0.3", "99.99", "3/4/2024"),
		project("P3", "Bob", "12", "7", "2024-03-01"),
	}
	financials := []models.FinancialRecord{
		afe("AFE-1", "P1", "Alice", "2024-01-11"),
		afe("AFE-2", "P2", "Bob", "2024-03-20"),
		afe("AFE-3", "P3", "Alice", "2024-03-02"),
	}

	first := Compute(projects, financials)
	second := Compute(projects, financials)
	assert.Equal(t, first, second)
}

func TestComputeDoesNotModifyInputs(t *testing.T) {
	projects := []models.ProjectRecord{
		project("P2", "Bob", "1", "1", "2024-01-01"),
		project("P1", "Alice", "1", "1", "2024-01-01"),
	}
	financials := []models.FinancialRecord{afe("AFE-1", "P1", "Alice", "2024-01-02")}
	projectsCopy := append([]models.ProjectRecord(nil), projects...)
	financialsCopy := append([]models.FinancialRecord(nil), financials...)

	Compute(projects, financials)

	assert.Equal(t, projectsCopy, projects)
	assert.Equal(t, financialsCopy, financials)
}
