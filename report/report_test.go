package report

import (
	"strings"
	"testing"

	"github.com/ltp-analytics/dashboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUSD(t *testing.T) {
	assert.Equal(t, "$2,500,000.00", USD(2500000))
	assert.Equal(t, "$0.00", USD(0))
	assert.Equal(t, "$1,234.57", USD(1234.567))
}

func TestMarkdown(t *testing.T) {
	result := models.DashboardResult{
		Metrics: models.PipelineMetrics{
			TotalGigawattsRequested: 0.45,
			TotalGigawattsSubmitted: 0.15,
			TotalRevenueRequested:   6700000,
			TotalRevenuePlanned:     2500000,
			TotalRequests:           2,
			PendingRequests:         1,
			AvgTimeToPlan:           17,
		},
		Planners: []models.PlannerStatistics{
			{Name: "John Smith", CompletedProjects: 1, TotalLoadConnected: 0.15, TotalRevenueConnected: 2500000, AvgTimeToComplete: 17},
			{Name: "Sarah|Davis"},
		},
	}

	md := Markdown(result)
	assert.Contains(t, md, "| GW requested | 0.45 GW |")
	assert.Contains(t, md, "| Revenue requested | $6,700,000.00 |")
	assert.Contains(t, md, "| Avg time to plan | 17.0 days |")
	assert.Contains(t, md, "| John Smith | 1 | 0.15 GW | $2,500,000.00 | 17.0 days |")
	assert.Contains(t, md, `Sarah\|Davis`)
	assert.Less(t, strings.Index(md, "John Smith"), strings.Index(md, "Sarah"))
}

func TestMarkdownWithoutPlanners(t *testing.T) {
	md := Markdown(models.DashboardResult{Planners: []models.PlannerStatistics{}})
	assert.Contains(t, md, "No planners found")
	assert.Contains(t, md, "| Total requests | 0 |")
}

func TestRender(t *testing.T) {
	out, err := Render(models.DashboardResult{}, 80)
	require.NoError(t, err)
	assert.Contains(t, out, "LTP Pipeline Dashboard")
}
