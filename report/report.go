// report/report.go
package report

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/ltp-analytics/dashboard/models"
	"github.com/shopspring/decimal"
)

// USD formats amount as US dollars, e.g. $2,500,000.00.
func USD(amount float64) string {
	cents := decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// Markdown renders the dashboard as a Markdown document: headline pipeline
// metrics followed by the planner table in the order given.
func Markdown(result models.DashboardResult) string {
	m := result.Metrics
	var b strings.Builder

	b.WriteString("# LTP Pipeline Dashboard\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total requests | %d |\n", m.TotalRequests)
	fmt.Fprintf(&b, "| Pending requests | %d |\n", m.PendingRequests)
	fmt.Fprintf(&b, "| GW requested | %.2f GW |\n", m.TotalGigawattsRequested)
	fmt.Fprintf(&b, "| GW submitted | %.2f GW |\n", m.TotalGigawattsSubmitted)
	fmt.Fprintf(&b, "| Revenue requested | %s |\n", USD(m.TotalRevenueRequested))
	fmt.Fprintf(&b, "| Revenue planned | %s |\n", USD(m.TotalRevenuePlanned))
	fmt.Fprintf(&b, "| Avg time to plan | %.1f days |\n", m.AvgTimeToPlan)

	b.WriteString("\n## Planners\n\n")
	if len(result.Planners) == 0 {
		b.WriteString("_No planners found._\n")
		return b.String()
	}
	b.WriteString("| Planner | Completed | Load connected | Revenue connected | Avg time to complete |\n")
	b.WriteString("|---|---:|---:|---:|---:|\n")
	for _, p := range result.Planners {
		fmt.Fprintf(&b, "| %s | %d | %.2f GW | %s | %.1f days |\n",
			escapeCell(p.Name), p.CompletedProjects, p.TotalLoadConnected,
			USD(p.TotalRevenueConnected), p.AvgTimeToComplete)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Render renders the Markdown report for a terminal of the given width.
func Render(result models.DashboardResult, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(Markdown(result))
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}
