// scraper/html_table.go
package scraper

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ltp-analytics/dashboard/logger"
)

// ParseHTMLTable extracts the rows of the data table in an HTML page, such as
// a SharePoint list view returned by a web query. The first table that has
// <th> cells is used, falling back to the first table on the page.
func ParseHTMLTable(r io.Reader) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, fmt.Errorf("no <table> element found in HTML response")
	}
	table := tables.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find("th").Length() > 0
	}).First()
	if table.Length() == 0 {
		table = tables.First()
	}

	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		// skip rows of tables nested inside our table
		if tr.Closest("table").Get(0) != table.Get(0) {
			return
		}
		var cells []string
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cellText(cell))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})

	logger.Log.Debugf("Scraper: extracted %d rows from HTML table", len(rows))
	return rows, nil
}

// cellText collapses runs of whitespace, including <br> line breaks, to
// single spaces.
func cellText(cell *goquery.Selection) string {
	cell.Find("br").ReplaceWithHtml(" ")
	return strings.Join(strings.Fields(cell.Text()), " ")
}
