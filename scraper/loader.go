// scraper/loader.go
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/ltp-analytics/dashboard/models"
)

// Loader turns register content into records. Content that starts with a
// WEB line is a web query and is run over HTTP first; anything else, including
// .iqy files that already hold exported rows, is read as delimited text.
type Loader struct {
	Client *http.Client
}

// NewLoader returns a Loader using client for web queries.
func NewLoader(client *http.Client) *Loader {
	return &Loader{Client: client}
}

// LoadProjects reads the LTP Hub register from r. name is the file name the
// content came from, used in error messages.
func (l *Loader) LoadProjects(ctx context.Context, name string, r io.Reader) ([]models.ProjectRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read LTP Hub file %s: %w", name, err)
	}
	if !HasWebHeader(data) {
		return ParseProjectCsv(bytes.NewReader(data))
	}
	rows, err := l.runWebQuery(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("LTP Hub web query %s: %w", name, err)
	}
	return ParseProjectRows(rows)
}

// LoadFinancials reads the AFE register from r.
func (l *Loader) LoadFinancials(ctx context.Context, name string, r io.Reader) ([]models.FinancialRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read AFE file %s: %w", name, err)
	}
	if !HasWebHeader(data) {
		return ParseFinancialCsv(bytes.NewReader(data))
	}
	rows, err := l.runWebQuery(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("AFE web query %s: %w", name, err)
	}
	return ParseFinancialRows(rows)
}

func (l *Loader) runWebQuery(ctx context.Context, data []byte) ([][]string, error) {
	q, err := ParseIQY(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	resp, err := q.Fetch(ctx, l.Client)
	if err != nil {
		return nil, err
	}
	return resp.Rows()
}

// HasWebHeader reports whether the first non-blank line of content is the
// WEB line of a web query file. It accepts exactly what ParseIQY accepts.
func HasWebHeader(content []byte) bool {
	rest := bytes.TrimPrefix(content, []byte(utf8BOM))
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = bytes.Cut(rest, []byte("\n"))
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		return bytes.EqualFold(line, []byte("WEB"))
	}
	return false
}
