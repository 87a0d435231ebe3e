// scraper/web_query.go
package scraper

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ltp-analytics/dashboard/logger"
)

// maxResponseBytes caps how much of a web query response is read.
const maxResponseBytes = 64 << 20

// WebQuery is the content of an Excel web query (.iqy) file.
type WebQuery struct {
	Version  string
	URL      string
	PostData string            // optional line after the URL
	Options  map[string]string // Selection=, Formatting=, ...
}

// ParseIQY reads an .iqy file. The expected layout is a "WEB" line, a version
// line, the URL, then optional POST data and key=value option lines. Blank
// lines before the URL are tolerated.
func ParseIQY(r io.Reader) (*WebQuery, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		lines = append(lines, strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read web query: %w", err)
	}

	// drop leading blank lines
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 || !strings.EqualFold(lines[0], "WEB") {
		return nil, fmt.Errorf("not a web query file: missing WEB header")
	}

	q := &WebQuery{Options: map[string]string{}}
	rest := nonBlank(lines[1:])
	if len(rest) > 0 && !looksLikeURL(rest[0]) {
		q.Version = rest[0]
		rest = rest[1:]
	}
	if len(rest) == 0 || !looksLikeURL(rest[0]) {
		return nil, fmt.Errorf("web query has no http(s) URL")
	}
	q.URL = rest[0]

	for i, line := range rest[1:] {
		if i == 0 && !isOptionLine(line) {
			q.PostData = line
			continue
		}
		if key, value, ok := strings.Cut(line, "="); ok {
			q.Options[key] = value
		}
	}
	return q, nil
}

var knownOptions = []string{
	"Selection", "Formatting", "PreFormattedTextToColumns", "ConsecutiveDelimitersAsOne",
	"SingleBlockTextImport", "DisableDateRecognition", "DisableRedirections",
}

func isOptionLine(line string) bool {
	key, _, ok := strings.Cut(line, "=")
	if !ok {
		return false
	}
	for _, k := range knownOptions {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

func nonBlank(lines []string) []string {
	out := lines[:0:0]
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func looksLikeURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Response is the raw body of a web query together with its media type.
type Response struct {
	Body        []byte
	ContentType string
}

// IsHTML reports whether the body should be parsed as an HTML table.
func (r *Response) IsHTML() bool {
	if mt, _, err := mime.ParseMediaType(r.ContentType); err == nil {
		switch mt {
		case "text/html", "application/xhtml+xml":
			return true
		case "text/csv", "text/plain", "text/tab-separated-values":
			return false
		}
	}
	head := bytes.ToLower(bytes.TrimSpace(r.Body[:min(len(r.Body), 512)]))
	return bytes.HasPrefix(head, []byte("<!doctype html")) ||
		bytes.HasPrefix(head, []byte("<html")) ||
		bytes.Contains(head, []byte("<table"))
}

// Fetch runs the web query and returns the response body. POST data, when
// present, is sent form-encoded.
func (q *WebQuery) Fetch(ctx context.Context, client *http.Client) (*Response, error) {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	logger.Log.Infof("Scraper: running web query against %s", q.URL)

	method, body := http.MethodGet, io.Reader(nil)
	if q.PostData != "" {
		method, body = http.MethodPost, strings.NewReader(q.PostData)
	}
	req, err := http.NewRequestWithContext(ctx, method, q.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", q.URL, err)
	}
	if q.PostData != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make %s request to %s: %w", method, q.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("web query %s: received status code %d", q.URL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", q.URL, err)
	}

	logger.Log.Infof("Scraper: web query %s returned %d bytes", q.URL, len(data))
	return &Response{Body: data, ContentType: resp.Header.Get("Content-Type")}, nil
}

// Rows splits the response into rows, from an HTML table or delimited text.
func (r *Response) Rows() ([][]string, error) {
	if r.IsHTML() {
		return ParseHTMLTable(bytes.NewReader(r.Body))
	}
	rows, err := newDelimitedReader(bytes.NewReader(r.Body)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read delimited web query response: %w", err)
	}
	return rows, nil
}
