// Package report renders an HTML summary of an indexing, collection,
// cleaning, or verification run: a searchable, sortable table of per-file
// outcomes plus headline badges, in the teacher's single-file-report style.
package report

import (
	"fmt"
	"html"
	"os"
	"sort"
	"strings"

	"bozocatalog/internal/sizefmt"
)

// Status classifies one row's outcome across every run kind this package
// can report on.
type Status string

const (
	StatusIndexed       Status = "indexed"
	StatusCopied        Status = "copied"
	StatusAlreadyStored Status = "already_stored"
	StatusMissed        Status = "missed"
	StatusDeleted       Status = "deleted"
	StatusDelisted      Status = "delisted"
	StatusCorrect       Status = "correct"
	StatusIncorrect     Status = "incorrect"
	StatusMissing       Status = "missing"
	StatusError         Status = "error"
)

// Row is one reported file outcome.
type Row struct {
	Path    string
	Dest    string
	Status  Status
	Size    int64
	Details string
}

// Summary is the full content of one report.
type Summary struct {
	Operation string // "index", "collect", "clean", "verify"
	Rows      []Row
}

// counts tallies Rows by Status for the badge row.
func (s Summary) counts() map[Status]int {
	out := make(map[Status]int)
	for _, r := range s.Rows {
		out[r.Status]++
	}
	return out
}

// Write renders summary as a standalone HTML file at path.
func Write(path string, summary Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	writeHeader(f, summary)
	writeTable(f, summary)
	f.WriteString("</body></html>")
	return nil
}

func writeHeader(f *os.File, summary Summary) {
	title := strings.Title(summary.Operation) + " Report"
	fmt.Fprintf(f, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
`, html.EscapeString(title))
	f.WriteString(reportCSS)
	fmt.Fprintf(f, `
</head>
<body>
    <div class="container">
        <div class="mascot-header">
            <h1>%s</h1>`, html.EscapeString(title))

	writeBadges(f, summary)

	f.WriteString(`
        </div>`)
}

func writeBadges(f *os.File, summary Summary) {
	counts := summary.counts()
	var totalBytes int64
	for _, r := range summary.Rows {
		totalBytes += r.Size
	}

	f.WriteString(`
        <div class="summary-badges">
            <div class="badge-row">`)
	writeBadge(f, "total", "Total Files", fmt.Sprintf("%d", len(summary.Rows)))
	writeBadge(f, "data", "Data Size", sizefmt.SizeOf(totalBytes))
	for _, st := range orderedStatuses() {
		if n, ok := counts[st]; ok {
			writeBadge(f, string(st), badgeLabel(st), fmt.Sprintf("%d", n))
		}
	}
	f.WriteString(`
            </div>
        </div>`)
}

func orderedStatuses() []Status {
	return []Status{
		StatusIndexed, StatusCopied, StatusAlreadyStored, StatusMissed,
		StatusDeleted, StatusDelisted, StatusCorrect, StatusIncorrect,
		StatusMissing, StatusError,
	}
}

func badgeLabel(s Status) string {
	switch s {
	case StatusAlreadyStored:
		return "Already Stored"
	default:
		return strings.Title(strings.ReplaceAll(string(s), "_", " "))
	}
}

func writeBadge(f *os.File, badgeType, label, value string) {
	fmt.Fprintf(f, `
                <span class="summary-badge badge-%s">
                    <span class="badge-label">%s</span>
                    <span class="badge-value">%s</span>
                </span>`, badgeType, label, value)
}

func writeTable(f *os.File, summary Summary) {
	f.WriteString(`
        <div class="controls">
            <input type="text" class="search-input" placeholder="Search files..." id="searchInput">
            <div class="filter-buttons">
                <button class="filter-btn active" data-filter="all">All</button>`)
	for _, st := range orderedStatuses() {
		fmt.Fprintf(f, `
                <button class="filter-btn" data-filter="%s">%s</button>`, st, badgeLabel(st))
	}
	f.WriteString(`
            </div>
        </div>

        <div class="table-container">
            <table>
                <thead class="table-header">
                    <tr>
                        <th data-sort="path">File Path<span class="sort-indicator">↕</span></th>
                        <th data-sort="status">Status<span class="sort-indicator">↕</span></th>
                        <th data-sort="destination">Destination<span class="sort-indicator">↕</span></th>
                        <th data-sort="size">Size<span class="sort-indicator">↕</span></th>
                        <th data-sort="details">Details<span class="sort-indicator">↕</span></th>
                    </tr>
                </thead>
                <tbody class="table-body" id="fileTableBody">`)

	rows := make([]Row, len(summary.Rows))
	copy(rows, summary.Rows)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Path < rows[j].Path })
	for _, r := range rows {
		writeTableRow(f, r)
	}

	f.WriteString(`                </tbody>
            </table>
        </div>`)
	writeJavaScript(f)
}

func writeTableRow(f *os.File, r Row) {
	path := html.EscapeString(r.Path)
	dest := html.EscapeString(r.Dest)
	details := html.EscapeString(r.Details)
	size := "-"
	if r.Size > 0 {
		size = sizefmt.SizeOf(r.Size)
	}

	pathCell := path
	if r.Path != "" {
		pathCell = fmt.Sprintf(`<a href="file://%s" title="Open %s">%s</a>`, path, path, path)
	}
	destCell := dest
	if r.Dest != "" {
		destCell = fmt.Sprintf(`<a href="file://%s" title="Open %s">%s</a>`, dest, dest, dest)
	}

	fmt.Fprintf(f, `
                    <tr data-status="%s" data-path="%s">
                        <td class="file-path">%s</td>
                        <td><span class="status-badge status-%s">%s</span></td>
                        <td class="file-path">%s</td>
                        <td class="file-size">%s</td>
                        <td>%s</td>
                    </tr>`,
		r.Status, strings.ToLower(path),
		pathCell,
		r.Status, badgeLabel(r.Status),
		destCell,
		size,
		details)
}

func writeJavaScript(f *os.File) {
	f.WriteString(reportJavaScript)
	f.WriteString(`
    </div>`)
}
