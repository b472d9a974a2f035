package models

// Content formats a report can be built from.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
)

// Report is the result of extracting one XMind document.
type Report struct {
	// BookName is the document file name (no path).
	BookName string `json:"book_name"`
	// Format is the content format the report was built from ("json" or "xml").
	Format string `json:"format"`
	// SheetCounts holds the member count of every sheet, in document order.
	SheetCounts []SheetCount `json:"sheet_counts"`
	// Total is the sum of all sheet counts.
	Total int `json:"total"`
	// GroupRows holds one row per green-filled group, largest first.
	GroupRows []Row `json:"group_rows"`
	// Notes carries notices for the reader, e.g. reduced fidelity.
	Notes []string `json:"notes"`
}

// Verbose reports whether rows carry their sheet title.
func (r *Report) Verbose() bool {
	for _, row := range r.GroupRows {
		if row.Sheet != "" {
			return true
		}
	}
	return false
}
