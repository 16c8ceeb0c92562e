package domain

// Report is a view flattened into titled text tables, ready for a terminal
// or a spreadsheet.
type Report struct {
	Title    string
	Subtitle string
	Sections []ReportSection
}

// ReportSection is either a summary panel, a table, or both. Error is set
// when the section could not be derived.
type ReportSection struct {
	Name    string
	Title   string
	Summary []ReportDetail
	Columns []string
	Rows    [][]string
	Error   string
}

// ReportDetail is a single labelled figure in a summary panel.
type ReportDetail struct {
	Name        string
	Value       string
	Description string
}
