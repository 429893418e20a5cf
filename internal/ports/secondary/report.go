package secondary

import "context"

// ReportReader defines the secondary port for spreadsheet parsing.
type ReportReader interface {
	// Read parses the first worksheet of a spreadsheet. filename selects the
	// format by extension; unknown extensions are sniffed.
	Read(ctx context.Context, data []byte, filename string) (*Sheet, error)
}

// Sheet is a parsed worksheet: rows keyed by header, in file order.
type Sheet struct {
	Name string
	Rows []map[string]string
}
