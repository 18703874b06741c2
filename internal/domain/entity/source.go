package entity

// SourceKind tells how a fetched document must be decoded.
type SourceKind string

const (
	// SourceDelimited is delimited text that still needs tokenizing.
	SourceDelimited SourceKind = "delimited"
	// SourceWorkbook is a spreadsheet already split into cells.
	SourceWorkbook SourceKind = "workbook"
)

// SourceDocument is an export fetched by a SourceRepository.
type SourceDocument struct {
	Name    string
	Kind    SourceKind
	Text    string
	Records [][]string
}
