package entity

// Block kinds of a report document.
const (
	BlockHeading   = "heading"
	BlockParagraph = "paragraph"
	BlockTable     = "table"
)

// Cell is one table cell: a display string plus a header flag.
type Cell struct {
	Text   string
	Header bool
}

// Block is one element of a report section. Exactly one of the kind-specific
// fields is meaningful: Level+Text for headings, Text for paragraphs, Table
// for tables.
type Block struct {
	Kind  string
	Level int
	Text  string
	Table [][]Cell
}

// Section is an ordered run of blocks.
type Section struct {
	Blocks []Block
}

// ReportModel is the in-memory representation of an exportable document:
// ordered sections of ordered blocks, plus page header/footer metadata. It is
// pure data with no rendering logic; identical input must always produce a
// structurally identical model.
type ReportModel struct {
	Title      string
	PageHeader string
	Sections   []Section
}

// Heading appends a heading block to the section.
func (s *Section) Heading(level int, text string) {
	s.Blocks = append(s.Blocks, Block{Kind: BlockHeading, Level: level, Text: text})
}

// Paragraph appends a paragraph block to the section.
func (s *Section) Paragraph(text string) {
	s.Blocks = append(s.Blocks, Block{Kind: BlockParagraph, Text: text})
}

// AddTable appends a table block to the section.
func (s *Section) AddTable(rows [][]Cell) {
	s.Blocks = append(s.Blocks, Block{Kind: BlockTable, Table: rows})
}
