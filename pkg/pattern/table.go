package pattern

// Table is a grid of formatted cells under column headers.
type Table struct {
	Label   string
	Columns []string
	Rows    []TableRow
}

// TableRow is one row; Kind colours the whole row.
type TableRow struct {
	Cells []string
	Kind  Kind
}

func (t *Table) Type() PatternType { return PatternTypeTable }

// List is a labelled bullet list, such as failed test names.
type List struct {
	Label string
	Items []string
	Kind  Kind
}

func (l *List) Type() PatternType { return PatternTypeList }
