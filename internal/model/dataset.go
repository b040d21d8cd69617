package model

// Column names injected by the aggregator on every extracted row.
const (
	ColumnSourceFile   = "source_file"
	ColumnSourceFolder = "source_folder"
)

// Column names added to warning rows by the report builder.
const (
	ColumnElapsedDays   = "elapsed_days"
	ColumnRemainingDays = "remaining_days"
	ColumnStatus        = "status"
)

// Table is one tabular block as extracted from a document: a header row
// followed by zero or more data rows of cell text.
type Table struct {
	Header []string
	Rows   [][]string
}

// Row maps a column name to its cell value.
type Row map[string]string

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Dataset is an ordered collection of rows over a shared column set. Rows
// may omit columns; missing values read as the empty string. Columns keep
// first-seen order so merged output stays readable.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{}
}

// HasColumn reports whether the dataset contains the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// addColumn registers a column if it is not already present.
func (d *Dataset) addColumn(name string) {
	if !d.HasColumn(name) {
		d.Columns = append(d.Columns, name)
	}
}

// AppendTable merges one extracted table into the dataset. Header cells
// select the target columns; rows shorter than the header are padded,
// longer rows have their trailing cells dropped. Duplicate header names
// within a table keep the last value.
func (d *Dataset) AppendTable(t Table) {
	for _, h := range t.Header {
		if h == "" {
			continue
		}
		d.addColumn(h)
	}
	for _, cells := range t.Rows {
		row := make(Row, len(t.Header))
		for i, h := range t.Header {
			if h == "" || i >= len(cells) {
				continue
			}
			row[h] = cells[i]
		}
		d.Rows = append(d.Rows, row)
	}
}

// AppendRow adds a single row, registering any new columns it carries.
// Column-union semantics: rows from differently-shaped tables coexist and
// missing values stay empty rather than erroring.
func (d *Dataset) AppendRow(row Row, columnOrder []string) {
	for _, c := range columnOrder {
		if _, ok := row[c]; ok {
			d.addColumn(c)
		}
	}
	// Columns not covered by the supplied order still need registering.
	for c := range row {
		d.addColumn(c)
	}
	d.Rows = append(d.Rows, row)
}

// Merge appends every row of other, unioning the column sets while
// preserving other's column order for its novel columns.
func (d *Dataset) Merge(other *Dataset) {
	if other == nil {
		return
	}
	for _, c := range other.Columns {
		d.addColumn(c)
	}
	d.Rows = append(d.Rows, other.Rows...)
}

// SetAll sets the named column to value on every row.
func (d *Dataset) SetAll(column, value string) {
	d.addColumn(column)
	for _, row := range d.Rows {
		row[column] = value
	}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Empty reports whether the dataset holds no rows.
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}
