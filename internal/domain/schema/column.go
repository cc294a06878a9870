package schema

// ColumnType represents the data type of a column
type ColumnType string

const (
	ColumnTypeInt   ColumnType = "INT"
	ColumnTypeFloat ColumnType = "FLOAT"
	ColumnTypeText  ColumnType = "TEXT"
)

// Column describes a single column of a table schema
type Column struct {
	Name    string
	Type    ColumnType
	Indexed bool // whether a secondary index exists on this column
	Unique  bool
}
