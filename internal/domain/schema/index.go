package schema

// Index is an in-memory secondary index on a single column
type Index struct {
	Column string
	Data   map[interface{}][]int // value → row positions
	Unique bool
}

// NewIndex creates an empty index for the given column
func NewIndex(column string, unique bool) *Index {
	return &Index{
		Column: column,
		Data:   make(map[interface{}][]int),
		Unique: unique,
	}
}
