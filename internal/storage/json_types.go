package storage

type TableMeta struct {
	Name      string       `json:"name"`
	Columns   []ColumnMeta `json:"columns"`
	BlockSize int          `json:"block_size,omitempty"`
}

type ColumnMeta struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Indexed bool   `json:"indexed"`
	Unique  bool   `json:"unique,omitempty"`
}
