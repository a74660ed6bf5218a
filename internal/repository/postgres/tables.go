package postgres

import "fmt"

// TableNames holds dynamically prefixed table names. Each environment
// (dev_, test_, prod_) gets its own tables in the same database.
type TableNames struct {
	Ideas    string
	Comments string
	Projects string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Ideas:    fmt.Sprintf("%sideas", prefix),
		Comments: fmt.Sprintf("%scomments", prefix),
		Projects: fmt.Sprintf("%sprojects", prefix),
	}
}
