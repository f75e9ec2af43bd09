package repository

const defaultPageLimit = 100

// Page represents a simple limit/offset window for listing operations.
type Page struct {
	Limit  int
	Offset int
}

// Sanitize clamps the window to usable values.
func (p Page) Sanitize() Page {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PageResult carries a slice of items and the total count matching the query.
type PageResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
