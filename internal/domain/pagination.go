package domain

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type Pagination struct {
	Limit  int `json:"limit" query:"limit" validate:"min=1,max=100"`
	Offset int `json:"offset" query:"offset" validate:"min=0"`
}

func DefaultPagination() Pagination {
	return Pagination{Limit: DefaultLimit, Offset: 0}
}

func (p Pagination) Valid() bool {
	return p.Limit >= 1 && p.Limit <= MaxLimit && p.Offset >= 0
}

// Window returns the [start, end) bounds of the page inside a slice of n
// items.
func (p Pagination) Window(n int) (int, int) {
	start := p.Offset
	if start > n {
		start = n
	}
	end := start + p.Limit
	if end > n {
		end = n
	}
	return start, end
}
