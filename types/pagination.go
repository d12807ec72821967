package types

// Paginated is the envelope every list-returning assembler produces.
type Paginated[T any] struct {
	Data        []T `json:"data"`
	TotalCount  int `json:"totalCount"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

// NewPaginated builds the envelope. Data is never nil so it encodes as [].
func NewPaginated[T any](data []T, totalCount, page, limit int) Paginated[T] {
	if data == nil {
		data = []T{}
	}
	return Paginated[T]{
		Data:        data,
		TotalCount:  totalCount,
		TotalPages:  TotalPages(totalCount, limit),
		CurrentPage: page,
	}
}

// TotalPages is ceil(totalCount / limit).
func TotalPages(totalCount, limit int) int {
	if limit <= 0 || totalCount <= 0 {
		return 0
	}
	return (totalCount + limit - 1) / limit
}
