package common

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// ListResponse represents a paginated list response
type ListResponse struct {
	Items      interface{}        `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

// NewListResponse bundles items with their pagination metadata.
func NewListResponse(items interface{}, limit, offset int, total int64) ListResponse {
	return ListResponse{
		Items: items,
		Pagination: PaginationResponse{
			Limit:  limit,
			Offset: offset,
			Total:  total,
		},
	}
}
