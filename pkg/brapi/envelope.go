// Package brapi carries the fixed BrAPI v2 response envelope. The shape is a
// wire contract with external breeding tools; nothing here is negotiable.
package brapi

type Pagination struct {
	PageSize    int   `json:"pageSize"`
	CurrentPage int   `json:"currentPage"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int64 `json:"totalPages"`
}

type Status struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type Metadata struct {
	Pagination Pagination `json:"pagination"`
	Status     []Status   `json:"status"`
	Datafiles  []string   `json:"datafiles"`
}

type Result struct {
	Data any `json:"data"`
}

type Response struct {
	Metadata Metadata `json:"metadata"`
	Result   Result   `json:"result"`
}

// NewResponse wraps data in the BrAPI envelope. Pages are zero-indexed.
func NewResponse(data any, totalCount int64, page, pageSize int, statuses ...Status) Response {
	if pageSize <= 0 {
		pageSize = 1000
	}
	totalPages := (totalCount + int64(pageSize) - 1) / int64(pageSize)
	if statuses == nil {
		statuses = []Status{}
	}
	return Response{
		Metadata: Metadata{
			Pagination: Pagination{
				PageSize:    pageSize,
				CurrentPage: page,
				TotalCount:  totalCount,
				TotalPages:  totalPages,
			},
			Status:    statuses,
			Datafiles: []string{},
		},
		Result: Result{Data: data},
	}
}
