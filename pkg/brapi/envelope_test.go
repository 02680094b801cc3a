package brapi

import "testing"

func TestNewResponsePagination(t *testing.T) {
	cases := []struct {
		name       string
		total      int64
		page, size int
		wantSize   int
		wantPages  int64
	}{
		{"exact multiple", 20, 0, 10, 10, 2},
		{"partial last page", 21, 1, 10, 10, 3},
		{"empty", 0, 0, 10, 10, 0},
		{"default page size", 5, 0, 0, 1000, 1},
		{"single row", 1, 0, 10, 10, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := NewResponse(nil, tc.total, tc.page, tc.size)
			p := resp.Metadata.Pagination
			if p.PageSize != tc.wantSize {
				t.Errorf("pageSize = %d, want %d", p.PageSize, tc.wantSize)
			}
			if p.TotalPages != tc.wantPages {
				t.Errorf("totalPages = %d, want %d", p.TotalPages, tc.wantPages)
			}
			if p.CurrentPage != tc.page {
				t.Errorf("currentPage = %d, want %d", p.CurrentPage, tc.page)
			}
			if p.TotalCount != tc.total {
				t.Errorf("totalCount = %d, want %d", p.TotalCount, tc.total)
			}
		})
	}
}

func TestNewResponseEnvelopeDefaults(t *testing.T) {
	resp := NewResponse([]string{"a"}, 1, 0, 10)
	if resp.Metadata.Status == nil {
		t.Error("status must be an empty array, not null")
	}
	if resp.Metadata.Datafiles == nil {
		t.Error("datafiles must be an empty array, not null")
	}
	data, ok := resp.Result.Data.([]string)
	if !ok || len(data) != 1 {
		t.Errorf("result.data = %v, want the wrapped slice", resp.Result.Data)
	}
}
