package utils

import "testing"

func TestNormalizePagination(t *testing.T) {
	cases := []struct {
		name                     string
		pageNumber, pageSize     int
		wantNumber, wantPageSize int
	}{
		{"正常参数", 2, 20, 2, 20},
		{"页码为0", 0, 10, 1, 10},
		{"页码为负", -3, 10, 1, 10},
		{"每页为0", 1, 0, 1, DefaultPageSize},
		{"每页为负", 1, -5, 1, DefaultPageSize},
		{"超出上限", 1, 500, 1, MaxPageSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotNumber, gotSize := NormalizePagination(tc.pageNumber, tc.pageSize)
			if gotNumber != tc.wantNumber || gotSize != tc.wantPageSize {
				t.Errorf("NormalizePagination(%d, %d) = (%d, %d), want (%d, %d)",
					tc.pageNumber, tc.pageSize, gotNumber, gotSize, tc.wantNumber, tc.wantPageSize)
			}
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	if got := PaginationOffset(1, 10); got != 0 {
		t.Errorf("PaginationOffset(1, 10) = %d, want 0", got)
	}
	if got := PaginationOffset(3, 20); got != 40 {
		t.Errorf("PaginationOffset(3, 20) = %d, want 40", got)
	}
}

func TestHasNextPage(t *testing.T) {
	cases := []struct {
		name       string
		totalCount int64
		pageNumber int
		pageSize   int
		want       bool
	}{
		{"还有下一页", 25, 1, 10, true},
		{"恰好最后一页", 20, 2, 10, false},
		{"最后一页未满", 15, 2, 10, false},
		{"空结果", 0, 1, 10, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasNextPage(tc.totalCount, tc.pageNumber, tc.pageSize); got != tc.want {
				t.Errorf("HasNextPage(%d, %d, %d) = %v, want %v",
					tc.totalCount, tc.pageNumber, tc.pageSize, got, tc.want)
			}
		})
	}
}
