package utils

// 分页约定：pageNumber 从1开始，pageSize 为每页条数。
// 列表响应统一携带 totalCount 与 hasNext。

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// NormalizePagination 将请求中的分页参数规整到合法范围。
func NormalizePagination(pageNumber, pageSize int) (int, int) {
	if pageNumber < 1 {
		pageNumber = DefaultPageNumber
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageNumber, pageSize
}

// PaginationOffset 计算 LIMIT/OFFSET 查询的偏移量。
func PaginationOffset(pageNumber, pageSize int) int {
	return (pageNumber - 1) * pageSize
}

// HasNextPage 根据总数判断当前页之后是否还有数据。
func HasNextPage(totalCount int64, pageNumber, pageSize int) bool {
	return totalCount > int64(pageNumber)*int64(pageSize)
}
