package utils

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// NormalizePagination clamp page về tối thiểu 1, limit về [1, 100].
// Giá trị 0 (không truyền) lấy default.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset tính skip cho SQL: (page-1)*limit
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// TotalPages = ceil(total/limit), và 0 khi total = 0
func TotalPages(total int64, limit int) int {
	if total == 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
