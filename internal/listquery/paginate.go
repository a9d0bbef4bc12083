package listquery

// Page is the outcome of clamping a requested page against a total.
type Page struct {
	Number     int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// Paginate computes ceil(total/pageSize) and clamps requested into
// [1, TotalPages]. With no records TotalPages is 0 and the page is 1.
func Paginate(total int64, pageSize, requested int) Page {
	pageSize = normalizePageSize(pageSize)
	if total < 0 {
		total = 0
	}

	size := int64(pageSize)
	totalPages := int((total + size - 1) / size)

	page := requested
	switch {
	case page < 1 || totalPages == 0:
		page = 1
	case page > totalPages:
		page = totalPages
	}
	return Page{Number: page, TotalPages: totalPages}
}
