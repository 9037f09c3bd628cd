package service

// Pagination describes the slice a page request produced, computed against
// the full filtered set.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Paginate slices the ranked list. A page beyond the last one yields an empty
// slice with otherwise-correct metadata; it is not an error.
func Paginate(tours []RankedTour, page, limit int) ([]RankedTour, Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total := len(tours)
	pages := (total + limit - 1) / limit

	meta := Pagination{Page: page, Limit: limit, Total: total, Pages: pages}

	start := (page - 1) * limit
	if start >= total {
		return []RankedTour{}, meta
	}
	end := start + limit
	if end > total {
		end = total
	}
	return tours[start:end], meta
}
