package pagination

// Pagination carries limit/offset paging parameters from query strings.
type Pagination struct {
	Limit  int `form:"limit,default=50" validate:"gte=1,lte=250"` // Min 1, Max 250
	Offset int `form:"offset,default=0" validate:"gte=0"`
}

// Normalize clamps paging values into the accepted range.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > 250 {
		p.Limit = 250
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PageInfo describes the paging state of a list response.
type PageInfo struct {
	TotalCount int64 `json:"total_count"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	HasMore    bool  `json:"has_more"`
}

func BuildPageInfo(total int64, p Pagination) PageInfo {
	return PageInfo{
		TotalCount: total,
		Limit:      p.Limit,
		Offset:     p.Offset,
		// A zero limit means the query was unbounded and returned the rest.
		HasMore: p.Limit > 0 && int64(p.Offset+p.Limit) < total,
	}
}
