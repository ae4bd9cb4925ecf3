package dto

// ImportQuery holds the query parameters of a roster upload
type ImportQuery struct {
	DryRun bool `form:"dryRun"`
}

// PageQuery holds optional paging parameters. Pointers keep an explicit page=0 or size=0
// distinct from an absent parameter so that it fails validation.
type PageQuery struct {
	Page *int `form:"page" binding:"omitempty,min=1"`
	Size *int `form:"size" binding:"omitempty,min=1,max=100"`
}

// PageAndSize returns the bound values, 0 where absent
func (q PageQuery) PageAndSize() (int, int) {
	var page, size int
	if q.Page != nil {
		page = *q.Page
	}
	if q.Size != nil {
		size = *q.Size
	}
	return page, size
}

// ListUsersQuery filters the user listing
type ListUsersQuery struct {
	Role       string `form:"role" binding:"omitempty,oneof=student teacher"`
	Department string `form:"department" binding:"omitempty,max=255"`
	PageQuery
}

// ListSummariesQuery filters the upload summary listing
type ListSummariesQuery struct {
	Department string `form:"department" binding:"omitempty,max=255"`
	PageQuery
}
