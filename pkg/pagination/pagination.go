package pagination

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// MaxLimit caps a requested page size. A list request without a limit
// returns every row.
const MaxLimit = 500

// Params holds pagination parameters extracted from a request. Limit 0 means
// no limit.
type Params struct {
	Limit  int
	Offset int
}

// FromContext reads ?limit= and ?offset=. Invalid or negative values are
// ignored.
func FromContext(c echo.Context) Params {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 0 {
		limit = 0
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// Bounded reports whether a page size was requested.
func (p Params) Bounded() bool {
	return p.Limit > 0
}

// SQL returns the LIMIT/OFFSET clause for the page.
func (p Params) SQL() string {
	if !p.Bounded() {
		return fmt.Sprintf("OFFSET %d", p.Offset)
	}
	return fmt.Sprintf("LIMIT %d OFFSET %d", p.Limit, p.Offset)
}

// HasNext returns true if there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return p.Bounded() && p.Offset+p.Limit < total
}

// Response is the list envelope. Paging fields are only present when a page
// size was requested.
type Response struct {
	Data    interface{} `json:"data"`
	Total   *int        `json:"total,omitempty"`
	Limit   int         `json:"limit,omitempty"`
	Offset  int         `json:"offset,omitempty"`
	HasMore bool        `json:"has_more,omitempty"`
}

func NewResponse(data interface{}, total int, p Params) *Response {
	r := &Response{Data: data}
	if p.Bounded() {
		r.Total = &total
		r.Limit = p.Limit
		r.Offset = p.Offset
		r.HasMore = p.HasNext(total)
	}
	return r
}
