package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// CursorDirection says which way the client is paging.
type CursorDirection string

const (
	CursorDirectionNext CursorDirection = "next"
	CursorDirectionPrev CursorDirection = "prev"
)

// Cursor is the decoded keyset position: the boundary row's ID and creation
// time.
type Cursor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// CursorParams are the client-supplied keyset inputs. Cursor is the opaque
// base64 token from a previous response.
type CursorParams struct {
	Cursor    string          `form:"cursor" json:"cursor"`
	Direction CursorDirection `form:"direction" json:"direction"`
	Limit     int             `form:"limit" json:"limit"`
}

// Validate clamps the limit and defaults the direction in place.
func (c *CursorParams) Validate() {
	switch {
	case c.Limit < 1:
		c.Limit = defaultPerPage
	case c.Limit > maxPerPage:
		c.Limit = maxPerPage
	}
	if c.Direction == "" {
		c.Direction = CursorDirectionNext
	}
}

// DecodeCursor unpacks the opaque token. An empty token decodes to nil.
func (c *CursorParams) DecodeCursor() (*Cursor, error) {
	if c.Cursor == "" {
		return nil, nil
	}
	raw, err := base64.URLEncoding.DecodeString(c.Cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor format: %w", err)
	}
	var cur Cursor
	if err := json.Unmarshal(raw, &cur); err != nil {
		return nil, fmt.Errorf("invalid cursor data: %w", err)
	}
	return &cur, nil
}

// EncodeCursor packs a row position into an opaque token.
func EncodeCursor(id string, createdAt ...time.Time) string {
	cur := Cursor{ID: id}
	if len(createdAt) > 0 {
		cur.CreatedAt = createdAt[0]
	}
	raw, _ := json.Marshal(cur)
	return base64.URLEncoding.EncodeToString(raw)
}

// CursorPagination is the keyset metadata returned alongside list results.
type CursorPagination struct {
	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
	Limit      int     `json:"limit"`
}

// CursorPaginatedResult pairs a keyset page of items with its metadata.
type CursorPaginatedResult[T any] struct {
	Items      []T               `json:"items"`
	Pagination *CursorPagination `json:"pagination"`
}

// NewCursorPagination derives keyset metadata from a fetched page. Callers
// fetch limit+1 rows so the extra row signals another page; the returned slice
// is trimmed back to limit. HasPrev is left false since only the caller knows
// whether a cursor was supplied.
func NewCursorPagination[T any](items []T, limit int, getID func(T) string, getCreatedAt func(T) time.Time) (*CursorPagination, []T) {
	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	meta := &CursorPagination{Limit: limit, HasNext: hasMore}
	if len(items) > 0 {
		first := EncodeCursor(getID(items[0]), getCreatedAt(items[0]))
		last := EncodeCursor(getID(items[len(items)-1]), getCreatedAt(items[len(items)-1]))
		meta.PrevCursor = &first
		meta.NextCursor = &last
	}
	return meta, items
}

// NewCursorPaginatedResult wraps items with their keyset metadata.
func NewCursorPaginatedResult[T any](items []T, pagination *CursorPagination) *CursorPaginatedResult[T] {
	return &CursorPaginatedResult[T]{Items: items, Pagination: pagination}
}
