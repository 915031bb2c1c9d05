package domain

// Page is one cursor-linked slice of a paged listing.
// PrevCursor is nil only for the first page, NextCursor is nil once
// the upstream returned no items for the requested cursor.
type Page[T any] struct {
	Cursor     int  `json:"cursor"`
	Items      []T  `json:"items"`
	PrevCursor *int `json:"prev_cursor"`
	NextCursor *int `json:"next_cursor"`
}
