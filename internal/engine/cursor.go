package engine

// Cursor is the current position in an externally supplied ordered video
// list. It never wraps: advancing past the last index is a no-op.
type Cursor struct {
	index  int
	length int
}

// NewCursor creates a cursor over a list of the given length, positioned
// at index 0.
func NewCursor(length int) *Cursor {
	return &Cursor{length: length}
}

// Index returns the current position.
func (c *Cursor) Index() int { return c.index }

// Length returns the list length.
func (c *Cursor) Length() int { return c.length }

// AtEnd reports whether the cursor sits on the last index (or the list
// is empty).
func (c *Cursor) AtEnd() bool {
	return c.length == 0 || c.index >= c.length-1
}

// Advance moves to the next index, clamped at the end. Returns whether
// the position changed.
func (c *Cursor) Advance() bool {
	if c.AtEnd() {
		return false
	}
	c.index++
	return true
}

// Select moves to an explicit index. Out-of-range indexes leave the
// cursor unchanged and return false.
func (c *Cursor) Select(i int) bool {
	if i < 0 || i >= c.length {
		return false
	}
	c.index = i
	return true
}
