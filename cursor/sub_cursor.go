package cursor

// SubCursor is an offset-windowed view over a parent Cursor, used for
// nested-object fields. Its Seek/Tell translate to the parent's
// coordinate space by adding/subtracting a fixed base offset.
//
// A SubCursor does not bound the upper end of its window: an inner
// codec is trusted to stop reading at its own end, the same contract
// Python's OffsetBuffer placed on nested structures.
type SubCursor struct {
	parent Cursor
	base   int64
}

// NewSubCursor opens a window onto parent starting at the given
// absolute base offset in the parent's coordinate space.
func NewSubCursor(parent Cursor, base int64) *SubCursor {
	return &SubCursor{parent: parent, base: base}
}

// NewSubCursorAtCurrent opens a window starting at the parent's current
// Tell(), the common case when descending into a nested field in place.
func NewSubCursorAtCurrent(parent Cursor) *SubCursor {
	return NewSubCursor(parent, parent.Tell())
}

func (s *SubCursor) Tell() int64 {
	return s.parent.Tell() - s.base
}

func (s *SubCursor) Seek(position int64) (int64, error) {
	n, err := s.parent.Seek(s.base + position)
	if err != nil {
		return 0, err
	}

	return n - s.base, nil
}

func (s *SubCursor) Read(p []byte) (int, error) {
	return s.parent.Read(p)
}

func (s *SubCursor) Write(p []byte) (int, error) {
	return s.parent.Write(p)
}

func (s *SubCursor) Readable() bool { return s.parent.Readable() }
func (s *SubCursor) Writable() bool { return s.parent.Writable() }
func (s *SubCursor) Seekable() bool { return s.parent.Seekable() }
