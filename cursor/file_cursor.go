package cursor

import (
	"io"
	"os"
)

// FileCursor is a Cursor backed directly by an *os.File, letting lazy
// field access index a record without reading the whole file into
// memory first. The caller retains ownership of f; FileCursor never
// closes it.
type FileCursor struct {
	f   *os.File
	pos int64
}

// NewFileCursor wraps an already-open, seekable *os.File.
func NewFileCursor(f *os.File) *FileCursor {
	return &FileCursor{f: f}
}

func (c *FileCursor) Tell() int64 {
	return c.pos
}

func (c *FileCursor) Seek(position int64) (int64, error) {
	n, err := c.f.Seek(position, io.SeekStart)
	if err != nil {
		return c.pos, err
	}
	c.pos = n

	return n, nil
}

func (c *FileCursor) Read(p []byte) (int, error) {
	n, err := c.f.ReadAt(p, c.pos)
	c.pos += int64(n)

	return n, err
}

func (c *FileCursor) Write(p []byte) (int, error) {
	n, err := c.f.WriteAt(p, c.pos)
	c.pos += int64(n)

	return n, err
}

func (c *FileCursor) Readable() bool { return true }
func (c *FileCursor) Writable() bool { return true }
func (c *FileCursor) Seekable() bool { return true }
