package cursor

import (
	"fmt"
	"io"

	"github.com/importsteel/steel/errs"
)

// ReaderCursor wraps an arbitrary, possibly non-seekable io.Reader or
// io.Writer for sequential reads and writes. Seek always fails.
// Record.Dump works through a writer-backed ReaderCursor. Definition.Load
// and lazy field access seek to each field's offset, so they do not work
// through a ReaderCursor and need a seekable Cursor (BytesCursor or
// FileCursor).
type ReaderCursor struct {
	r   io.Reader
	w   io.Writer
	pos int64
}

// NewReaderCursor wraps r for sequential reads. The returned Cursor is not
// writable and not seekable.
func NewReaderCursor(r io.Reader) *ReaderCursor {
	return &ReaderCursor{r: r}
}

// NewWriterCursor wraps w for eager writes. The returned Cursor is not
// readable and not seekable.
func NewWriterCursor(w io.Writer) *ReaderCursor {
	return &ReaderCursor{w: w}
}

func (c *ReaderCursor) Tell() int64 {
	return c.pos
}

func (c *ReaderCursor) Seek(int64) (int64, error) {
	return c.pos, fmt.Errorf("%w", errs.ErrNotSeekable)
}

func (c *ReaderCursor) Read(p []byte) (int, error) {
	if c.r == nil {
		return 0, fmt.Errorf("%w", errs.ErrNotReadable)
	}
	n, err := c.r.Read(p)
	c.pos += int64(n)

	return n, err
}

func (c *ReaderCursor) Write(p []byte) (int, error) {
	if c.w == nil {
		return 0, fmt.Errorf("%w", errs.ErrNotWritable)
	}
	n, err := c.w.Write(p)
	c.pos += int64(n)

	return n, err
}

func (c *ReaderCursor) Readable() bool { return c.r != nil }
func (c *ReaderCursor) Writable() bool { return c.w != nil }
func (c *ReaderCursor) Seekable() bool { return false }
