// Package cursor provides a uniform seek/read/write abstraction over
// in-memory, file-backed, and non-seekable buffers, plus an
// offset-windowed sub-cursor for nested-structure reads.
//
// Cursor unifies the handful of stdlib interfaces (io.Reader, io.Writer,
// io.Seeker) that field codecs need, the same way endian.EndianEngine
// unifies binary.ByteOrder and binary.AppendByteOrder into a single
// capability interface.
package cursor

import "io"

// Cursor is the contract every buffer backing a Record must satisfy.
// Implementations are not required to support every capability; callers
// should check Readable/Writable/Seekable before relying on an
// operation, and operations on an unsupported capability return an
// error wrapping errs.ErrNotSeekable/ErrNotWritable/ErrNotReadable.
type Cursor interface {
	io.Reader
	io.Writer

	// Tell returns the current position, relative to this cursor's own
	// origin (zero for the top-level cursor, the sub-cursor's base
	// offset for a windowed view).
	Tell() int64

	// Seek moves to an absolute position relative to this cursor's own
	// origin and returns the new position.
	Seek(position int64) (int64, error)

	// Readable reports whether Read is supported.
	Readable() bool
	// Writable reports whether Write is supported.
	Writable() bool
	// Seekable reports whether Seek is supported.
	Seekable() bool
}

// ReadExact reads exactly n bytes from cur, or returns an error wrapping
// io.ErrUnexpectedEOF if fewer were available. It is the building block
// every static-size codec uses for Read.
func ReadExact(cur Cursor, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}

	buf := make([]byte, n)
	read := 0
	for read < n {
		k, err := cur.Read(buf[read:])
		read += k
		if err != nil {
			if err == io.EOF && read == n {
				break
			}
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return buf[:read], err
		}
		if k == 0 {
			return buf[:read], io.ErrUnexpectedEOF
		}
	}

	return buf[:read], nil
}

// ReadByte reads a single byte from cur, returning io.EOF if none is
// available. Dynamic-size text codecs (Terminated) scan byte by byte.
func ReadByte(cur Cursor) (byte, error) {
	var buf [1]byte
	n, err := cur.Read(buf[:])
	if n == 1 {
		return buf[0], nil
	}
	if err == nil {
		err = io.EOF
	}

	return 0, err
}
