package fields

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/importsteel/steel/cursor"
	"github.com/importsteel/steel/errs"
)

// BytesCodec is a fixed-width raw byte field. A short read at the end
// of the buffer is returned as-is, with its actual (shorter) length,
// rather than treated as an error.
type BytesCodec struct {
	named
	size int
}

// Bytes declares a fixed-width raw byte field of the given size.
func Bytes(size int) (*BytesCodec, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: byte field size must be non-negative: %w", errs.ErrConfiguration, errs.ErrInvalidFieldSize)
	}

	return &BytesCodec{size: size}, nil
}

func (c *BytesCodec) Size() Size { return StaticSize(int64(c.size)) }

func (c *BytesCodec) Validate(value any) error {
	v, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("%w: %s: expected []byte, got %T", errs.ErrValidation, c.Name(), value)
	}
	if len(v) != c.size {
		return fmt.Errorf("%w: %s: expected %d bytes, got %d: %w", errs.ErrValidation, c.Name(), c.size, len(v), errs.ErrByteLengthMismatch)
	}

	return nil
}

func (c *BytesCodec) Pack(value any) ([]byte, error) {
	if err := c.Validate(value); err != nil {
		return nil, err
	}

	return value.([]byte), nil
}

func (c *BytesCodec) Unpack(data []byte) (any, error) {
	return data, nil
}

func (c *BytesCodec) Read(cur cursor.Cursor) (any, int64, error) {
	data, err := cursor.ReadExact(cur, c.size)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, int64(len(data)), fmt.Errorf("%w: %s: %v", errs.ErrDecode, c.Name(), err)
	}

	return data, int64(len(data)), nil
}

func (c *BytesCodec) Write(value any, cur cursor.Cursor) (int64, error) {
	packed, err := c.Pack(value)
	if err != nil {
		return 0, err
	}
	n, err := cur.Write(packed)

	return int64(n), err
}

// FixedBytesCodec validates that a read value matches an expected magic
// sequence and supplies that sequence as the default value. On write,
// the caller-supplied bytes are written verbatim: the fixed value is a
// validator and default, not a silent override.
type FixedBytesCodec struct {
	named
	value []byte
}

// FixedBytes declares a field whose value must always equal the given
// byte sequence. Its size is inferred from len(value).
func FixedBytes(value []byte) *FixedBytesCodec {
	return &FixedBytesCodec{value: value}
}

func (c *FixedBytesCodec) Size() Size { return StaticSize(int64(len(c.value))) }

// Default returns the fixed byte sequence, usable as the field's
// default value when constructing a Record.
func (c *FixedBytesCodec) Default() []byte {
	return c.value
}

func (c *FixedBytesCodec) Validate(value any) error {
	v, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("%w: %s: expected []byte, got %T", errs.ErrValidation, c.Name(), value)
	}
	if !bytes.Equal(v, c.value) {
		return fmt.Errorf("%w: %s: %x does not match fixed value %x: %w", errs.ErrValidation, c.Name(), v, c.value, errs.ErrFixedBytesMismatch)
	}

	return nil
}

func (c *FixedBytesCodec) Pack(value any) ([]byte, error) {
	v, ok := value.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected []byte, got %T", errs.ErrValidation, c.Name(), value)
	}

	return v, nil
}

func (c *FixedBytesCodec) Unpack(data []byte) (any, error) {
	return data, nil
}

func (c *FixedBytesCodec) Read(cur cursor.Cursor) (any, int64, error) {
	data, err := cursor.ReadExact(cur, len(c.value))
	if err != nil {
		return nil, int64(len(data)), fmt.Errorf("%w: %s: %v", errs.ErrDecode, c.Name(), err)
	}
	if err := c.Validate(data); err != nil {
		return data, int64(len(data)), err
	}

	return data, int64(len(data)), nil
}

func (c *FixedBytesCodec) Write(value any, cur cursor.Cursor) (int64, error) {
	packed, err := c.Pack(value)
	if err != nil {
		return 0, err
	}
	n, err := cur.Write(packed)

	return int64(n), err
}
