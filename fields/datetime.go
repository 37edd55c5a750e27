package fields

import (
	"fmt"
	"time"

	"github.com/importsteel/steel/cursor"
	"github.com/importsteel/steel/errs"
)

// UnixTimeCodec decodes and encodes a timestamp stored as a Unix epoch
// integer, surfacing it to callers as a time.Time rather than a bare
// int64. It wraps an IntegerCodec for the actual wire representation.
type UnixTimeCodec struct {
	named
	inner *IntegerCodec
	unit  time.Duration
}

// UnixTime declares a timestamp field stored as an integer counting
// unit-sized ticks since the Unix epoch (time.Second for whole-second
// resolution, time.Millisecond for millisecond resolution, and so on).
func UnixTime(inner *IntegerCodec, unit time.Duration) *UnixTimeCodec {
	return &UnixTimeCodec{inner: inner, unit: unit}
}

func (c *UnixTimeCodec) Size() Size { return c.inner.Size() }

func (c *UnixTimeCodec) toTicks(value any) (int64, error) {
	t, ok := value.(time.Time)
	if !ok {
		return 0, fmt.Errorf("%w: %s: expected time.Time, got %T", errs.ErrValidation, c.Name(), value)
	}

	return t.UnixNano() / int64(c.unit), nil
}

func (c *UnixTimeCodec) fromTicks(ticks int64) time.Time {
	return time.Unix(0, ticks*int64(c.unit)).UTC()
}

func (c *UnixTimeCodec) Validate(value any) error {
	ticks, err := c.toTicks(value)
	if err != nil {
		return err
	}

	return c.inner.Validate(ticks)
}

func (c *UnixTimeCodec) Pack(value any) ([]byte, error) {
	ticks, err := c.toTicks(value)
	if err != nil {
		return nil, err
	}

	return c.inner.Pack(ticks)
}

func (c *UnixTimeCodec) Unpack(data []byte) (any, error) {
	value, err := c.inner.Unpack(data)
	if err != nil {
		return nil, err
	}

	return c.fromTicks(value.(int64)), nil
}

func (c *UnixTimeCodec) Read(cur cursor.Cursor) (any, int64, error) {
	value, consumed, err := c.inner.Read(cur)
	if err != nil {
		return nil, consumed, err
	}

	return c.fromTicks(value.(int64)), consumed, nil
}

func (c *UnixTimeCodec) Write(value any, cur cursor.Cursor) (int64, error) {
	ticks, err := c.toTicks(value)
	if err != nil {
		return 0, err
	}

	return c.inner.Write(ticks, cur)
}
