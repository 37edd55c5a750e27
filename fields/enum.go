package fields

import (
	"fmt"

	"github.com/importsteel/steel/cursor"
	"github.com/importsteel/steel/errs"
)

// EnumCodec wraps an inner codec (typically an IntegerCodec) and maps
// its decoded primitive to and from one of a declared set of enum
// members, following the same const+String() shape as a typical
// Go enum type.
type EnumCodec struct {
	named
	inner  Codec
	domain map[any]bool
}

// Enum declares a field whose decoded primitive (from inner) must be
// one of the given members.
func Enum(inner Codec, members ...any) *EnumCodec {
	domain := make(map[any]bool, len(members))
	for _, m := range members {
		domain[m] = true
	}

	return &EnumCodec{inner: inner, domain: domain}
}

func (c *EnumCodec) Size() Size { return c.inner.Size() }

func (c *EnumCodec) Validate(value any) error {
	if !c.domain[value] {
		return fmt.Errorf("%w: %s: %v is not a valid member: %w", errs.ErrValidation, c.Name(), value, errs.ErrEnumDomain)
	}

	return c.inner.Validate(value)
}

func (c *EnumCodec) Pack(value any) ([]byte, error) {
	if err := c.Validate(value); err != nil {
		return nil, err
	}

	return c.inner.Pack(value)
}

func (c *EnumCodec) Unpack(data []byte) (any, error) {
	value, err := c.inner.Unpack(data)
	if err != nil {
		return nil, err
	}
	if !c.domain[value] {
		return nil, fmt.Errorf("%w: %s: %v is not a valid member: %w", errs.ErrValidation, c.Name(), value, errs.ErrEnumDomain)
	}

	return value, nil
}

func (c *EnumCodec) Read(cur cursor.Cursor) (any, int64, error) {
	value, consumed, err := c.inner.Read(cur)
	if err != nil {
		return nil, consumed, err
	}
	if !c.domain[value] {
		return nil, consumed, fmt.Errorf("%w: %s: %v is not a valid member: %w", errs.ErrValidation, c.Name(), value, errs.ErrEnumDomain)
	}

	return value, consumed, nil
}

func (c *EnumCodec) Write(value any, cur cursor.Cursor) (int64, error) {
	if err := c.Validate(value); err != nil {
		return 0, err
	}

	return c.inner.Write(value, cur)
}

// FlagsCodec wraps an inner integer codec and accepts any bitwise
// combination of a declared set of flag bits, rather than requiring an
// exact match against a single member.
type FlagsCodec struct {
	named
	inner *IntegerCodec
	mask  int64
}

// Flags declares a bitmask field over the given set of individually
// declared flag bits.
func Flags(inner *IntegerCodec, bits ...int64) *FlagsCodec {
	var mask int64
	for _, b := range bits {
		mask |= b
	}

	return &FlagsCodec{inner: inner, mask: mask}
}

func (c *FlagsCodec) Size() Size { return c.inner.Size() }

func (c *FlagsCodec) Validate(value any) error {
	v, err := toInt64(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errs.ErrValidation, c.Name(), err)
	}
	if v&^c.mask != 0 {
		return fmt.Errorf("%w: %s: %d has bits outside %#x: %w", errs.ErrValidation, c.Name(), v, c.mask, errs.ErrFlagsDomain)
	}

	return c.inner.Validate(value)
}

func (c *FlagsCodec) Pack(value any) ([]byte, error) {
	if err := c.Validate(value); err != nil {
		return nil, err
	}

	return c.inner.Pack(value)
}

func (c *FlagsCodec) Unpack(data []byte) (any, error) {
	value, err := c.inner.Unpack(data)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(value); err != nil {
		return nil, err
	}

	return value, nil
}

func (c *FlagsCodec) Read(cur cursor.Cursor) (any, int64, error) {
	value, consumed, err := c.inner.Read(cur)
	if err != nil {
		return nil, consumed, err
	}
	if err := c.Validate(value); err != nil {
		return nil, consumed, err
	}

	return value, consumed, nil
}

func (c *FlagsCodec) Write(value any, cur cursor.Cursor) (int64, error) {
	if err := c.Validate(value); err != nil {
		return 0, err
	}

	return c.inner.Write(value, cur)
}
