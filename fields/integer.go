package fields

import (
	"fmt"
	"math"

	"github.com/importsteel/steel/cursor"
	"github.com/importsteel/steel/endian"
	"github.com/importsteel/steel/errs"
	"github.com/importsteel/steel/internal/options"
)

// Signedness selects whether an Integer field's domain includes
// negative values.
type Signedness bool

const (
	Unsigned Signedness = false
	Signed   Signedness = true
)

// IntegerCodec is a fixed-width, byte-ordered two's-complement integer
// field. Widths of 1, 2, 4, and 8 bytes are supported.
type IntegerCodec struct {
	named
	optionTracker

	width    int
	signed   Signedness
	endian   endian.EndianEngine
	hasEngine bool
}

// Integer declares an integer field of the given byte width. endian
// defaults to big-endian unless overridden explicitly here or by the
// enclosing structure's "endianness" option.
func Integer(width int, signed Signedness, opts ...IntegerOption) (*IntegerCodec, error) {
	if width != 1 && width != 2 && width != 4 && width != 8 {
		return nil, fmt.Errorf("%w: integer width must be 1, 2, 4, or 8; got %d", errs.ErrConfiguration, width)
	}

	c := &IntegerCodec{
		width:         width,
		signed:        signed,
		optionTracker: newOptionTracker(),
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// IntegerOption configures an IntegerCodec at construction time.
type IntegerOption = options.Option[*IntegerCodec]

// WithIntegerEndian explicitly specifies byte order, overriding any
// structure-level inheritance.
func WithIntegerEndian(e endian.EndianEngine) IntegerOption {
	return options.NoError(func(c *IntegerCodec) {
		c.endian = e
		c.hasEngine = true
		c.markSpecified("endianness")
	})
}

func (c *IntegerCodec) engine() endian.EndianEngine {
	if c.hasEngine {
		return c.endian
	}

	return endian.GetBigEndianEngine()
}

func (c *IntegerCodec) Size() Size {
	return StaticSize(int64(c.width))
}

// RecognizedOptions implements Configurable.
func (c *IntegerCodec) RecognizedOptions() []string {
	return []string{"endianness", "signed"}
}

// SpecifiedOptions implements Configurable.
func (c *IntegerCodec) SpecifiedOptions() []string {
	return c.specifiedNames()
}

// SetOption implements Configurable.
func (c *IntegerCodec) SetOption(name string, value any) error {
	switch name {
	case "endianness":
		e, ok := value.(endian.EndianEngine)
		if !ok {
			return fmt.Errorf("%w: endianness option must be an endian.EndianEngine", errs.ErrConfiguration)
		}
		c.endian = e
		c.hasEngine = true
	case "signed":
		s, ok := value.(Signedness)
		if !ok {
			return fmt.Errorf("%w: signed option must be a fields.Signedness", errs.ErrConfiguration)
		}
		c.signed = s
	default:
		return fmt.Errorf("%w: %q", errs.ErrUnknownOption, name)
	}

	return nil
}

func (c *IntegerCodec) bounds() (min, max int64) {
	bits := uint(c.width * 8)
	if !c.signed {
		if bits == 64 {
			// The wire range is 0..2^64-1, but values are carried as
			// int64 throughout this package (see toInt64), so
			// math.MaxInt64 is the true representable ceiling here;
			// uint64(1)<<64 would overflow to 0 in Go's shift rules.
			return 0, math.MaxInt64
		}

		return 0, int64((uint64(1)<<bits)-1)
	}

	return -(int64(1) << (bits - 1)), (int64(1) << (bits - 1)) - 1
}

func (c *IntegerCodec) Validate(value any) error {
	v, err := toInt64(value)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}

	min, max := c.bounds()
	if v < min || v > max {
		return fmt.Errorf("%w: %s: %d out of range [%d, %d]: %w", errs.ErrValidation, c.Name(), v, min, max, errs.ErrIntegerOutOfRange)
	}

	return nil
}

func (c *IntegerCodec) Pack(value any) ([]byte, error) {
	v, err := toInt64(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}
	if err := c.Validate(v); err != nil {
		return nil, err
	}

	buf := make([]byte, c.width)
	e := c.engine()
	switch c.width {
	case 1:
		buf[0] = byte(v)
	case 2:
		e.PutUint16(buf, uint16(v))
	case 4:
		e.PutUint32(buf, uint32(v))
	case 8:
		e.PutUint64(buf, uint64(v))
	}

	return buf, nil
}

func (c *IntegerCodec) Unpack(data []byte) (any, error) {
	if len(data) != c.width {
		return nil, fmt.Errorf("%w: %s: expected %d bytes, got %d", errs.ErrDecode, c.Name(), c.width, len(data))
	}

	e := c.engine()
	var u uint64
	switch c.width {
	case 1:
		u = uint64(data[0])
	case 2:
		u = uint64(e.Uint16(data))
	case 4:
		u = uint64(e.Uint32(data))
	case 8:
		u = e.Uint64(data)
	}

	if !c.signed {
		return int64(u), nil
	}

	bits := uint(c.width * 8)
	signBit := uint64(1) << (bits - 1)
	if u&signBit != 0 {
		u -= uint64(1) << bits
	}

	return int64(u), nil
}

func (c *IntegerCodec) Read(cur cursor.Cursor) (any, int64, error) {
	data, err := cursor.ReadExact(cur, c.width)
	if err != nil {
		return nil, int64(len(data)), fmt.Errorf("%w: %s: %v", errs.ErrDecode, c.Name(), err)
	}
	if len(data) != c.width {
		return nil, int64(len(data)), fmt.Errorf("%w: %s: %w", errs.ErrDecode, c.Name(), errs.ErrUnexpectedEOF)
	}

	v, err := c.Unpack(data)
	return v, int64(c.width), err
}

func (c *IntegerCodec) Write(value any, cur cursor.Cursor) (int64, error) {
	packed, err := c.Pack(value)
	if err != nil {
		return 0, err
	}
	n, err := cur.Write(packed)

	return int64(n), err
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", v)
		}
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("value of type %T is not an integer", value)
	}
}
