package fields

import (
	"fmt"
	"math"

	"github.com/importsteel/steel/cursor"
	"github.com/importsteel/steel/endian"
	"github.com/importsteel/steel/errs"
	"github.com/importsteel/steel/internal/options"
)

// FloatCodec is an IEEE 754 floating point field of width 2 (half),
// 4 (single), or 8 (double) bytes. Round-tripping preserves NaN, ±0,
// and ±Inf exactly.
type FloatCodec struct {
	named
	optionTracker

	width     int
	endian    endian.EndianEngine
	hasEngine bool
}

// Float declares a floating point field of the given byte width.
func Float(width int, opts ...FloatOption) (*FloatCodec, error) {
	if width != 2 && width != 4 && width != 8 {
		return nil, fmt.Errorf("%w: float width must be 2, 4, or 8; got %d", errs.ErrConfiguration, width)
	}

	c := &FloatCodec{width: width, optionTracker: newOptionTracker()}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// FloatOption configures a FloatCodec at construction time.
type FloatOption = options.Option[*FloatCodec]

// WithFloatEndian explicitly specifies byte order, overriding any
// structure-level inheritance.
func WithFloatEndian(e endian.EndianEngine) FloatOption {
	return options.NoError(func(c *FloatCodec) {
		c.endian = e
		c.hasEngine = true
		c.markSpecified("endianness")
	})
}

func (c *FloatCodec) engine() endian.EndianEngine {
	if c.hasEngine {
		return c.endian
	}

	return endian.GetBigEndianEngine()
}

func (c *FloatCodec) Size() Size {
	return StaticSize(int64(c.width))
}

func (c *FloatCodec) RecognizedOptions() []string { return []string{"endianness"} }
func (c *FloatCodec) SpecifiedOptions() []string  { return c.specifiedNames() }

func (c *FloatCodec) SetOption(name string, value any) error {
	if name != "endianness" {
		return fmt.Errorf("%w: %q", errs.ErrUnknownOption, name)
	}
	e, ok := value.(endian.EndianEngine)
	if !ok {
		return fmt.Errorf("%w: endianness option must be an endian.EndianEngine", errs.ErrConfiguration)
	}
	c.endian = e
	c.hasEngine = true

	return nil
}

func (c *FloatCodec) Validate(value any) error {
	_, err := toFloat64(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errs.ErrValidation, c.Name(), err)
	}

	return nil
}

func (c *FloatCodec) Pack(value any) ([]byte, error) {
	v, err := toFloat64(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrValidation, c.Name(), err)
	}

	buf := make([]byte, c.width)
	e := c.engine()
	switch c.width {
	case 2:
		e.PutUint16(buf, float64ToHalf(v))
	case 4:
		e.PutUint32(buf, math.Float32bits(float32(v)))
	case 8:
		e.PutUint64(buf, math.Float64bits(v))
	}

	return buf, nil
}

func (c *FloatCodec) Unpack(data []byte) (any, error) {
	if len(data) != c.width {
		return nil, fmt.Errorf("%w: %s: expected %d bytes, got %d", errs.ErrDecode, c.Name(), c.width, len(data))
	}

	e := c.engine()
	switch c.width {
	case 2:
		return halfToFloat64(e.Uint16(data)), nil
	case 4:
		return float64(math.Float32frombits(e.Uint32(data))), nil
	case 8:
		return math.Float64frombits(e.Uint64(data)), nil
	}

	return nil, fmt.Errorf("%w: unreachable float width %d", errs.ErrDecode, c.width)
}

func (c *FloatCodec) Read(cur cursor.Cursor) (any, int64, error) {
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

func (c *FloatCodec) Write(value any, cur cursor.Cursor) (int64, error) {
	packed, err := c.Pack(value)
	if err != nil {
		return 0, err
	}
	n, err := cur.Write(packed)

	return int64(n), err
}

func toFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("value of type %T is not a float", value)
	}
}

// float64ToHalf converts a float64 to IEEE 754 binary16, preserving
// NaN, ±0, and ±Inf exactly.
func float64ToHalf(f float64) uint16 {
	bits := math.Float64bits(f)
	sign := uint16((bits >> 48) & 0x8000)

	if math.IsNaN(f) {
		return sign | 0x7E00
	}
	if math.IsInf(f, 0) {
		return sign | 0x7C00
	}
	if f == 0 {
		return sign
	}

	exp := int((bits>>52)&0x7FF) - 1023 + 15
	mant := (bits >> 42) & 0x3FF

	if exp >= 0x1F {
		return sign | 0x7C00 // overflow to infinity
	}
	if exp <= 0 {
		return sign // underflow to zero
	}

	return sign | uint16(exp)<<10 | uint16(mant)
}

func halfToFloat64(h uint16) float64 {
	sign := uint64(h&0x8000) << 48
	exp := (h >> 10) & 0x1F
	mant := uint64(h & 0x3FF)

	switch exp {
	case 0:
		if mant == 0 {
			return math.Float64frombits(sign)
		}
		// subnormal: value is mant * 2^-24
		val := math.Ldexp(float64(mant), -24)
		if sign != 0 {
			val = -val
		}

		return val
	case 0x1F:
		if mant == 0 {
			return math.Float64frombits(sign | 0x7FF0000000000000)
		}
		return math.Float64frombits(sign | 0x7FF8000000000000) // NaN
	default:
		bits := sign | uint64(int(exp)-15+1023)<<52 | mant<<42
		return math.Float64frombits(bits)
	}
}
