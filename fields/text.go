package fields

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/importsteel/steel/cursor"
	"github.com/importsteel/steel/errs"
	"github.com/importsteel/steel/internal/options"
)

// textCodec holds the encoding shared by every string field. Only
// "utf-8" and "ascii" are understood directly, so anything else is
// rejected at validation time rather than silently mis-encoded.
type textCodec struct {
	optionTracker
	encoding string
}

func newTextCodec() textCodec {
	return textCodec{optionTracker: newOptionTracker(), encoding: "utf-8"}
}

func (t *textCodec) setEncoding(encoding string) {
	t.encoding = encoding
	t.markSpecified("encoding")
}

func (t *textCodec) encode(value string) ([]byte, error) {
	switch t.encoding {
	case "ascii":
		for i := 0; i < len(value); i++ {
			if value[i] > 127 {
				return nil, fmt.Errorf("%q is not encodable as ascii: %w", value, errs.ErrNotEncodable)
			}
		}
	case "utf-8":
	default:
		return nil, fmt.Errorf("encoding %q is not supported: %w", t.encoding, errs.ErrNotEncodable)
	}

	return []byte(value), nil
}

func (t *textCodec) decode(data []byte) (string, error) {
	if t.encoding == "ascii" {
		for _, b := range data {
			if b > 127 {
				return "", fmt.Errorf("%w: byte 0x%02x is not ascii", errs.ErrInvalidUTF8, b)
			}
		}

		return string(data), nil
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: invalid utf-8 sequence", errs.ErrInvalidUTF8)
	}

	return string(data), nil
}

// RecognizedOptions implements Configurable for every text codec.
func (t *textCodec) RecognizedOptions() []string { return []string{"encoding"} }
func (t *textCodec) SpecifiedOptions() []string  { return t.specifiedNames() }

// FixedLengthCodec is a static-size text field padded to an exact byte
// size; a string whose encoded form is longer than size is rejected,
// not truncated. Reads always consume exactly size bytes and
// retain any padding bytes in the returned string: the codec never
// trims.
type FixedLengthCodec struct {
	named
	textCodec
	size    int
	padding byte
}

// FixedLength declares a static-size text field. padding defaults to a
// single NUL byte; use WithPadding to override.
func FixedLength(size int, opts ...FixedLengthOption) (*FixedLengthCodec, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: field size must be non-negative: %w", errs.ErrConfiguration, errs.ErrInvalidFieldSize)
	}

	c := &FixedLengthCodec{textCodec: newTextCodec(), size: size, padding: 0x00}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// FixedLengthOption configures a FixedLengthCodec at construction time.
type FixedLengthOption = options.Option[*FixedLengthCodec]

// WithPadding sets the single padding byte used to fill unused space on
// write. A multi-byte padding is a configuration error.
func WithPadding(padding []byte) FixedLengthOption {
	return options.New(func(c *FixedLengthCodec) error {
		if len(padding) != 1 {
			return fmt.Errorf("%w: %w", errs.ErrConfiguration, errs.ErrMultiBytePadding)
		}
		c.padding = padding[0]
		c.markSpecified("padding")

		return nil
	})
}

// WithEncoding sets the text encoding explicitly, overriding structure
// inheritance.
func WithEncoding(encoding string) FixedLengthOption {
	return options.NoError(func(c *FixedLengthCodec) { c.setEncoding(encoding) })
}

func (c *FixedLengthCodec) Size() Size { return StaticSize(int64(c.size)) }

func (c *FixedLengthCodec) RecognizedOptions() []string {
	return []string{"encoding", "padding"}
}

func (c *FixedLengthCodec) SetOption(name string, value any) error {
	switch name {
	case "encoding":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: encoding option must be a string", errs.ErrConfiguration)
		}
		c.encoding = s
	case "padding":
		p, ok := value.([]byte)
		if !ok || len(p) != 1 {
			return fmt.Errorf("%w: %w", errs.ErrConfiguration, errs.ErrMultiBytePadding)
		}
		c.padding = p[0]
	default:
		return fmt.Errorf("%w: %q", errs.ErrUnknownOption, name)
	}

	return nil
}

func (c *FixedLengthCodec) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s: expected string, got %T", errs.ErrValidation, c.Name(), value)
	}
	encoded, err := c.encode(s)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errs.ErrValidation, c.Name(), err)
	}
	if len(encoded) > c.size {
		return fmt.Errorf("%w: %s: %q encodes to more than %d bytes: %w", errs.ErrValidation, c.Name(), s, c.size, errs.ErrStringTooLong)
	}

	return nil
}

func (c *FixedLengthCodec) Pack(value any) ([]byte, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected string, got %T", errs.ErrValidation, c.Name(), value)
	}
	if err := c.Validate(s); err != nil {
		return nil, err
	}
	encoded, _ := c.encode(s)

	buf := make([]byte, c.size)
	copy(buf, encoded)
	for i := len(encoded); i < c.size; i++ {
		buf[i] = c.padding
	}

	return buf, nil
}

func (c *FixedLengthCodec) Unpack(data []byte) (any, error) {
	return c.decode(data)
}

func (c *FixedLengthCodec) Read(cur cursor.Cursor) (any, int64, error) {
	data, err := cursor.ReadExact(cur, c.size)
	if err != nil {
		return nil, int64(len(data)), fmt.Errorf("%w: %s: %v", errs.ErrDecode, c.Name(), err)
	}
	if len(data) != c.size {
		return nil, int64(len(data)), fmt.Errorf("%w: %s: %w", errs.ErrDecode, c.Name(), errs.ErrUnexpectedEOF)
	}
	v, err := c.Unpack(data)

	return v, int64(c.size), err
}

func (c *FixedLengthCodec) Write(value any, cur cursor.Cursor) (int64, error) {
	packed, err := c.Pack(value)
	if err != nil {
		return 0, err
	}
	n, err := cur.Write(packed)

	return int64(n), err
}

// lengthIndexedCache is the probe cache for LengthIndexedCodec: the
// text length T and the size-field's own byte length L.
type lengthIndexedCache struct {
	textLen int64
	sizeLen int64
}

// LengthIndexedCodec is a text field whose byte length is stored
// alongside it, in an inner integer field (a Pascal string). Its
// reported size is always the *total* bytes consumed, including the
// length prefix itself.
type LengthIndexedCodec struct {
	named
	textCodec
	sizeField *IntegerCodec
}

// LengthIndexed declares a length-prefixed text field; sizeField
// determines how the length prefix itself is encoded.
func LengthIndexed(sizeField *IntegerCodec) *LengthIndexedCodec {
	return &LengthIndexedCodec{textCodec: newTextCodec(), sizeField: sizeField}
}

func (c *LengthIndexedCodec) Size() Size { return DynamicSize() }

func (c *LengthIndexedCodec) SetOption(name string, value any) error {
	if name != "encoding" {
		return fmt.Errorf("%w: %q", errs.ErrUnknownOption, name)
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: encoding option must be a string", errs.ErrConfiguration)
	}
	c.encoding = s

	return nil
}

func (c *LengthIndexedCodec) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s: expected string, got %T", errs.ErrValidation, c.Name(), value)
	}
	if _, err := c.encode(s); err != nil {
		return fmt.Errorf("%w: %s: %v", errs.ErrValidation, c.Name(), err)
	}

	return nil
}

func (c *LengthIndexedCodec) Pack(value any) ([]byte, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected string, got %T", errs.ErrValidation, c.Name(), value)
	}
	encoded, err := c.encode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrValidation, c.Name(), err)
	}
	sizePrefix, err := c.sizeField.Pack(int64(len(encoded)))
	if err != nil {
		return nil, err
	}

	return append(sizePrefix, encoded...), nil
}

func (c *LengthIndexedCodec) Unpack(data []byte) (any, error) {
	return c.decode(data)
}

func (c *LengthIndexedCodec) ProbeSize(cur cursor.Cursor) (int64, any, error) {
	value, sizeLen, err := c.sizeField.Read(cur)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s: %v", errs.ErrDecode, c.Name(), err)
	}
	textLen := value.(int64)

	return sizeLen + textLen, lengthIndexedCache{textLen: textLen, sizeLen: sizeLen}, nil
}

func (c *LengthIndexedCodec) DecodeWithCache(cur cursor.Cursor, cache any) (any, error) {
	lc, ok := cache.(lengthIndexedCache)
	if !ok {
		return nil, fmt.Errorf("%w: %s: wrong cache type %T", errs.ErrDecode, c.Name(), cache)
	}

	if _, err := cur.Seek(cur.Tell() + lc.sizeLen); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrDecode, c.Name(), err)
	}
	data, err := cursor.ReadExact(cur, int(lc.textLen))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrDecode, c.Name(), err)
	}

	return c.decode(data)
}

func (c *LengthIndexedCodec) Read(cur cursor.Cursor) (any, int64, error) {
	start := cur.Tell()
	size, cache, err := c.ProbeSize(cur)
	if err != nil {
		return nil, 0, err
	}
	if _, err := cur.Seek(start); err != nil {
		return nil, 0, err
	}
	v, err := c.DecodeWithCache(cur, cache)

	return v, size, err
}

func (c *LengthIndexedCodec) Write(value any, cur cursor.Cursor) (int64, error) {
	packed, err := c.Pack(value)
	if err != nil {
		return 0, err
	}
	n, err := cur.Write(packed)

	return int64(n), err
}

// terminatedCache is the probe cache for TerminatedCodec: the decoded
// bytes up to (not including) the terminator, and the total bytes
// consumed including it.
type terminatedCache struct {
	encoded []byte
	size    int64
}

// TerminatedCodec is a text field delimited by a single terminator
// byte (a C string). EOF is treated as an implicit terminator of length
// zero.
type TerminatedCodec struct {
	named
	textCodec
	terminator byte
}

// Terminated declares a terminator-delimited text field. terminator
// defaults to a single NUL byte.
func Terminated(opts ...TerminatedOption) (*TerminatedCodec, error) {
	c := &TerminatedCodec{textCodec: newTextCodec(), terminator: 0x00}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// TerminatedOption configures a TerminatedCodec at construction time.
type TerminatedOption = options.Option[*TerminatedCodec]

// WithTerminator sets the single delimiter byte. A multi-byte
// terminator is a configuration error.
func WithTerminator(terminator []byte) TerminatedOption {
	return options.New(func(c *TerminatedCodec) error {
		if len(terminator) != 1 {
			return fmt.Errorf("%w: %w", errs.ErrConfiguration, errs.ErrMultiByteTerminator)
		}
		c.terminator = terminator[0]
		c.markSpecified("terminator")

		return nil
	})
}

// WithTerminatedEncoding sets the text encoding explicitly.
func WithTerminatedEncoding(encoding string) TerminatedOption {
	return options.NoError(func(c *TerminatedCodec) { c.setEncoding(encoding) })
}

func (c *TerminatedCodec) Size() Size { return DynamicSize() }

func (c *TerminatedCodec) RecognizedOptions() []string {
	return []string{"encoding", "terminator"}
}

func (c *TerminatedCodec) SetOption(name string, value any) error {
	switch name {
	case "encoding":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: encoding option must be a string", errs.ErrConfiguration)
		}
		c.encoding = s
	case "terminator":
		t, ok := value.([]byte)
		if !ok || len(t) != 1 {
			return fmt.Errorf("%w: %w", errs.ErrConfiguration, errs.ErrMultiByteTerminator)
		}
		c.terminator = t[0]
	default:
		return fmt.Errorf("%w: %q", errs.ErrUnknownOption, name)
	}

	return nil
}

func (c *TerminatedCodec) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s: expected string, got %T", errs.ErrValidation, c.Name(), value)
	}
	if _, err := c.encode(s); err != nil {
		return fmt.Errorf("%w: %s: %v", errs.ErrValidation, c.Name(), err)
	}

	return nil
}

func (c *TerminatedCodec) Pack(value any) ([]byte, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected string, got %T", errs.ErrValidation, c.Name(), value)
	}
	encoded, err := c.encode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrValidation, c.Name(), err)
	}

	return append(encoded, c.terminator), nil
}

func (c *TerminatedCodec) Unpack(data []byte) (any, error) {
	return c.decode(data)
}

func (c *TerminatedCodec) ProbeSize(cur cursor.Cursor) (int64, any, error) {
	first, err := cursor.ReadByte(cur)
	if err == io.EOF {
		return 0, terminatedCache{}, nil
	}
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s: %v", errs.ErrDecode, c.Name(), err)
	}

	var encoded []byte
	b := first
	for {
		if b == c.terminator {
			size := int64(len(encoded)) + 1
			return size, terminatedCache{encoded: encoded, size: size}, nil
		}
		encoded = append(encoded, b)
		b, err = cursor.ReadByte(cur)
		if err == io.EOF {
			size := int64(len(encoded))
			return size, terminatedCache{encoded: encoded, size: size}, nil
		}
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %s: %v", errs.ErrDecode, c.Name(), err)
		}
	}
}

func (c *TerminatedCodec) DecodeWithCache(cur cursor.Cursor, cache any) (any, error) {
	tc, ok := cache.(terminatedCache)
	if !ok {
		return nil, fmt.Errorf("%w: %s: wrong cache type %T", errs.ErrDecode, c.Name(), cache)
	}
	if _, err := cur.Seek(cur.Tell() + tc.size); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrDecode, c.Name(), err)
	}

	return c.decode(tc.encoded)
}

func (c *TerminatedCodec) Read(cur cursor.Cursor) (any, int64, error) {
	start := cur.Tell()
	size, cache, err := c.ProbeSize(cur)
	if err != nil {
		return nil, 0, err
	}
	if _, err := cur.Seek(start); err != nil {
		return nil, 0, err
	}
	v, err := c.DecodeWithCache(cur, cache)

	return v, size, err
}

func (c *TerminatedCodec) Write(value any, cur cursor.Cursor) (int64, error) {
	packed, err := c.Pack(value)
	if err != nil {
		return 0, err
	}
	n, err := cur.Write(packed)

	return int64(n), err
}

// CString is an alias for Terminated, matching the convenience name
// used by the original library.
func CString(opts ...TerminatedOption) (*TerminatedCodec, error) {
	return Terminated(opts...)
}

// PascalString is an alias for LengthIndexed, matching the convenience
// name used by the original library.
func PascalString(sizeField *IntegerCodec) *LengthIndexedCodec {
	return LengthIndexed(sizeField)
}
