package steel_test

import (
	"testing"

	steel "github.com/importsteel/steel"
	"github.com/importsteel/steel/errs"
	"github.com/importsteel/steel/fields"
	"github.com/stretchr/testify/require"
)

// Scenario 1: static layout.
func TestStaticLayoutValues(t *testing.T) {
	require := require.New(t)

	a, errA := fields.Integer(1, fields.Unsigned)
	b, errB := fields.Integer(2, fields.Unsigned)
	c, errC := fields.Integer(4, fields.Unsigned)
	d, errD := fields.Integer(8, fields.Unsigned)
	require.NoError(errA)
	require.NoError(errB)
	require.NoError(errC)
	require.NoError(errD)

	def, err := steel.Declare("Static", steel.Options{"endianness": leEngine()},
		steel.Field("a", a),
		steel.Field("b", b),
		steel.Field("c", c),
		steel.Field("d", d),
	)
	require.NoError(err)

	data := []byte{
		0x01,
		0x02, 0x00,
		0x03, 0x00, 0x00, 0x00,
		0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	rec, err := def.Loads(data)
	require.NoError(err)

	require.Equal(int64(1), rec.MustGet("a"))
	require.Equal(int64(2), rec.MustGet("b"))
	require.Equal(int64(3), rec.MustGet("c"))
	require.Equal(int64(4), rec.MustGet("d"))
}

// Scenario 2: mixed static/dynamic layout, checked via the behavior the
// offset chain produces (Load resolves every field through it) rather
// than by inspecting chain internals directly.
func TestMixedLayoutResolvesAllFields(t *testing.T) {
	require := require.New(t)

	aCodec, err := fields.Integer(2, fields.Unsigned, fields.WithIntegerEndian(leEngine()))
	require.NoError(err)
	sizeField, err := fields.Integer(1, fields.Unsigned)
	require.NoError(err)
	cCodec, err := fields.Integer(4, fields.Unsigned, fields.WithIntegerEndian(leEngine()))
	require.NoError(err)
	dCodec, err := fields.Integer(2, fields.Unsigned, fields.WithIntegerEndian(leEngine()))
	require.NoError(err)
	eCodec, err := fields.Terminated()
	require.NoError(err)
	fCodec, err := fields.Integer(2, fields.Unsigned, fields.WithIntegerEndian(leEngine()))
	require.NoError(err)
	gCodec, err := fields.Integer(4, fields.Unsigned, fields.WithIntegerEndian(leEngine()))
	require.NoError(err)

	def, err := steel.Declare("Mixed", nil,
		steel.Field("a", aCodec),
		steel.Field("b", fields.LengthIndexed(sizeField)),
		steel.Field("c", cCodec),
		steel.Field("d", dCodec),
		steel.Field("e", eCodec),
		steel.Field("f", fCodec),
		steel.Field("g", gCodec),
	)
	require.NoError(err)

	values := map[string]any{
		"a": int64(11),
		"b": "hi",
		"c": int64(22),
		"d": int64(33),
		"e": "bye",
		"f": int64(44),
		"g": int64(55),
	}
	rec, err := def.New(values)
	require.NoError(err)
	data, err := rec.Dumps()
	require.NoError(err)

	loaded, err := def.Loads(data)
	require.NoError(err)
	for name, want := range values {
		got, err := loaded.Get(name)
		require.NoError(err)
		require.Equal(want, got, "field %s", name)
	}
}

// Scenario 3: eager round trip.
func TestEagerRoundTrip(t *testing.T) {
	require := require.New(t)

	integer, err := fields.Integer(1, fields.Unsigned)
	require.NoError(err)
	str, err := fields.Terminated()
	require.NoError(err)

	def, err := steel.Declare("Eager", nil,
		steel.Field("integer", integer),
		steel.Field("string", str),
	)
	require.NoError(err)

	rec, err := def.New(map[string]any{"integer": int64(1), "string": "one"})
	require.NoError(err)
	data, err := rec.Dumps()
	require.NoError(err)
	require.Equal([]byte("\x01one\x00"), data)

	loaded, err := def.Loads(data)
	require.NoError(err)
	require.Equal(int64(1), loaded.MustGet("integer"))
	require.Equal("one", loaded.MustGet("string"))
}

// Scenario 4: nested structures, including the field that follows the
// nested record.
func TestNestedStructures(t *testing.T) {
	require := require.New(t)

	title, err := fields.Terminated()
	require.NoError(err)
	major, err := fields.Integer(1, fields.Unsigned)
	require.NoError(err)
	minor, err := fields.Integer(1, fields.Unsigned)
	require.NoError(err)

	metaDef, err := steel.Declare("Meta", nil,
		steel.Field("title", title),
		steel.Field("major", major),
		steel.Field("minor", minor),
	)
	require.NoError(err)

	tag := fields.FixedBytes([]byte("STEEL"))
	data, err := fields.Bytes(5)
	require.NoError(err)

	def, err := steel.Declare("Outer", nil,
		steel.Field("tag", tag),
		steel.Field("metadata", fields.Object(metaDef)),
		steel.Field("data", data),
	)
	require.NoError(err)

	buf := append([]byte("STEELExample"), 0x00, 0x01, 0x05, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e)
	rec, err := def.Loads(buf)
	require.NoError(err)

	require.Equal([]byte("STEEL"), rec.MustGet("tag"))
	metadata := rec.MustGet("metadata").(*steel.Record)
	require.Equal("Example", metadata.MustGet("title"))
	require.Equal(int64(1), metadata.MustGet("major"))
	require.Equal(int64(5), metadata.MustGet("minor"))
	require.Equal([]byte{0x0a, 0x0b, 0x0c, 0x0d, 0x0e}, rec.MustGet("data"))
}

// Scenario 5: validation failure propagation.
func TestValidationFailurePropagation(t *testing.T) {
	require := require.New(t)

	magic := fields.FixedBytes([]byte("TEST"))
	def, err := steel.Declare("Magic", nil, steel.Field("magic", magic))
	require.NoError(err)

	rec, err := def.New(map[string]any{"magic": []byte("FAIL")})
	require.NoError(err)

	err = rec.Validate()
	require.ErrorIs(err, errs.ErrValidation)
	require.ErrorIs(err, errs.ErrFixedBytesMismatch)
}

// Scenario 6: option inheritance.
func TestOptionInheritance(t *testing.T) {
	require := require.New(t)

	inherits, err := fields.FixedLength(1)
	require.NoError(err)
	overridesPadding, err := fields.FixedLength(1, fields.WithPadding([]byte{0x00}))
	require.NoError(err)
	overridesEncoding, err := fields.FixedLength(1, fields.WithEncoding("ascii"))
	require.NoError(err)
	overridesBoth, err := fields.FixedLength(1, fields.WithPadding([]byte{0x00}), fields.WithEncoding("ascii"))
	require.NoError(err)

	_, err = steel.Declare("Options", steel.Options{"padding": []byte{0xff}},
		steel.Field("inherits", inherits),
		steel.Field("overridesPadding", overridesPadding),
		steel.Field("overridesEncoding", overridesEncoding),
		steel.Field("overridesBoth", overridesBoth),
	)
	require.NoError(err)

	packedInherit, err := inherits.Pack("")
	require.NoError(err)
	require.Equal([]byte{0xff}, packedInherit)

	packedOverride, err := overridesPadding.Pack("")
	require.NoError(err)
	require.Equal([]byte{0x00}, packedOverride)

	packedEncodingOnly, err := overridesEncoding.Pack("")
	require.NoError(err)
	require.Equal([]byte{0xff}, packedEncodingOnly)

	packedBoth, err := overridesBoth.Pack("")
	require.NoError(err)
	require.Equal([]byte{0x00}, packedBoth)
}

func TestDeclareRejectsDuplicateFieldNames(t *testing.T) {
	a, err := fields.Integer(1, fields.Unsigned)
	require.NoError(t, err)
	b, err := fields.Integer(1, fields.Unsigned)
	require.NoError(t, err)

	_, err = steel.Declare("Dup", nil, steel.Field("a", a), steel.Field("a", b))
	require.ErrorIs(t, err, errs.ErrDuplicateField)
}

func TestSizeOnWorksForDynamicRecord(t *testing.T) {
	require := require.New(t)

	str, err := fields.Terminated()
	require.NoError(err)
	def, err := steel.Declare("Sized", nil, steel.Field("s", str))
	require.NoError(err)

	rec, err := def.New(map[string]any{"s": "abc"})
	require.NoError(err)
	buf, err := rec.Dumps()
	require.NoError(err)

	loaded, err := def.Load(cursorFromBytes(buf))
	require.NoError(err)
	size, err := loaded.SizeOn(cursorFromBytes(buf))
	require.NoError(err)
	require.Equal(int64(4), size)
}
