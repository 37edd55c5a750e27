package fields_test

import (
	"testing"

	"github.com/importsteel/steel/cursor"
	"github.com/importsteel/steel/errs"
	"github.com/importsteel/steel/fields"
	"github.com/stretchr/testify/require"
)

func TestFixedLengthRetainsPaddingOnRead(t *testing.T) {
	require := require.New(t)

	c, err := fields.FixedLength(20)
	require.NoError(err)

	packed, err := c.Pack("hi")
	require.NoError(err)
	require.Len(packed, 20)

	buf := cursor.NewBytesCursor(packed)
	value, consumed, err := c.Read(buf)
	require.NoError(err)
	require.Equal(int64(20), consumed)
	require.Equal("hi"+string(make([]byte, 18)), value)
}

func TestFixedLengthRejectsOverlongString(t *testing.T) {
	require := require.New(t)

	c, err := fields.FixedLength(4)
	require.NoError(err)

	require.ErrorIs(c.Validate("toolong"), errs.ErrStringTooLong)
}

func TestFixedLengthCustomPadding(t *testing.T) {
	require := require.New(t)

	c, err := fields.FixedLength(4, fields.WithPadding([]byte{0xff}))
	require.NoError(err)

	packed, err := c.Pack("ab")
	require.NoError(err)
	require.Equal([]byte{'a', 'b', 0xff, 0xff}, packed)
}

func TestLengthIndexedSizeIncludesPrefix(t *testing.T) {
	require := require.New(t)

	sizeField, err := fields.Integer(1, fields.Unsigned)
	require.NoError(err)
	c := fields.LengthIndexed(sizeField)

	packed, err := c.Pack("hello")
	require.NoError(err)
	require.Equal([]byte{5, 'h', 'e', 'l', 'l', 'o'}, packed)

	buf := cursor.NewBytesCursor(packed)
	value, consumed, err := c.Read(buf)
	require.NoError(err)
	require.Equal(int64(6), consumed)
	require.Equal("hello", value)
}

func TestTerminatedEmptyBufferReturnsZero(t *testing.T) {
	require := require.New(t)

	c, err := fields.Terminated()
	require.NoError(err)

	buf := cursor.NewBytesCursor(nil)
	value, consumed, err := c.Read(buf)
	require.NoError(err)
	require.Equal(int64(0), consumed)
	require.Equal("", value)
}

func TestTerminatedOnlyTerminatorReturnsOne(t *testing.T) {
	require := require.New(t)

	c, err := fields.Terminated()
	require.NoError(err)

	buf := cursor.NewBytesCursor([]byte{0x00})
	value, consumed, err := c.Read(buf)
	require.NoError(err)
	require.Equal(int64(1), consumed)
	require.Equal("", value)
}

func TestTerminatedRoundTrip(t *testing.T) {
	require := require.New(t)

	c, err := fields.Terminated()
	require.NoError(err)

	packed, err := c.Pack("one")
	require.NoError(err)
	require.Equal([]byte("one\x00"), packed)

	buf := cursor.NewBytesCursor(packed)
	value, consumed, err := c.Read(buf)
	require.NoError(err)
	require.Equal(int64(4), consumed)
	require.Equal("one", value)
}

func TestCStringAndPascalStringAliases(t *testing.T) {
	require := require.New(t)

	cstr, err := fields.CString()
	require.NoError(err)
	require.IsType(&fields.TerminatedCodec{}, cstr)

	sizeField, err := fields.Integer(1, fields.Unsigned)
	require.NoError(err)
	pstr := fields.PascalString(sizeField)
	require.IsType(&fields.LengthIndexedCodec{}, pstr)
}
