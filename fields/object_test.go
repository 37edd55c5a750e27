package fields_test

import (
	"errors"
	"testing"

	"github.com/importsteel/steel/cursor"
	"github.com/importsteel/steel/fields"
	"github.com/stretchr/testify/require"
)

var errUnexpectedType = errors.New("unexpected value type")

// fakeDefinition is a minimal fields.NestedDefinition stand-in so this
// package can test ObjectCodec without depending on the root steel
// package (which would create an import cycle). It decodes a
// fixed-width pair of bytes into a two-element []byte{major, minor}.
type fakeDefinition struct{}

func (fakeDefinition) LoadAt(cur cursor.Cursor) (any, int64, error) {
	data, err := cursor.ReadExact(cur, 2)
	if err != nil {
		return nil, int64(len(data)), err
	}

	return data, 2, nil
}

func (fakeDefinition) DumpAt(value any, cur cursor.Cursor) (int64, error) {
	n, err := cur.Write(value.([]byte))

	return int64(n), err
}

func (fakeDefinition) ValidateValue(value any) error {
	_, ok := value.([]byte)
	if !ok {
		return errUnexpectedType
	}

	return nil
}

func TestObjectReadAdvancesParentCursorBySize(t *testing.T) {
	require := require.New(t)

	obj := fields.Object(fakeDefinition{})

	buf := cursor.NewBytesCursor([]byte{0xaa, 0xbb, 0xcc, 0xdd})
	value, size, err := obj.Read(buf)
	require.NoError(err)
	require.Equal(int64(2), size)
	require.Equal([]byte{0xaa, 0xbb}, value)
	require.Equal(int64(2), buf.Tell())

	next, err := cursor.ReadByte(buf)
	require.NoError(err)
	require.Equal(byte(0xcc), next)
}

func TestObjectWriteAdvancesParentCursorBySize(t *testing.T) {
	require := require.New(t)

	obj := fields.Object(fakeDefinition{})

	buf := cursor.NewBytesCursor(nil)
	n, err := obj.Write([]byte{0x01, 0x02}, buf)
	require.NoError(err)
	require.Equal(int64(2), n)
	require.Equal(int64(2), buf.Tell())
	require.Equal([]byte{0x01, 0x02}, buf.Bytes())
}
