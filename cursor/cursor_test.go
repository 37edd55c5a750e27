package cursor_test

import (
	"io"
	"os"
	"testing"

	"github.com/importsteel/steel/cursor"
	"github.com/stretchr/testify/require"
)

func TestBytesCursorReadWriteSeek(t *testing.T) {
	require := require.New(t)

	c := cursor.NewBytesCursor([]byte("hello world"))
	require.True(c.Readable())
	require.True(c.Writable())
	require.True(c.Seekable())

	data, err := cursor.ReadExact(c, 5)
	require.NoError(err)
	require.Equal("hello", string(data))
	require.Equal(int64(5), c.Tell())

	_, err = c.Seek(6)
	require.NoError(err)
	data, err = cursor.ReadExact(c, 5)
	require.NoError(err)
	require.Equal("world", string(data))

	_, err = c.Seek(0)
	require.NoError(err)
	n, err := c.Write([]byte("HELLO"))
	require.NoError(err)
	require.Equal(5, n)
	require.Equal("HELLO world", string(c.Bytes()))
}

func TestBytesCursorWriteGrowsBuffer(t *testing.T) {
	require := require.New(t)

	c := cursor.NewBytesCursor(nil)
	_, err := c.Seek(2)
	require.NoError(err)
	_, err = c.Write([]byte("ab"))
	require.NoError(err)
	require.Equal([]byte{0, 0, 'a', 'b'}, c.Bytes())
}

func TestBytesCursorReadPastEndReturnsEOF(t *testing.T) {
	require := require.New(t)

	c := cursor.NewBytesCursor([]byte("ab"))
	_, err := c.Seek(2)
	require.NoError(err)
	_, err = cursor.ReadByte(c)
	require.ErrorIs(err, io.EOF)
}

func TestFileCursorReadWriteSeek(t *testing.T) {
	require := require.New(t)

	f, err := os.CreateTemp(t.TempDir(), "steel-cursor-*")
	require.NoError(err)
	defer f.Close()

	c := cursor.NewFileCursor(f)
	n, err := c.Write([]byte("abcdef"))
	require.NoError(err)
	require.Equal(6, n)

	_, err = c.Seek(2)
	require.NoError(err)
	data, err := cursor.ReadExact(c, 3)
	require.NoError(err)
	require.Equal("cde", string(data))
}

func TestReaderCursorNotSeekable(t *testing.T) {
	require := require.New(t)

	c := cursor.NewReaderCursor(nil)
	require.False(c.Readable())
	require.False(c.Seekable())
	_, err := c.Seek(0)
	require.Error(err)
}

func TestSubCursorTranslatesOffsets(t *testing.T) {
	require := require.New(t)

	parent := cursor.NewBytesCursor([]byte("0123456789"))
	_, err := parent.Seek(4)
	require.NoError(err)

	sub := cursor.NewSubCursorAtCurrent(parent)
	require.Equal(int64(0), sub.Tell())

	data, err := cursor.ReadExact(sub, 2)
	require.NoError(err)
	require.Equal("45", string(data))
	require.Equal(int64(2), sub.Tell())
	require.Equal(int64(6), parent.Tell())

	_, err = sub.Seek(0)
	require.NoError(err)
	require.Equal(int64(4), parent.Tell())
}
