package fields_test

import (
	"testing"
	"time"

	"github.com/importsteel/steel/cursor"
	"github.com/importsteel/steel/fields"
	"github.com/stretchr/testify/require"
)

func TestUnixTimeRoundTripSeconds(t *testing.T) {
	require := require.New(t)

	inner, err := fields.Integer(4, fields.Unsigned)
	require.NoError(err)
	c := fields.UnixTime(inner, time.Second)

	at := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	packed, err := c.Pack(at)
	require.NoError(err)

	buf := cursor.NewBytesCursor(packed)
	value, consumed, err := c.Read(buf)
	require.NoError(err)
	require.Equal(int64(4), consumed)
	require.True(at.Equal(value.(time.Time)))
}
