package steel_test

import (
	"github.com/importsteel/steel/cursor"
	"github.com/importsteel/steel/endian"
)

func leEngine() endian.EndianEngine {
	return endian.GetLittleEndianEngine()
}

func cursorFromBytes(data []byte) *cursor.BytesCursor {
	return cursor.NewBytesCursor(data)
}
