package fields

import (
	"fmt"

	"github.com/importsteel/steel/cursor"
	"github.com/importsteel/steel/errs"
)

// NestedDefinition is satisfied by a compiled structure definition
// (steel.Definition), kept as a narrow consumer interface here so this
// package never imports the root steel package back. ObjectCodec only
// needs to load/dump/validate a nested record; it does not need to know
// anything else about how structures are declared.
type NestedDefinition interface {
	// LoadAt decodes a nested record starting at cur's current
	// position and reports the total number of bytes it occupies.
	LoadAt(cur cursor.Cursor) (value any, size int64, err error)

	// DumpAt encodes a nested record's value at cur's current position.
	DumpAt(value any, cur cursor.Cursor) (size int64, err error)

	// ValidateValue validates a nested record's value.
	ValidateValue(value any) error
}

// ObjectCodec is a field whose value is itself a nested structure
// instance. Its size is dynamic: probing opens an offset-windowed
// sub-cursor, loads the nested structure through it, and reports its
// total size: the offset of its last field plus that field's size. The
// decoded value is cached directly
// as the probe's cache payload, so DecodeWithCache is free: the nested
// structure is only decoded once.
type ObjectCodec struct {
	named
	def NestedDefinition
}

// Object declares a nested-structure field using the given compiled
// definition.
func Object(def NestedDefinition) *ObjectCodec {
	return &ObjectCodec{def: def}
}

func (c *ObjectCodec) Size() Size { return DynamicSize() }

func (c *ObjectCodec) Validate(value any) error {
	if err := c.def.ValidateValue(value); err != nil {
		return fmt.Errorf("%w: %s: %v", errs.ErrValidation, c.Name(), err)
	}

	return nil
}

func (c *ObjectCodec) ProbeSize(cur cursor.Cursor) (int64, any, error) {
	sub := cursor.NewSubCursorAtCurrent(cur)
	value, size, err := c.def.LoadAt(sub)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s: %v", errs.ErrDecode, c.Name(), err)
	}

	return size, value, nil
}

func (c *ObjectCodec) DecodeWithCache(cur cursor.Cursor, cache any) (any, error) {
	return cache, nil
}

func (c *ObjectCodec) Read(cur cursor.Cursor) (any, int64, error) {
	start := cur.Tell()

	// ProbeSize decodes through a sub-cursor that shares cur's
	// underlying position, so cur should already be at start+size once
	// it returns. Seek explicitly instead of trusting that in place, so
	// a future nested codec that doesn't consume its whole window can't
	// silently misposition the parent cursor.
	size, cache, err := c.ProbeSize(cur)
	if err != nil {
		return nil, 0, err
	}
	if _, err := cur.Seek(start + size); err != nil {
		return nil, 0, err
	}
	v, err := c.DecodeWithCache(cur, cache)

	return v, size, err
}

func (c *ObjectCodec) Write(value any, cur cursor.Cursor) (int64, error) {
	if err := c.Validate(value); err != nil {
		return 0, err
	}
	sub := cursor.NewSubCursorAtCurrent(cur)
	size, err := c.def.DumpAt(value, sub)
	if err != nil {
		return 0, err
	}

	return size, nil
}

func (c *ObjectCodec) Pack(value any) ([]byte, error) {
	bc := cursor.NewBytesCursor(nil)
	if _, err := c.Write(value, bc); err != nil {
		return nil, err
	}

	return bc.Bytes(), nil
}

func (c *ObjectCodec) Unpack(data []byte) (any, error) {
	bc := cursor.NewBytesCursor(data)
	v, _, err := c.Read(bc)

	return v, err
}
