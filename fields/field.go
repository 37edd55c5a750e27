// Package fields implements the codec set every structure field is
// built from: primitive (Integer, Float, Bytes, FixedBytes), text
// (FixedLength, LengthIndexed, Terminated), and composite (Enum, Flags,
// Object) codecs, plus the supplemental UnixTime codec.
package fields

import "github.com/importsteel/steel/cursor"

// Size describes how a field's byte length is determined. A field is
// either statically sized (a fixed, known-in-advance byte count) or
// dynamically sized (its length can only be learned by probing the
// buffer at decode time).
type Size struct {
	dynamic bool
	static  int64
}

// StaticSize builds a Size for a field whose byte length never varies.
func StaticSize(n int64) Size {
	return Size{static: n}
}

// DynamicSize builds a Size for a field whose byte length depends on
// the buffer contents and must be probed.
func DynamicSize() Size {
	return Size{dynamic: true}
}

// IsDynamic reports whether this Size must be probed at decode time.
func (s Size) IsDynamic() bool {
	return s.dynamic
}

// Static returns the fixed byte count. It is only meaningful when
// IsDynamic() is false.
func (s Size) Static() int64 {
	return s.static
}

// Codec is the contract every field type satisfies.
type Codec interface {
	// Name returns the field name assigned by the declaring structure.
	Name() string

	// Size reports whether this field is statically or dynamically sized.
	Size() Size

	// Validate reports whether value satisfies this codec's contract.
	Validate(value any) error

	// Read decodes a value starting at the cursor's current position,
	// returning the value and the number of bytes consumed.
	Read(cur cursor.Cursor) (value any, consumed int64, err error)

	// Write encodes value to the cursor's current position, returning
	// the number of bytes written.
	Write(value any, cur cursor.Cursor) (written int64, err error)

	// Pack encodes value to a standalone byte slice.
	Pack(value any) ([]byte, error)

	// Unpack decodes a standalone byte slice produced by Pack.
	Unpack(data []byte) (any, error)
}

// DynamicCodec is the additional contract a dynamically sized Codec
// must satisfy, so the offset-chain evaluator can learn a field's size
// without fully decoding it, and later reuse that work when it does.
type DynamicCodec interface {
	Codec

	// ProbeSize inspects the buffer starting at the cursor's current
	// position and returns the number of bytes the field occupies,
	// plus an opaque cache payload DecodeWithCache can use to avoid
	// re-scanning.
	ProbeSize(cur cursor.Cursor) (size int64, cache any, err error)

	// DecodeWithCache decodes the field's value using the cache
	// produced by a prior ProbeSize call, avoiding a second scan.
	DecodeWithCache(cur cursor.Cursor, cache any) (any, error)
}

// Configurable is satisfied by codecs that participate in a structure's
// option inheritance: every option the codec recognizes but did not
// have explicitly specified at construction is filled in from the
// structure's option map.
type Configurable interface {
	// RecognizedOptions lists every option name this codec understands.
	RecognizedOptions() []string

	// SpecifiedOptions lists the option names explicitly set at
	// construction, as opposed to left for structure-level inheritance.
	SpecifiedOptions() []string

	// SetOption applies a structure-inherited option. It is only ever
	// called for options in RecognizedOptions() that are absent from
	// SpecifiedOptions().
	SetOption(name string, value any) error
}

// optionTracker is embedded by codecs that support option inheritance.
// It records which recognized options were explicitly specified at
// construction, so Configurable.SetOption is only invoked for the rest.
type optionTracker struct {
	specified map[string]bool
}

func newOptionTracker() optionTracker {
	return optionTracker{specified: make(map[string]bool)}
}

func (t *optionTracker) markSpecified(name string) {
	t.specified[name] = true
}

func (t *optionTracker) isSpecified(name string) bool {
	return t.specified[name]
}

func (t *optionTracker) specifiedNames() []string {
	names := make([]string, 0, len(t.specified))
	for name := range t.specified {
		names = append(names, name)
	}

	return names
}
