package steel

import "github.com/importsteel/steel/fields"

// Options carries structure-level values for option inheritance: any
// field whose codec recognizes an option it did not specify explicitly
// inherits the structure's value for that option.
type Options map[string]any

// FieldSpec pairs a declared field name with its codec, the unit
// steel.Declare accepts in source order.
type FieldSpec struct {
	name  string
	codec fields.Codec
}

// Field declares a named field for use with Declare.
func Field(name string, codec fields.Codec) FieldSpec {
	return FieldSpec{name: name, codec: codec}
}
