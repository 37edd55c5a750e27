// Package steel declares binary record structures as an ordered list of
// named fields and compiles them into offset chains that support both
// eager decode and lazy, cursor-bound random field access.
package steel

import (
	"fmt"

	"github.com/importsteel/steel/cursor"
	"github.com/importsteel/steel/errs"
	"github.com/importsteel/steel/fields"
	"github.com/importsteel/steel/internal/fieldindex"
	"github.com/importsteel/steel/internal/logging"
	"go.uber.org/zap"
)

// fieldEntry pairs a declared field's name with its codec, indexed by
// the field's dense position in declaration order.
type fieldEntry struct {
	name  string
	codec fields.Codec
}

// Definition is a compiled structure: an ordered field list, its
// offset chains, and the option-inheritance snapshot fixed at
// declaration time. Its fields, chains and inherited options do not
// change after Declare returns; WithLogger is the one method that
// modifies a Definition. Reading a Definition is safe for concurrent use
// by multiple Records.
type Definition struct {
	name    string
	entries []fieldEntry
	index   *fieldindex.Table
	chains  []chain
	logger  *zap.Logger
}

// Declare builds a Definition from an ordered list of field
// specifications. opts supplies structure-level values for option
// inheritance: any field whose codec recognizes an option it did not
// specify explicitly at construction inherits the structure's value
// for that option.
func Declare(name string, opts Options, specs ...FieldSpec) (*Definition, error) {
	names := make([]string, len(specs))
	entries := make([]fieldEntry, len(specs))
	for i, spec := range specs {
		names[i] = spec.name
		entries[i] = fieldEntry{name: spec.name, codec: spec.codec}
		if nameable, ok := spec.codec.(fields.Nameable); ok {
			nameable.SetName(spec.name)
		}
	}

	index, ok := fieldindex.NewTable(names)
	if !ok {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrConfiguration, name, errs.ErrDuplicateField)
	}

	for _, entry := range entries {
		if err := inheritOptions(entry.codec, opts); err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %v", errs.ErrConfiguration, name, entry.name, err)
		}
	}

	def := &Definition{
		name:    name,
		entries: entries,
		index:   index,
		chains:  compileChains(entries),
	}

	return def, nil
}

// inheritOptions applies opts to codec for every option codec
// recognizes but did not have explicitly specified at construction.
// Fields' explicit options always win.
func inheritOptions(codec fields.Codec, opts Options) error {
	configurable, ok := codec.(fields.Configurable)
	if !ok {
		return nil
	}

	specified := make(map[string]bool, len(configurable.SpecifiedOptions()))
	for _, name := range configurable.SpecifiedOptions() {
		specified[name] = true
	}

	for _, name := range configurable.RecognizedOptions() {
		if specified[name] {
			continue
		}
		value, ok := opts[name]
		if !ok {
			continue
		}
		if err := configurable.SetOption(name, value); err != nil {
			return err
		}
	}

	return nil
}

// WithLogger attaches a structured logger for decode diagnostics: Load
// emits one debug entry per record it loads. By default a Definition
// logs nothing.
func (d *Definition) WithLogger(logger *zap.Logger) *Definition {
	d.logger = logger

	return d
}

// Name returns the structure's declared name.
func (d *Definition) Name() string {
	return d.name
}

func (d *Definition) fieldIndex(name string) (int, error) {
	idx, ok := d.index.Index(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", errs.ErrMissingField, d.name, name)
	}

	return idx, nil
}

// New builds an unbound Record from a set of field values, suitable
// for later Dump/Dumps. Every key in values must name a declared field.
func (d *Definition) New(values map[string]any) (*Record, error) {
	rec := &Record{def: d, shadow: make(map[int]any, len(values))}
	for name, value := range values {
		idx, err := d.fieldIndex(name)
		if err != nil {
			return nil, err
		}
		rec.shadow[idx] = value
	}

	return rec, nil
}

// Load decodes a Record from cur, reading fields in declaration order
// through the offset-chain evaluator. The returned Record stays bound
// to cur, so a later lazy Get for a field not touched during Load
// still resolves correctly.
func (d *Definition) Load(cur cursor.Cursor) (*Record, error) {
	state := newInstanceState(d, cur)
	rec := &Record{def: d, shadow: make(map[int]any, len(d.entries)), state: state}

	for idx, entry := range d.entries {
		value, err := state.valueOf(idx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %v", errs.ErrDecode, d.name, entry.name, err)
		}
		rec.shadow[idx] = value
	}
	logging.Debug(d.logger, "loaded record", zap.String("structure", d.name))

	return rec, nil
}

// Loads decodes a Record from an in-memory byte slice.
func (d *Definition) Loads(data []byte) (*Record, error) {
	return d.Load(cursor.NewBytesCursor(data))
}

// LoadAt implements fields.NestedDefinition, so a Definition can be
// used directly as the target of fields.Object. It loads the nested
// record and reports the total bytes it occupies: the last field's
// offset plus its size.
func (d *Definition) LoadAt(cur cursor.Cursor) (any, int64, error) {
	rec, err := d.Load(cur)
	if err != nil {
		return nil, 0, err
	}
	size, err := rec.SizeOn(cur)
	if err != nil {
		return nil, 0, err
	}

	return rec, size, nil
}

// DumpAt implements fields.NestedDefinition.
func (d *Definition) DumpAt(value any, cur cursor.Cursor) (int64, error) {
	rec, ok := value.(*Record)
	if !ok || rec.def != d {
		return 0, fmt.Errorf("%w: %s: expected *steel.Record for nested structure, got %T", errs.ErrValidation, d.name, value)
	}

	return rec.Dump(cur)
}

// ValidateValue implements fields.NestedDefinition.
func (d *Definition) ValidateValue(value any) error {
	rec, ok := value.(*Record)
	if !ok || rec.def != d {
		return fmt.Errorf("%w: %s: expected *steel.Record for nested structure, got %T", errs.ErrValidation, d.name, value)
	}

	return rec.Validate()
}

// Record is an instance of a Definition: either freshly constructed
// from values (New), or decoded from a buffer (Load). Instances carry
// no internal synchronization and require external serialization for
// concurrent access.
type Record struct {
	def    *Definition
	shadow map[int]any
	state  *instanceState
}

// Get resolves a field's current value. An instance-assigned (shadow)
// value always wins; otherwise, if the record is cursor-bound, the
// state evaluator resolves and caches it; otherwise the field is
// unassigned and Get fails with ErrMissingField.
func (r *Record) Get(name string) (any, error) {
	idx, err := r.def.fieldIndex(name)
	if err != nil {
		return nil, err
	}
	if value, ok := r.shadow[idx]; ok {
		return value, nil
	}
	if r.state == nil {
		return nil, fmt.Errorf("%w: %s.%s", errs.ErrMissingField, r.def.name, name)
	}

	value, err := r.state.valueOf(idx)
	if err != nil {
		return nil, err
	}
	r.shadow[idx] = value

	return value, nil
}

// MustGet resolves a field's value like Get, panicking on error. It is
// intended for call sites that have already validated the record.
func (r *Record) MustGet(name string) any {
	value, err := r.Get(name)
	if err != nil {
		panic(err)
	}

	return value
}

// Set assigns a field's value on this instance, overriding whatever
// the state evaluator would otherwise resolve.
func (r *Record) Set(name string, value any) error {
	idx, err := r.def.fieldIndex(name)
	if err != nil {
		return err
	}
	r.shadow[idx] = value

	return nil
}

// Validate calls every field's codec validator against its currently
// assigned value, failing with ErrMissingField if any field has none
// assigned.
func (r *Record) Validate() error {
	for idx, entry := range r.def.entries {
		value, ok := r.shadow[idx]
		if !ok {
			return fmt.Errorf("%w: %s.%s: %w", errs.ErrValidation, r.def.name, entry.name, errs.ErrMissingField)
		}
		if err := entry.codec.Validate(value); err != nil {
			return err
		}
	}

	return nil
}

// Dump encodes every field's value to cur in declaration order,
// returning the total bytes written. Dump does not call Validate
// first; callers that need the "validate before dump" guarantee
// should call Validate explicitly.
func (r *Record) Dump(cur cursor.Cursor) (int, error) {
	var total int
	for idx, entry := range r.def.entries {
		value, ok := r.shadow[idx]
		if !ok {
			return total, fmt.Errorf("%w: %s.%s", errs.ErrMissingField, r.def.name, entry.name)
		}
		n, err := entry.codec.Write(value, cur)
		if err != nil {
			return total, fmt.Errorf("%w: %s.%s: %v", errs.ErrValidation, r.def.name, entry.name, err)
		}
		total += int(n)
	}

	return total, nil
}

// Dumps encodes the record to a fresh in-memory byte slice.
func (r *Record) Dumps() ([]byte, error) {
	bc := cursor.NewBytesCursor(nil)
	if _, err := r.Dump(bc); err != nil {
		return nil, err
	}

	return bc.Bytes(), nil
}

// SizeOn resolves the total byte size the record occupies on cur: the
// last field's offset plus its size, through the same offset-chain
// evaluator Load and lazy Get use. This works identically for
// statically and dynamically sized records without a separate code
// path. If cur is the same cursor the record was already loaded from,
// the previously memoized offsets and sizes are reused instead of
// probing the buffer again.
func (r *Record) SizeOn(cur cursor.Cursor) (int64, error) {
	if len(r.def.entries) == 0 {
		return 0, nil
	}

	state := r.state
	if state == nil || state.cur != cur {
		state = newInstanceState(r.def, cur)
	}

	last := len(r.def.entries) - 1
	offset, err := state.offsetOf(last)
	if err != nil {
		return 0, err
	}
	size, err := state.sizeOf(last)
	if err != nil {
		return 0, err
	}

	return offset + size, nil
}
