package steel

import (
	"fmt"

	"github.com/importsteel/steel/cursor"
	"github.com/importsteel/steel/errs"
	"github.com/importsteel/steel/fields"
)

// instanceState is the per-record memoization evaluator. It resolves a
// field's offset and value by walking the field's compiled chain,
// seeking the cursor only when a step's result is not already cached,
// and storing every probe's (size, cache) pair so a later field that
// shares the same dynamic dependency never re-probes it.
//
// Accesses are serialized per instance: a Record never shares its state
// with another goroutine, so no internal locking is needed here.
type instanceState struct {
	def *Definition
	cur cursor.Cursor

	offsets map[int]int64
	sizes   map[int]int64
	caches  map[int]any
}

func newInstanceState(def *Definition, cur cursor.Cursor) *instanceState {
	return &instanceState{
		def:     def,
		cur:     cur,
		offsets: make(map[int]int64),
		sizes:   make(map[int]int64),
		caches:  make(map[int]any),
	}
}

// offsetOf resolves field idx's starting offset, probing any dynamic
// field referenced by its chain that has not already been probed.
func (s *instanceState) offsetOf(idx int) (int64, error) {
	if off, ok := s.offsets[idx]; ok {
		return off, nil
	}

	var acc int64
	for _, st := range s.def.chains[idx] {
		switch st.kind {
		case stepStatic:
			acc += st.static
		case stepProbe:
			size, err := s.probe(st.field, acc)
			if err != nil {
				return 0, err
			}
			acc += size
		}
	}

	s.offsets[idx] = acc

	return acc, nil
}

// probe returns field idx's size, probing it at the given absolute
// offset if it has not been probed yet.
func (s *instanceState) probe(idx int, offset int64) (int64, error) {
	if size, ok := s.sizes[idx]; ok {
		return size, nil
	}

	entry := s.def.entries[idx]
	dc, ok := entry.codec.(fields.DynamicCodec)
	if !ok {
		return 0, fmt.Errorf("%w: %s: dynamically-sized field must implement ProbeSize", errs.ErrConfiguration, entry.name)
	}
	if _, err := s.cur.Seek(offset); err != nil {
		return 0, err
	}
	size, cache, err := dc.ProbeSize(s.cur)
	if err != nil {
		return 0, err
	}

	s.sizes[idx] = size
	s.caches[idx] = cache

	return size, nil
}

// sizeOf resolves field idx's byte size, probing it in place if it is
// dynamic and has not already been probed by an earlier offsetOf call.
func (s *instanceState) sizeOf(idx int) (int64, error) {
	if size, ok := s.sizes[idx]; ok {
		return size, nil
	}

	entry := s.def.entries[idx]
	sizeDesc := entry.codec.Size()
	if !sizeDesc.IsDynamic() {
		size := sizeDesc.Static()
		s.sizes[idx] = size

		return size, nil
	}

	offset, err := s.offsetOf(idx)
	if err != nil {
		return 0, err
	}

	return s.probe(idx, offset)
}

// valueOf resolves field idx's offset and decodes its value, reusing a
// prior probe's cache when one exists instead of scanning the buffer a
// second time.
func (s *instanceState) valueOf(idx int) (any, error) {
	offset, err := s.offsetOf(idx)
	if err != nil {
		return nil, err
	}
	if _, err := s.cur.Seek(offset); err != nil {
		return nil, err
	}

	entry := s.def.entries[idx]
	if cache, ok := s.caches[idx]; ok {
		dc, ok := entry.codec.(fields.DynamicCodec)
		if !ok {
			return nil, fmt.Errorf("%w: %s: cached probe but codec cannot decode with cache", errs.ErrConfiguration, entry.name)
		}

		return dc.DecodeWithCache(s.cur, cache)
	}

	value, consumed, err := entry.codec.Read(s.cur)
	if err != nil {
		return nil, err
	}
	s.sizes[idx] = consumed

	return value, nil
}
