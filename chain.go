package steel

// stepKind distinguishes a static byte-count step from a reference to
// another field's dynamic probe.
type stepKind int

const (
	stepStatic stepKind = iota
	stepProbe
)

// step is one entry in a field's offset chain: either a fixed number of
// bytes to add, or a reference to the field whose probed size must be
// added.
type step struct {
	kind   stepKind
	static int64
	field  int
}

// chain is the full list of steps whose sum is a field's starting
// offset in any conforming buffer.
type chain []step

// compileChains builds the offset chain for every field in declaration
// order. Chains are shared prefixes: each field's chain reuses the
// accumulated structure chain built from every dynamic field that came
// before it, so evaluating field N for the first time reuses every
// probe result already memoized for earlier fields.
func compileChains(entries []fieldEntry) []chain {
	chains := make([]chain, len(entries))

	var structureChain chain
	var currentStatic int64

	for i, entry := range entries {
		fieldChain := make(chain, len(structureChain), len(structureChain)+1)
		copy(fieldChain, structureChain)
		if len(structureChain) == 0 || currentStatic > 0 {
			fieldChain = append(fieldChain, step{kind: stepStatic, static: currentStatic})
		}
		chains[i] = fieldChain

		size := entry.codec.Size()
		if size.IsDynamic() {
			if currentStatic > 0 {
				structureChain = append(structureChain, step{kind: stepStatic, static: currentStatic})
				currentStatic = 0
			}
			structureChain = append(structureChain, step{kind: stepProbe, field: i})
		} else {
			currentStatic += size.Static()
		}
	}

	return chains
}
