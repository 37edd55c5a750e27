package fields

// named is embedded by every concrete codec to provide the Name()
// accessor required by Codec. The declaring structure assigns the name
// via SetName when the field is registered; user code never calls it.
type named struct {
	name string
}

func (n *named) Name() string {
	return n.name
}

// SetName assigns the field's name. Satisfied by every codec in this
// package via the embedded named struct.
func (n *named) SetName(name string) {
	n.name = name
}

// Nameable is satisfied by every codec in this package. The declaring
// structure uses it to assign each field's attribute name at
// declaration time.
type Nameable interface {
	SetName(name string)
}
