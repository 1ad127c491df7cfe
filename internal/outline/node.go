package outline

// Node is a generic value produced by a markup parser. The set of variants is
// closed: String, Integer, Real, Boolean, Null, Invalid, Array and Mapping.
type Node interface {
	node()
}

// String is a scalar text value.
type String string

// Integer is a scalar integer value.
type Integer int64

// Real is a scalar floating point value.
type Real float64

// Boolean is a scalar boolean value.
type Boolean bool

// Null is an explicit null.
type Null struct{}

// Invalid marks a value the parser could not represent (bad tag, overflow, ...).
type Invalid struct {
	Reason string
}

// Array is an ordered sequence of nodes.
type Array []Node

// Pair is one entry of a Mapping.
type Pair struct {
	Key   Node
	Value Node
}

// Mapping is an ordered collection of key/value pairs. Keys are not
// guaranteed to be unique.
type Mapping []Pair

func (String) node()  {}
func (Integer) node() {}
func (Real) node()    {}
func (Boolean) node() {}
func (Null) node()    {}
func (Invalid) node() {}
func (Array) node()   {}
func (Mapping) node() {}

// Lookup returns the value stored under a string key. When the key occurs
// more than once the last occurrence wins.
func (m Mapping) Lookup(key string) (Node, bool) {
	var (
		found Node
		ok    bool
	)
	for _, p := range m {
		if k, isStr := p.Key.(String); isStr && string(k) == key {
			found, ok = p.Value, true
		}
	}
	return found, ok
}
