package outline

// Shape is the chapter form a node represents.
type Shape int

const (
	// ShapeEmpty marks a node with no chapter interpretation.
	ShapeEmpty Shape = iota
	// ShapeString is a bare string: a file reference or a title.
	ShapeString
	// ShapeRecord is a mapping with chapter fields.
	ShapeRecord
)

func (s Shape) String() string {
	switch s {
	case ShapeString:
		return "string"
	case ShapeRecord:
		return "record"
	default:
		return "empty"
	}
}

// Classify determines the chapter shape of n.
func Classify(n Node) Shape {
	switch n.(type) {
	case String:
		return ShapeString
	case Mapping:
		return ShapeRecord
	case Array, Integer, Real, Boolean, Null, Invalid:
		return ShapeEmpty
	default:
		return ShapeEmpty
	}
}

// kindName describes a node variant for diagnostics.
func kindName(n Node) string {
	switch n.(type) {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Boolean:
		return "boolean"
	case Null:
		return "null"
	case Invalid:
		return "invalid"
	case Array:
		return "array"
	case Mapping:
		return "mapping"
	case nil:
		return "missing"
	default:
		return "unknown"
	}
}
