package ir

type TypeKind string

const (
	NonNull     TypeKind = "NON_NULL"
	List        TypeKind = "LIST"
	Scalar      TypeKind = "SCALAR"
	Enum        TypeKind = "ENUM"
	Object      TypeKind = "OBJECT"
	Interface   TypeKind = "INTERFACE"
	Union       TypeKind = "UNION"
	InputObject TypeKind = "INPUT_OBJECT"
)

// TypeRef is a resolved field or variable type. Wrappers (NON_NULL, LIST)
// point to the wrapped type through OfType; named kinds carry Name.
type TypeRef struct {
	Kind   TypeKind `json:"kind"`
	Name   string   `json:"name,omitempty"`
	OfType *TypeRef `json:"ofType,omitempty"`
}

func NonNullOf(t *TypeRef) *TypeRef { return &TypeRef{Kind: NonNull, OfType: t} }

func ListOf(t *TypeRef) *TypeRef { return &TypeRef{Kind: List, OfType: t} }

func NamedOf(kind TypeKind, name string) *TypeRef { return &TypeRef{Kind: kind, Name: name} }

func (t *TypeRef) NonNull() bool { return t.Kind == NonNull }

func (t *TypeRef) Nullable() bool { return t.Kind != NonNull }

// Unwrap strips a NON_NULL wrapper if present.
func (t *TypeRef) Unwrap() *TypeRef {
	if t.Kind == NonNull {
		return t.OfType
	}
	return t
}

func (t *TypeRef) IsList() bool { return t.Unwrap().Kind == List }

// ListDepth counts LIST wrappers between t and its named type.
func (t *TypeRef) ListDepth() int {
	depth := 0
	for cur := t; cur != nil; cur = cur.OfType {
		if cur.Kind == List {
			depth++
		}
	}
	return depth
}

// Named returns the innermost named type.
func (t *TypeRef) Named() *TypeRef {
	cur := t
	for cur.OfType != nil {
		cur = cur.OfType
	}
	return cur
}

// IsLeaf reports whether the named type is a scalar or an enum.
func (t *TypeRef) IsLeaf() bool {
	switch t.Named().Kind {
	case Scalar, Enum:
		return true
	default:
		return false
	}
}

func (t *TypeRef) IsComposite() bool {
	switch t.Named().Kind {
	case Object, Interface, Union:
		return true
	default:
		return false
	}
}

func (t *TypeRef) IsAbstract() bool {
	switch t.Named().Kind {
	case Interface, Union:
		return true
	default:
		return false
	}
}

// String renders the type in GraphQL notation, e.g. "[String!]!".
func (t *TypeRef) String() string {
	switch t.Kind {
	case NonNull:
		return t.OfType.String() + "!"
	case List:
		return "[" + t.OfType.String() + "]"
	default:
		return t.Name
	}
}
