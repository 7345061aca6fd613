package introspection

type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
	TypeKindList        TypeKind = "LIST"
	TypeKindNonNull     TypeKind = "NON_NULL"
)

type FullTypes []*FullType

func (fs FullTypes) NameMap() map[string]*FullType {
	typeMap := make(map[string]*FullType, len(fs))
	for _, typ := range fs {
		typeMap[typ.TypeName()] = typ
	}

	return typeMap
}

type FullType struct {
	Kind          TypeKind      `json:"kind"`
	Name          *string       `json:"name"`
	Description   *string       `json:"description"`
	Fields        []*FieldValue `json:"fields"`
	InputFields   []*InputValue `json:"inputFields"`
	Interfaces    []*TypeRef    `json:"interfaces"`
	EnumValues    []*EnumValue  `json:"enumValues"`
	PossibleTypes []*TypeRef    `json:"possibleTypes"`
}

func (t *FullType) TypeName() string { return deref(t.Name) }

type EnumValue struct {
	Description       *string `json:"description"`
	DeprecationReason *string `json:"deprecationReason"`
	Name              string  `json:"name"`
	IsDeprecated      bool    `json:"isDeprecated"`
}

type FieldValue struct {
	Type              TypeRef       `json:"type"`
	Description       *string       `json:"description"`
	DeprecationReason *string       `json:"deprecationReason"`
	Name              string        `json:"name"`
	Args              []*InputValue `json:"args"`
	IsDeprecated      bool          `json:"isDeprecated"`
}

type InputValue struct {
	Type         TypeRef `json:"type"`
	Description  *string `json:"description"`
	DefaultValue *string `json:"defaultValue"`
	Name         string  `json:"name"`
}

type TypeRef struct {
	Name   *string  `json:"name"`
	OfType *TypeRef `json:"ofType"`
	Kind   TypeKind `json:"kind"`
}

type namedRef struct {
	Name *string `json:"name"`
}

// Query is the "data" member of an introspection query response.
type Query struct {
	Schema struct {
		QueryType        *namedRef        `json:"queryType"`
		MutationType     *namedRef        `json:"mutationType"`
		SubscriptionType *namedRef        `json:"subscriptionType"`
		Types            FullTypes        `json:"types"`
		Directives       []*DirectiveType `json:"directives"`
	} `json:"__schema"`
}

type DirectiveType struct {
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Locations   []string      `json:"locations"`
	Args        []*InputValue `json:"args"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
