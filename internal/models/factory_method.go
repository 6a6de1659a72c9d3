package models

// Parameter is one argument of a factory method
type Parameter struct {
	Type string `json:"type" yaml:"type"` // canonical type text
	Name string `json:"name" yaml:"name"` // synthetic positional name (param1, param2, ...)
}

// FactoryMethod describes one discovered matcher factory function.
// Values are produced by FactoryMethodBuilder and are not modified afterwards.
type FactoryMethod struct {
	DeclaringType  string      `json:"declaringType" yaml:"declaringType"`
	Name           string      `json:"name" yaml:"name"`
	ReturnType     string      `json:"returnType" yaml:"returnType"`
	GenerifiedType string      `json:"generifiedType,omitempty" yaml:"generifiedType,omitempty"`
	TypeParameters []string    `json:"typeParameters" yaml:"typeParameters"`
	Parameters     []Parameter `json:"parameters" yaml:"parameters"`
	Exceptions     []string    `json:"exceptions" yaml:"exceptions"`
}

// IsGenerified reports whether the return type carried a type argument
func (m FactoryMethod) IsGenerified() bool {
	return m.GenerifiedType != ""
}

// QualifiedName returns the declaring type and the method name joined by a dot
func (m FactoryMethod) QualifiedName() string {
	return m.DeclaringType + "." + m.Name
}

// FactoryMethodBuilder accumulates the parts of a FactoryMethod in
// declaration order
type FactoryMethodBuilder struct {
	method FactoryMethod
}

// NewFactoryMethodBuilder creates a builder for the given method
func NewFactoryMethodBuilder(declaringType, name, returnType string) *FactoryMethodBuilder {
	return &FactoryMethodBuilder{
		method: FactoryMethod{
			DeclaringType: declaringType,
			Name:          name,
			ReturnType:    returnType,
		},
	}
}

// AddTypeParameter appends a rendered type parameter declaration
func (b *FactoryMethodBuilder) AddTypeParameter(decl string) *FactoryMethodBuilder {
	b.method.TypeParameters = append(b.method.TypeParameters, decl)
	return b
}

// SetGenerifiedType records the first type argument of the return type
func (b *FactoryMethodBuilder) SetGenerifiedType(typ string) *FactoryMethodBuilder {
	b.method.GenerifiedType = typ
	return b
}

// AddParameter appends a parameter
func (b *FactoryMethodBuilder) AddParameter(typ, name string) *FactoryMethodBuilder {
	b.method.Parameters = append(b.method.Parameters, Parameter{Type: typ, Name: name})
	return b
}

// AddException appends an error type
func (b *FactoryMethodBuilder) AddException(typ string) *FactoryMethodBuilder {
	b.method.Exceptions = append(b.method.Exceptions, typ)
	return b
}

// Build returns a FactoryMethod that shares no storage with the builder
func (b *FactoryMethodBuilder) Build() FactoryMethod {
	m := b.method
	m.TypeParameters = append(make([]string, 0, len(b.method.TypeParameters)), b.method.TypeParameters...)
	m.Parameters = append(make([]Parameter, 0, len(b.method.Parameters)), b.method.Parameters...)
	m.Exceptions = append(make([]string, 0, len(b.method.Exceptions)), b.method.Exceptions...)
	return m
}
