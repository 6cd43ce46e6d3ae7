package annotation

// Class identifies a type whose members can be traversed. A Class is opaque
// to the engine; each Provider accepts the classes it produced.
type Class interface {
	Name() string
}

// Axis names one of the two traversal dimensions.
type Axis string

const (
	AxisFields  Axis = "fields"
	AxisMethods Axis = "methods"
)

// MemberInfo is the description shared by fields and methods.
type MemberInfo struct {
	Class string `json:"class" yaml:"class"`
	Name  string `json:"name" yaml:"name"`
	Index int    `json:"index" yaml:"index"` // position within its axis
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`

	// RawTag is the member's tag text in struct tag syntax. Providers that
	// resolve tags some other way leave it empty.
	RawTag string `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// Member is a Field or a Method. The set is closed: no other type implements it.
type Member interface {
	Info() MemberInfo
	Axis() Axis
	sealed()
}

// Field is a declared field of a class.
type Field struct {
	MemberInfo
	Exported bool `json:"exported" yaml:"exported"`
	Embedded bool `json:"embedded,omitempty" yaml:"embedded,omitempty"`
}

func (f Field) Info() MemberInfo { return f.MemberInfo }
func (Field) Axis() Axis         { return AxisFields }
func (Field) sealed()            {}

// Method is a declared method of a class.
type Method struct {
	MemberInfo
}

func (m Method) Info() MemberInfo { return m.MemberInfo }
func (Method) Axis() Axis         { return AxisMethods }
func (Method) sealed()            {}

func className(c Class) string {
	if c == nil {
		return "<nil>"
	}
	return c.Name()
}
