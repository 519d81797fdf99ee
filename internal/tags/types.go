// Package tags parses the body of a documentation comment into a free-text
// description and a closed set of typed tags.
package tags

// Kind names a tag, without the leading '@'
type Kind string

const (
	KindClass       Kind = "class"
	KindCfg         Kind = "cfg"
	KindProperty    Kind = "property"
	KindMethod      Kind = "method"
	KindEvent       Kind = "event"
	KindParam       Kind = "param"
	KindReturn      Kind = "return"
	KindExtends     Kind = "extends"
	KindMember      Kind = "member"
	KindType        Kind = "type"
	KindStatic      Kind = "static"
	KindPrivate     Kind = "private"
	KindIgnore      Kind = "ignore"
	KindHide        Kind = "hide"
	KindSingleton   Kind = "singleton"
	KindConstructor Kind = "constructor"
)

// simpleKinds carry no structured payload
var simpleKinds = map[Kind]bool{
	KindStatic:      true,
	KindPrivate:     true,
	KindIgnore:      true,
	KindHide:        true,
	KindSingleton:   true,
	KindConstructor: true,
}

// Tag is implemented by every tag variant in this package
type Tag interface {
	Kind() Kind
	tag()
}

// ClassTag is "@class Name description"
type ClassTag struct {
	ClassName   string
	Description string
}

// CfgTag is "@cfg {Type} name description"
type CfgTag struct {
	Type        string
	Name        string
	Description string
	Optional    bool
}

// PropertyTag is "@property {Type} name description", every part optional
type PropertyTag struct {
	Type        string
	Name        string
	Description string
}

// MethodTag is "@method name"
type MethodTag struct {
	Name        string
	Description string
}

// EventTag is "@event name description"
type EventTag struct {
	Name        string
	Description string
}

// ParamTag is "@param {Type} name description"
type ParamTag struct {
	Type        string
	Name        string
	Description string
	Optional    bool
}

// ReturnTag is "@return {Type} description"
type ReturnTag struct {
	Type        string
	Description string
}

// ExtendsTag is "@extends Name description"
type ExtendsTag struct {
	ClassName   string
	Description string
}

// MemberTag is "@member Class#name" or "@member Class name"
type MemberTag struct {
	ClassName  string
	MemberName string
}

// TypeTag is "@type Type"
type TypeTag struct {
	Type string
}

// SimpleTag is a flag tag such as @static or @private; Text keeps anything
// written after it.
type SimpleTag struct {
	TagKind Kind
	Text    string
}

// UnknownTag keeps tags the extractor does not interpret
type UnknownTag struct {
	Name string
	Text string
}

func (*ClassTag) Kind() Kind     { return KindClass }
func (*CfgTag) Kind() Kind       { return KindCfg }
func (*PropertyTag) Kind() Kind  { return KindProperty }
func (*MethodTag) Kind() Kind    { return KindMethod }
func (*EventTag) Kind() Kind     { return KindEvent }
func (*ParamTag) Kind() Kind     { return KindParam }
func (*ReturnTag) Kind() Kind    { return KindReturn }
func (*ExtendsTag) Kind() Kind   { return KindExtends }
func (*MemberTag) Kind() Kind    { return KindMember }
func (*TypeTag) Kind() Kind      { return KindType }
func (t *SimpleTag) Kind() Kind  { return t.TagKind }
func (t *UnknownTag) Kind() Kind { return Kind(t.Name) }

func (*ClassTag) tag()    {}
func (*CfgTag) tag()      {}
func (*PropertyTag) tag() {}
func (*MethodTag) tag()   {}
func (*EventTag) tag()    {}
func (*ParamTag) tag()    {}
func (*ReturnTag) tag()   {}
func (*ExtendsTag) tag()  {}
func (*MemberTag) tag()   {}
func (*TypeTag) tag()     {}
func (*SimpleTag) tag()   {}
func (*UnknownTag) tag()  {}

// Comment is a parsed documentation comment. Tags keep source order and may
// repeat.
type Comment struct {
	Description string
	Tags        []Tag
}

// Has reports whether a tag of the given kind is present
func (c *Comment) Has(kind Kind) bool {
	for _, t := range c.Tags {
		if t.Kind() == kind {
			return true
		}
	}
	return false
}

// First returns the first tag of the given kind, or nil
func (c *Comment) First(kind Kind) Tag {
	for _, t := range c.Tags {
		if t.Kind() == kind {
			return t
		}
	}
	return nil
}

// Count returns how many tags of the given kind are present
func (c *Comment) Count(kind Kind) int {
	n := 0
	for _, t := range c.Tags {
		if t.Kind() == kind {
			n++
		}
	}
	return n
}
