// Package model defines the resolved documentation model: classes and the
// configs, properties, methods and events they own or inherit. It is the
// hand-off format between the extractor and whatever renders the output.
package model

import "strings"

// Param is a single documented parameter of a constructor, method or event
type Param struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Optional    bool   `json:"optional" yaml:"optional"`
}

// Description holds the rendered text of an entity. Long is always present,
// Short only when the text was truncated or a summary was requested.
type Description struct {
	Long  string `json:"long" yaml:"long"`
	Short string `json:"short,omitempty" yaml:"short,omitempty"`
}

// Summary returns the short form if one exists, else the long form
func (d Description) Summary() string {
	if d.Short != "" {
		return d.Short
	}
	return d.Long
}

// ClassRef references another class by name
type ClassRef struct {
	ClassName      string `json:"class_name" yaml:"class_name"`
	ShortClassName string `json:"short_class_name" yaml:"short_class_name"`
}

// Member holds the attributes shared by every class member
type Member struct {
	Name           string      `json:"name" yaml:"name"`
	ClassName      string      `json:"class_name" yaml:"class_name"`
	ShortClassName string      `json:"short_class_name" yaml:"short_class_name"`
	Description    Description `json:"description" yaml:"description"`
	Hide           bool        `json:"-" yaml:"-"`
	Static         bool        `json:"static" yaml:"static"`
}

// Base returns the shared member attributes
func (m *Member) Base() *Member {
	return m
}

// SimpleName is the member identity used for override checks: the last
// dot-separated segment of the name.
func (m *Member) SimpleName() string {
	if i := strings.LastIndexByte(m.Name, '.'); i >= 0 {
		return m.Name[i+1:]
	}
	return m.Name
}

// Entity is implemented by all member kinds
type Entity interface {
	Base() *Member
}

// Cfg is a configuration option accepted by a class
type Cfg struct {
	Member   `yaml:",inline"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Optional bool   `json:"optional" yaml:"optional"`
}

// Property is a documented field of a class
type Property struct {
	Member `yaml:",inline"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Method is a documented function of a class
type Method struct {
	Member            `yaml:",inline"`
	Params            []Param `json:"params" yaml:"params"`
	ReturnType        string  `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	ReturnDescription string  `json:"return_description,omitempty" yaml:"return_description,omitempty"`
}

// Event is an event fired by a class
type Event struct {
	Member `yaml:",inline"`
	Params []Param `json:"params" yaml:"params"`
}

// DocClass is a documented class together with its resolved hierarchy
type DocClass struct {
	ClassName      string      `json:"class_name" yaml:"class_name"`
	ShortClassName string      `json:"short_class_name" yaml:"short_class_name"`
	PackageName    string      `json:"package_name" yaml:"package_name"`
	DefinedIn      string      `json:"defined_in" yaml:"defined_in"`
	Singleton      bool        `json:"singleton" yaml:"singleton"`
	Description    Description `json:"description" yaml:"description"`
	ParentClass    string      `json:"parent_class,omitempty" yaml:"parent_class,omitempty"`

	// Constructor
	HasConstructor         bool        `json:"has_constructor" yaml:"has_constructor"`
	ConstructorDescription Description `json:"constructor_description" yaml:"constructor_description"`
	Params                 []Param     `json:"params" yaml:"params"`

	// Members, own and inherited once the hierarchy is resolved
	Cfgs       []*Cfg      `json:"cfgs" yaml:"cfgs"`
	Properties []*Property `json:"properties" yaml:"properties"`
	Methods    []*Method   `json:"methods" yaml:"methods"`
	Events     []*Event    `json:"events" yaml:"events"`

	// Hierarchy
	Parent       *ClassRef  `json:"parent,omitempty" yaml:"parent,omitempty"`
	SubClasses   []ClassRef `json:"sub_classes" yaml:"sub_classes"`
	SuperClasses []ClassRef `json:"super_classes" yaml:"super_classes"` // root first
	Component    bool       `json:"component" yaml:"component"`

	// Excluded marks @private/@ignore classes: kept for parent lookup,
	// never rendered.
	Excluded bool `json:"-" yaml:"-"`
}

// Ref returns a reference to this class
func (c *DocClass) Ref() ClassRef {
	return ClassRef{ClassName: c.ClassName, ShortClassName: c.ShortClassName}
}

// SplitClassName divides a fully qualified class name into its package and
// short name. "Ext.form.Field" -> ("Ext.form", "Field"), "Ext" -> ("", "Ext").
func SplitClassName(className string) (packageName, shortName string) {
	i := strings.LastIndexByte(className, '.')
	if i <= 0 {
		return "", className[i+1:]
	}
	return className[:i], className[i+1:]
}

// Model is the fully resolved documentation set
type Model struct {
	Classes []*DocClass `json:"classes" yaml:"classes"` // sorted by class name
	Tree    *Package    `json:"tree" yaml:"tree"`
}

// Class returns the class with the given name, or nil
func (m *Model) Class(name string) *DocClass {
	for _, c := range m.Classes {
		if c.ClassName == name {
			return c
		}
	}
	return nil
}

// ClassNames lists the names of all classes in the model
func (m *Model) ClassNames() []string {
	names := make([]string, 0, len(m.Classes))
	for _, c := range m.Classes {
		names = append(names, c.ClassName)
	}
	return names
}
