package model

import (
	"sort"
	"strings"
)

// Package is a node of the namespace tree built from class names
type Package struct {
	Name     string     `json:"name" yaml:"name"`
	FullName string     `json:"full_name" yaml:"full_name"`
	Packages []*Package `json:"packages" yaml:"packages"`
	Classes  []ClassRef `json:"classes" yaml:"classes"`
}

// NewPackageTree creates an empty root package
func NewPackageTree() *Package {
	return &Package{
		Packages: make([]*Package, 0),
		Classes:  make([]ClassRef, 0),
	}
}

// AddClass files a class under the package path derived from its name,
// creating intermediate packages as needed.
func (p *Package) AddClass(cls *DocClass) {
	node := p
	if cls.PackageName != "" {
		for _, segment := range strings.Split(cls.PackageName, ".") {
			node = node.child(segment)
		}
	}
	node.Classes = append(node.Classes, cls.Ref())
}

func (p *Package) child(name string) *Package {
	for _, pkg := range p.Packages {
		if pkg.Name == name {
			return pkg
		}
	}

	fullName := name
	if p.FullName != "" {
		fullName = p.FullName + "." + name
	}
	pkg := &Package{
		Name:     name,
		FullName: fullName,
		Packages: make([]*Package, 0),
		Classes:  make([]ClassRef, 0),
	}
	p.Packages = append(p.Packages, pkg)
	return pkg
}

// Sort orders packages and classes by name, recursively
func (p *Package) Sort() {
	sort.SliceStable(p.Packages, func(i, j int) bool {
		return p.Packages[i].Name < p.Packages[j].Name
	})
	sort.SliceStable(p.Classes, func(i, j int) bool {
		return p.Classes[i].ClassName < p.Classes[j].ClassName
	})
	for _, pkg := range p.Packages {
		pkg.Sort()
	}
}

// Find returns the package with the given full name, or nil
func (p *Package) Find(fullName string) *Package {
	if p.FullName == fullName {
		return p
	}
	for _, pkg := range p.Packages {
		if fullName == pkg.FullName || strings.HasPrefix(fullName, pkg.FullName+".") {
			return pkg.Find(fullName)
		}
	}
	return nil
}

// Walk visits the package and all descendants depth-first
func (p *Package) Walk(fn func(pkg *Package, depth int)) {
	p.walk(fn, 0)
}

func (p *Package) walk(fn func(pkg *Package, depth int), depth int) {
	fn(p, depth)
	for _, pkg := range p.Packages {
		pkg.walk(fn, depth+1)
	}
}
