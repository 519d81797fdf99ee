package hierarchy

import (
	"sort"

	"github.com/extdoc-hq/extdoc/pkg/model"
)

// inherit appends the non-static members of from that list does not already
// declare under the same simple name
func inherit[T model.Entity](list, from []T) []T {
	for _, m := range from {
		base := m.Base()
		if base.Static || declares(list, base.SimpleName()) {
			continue
		}
		list = append(list, m)
	}
	return list
}

func declares[T model.Entity](list []T, name string) bool {
	for _, m := range list {
		if m.Base().SimpleName() == name {
			return true
		}
	}
	return false
}

func withoutHidden[T model.Entity](list []T) []T {
	kept := list[:0]
	for _, m := range list {
		if !m.Base().Hide {
			kept = append(kept, m)
		}
	}
	return kept
}

func sortByName[T model.Entity](list []T) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].Base(), list[j].Base()
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ClassName < b.ClassName
	})
}

// filterHidden drops members flagged with @hide
func filterHidden(cls *model.DocClass) {
	cls.Cfgs = withoutHidden(cls.Cfgs)
	cls.Properties = withoutHidden(cls.Properties)
	cls.Methods = withoutHidden(cls.Methods)
	cls.Events = withoutHidden(cls.Events)
}

// sortMembers orders members and subclasses by name. Superclasses keep their
// root-first order.
func sortMembers(cls *model.DocClass) {
	sortByName(cls.Cfgs)
	sortByName(cls.Properties)
	sortByName(cls.Methods)
	sortByName(cls.Events)
	sort.SliceStable(cls.SubClasses, func(i, j int) bool {
		return cls.SubClasses[i].ClassName < cls.SubClasses[j].ClassName
	})
}
