// Package hierarchy links extracted classes into an inheritance tree and
// resolves the members every class ends up documenting.
//
// Classes live in a flat arena; parent links are arena indices, so the model
// carries names (ClassRef) rather than pointers between classes.
package hierarchy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/extdoc-hq/extdoc/internal/extract"
	"github.com/extdoc-hq/extdoc/pkg/model"
)

// DefaultComponentRoot marks classes descending from it as components
const DefaultComponentRoot = "Ext.Component"

// ErrCyclicInheritance is returned when a chain of @extends loops back on
// itself
var ErrCyclicInheritance = errors.New("cyclic inheritance")

// Options configures a Builder
type Options struct {
	// ComponentRoot is the class name that flags descendants as components
	ComponentRoot string
	// InheritFromExcluded lets @private/@ignore classes act as parents. They
	// are never part of the output either way.
	InheritFromExcluded bool
}

// Builder resolves extracted entities into a model
type Builder struct {
	opts Options
}

// NewBuilder creates a builder
func NewBuilder(opts Options) *Builder {
	if opts.ComponentRoot == "" {
		opts.ComponentRoot = DefaultComponentRoot
	}
	return &Builder{opts: opts}
}

// arena holds every class taking part in resolution
type arena struct {
	classes []*model.DocClass
	index   map[string]int
	parent  []int
	own     []members
}

// members is a snapshot of what a class declares itself
type members struct {
	cfgs       []*model.Cfg
	properties []*model.Property
	methods    []*model.Method
	events     []*model.Event
}

// Build resolves res into a model. The entities in res are mutated and end up
// in the model, so a Result must only be built once.
func (b *Builder) Build(res *extract.Result) (*model.Model, error) {
	a := b.newArena(res.Classes)

	a.link()
	a.attach(res)

	for i := range a.classes {
		if err := b.inject(a, i); err != nil {
			return nil, err
		}
	}

	for _, cls := range a.classes {
		filterHidden(cls)
		sortMembers(cls)
	}

	return b.output(a), nil
}

func (b *Builder) newArena(classes []*model.DocClass) *arena {
	a := &arena{
		classes: make([]*model.DocClass, 0, len(classes)),
		index:   make(map[string]int, len(classes)),
	}
	for _, cls := range classes {
		if cls.Excluded && !b.opts.InheritFromExcluded {
			continue
		}
		if i, dup := a.index[cls.ClassName]; dup {
			if a.classes[i].Excluded && !cls.Excluded {
				log.Warn().
					Str("class", cls.ClassName).
					Str("file", cls.DefinedIn).
					Str("replaced", a.classes[i].DefinedIn).
					Msg("class documented more than once, keeping the public definition")
				a.classes[i] = cls
				continue
			}
			log.Warn().
				Str("class", cls.ClassName).
				Str("file", cls.DefinedIn).
				Msg("class documented more than once, keeping the first definition")
			continue
		}
		a.index[cls.ClassName] = len(a.classes)
		a.classes = append(a.classes, cls)
	}
	a.parent = make([]int, len(a.classes))
	a.own = make([]members, len(a.classes))
	return a
}

// link sets parent indices and subclass lists. A parent that was never
// defined leaves the class without a parent. An excluded parent still feeds
// inheritance but is not referenced, since it is never rendered.
func (a *arena) link() {
	for i, cls := range a.classes {
		a.parent[i] = -1
		if cls.ParentClass == "" {
			continue
		}
		p, ok := a.index[cls.ParentClass]
		if !ok {
			log.Debug().Str("class", cls.ClassName).Str("parent", cls.ParentClass).Msg("parent class not documented")
			continue
		}
		a.parent[i] = p

		parent := a.classes[p]
		if parent.Excluded {
			continue
		}
		ref := parent.Ref()
		cls.Parent = &ref
		if !cls.Excluded {
			parent.SubClasses = append(parent.SubClasses, cls.Ref())
		}
	}
}

// attach groups members under their owning class and snapshots what each
// class declares
func (a *arena) attach(res *extract.Result) {
	orphans := 0
	lookup := func(className string) *model.DocClass {
		if i, ok := a.index[className]; ok {
			return a.classes[i]
		}
		orphans++
		return nil
	}

	for _, cfg := range res.Cfgs {
		if cls := lookup(cfg.ClassName); cls != nil {
			cls.Cfgs = append(cls.Cfgs, cfg)
		}
	}
	for _, prop := range res.Properties {
		if cls := lookup(prop.ClassName); cls != nil {
			cls.Properties = append(cls.Properties, prop)
		}
	}
	for _, method := range res.Methods {
		if cls := lookup(method.ClassName); cls != nil {
			cls.Methods = append(cls.Methods, method)
		}
	}
	for _, event := range res.Events {
		if cls := lookup(event.ClassName); cls != nil {
			cls.Events = append(cls.Events, event)
		}
	}
	if orphans > 0 {
		log.Debug().Int("count", orphans).Msg("members without a documented class dropped")
	}

	for i, cls := range a.classes {
		a.own[i] = members{
			cfgs:       append([]*model.Cfg(nil), cls.Cfgs...),
			properties: append([]*model.Property(nil), cls.Properties...),
			methods:    append([]*model.Method(nil), cls.Methods...),
			events:     append([]*model.Event(nil), cls.Events...),
		}
	}
}

// inject walks the ancestors of class i, closest first, adding what they
// declare unless overridden or static
func (b *Builder) inject(a *arena, i int) error {
	cls := a.classes[i]
	visited := map[int]bool{i: true}
	chain := []string{cls.ClassName}
	supers := make([]model.ClassRef, 0)

	for p := a.parent[i]; p >= 0; p = a.parent[p] {
		ancestor := a.classes[p]
		chain = append(chain, ancestor.ClassName)
		if visited[p] {
			return fmt.Errorf("%w: %s", ErrCyclicInheritance, strings.Join(chain, " -> "))
		}
		visited[p] = true

		if ancestor.Excluded {
			log.Debug().Str("class", cls.ClassName).Str("ancestor", ancestor.ClassName).Msg("inheriting through excluded class")
		} else {
			supers = append(supers, ancestor.Ref())
		}
		if ancestor.ClassName == b.opts.ComponentRoot {
			cls.Component = true
		}

		own := a.own[p]
		cls.Cfgs = inherit(cls.Cfgs, own.cfgs)
		cls.Properties = inherit(cls.Properties, own.properties)
		cls.Methods = inherit(cls.Methods, own.methods)
		cls.Events = inherit(cls.Events, own.events)
	}

	// root first, immediate parent last
	for l, r := 0, len(supers)-1; l < r; l, r = l+1, r-1 {
		supers[l], supers[r] = supers[r], supers[l]
	}
	cls.SuperClasses = supers
	return nil
}

func (b *Builder) output(a *arena) *model.Model {
	m := &model.Model{
		Classes: make([]*model.DocClass, 0, len(a.classes)),
		Tree:    model.NewPackageTree(),
	}
	for _, cls := range a.classes {
		if cls.Excluded {
			continue
		}
		m.Classes = append(m.Classes, cls)
		m.Tree.AddClass(cls)
	}
	sort.SliceStable(m.Classes, func(i, j int) bool {
		return m.Classes[i].ClassName < m.Classes[j].ClassName
	})
	m.Tree.Sort()
	return m
}
