// Package extract turns documentation comments into model entities. Each
// source file is processed with its own Context, which tracks the class that
// members without an explicit owner belong to.
package extract

import (
	"github.com/extdoc-hq/extdoc/internal/scanner"
	"github.com/extdoc-hq/extdoc/internal/tags"
)

// DefaultFunctionKeyword introduces a function definition in the documented
// language
const DefaultFunctionKeyword = "function"

// EntityKind is the kind of entity a comment describes
type EntityKind string

const (
	EntityClass    EntityKind = "class"
	EntityEvent    EntityKind = "event"
	EntityCfg      EntityKind = "cfg"
	EntityMethod   EntityKind = "method"
	EntityProperty EntityKind = "property"
)

// tagSet is a comment's tags sorted by variant
type tagSet struct {
	class    *tags.ClassTag
	extends  *tags.ExtendsTag
	cfgs     []*tags.CfgTag
	property *tags.PropertyTag
	method   *tags.MethodTag
	event    *tags.EventTag
	params   []*tags.ParamTag
	ret      *tags.ReturnTag
	member   *tags.MemberTag
	typ      *tags.TypeTag
	flags    map[tags.Kind]*tags.SimpleTag
}

// collect sorts tags by variant; for single-valued kinds the first wins
func collect(c *tags.Comment) *tagSet {
	s := &tagSet{flags: make(map[tags.Kind]*tags.SimpleTag)}
	for _, t := range c.Tags {
		switch t := t.(type) {
		case *tags.ClassTag:
			if s.class == nil {
				s.class = t
			}
		case *tags.ExtendsTag:
			if s.extends == nil {
				s.extends = t
			}
		case *tags.CfgTag:
			s.cfgs = append(s.cfgs, t)
		case *tags.PropertyTag:
			if s.property == nil {
				s.property = t
			}
		case *tags.MethodTag:
			if s.method == nil {
				s.method = t
			}
		case *tags.EventTag:
			if s.event == nil {
				s.event = t
			}
		case *tags.ParamTag:
			s.params = append(s.params, t)
		case *tags.ReturnTag:
			if s.ret == nil {
				s.ret = t
			}
		case *tags.MemberTag:
			if s.member == nil {
				s.member = t
			}
		case *tags.TypeTag:
			if s.typ == nil {
				s.typ = t
			}
		case *tags.SimpleTag:
			if _, ok := s.flags[t.TagKind]; !ok {
				s.flags[t.TagKind] = t
			}
		}
	}
	return s
}

func (s *tagSet) has(kind tags.Kind) bool {
	_, ok := s.flags[kind]
	return ok
}

// excluded reports whether the entity is documented but must not be shown
func (s *tagSet) excluded() bool {
	return s.has(tags.KindPrivate) || s.has(tags.KindIgnore)
}

func (s *tagSet) kind(block scanner.Block, keyword string) EntityKind {
	switch {
	case s.class != nil:
		return EntityClass
	case s.event != nil:
		return EntityEvent
	case len(s.cfgs) > 0:
		return EntityCfg
	case len(s.params) > 0 || s.ret != nil || s.method != nil:
		return EntityMethod
	case s.typ != nil || s.property != nil:
		return EntityProperty
	case block.SecondToken == keyword || block.FirstToken == keyword:
		return EntityMethod
	default:
		return EntityProperty
	}
}

// Classify decides which kind of entity a parsed comment describes. The
// first matching rule wins: @class, @event, @cfg, any of @param/@return/
// @method, @type/@property, then the code following the comment.
func Classify(c *tags.Comment, block scanner.Block, keyword string) EntityKind {
	return collect(c).kind(block, keyword)
}
