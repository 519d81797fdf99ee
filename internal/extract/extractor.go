package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/extdoc-hq/extdoc/internal/links"
	"github.com/extdoc-hq/extdoc/internal/scanner"
	"github.com/extdoc-hq/extdoc/internal/tags"
	"github.com/extdoc-hq/extdoc/pkg/model"
)

// Context is the ambient state of one file scan: the file name and the class
// opened by the most recent @class comment. It must not be shared between
// files.
type Context struct {
	File           string
	ClassName      string
	ShortClassName string
}

// NewContext creates the context for scanning the named file
func NewContext(path string) *Context {
	return &Context{File: filepath.Base(path)}
}

// Result collects the entities extracted from one or more files
type Result struct {
	Classes    []*model.DocClass
	Cfgs       []*model.Cfg
	Properties []*model.Property
	Methods    []*model.Method
	Events     []*model.Event
}

// NewResult creates an empty result
func NewResult() *Result {
	return &Result{
		Classes:    make([]*model.DocClass, 0),
		Cfgs:       make([]*model.Cfg, 0),
		Properties: make([]*model.Property, 0),
		Methods:    make([]*model.Method, 0),
		Events:     make([]*model.Event, 0),
	}
}

// Merge appends other's entities, preserving order
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Classes = append(r.Classes, other.Classes...)
	r.Cfgs = append(r.Cfgs, other.Cfgs...)
	r.Properties = append(r.Properties, other.Properties...)
	r.Methods = append(r.Methods, other.Methods...)
	r.Events = append(r.Events, other.Events...)
}

// Count returns the total number of entities
func (r *Result) Count() int {
	return len(r.Classes) + len(r.Cfgs) + len(r.Properties) + len(r.Methods) + len(r.Events)
}

// Options configures an Extractor
type Options struct {
	// FunctionKeyword marks a method when found in the code after a comment
	FunctionKeyword string
	Links           *links.Resolver
}

// Extractor classifies comments and builds entities
type Extractor struct {
	keyword string
	links   *links.Resolver
}

// New creates an extractor, filling unset options with defaults
func New(opts Options) *Extractor {
	e := &Extractor{
		keyword: opts.FunctionKeyword,
		links:   opts.Links,
	}
	if e.keyword == "" {
		e.keyword = DefaultFunctionKeyword
	}
	if e.links == nil {
		e.links = links.NewResolver(links.Options{})
	}
	return e
}

// ProcessFile scans and classifies one source file. When reading fails part
// way, the entities found so far are returned together with the error.
func (e *Extractor) ProcessFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return NewResult(), fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return e.ProcessReader(path, f)
}

// ProcessReader scans and classifies source read from r
func (e *Extractor) ProcessReader(path string, r io.Reader) (*Result, error) {
	res := NewResult()
	ctx := NewContext(path)

	err := scanner.Scan(r, func(block scanner.Block) {
		e.ProcessBlock(ctx, block, res)
	})
	if err != nil {
		return res, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	return res, nil
}

// ProcessBlock classifies a single comment block and appends the resulting
// entities to res. A class comment updates ctx.
func (e *Extractor) ProcessBlock(ctx *Context, block scanner.Block, res *Result) {
	comment := tags.Parse(block.Comment)
	set := collect(comment)

	switch set.kind(block, e.keyword) {
	case EntityClass:
		e.processClass(ctx, comment, set, block, res)
	case EntityEvent:
		e.processEvent(ctx, comment, set, res)
	case EntityCfg:
		e.processCfgs(ctx, comment, set, res)
	case EntityMethod:
		e.processMethod(ctx, comment, set, block, res)
	default:
		e.processProperty(ctx, comment, set, block, res)
	}
}

func (e *Extractor) processClass(ctx *Context, comment *tags.Comment, set *tagSet, block scanner.Block, res *Result) {
	className := set.class.ClassName
	if className == "" {
		className = block.FirstToken
	}
	if className == "" {
		log.Warn().Str("file", ctx.File).Msg("skipping @class without a name")
		return
	}

	cls := &model.DocClass{
		ClassName:  className,
		DefinedIn:  ctx.File,
		Singleton:  set.has(tags.KindSingleton),
		Excluded:   set.excluded(),
		Params:     make([]model.Param, 0),
		Cfgs:       make([]*model.Cfg, 0),
		Properties: make([]*model.Property, 0),
		Methods:    make([]*model.Method, 0),
		Events:     make([]*model.Event, 0),
		SubClasses: make([]model.ClassRef, 0),
	}
	cls.PackageName, cls.ShortClassName = model.SplitClassName(className)

	// later comments in this file belong to the new class
	ctx.ClassName = cls.ClassName
	ctx.ShortClassName = cls.ShortClassName

	description := set.class.Description
	if description == "" && set.extends != nil {
		description = set.extends.Description
	}
	if description == "" {
		description = comment.Description
	}
	cls.Description = e.links.Resolve(description, ctx.ClassName, false)

	if set.extends != nil {
		cls.ParentClass = set.extends.ClassName
	}

	if ctor, ok := set.flags[tags.KindConstructor]; ok {
		cls.HasConstructor = true
		cls.ConstructorDescription = e.links.Resolve(ctor.Text, ctx.ClassName, false)
		cls.Params = e.params(ctx, set.params)
	}

	res.Classes = append(res.Classes, cls)

	// configs declared inline in the class comment; the comment's flags
	// describe the class, not its configs
	inline := &tagSet{member: set.member}
	for _, tag := range set.cfgs {
		if cfg := e.newCfg(ctx, tag, "", inline); cfg != nil {
			res.Cfgs = append(res.Cfgs, cfg)
		}
	}
}

func (e *Extractor) processCfgs(ctx *Context, comment *tags.Comment, set *tagSet, res *Result) {
	if set.excluded() {
		return
	}
	for _, tag := range set.cfgs {
		if cfg := e.newCfg(ctx, tag, comment.Description, set); cfg != nil {
			res.Cfgs = append(res.Cfgs, cfg)
		}
	}
}

func (e *Extractor) newCfg(ctx *Context, tag *tags.CfgTag, fallback string, set *tagSet) *model.Cfg {
	cfg := &model.Cfg{Type: tag.Type, Optional: tag.Optional}
	if !e.fillMember(ctx, &cfg.Member, tag.Name, set) {
		return nil
	}
	description := tag.Description
	if description == "" {
		description = fallback
	}
	cfg.Description = e.links.Resolve(description, cfg.ClassName, false)
	return cfg
}

func (e *Extractor) processProperty(ctx *Context, comment *tags.Comment, set *tagSet, block scanner.Block, res *Result) {
	if set.excluded() {
		return
	}

	prop := &model.Property{}
	prop.Name = block.FirstToken

	explicit := ""
	description := comment.Description
	if set.property != nil {
		explicit = set.property.Name
		prop.Type = set.property.Type
		if description == "" {
			description = set.property.Description
		}
	}
	if set.typ != nil {
		prop.Type = set.typ.Type
	}

	if !e.fillMember(ctx, &prop.Member, explicit, set) {
		return
	}
	prop.Description = e.links.Resolve(description, prop.ClassName, false)
	res.Properties = append(res.Properties, prop)
}

func (e *Extractor) processMethod(ctx *Context, comment *tags.Comment, set *tagSet, block scanner.Block, res *Result) {
	if set.excluded() {
		return
	}

	method := &model.Method{}
	method.Name = block.FirstToken
	if block.FirstToken == e.keyword {
		// "function name(...)"
		method.Name = block.SecondToken
	}

	explicit := ""
	description := comment.Description
	if set.method != nil {
		explicit = set.method.Name
		if description == "" {
			description = set.method.Description
		}
	}

	if !e.fillMember(ctx, &method.Member, explicit, set) {
		return
	}
	method.Description = e.links.Resolve(description, method.ClassName, true)
	method.Params = e.params(ctx, set.params)
	if set.ret != nil {
		method.ReturnType = set.ret.Type
		method.ReturnDescription = e.links.Resolve(set.ret.Description, method.ClassName, false).Long
	}
	res.Methods = append(res.Methods, method)
}

func (e *Extractor) processEvent(ctx *Context, comment *tags.Comment, set *tagSet, res *Result) {
	if set.excluded() {
		return
	}

	event := &model.Event{}
	if !e.fillMember(ctx, &event.Member, set.event.Name, set) {
		return
	}
	description := set.event.Description
	if description == "" {
		description = comment.Description
	}
	event.Description = e.links.Resolve(description, event.ClassName, true)
	event.Params = e.params(ctx, set.params)
	res.Events = append(res.Events, event)
}

// fillMember resolves owner and name of a member. The owning class comes from
// @member when given, else from ctx. The name is the explicit tag name if
// any, else the @member name, else whatever m.Name already holds (the code
// token). It reports false when no name could be found.
func (e *Extractor) fillMember(ctx *Context, m *model.Member, explicit string, set *tagSet) bool {
	m.ClassName = ctx.ClassName
	m.ShortClassName = ctx.ShortClassName
	if set.member != nil {
		if set.member.ClassName != "" {
			m.ClassName = set.member.ClassName
			_, m.ShortClassName = model.SplitClassName(m.ClassName)
		}
		if set.member.MemberName != "" {
			m.Name = set.member.MemberName
		}
	}
	if explicit != "" {
		m.Name = explicit
	}
	m.Static = set.has(tags.KindStatic)
	m.Hide = set.has(tags.KindHide)

	if m.Name == "" {
		log.Debug().Str("file", ctx.File).Str("class", m.ClassName).Msg("skipping member without a name")
		return false
	}
	return true
}

func (e *Extractor) params(ctx *Context, paramTags []*tags.ParamTag) []model.Param {
	params := make([]model.Param, 0, len(paramTags))
	for _, tag := range paramTags {
		params = append(params, model.Param{
			Name:        tag.Name,
			Type:        tag.Type,
			Description: e.links.Resolve(tag.Description, ctx.ClassName, false).Long,
			Optional:    tag.Optional,
		})
	}
	return params
}
