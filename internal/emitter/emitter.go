// Package emitter serializes a resolved model to files: one document per
// class plus one for the package tree.
package emitter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/extdoc-hq/extdoc/pkg/model"
)

// TreeFile is the base name of the package tree document
const TreeFile = "tree"

// Emitter converts model parts to a serialized format
type Emitter interface {
	// Name returns the emitter name (e.g., "json", "yaml")
	Name() string

	// FileExtension returns the output file extension (e.g., ".json")
	FileExtension() string

	// EmitClass serializes one resolved class
	EmitClass(cls *model.DocClass) ([]byte, error)

	// EmitTree serializes the package tree
	EmitTree(tree *model.Package) ([]byte, error)
}

// File is one rendered output document
type File struct {
	Name string
	Data []byte
}

// Registry holds all available emitters
type Registry struct {
	emitters map[string]Emitter
}

// NewRegistry creates a new emitter registry with all built-in emitters
func NewRegistry() *Registry {
	r := &Registry{
		emitters: make(map[string]Emitter),
	}

	r.Register(&JSONEmitter{})
	r.Register(&YAMLEmitter{})

	return r
}

// Register adds an emitter to the registry
func (r *Registry) Register(e Emitter) {
	r.emitters[e.Name()] = e
}

// Get returns an emitter by name
func (r *Registry) Get(name string) (Emitter, error) {
	e, ok := r.emitters[name]
	if !ok {
		return nil, fmt.Errorf("emitter not found: %s", name)
	}
	return e, nil
}

// List returns all registered emitter names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.emitters))
	for name := range r.emitters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render produces every output document for m, ordered by file name
func Render(e Emitter, m *model.Model) ([]File, error) {
	files := make([]File, 0, len(m.Classes)+1)
	seen := make(map[string]bool, len(m.Classes)+1)

	treeName := TreeFile + e.FileExtension()
	seen[treeName] = true

	for _, cls := range m.Classes {
		name := cls.ClassName + e.FileExtension()
		if seen[name] {
			return nil, fmt.Errorf("output file %s would be written twice", name)
		}
		seen[name] = true

		data, err := e.EmitClass(cls)
		if err != nil {
			return nil, fmt.Errorf("failed to emit class %s: %w", cls.ClassName, err)
		}
		files = append(files, File{Name: name, Data: data})
	}

	tree := m.Tree
	if tree == nil {
		tree = model.NewPackageTree()
	}
	data, err := e.EmitTree(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to emit package tree: %w", err)
	}
	files = append(files, File{Name: treeName, Data: data})

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Write renders m with e into dir, creating it if needed
func Write(e Emitter, m *model.Model, dir string) ([]File, error) {
	files, err := Render(e, m)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}

	log.Info().Str("dir", dir).Int("files", len(files)).Str("format", e.Name()).Msg("Wrote model")
	return files, nil
}
