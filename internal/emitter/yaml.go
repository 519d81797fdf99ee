package emitter

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/extdoc-hq/extdoc/pkg/model"
)

// YAMLEmitter writes YAML documents
type YAMLEmitter struct{}

func (e *YAMLEmitter) Name() string          { return "yaml" }
func (e *YAMLEmitter) FileExtension() string { return ".yaml" }

// EmitClass serializes one class
func (e *YAMLEmitter) EmitClass(cls *model.DocClass) ([]byte, error) {
	return e.marshal(cls)
}

// EmitTree serializes the package tree
func (e *YAMLEmitter) EmitTree(tree *model.Package) ([]byte, error) {
	return e.marshal(tree)
}

func (e *YAMLEmitter) marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
