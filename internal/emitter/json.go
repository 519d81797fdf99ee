package emitter

import (
	"encoding/json"

	"github.com/extdoc-hq/extdoc/pkg/model"
)

// JSONEmitter writes indented JSON documents
type JSONEmitter struct{}

func (e *JSONEmitter) Name() string          { return "json" }
func (e *JSONEmitter) FileExtension() string { return ".json" }

// EmitClass serializes one class
func (e *JSONEmitter) EmitClass(cls *model.DocClass) ([]byte, error) {
	return e.marshal(cls)
}

// EmitTree serializes the package tree
func (e *JSONEmitter) EmitTree(tree *model.Package) ([]byte, error) {
	return e.marshal(tree)
}

func (e *JSONEmitter) marshal(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
