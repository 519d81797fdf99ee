package emitter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/extdoc-hq/extdoc/pkg/model"
)

func sampleModel() *model.Model {
	panel := &model.DocClass{
		ClassName:      "Ext.Panel",
		ShortClassName: "Panel",
		PackageName:    "Ext",
		DefinedIn:      "Panel.js",
		Description:    model.Description{Long: "A panel."},
		Cfgs: []*model.Cfg{{
			Member: model.Member{Name: "title", ClassName: "Ext.Panel", ShortClassName: "Panel"},
			Type:   "String",
		}},
		SubClasses:   []model.ClassRef{},
		SuperClasses: []model.ClassRef{},
	}
	field := &model.DocClass{
		ClassName:      "Ext.form.Field",
		ShortClassName: "Field",
		PackageName:    "Ext.form",
		DefinedIn:      "Field.js",
		SubClasses:     []model.ClassRef{},
		SuperClasses:   []model.ClassRef{},
	}

	tree := model.NewPackageTree()
	tree.AddClass(panel)
	tree.AddClass(field)
	tree.Sort()

	return &model.Model{Classes: []*model.DocClass{panel, field}, Tree: tree}
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)

	assert.Equal(t, []string{"json", "yaml"}, r.List())
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()

	e, err := r.Get("json")
	require.NoError(t, err)
	assert.Equal(t, "json", e.Name())
	assert.Equal(t, ".json", e.FileExtension())

	_, err = r.Get("xslt")
	assert.Error(t, err)
}

func TestRender_FileNames(t *testing.T) {
	tests := []struct {
		emitter Emitter
		want    []string
	}{
		{&JSONEmitter{}, []string{"Ext.Panel.json", "Ext.form.Field.json", "tree.json"}},
		{&YAMLEmitter{}, []string{"Ext.Panel.yaml", "Ext.form.Field.yaml", "tree.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.emitter.Name(), func(t *testing.T) {
			files, err := Render(tt.emitter, sampleModel())
			require.NoError(t, err)

			var names []string
			for _, f := range files {
				names = append(names, f.Name)
				assert.NotEmpty(t, f.Data)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestJSONEmitter_EmitClass(t *testing.T) {
	data, err := (&JSONEmitter{}).EmitClass(sampleModel().Classes[0])
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Ext.Panel", got["class_name"])
	assert.Equal(t, "Panel.js", got["defined_in"])
	assert.NotContains(t, got, "excluded")

	cfgs := got["cfgs"].([]interface{})
	require.Len(t, cfgs, 1)
	assert.Equal(t, "title", cfgs[0].(map[string]interface{})["name"])
	assert.Equal(t, byte('\n'), data[len(data)-1])
}

func TestYAMLEmitter_EmitClass(t *testing.T) {
	data, err := (&YAMLEmitter{}).EmitClass(sampleModel().Classes[0])
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "Ext.Panel", got["class_name"])

	cfgs := got["cfgs"].([]interface{})
	require.Len(t, cfgs, 1)
	cfg := cfgs[0].(map[string]interface{})
	// member fields are inlined next to the cfg's own fields
	assert.Equal(t, "title", cfg["name"])
	assert.Equal(t, "String", cfg["type"])
}

func TestYAMLEmitter_EmitTree(t *testing.T) {
	data, err := (&YAMLEmitter{}).EmitTree(sampleModel().Tree)
	require.NoError(t, err)

	var got model.Package
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Len(t, got.Packages, 1)
	assert.Equal(t, "Ext", got.Packages[0].Name)
	assert.Equal(t, "Panel", got.Packages[0].Classes[0].ShortClassName)
}

func TestRender_DuplicateFileName(t *testing.T) {
	m := sampleModel()
	m.Classes = append(m.Classes, &model.DocClass{ClassName: "tree"})

	_, err := Render(&JSONEmitter{}, m)
	assert.Error(t, err)
}

func TestRender_NilTree(t *testing.T) {
	m := sampleModel()
	m.Tree = nil

	files, err := Render(&JSONEmitter{}, m)
	require.NoError(t, err)
	assert.Equal(t, "tree.json", files[len(files)-1].Name)
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "api")

	files, err := Write(&JSONEmitter{}, sampleModel(), dir)
	require.NoError(t, err)
	require.Len(t, files, 3)

	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(dir, f.Name))
		require.NoError(t, err)
		assert.Equal(t, f.Data, data)
	}
}

func TestRender_Deterministic(t *testing.T) {
	a, err := Render(&JSONEmitter{}, sampleModel())
	require.NoError(t, err)
	b, err := Render(&JSONEmitter{}, sampleModel())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
