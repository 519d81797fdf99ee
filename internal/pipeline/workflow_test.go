package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extdoc-hq/extdoc/internal/config"
	"github.com/extdoc-hq/extdoc/internal/emitter"
	"github.com/extdoc-hq/extdoc/internal/manifest"
	"github.com/extdoc-hq/extdoc/internal/testutil"
	"github.com/extdoc-hq/extdoc/internal/verify"
	"github.com/extdoc-hq/extdoc/pkg/model"
)

func runExample(t *testing.T, workers int) *Result {
	t.Helper()
	dir := testutil.ExampleProject(t)

	conf, err := config.LoadProjectConfig(dir)
	require.NoError(t, err)

	m, err := manifest.Load(filepath.Join(dir, conf.Manifest))
	require.NoError(t, err)

	res, err := New(OptionsFromConfig(conf, workers)).Run(context.Background(), m)
	require.NoError(t, err)
	require.Empty(t, res.FileErrors)
	return res
}

func names[T model.Entity](list []T) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.Base().Name)
	}
	return out
}

func refNames(refs []model.ClassRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.ClassName)
	}
	return out
}

// TestExampleWorkflow runs the sample ExtJS project through extraction,
// resolution, rendering and verification
func TestExampleWorkflow(t *testing.T) {
	res := runExample(t, 1)
	m := res.Model

	assert.Equal(t, []string{
		"Ext.Component",
		"Ext.Panel",
		"Ext.Window",
		"Ext.util.Format",
		"Ext.util.Observable",
	}, m.ClassNames())

	t.Run("window inherits through the chain", func(t *testing.T) {
		win := m.Class("Ext.Window")
		require.NotNil(t, win)

		assert.True(t, win.Component)
		assert.Equal(t, "Ext.Panel", win.ParentClass)
		assert.Equal(t, []string{"Ext.util.Observable", "Ext.Component", "Ext.Panel"}, refNames(win.SuperClasses))

		// collapsible is hidden by Window
		assert.Equal(t, []string{"cls", "disabled", "id", "listeners", "modal", "title"}, names(win.Cfgs))
		assert.Equal(t, []string{"hidden"}, names(win.Properties))
		assert.Equal(t, []string{
			"addListener", "center", "collapse", "fireEvent", "hide",
			"purgeListeners", "render", "setTitle", "show",
		}, names(win.Methods))
		assert.Equal(t, []string{"collapse", "render"}, names(win.Events))

		for _, method := range win.Methods {
			switch method.Name {
			case "show", "center":
				assert.Equal(t, "Ext.Window", method.ClassName, method.Name)
			case "collapse":
				assert.Equal(t, "Ext.Panel", method.ClassName)
			case "fireEvent":
				assert.Equal(t, "Ext.util.Observable", method.ClassName)
				assert.Equal(t, "Boolean", method.ReturnType)
			}
		}
	})

	t.Run("static members stay with their class", func(t *testing.T) {
		obs := m.Class("Ext.util.Observable")
		require.NotNil(t, obs)
		assert.Contains(t, names(obs.Methods), "Ext.util.Observable.capture")
		assert.Equal(t, []string{"Ext.Component"}, refNames(obs.SubClasses))
		assert.False(t, obs.Component)
	})

	t.Run("constructor and singleton", func(t *testing.T) {
		cmp := m.Class("Ext.Component")
		require.NotNil(t, cmp)
		assert.True(t, cmp.HasConstructor)
		require.Len(t, cmp.Params, 1)
		assert.Equal(t, "config", cmp.Params[0].Name)
		assert.False(t, cmp.Component)

		format := m.Class("Ext.util.Format")
		require.NotNil(t, format)
		assert.True(t, format.Singleton)
		// @ignore drops internalTrim
		assert.Equal(t, []string{"ellipsis", "undef"}, names(format.Methods))
	})

	t.Run("links resolve against the current class", func(t *testing.T) {
		panel := m.Class("Ext.Panel")
		require.NotNil(t, panel)
		assert.Contains(t, panel.Description.Long, `href="output/Ext.Panel.html#Ext.Panel-collapse"`)
		assert.Contains(t, panel.Description.Long, `ext:cls="Ext.Window"`)
	})

	t.Run("package tree", func(t *testing.T) {
		util := m.Tree.Find("Ext.util")
		require.NotNil(t, util)
		assert.Equal(t, []string{"Ext.util.Format", "Ext.util.Observable"}, refNames(util.Classes))
		assert.Equal(t, []string{"Ext.Component", "Ext.Panel", "Ext.Window"}, refNames(m.Tree.Find("Ext").Classes))
	})

	t.Run("rendered output verifies clean", func(t *testing.T) {
		e := &emitter.JSONEmitter{}
		out := t.TempDir()

		_, err := emitter.Write(e, m, out)
		require.NoError(t, err)

		again := runExample(t, 4)
		files, err := emitter.Render(e, again.Model)
		require.NoError(t, err)

		report, err := verify.Compare(files, out, e.FileExtension())
		require.NoError(t, err)
		assert.True(t, report.Clean(), report.String())
	})
}
