package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitClassName(t *testing.T) {
	tests := []struct {
		name      string
		wantPkg   string
		wantShort string
	}{
		{"Ext.form.Field", "Ext.form", "Field"},
		{"Ext.Panel", "Ext", "Panel"},
		{"Ext", "", "Ext"},
		{".Hidden", "", "Hidden"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, short := SplitClassName(tt.name)
			assert.Equal(t, tt.wantPkg, pkg)
			assert.Equal(t, tt.wantShort, short)
		})
	}
}

func TestMember_SimpleName(t *testing.T) {
	assert.Equal(t, "show", (&Member{Name: "Ext.Panel.show"}).SimpleName())
	assert.Equal(t, "show", (&Member{Name: "show"}).SimpleName())
}

func TestDescription_Summary(t *testing.T) {
	assert.Equal(t, "short", Description{Long: "long", Short: "short"}.Summary())
	assert.Equal(t, "long", Description{Long: "long"}.Summary())
}

func TestModel_Class(t *testing.T) {
	m := &Model{Classes: []*DocClass{{ClassName: "A"}, {ClassName: "B"}}}
	assert.Equal(t, "B", m.Class("B").ClassName)
	assert.Nil(t, m.Class("C"))
	assert.Equal(t, []string{"A", "B"}, m.ClassNames())
}

func TestEntityInterface(t *testing.T) {
	entities := []Entity{
		&Cfg{Member: Member{Name: "c"}},
		&Property{Member: Member{Name: "p"}},
		&Method{Member: Member{Name: "m"}},
		&Event{Member: Member{Name: "e"}},
	}
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.Base().Name)
	}
	assert.Equal(t, []string{"c", "p", "m", "e"}, names)
}

func TestPackageTree(t *testing.T) {
	tree := NewPackageTree()
	tree.AddClass(&DocClass{ClassName: "Ext.util.JSON", ShortClassName: "JSON", PackageName: "Ext.util"})
	tree.AddClass(&DocClass{ClassName: "Ext.Ajax", ShortClassName: "Ajax", PackageName: "Ext"})
	tree.AddClass(&DocClass{ClassName: "Ext.data.Store", ShortClassName: "Store", PackageName: "Ext.data"})
	tree.Sort()

	var visited []string
	tree.Walk(func(pkg *Package, depth int) {
		visited = append(visited, pkg.FullName)
	})
	assert.Equal(t, []string{"", "Ext", "Ext.data", "Ext.util"}, visited)

	util := tree.Find("Ext.util")
	if assert.NotNil(t, util) {
		assert.Equal(t, "util", util.Name)
		assert.Equal(t, "JSON", util.Classes[0].ShortClassName)
	}
	assert.Nil(t, tree.Find("Ext.missing"))
}
