// Package manifest loads the list of source files to document.
//
// Two formats are accepted. The XML form used by existing ExtDoc projects:
//
//	<doc>
//	  <source>
//	    <file src="widgets/Panel.js"/>
//	  </source>
//	</doc>
//
// and a YAML form:
//
//	files:
//	  - widgets/Panel.js
//
// Relative paths are resolved against the manifest's directory.
package manifest

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for a manifest that cannot be parsed
var ErrInvalid = errors.New("invalid manifest")

// Manifest is the ordered list of source files for one run
type Manifest struct {
	// Path of the manifest file itself
	Path string `yaml:"-"`

	// Files in processing order, resolved to paths usable from the working dir
	Files []string `yaml:"files"`
}

type xmlDoc struct {
	XMLName xml.Name  `xml:"doc"`
	Source  xmlSource `xml:"source"`
}

type xmlSource struct {
	Files []xmlFile `xml:"file"`
}

type xmlFile struct {
	Src string `xml:"src,attr"`
}

// Load reads and parses the manifest at path
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var files []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		files, err = parseYAML(data)
	default:
		files, err = parseXML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}

	return resolve(path, files), nil
}

// FromFiles builds a manifest from an explicit file list, relative to dir
func FromFiles(dir string, files ...string) *Manifest {
	return resolve(filepath.Join(dir, "manifest"), files)
}

func parseXML(data []byte) ([]string, error) {
	var doc xmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	files := make([]string, 0, len(doc.Source.Files))
	for i, f := range doc.Source.Files {
		src := strings.TrimSpace(f.Src)
		if src == "" {
			return nil, fmt.Errorf("file entry %d has no src attribute", i+1)
		}
		files = append(files, src)
	}
	return files, nil
}

func parseYAML(data []byte) ([]string, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	files := make([]string, 0, len(m.Files))
	for i, f := range m.Files {
		src := strings.TrimSpace(f)
		if src == "" {
			return nil, fmt.Errorf("file entry %d is empty", i+1)
		}
		files = append(files, src)
	}
	return files, nil
}

func resolve(path string, files []string) *Manifest {
	base := filepath.Dir(path)
	m := &Manifest{Path: path, Files: make([]string, 0, len(files))}
	for _, f := range files {
		if !filepath.IsAbs(f) {
			f = filepath.Join(base, filepath.FromSlash(f))
		}
		m.Files = append(m.Files, f)
	}
	return m
}

// Dir returns the directory the manifest's relative paths are resolved from
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}
