// Package exchange converts mind maps to and from portable YAML and JSON
// documents.
package exchange

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts "yaml", "yml" or "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected yaml or json)", s)
	}
}

// FormatForPath picks a format from a file extension, defaulting to YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Document is the top-level structure of an exported map.
type Document struct {
	Name     string        `json:"name" yaml:"name"`
	Viewport *ViewportDoc  `json:"viewport,omitempty" yaml:"viewport,omitempty"`
	Root     *NodeDocument `json:"root" yaml:"root"`
}

// ViewportDoc is the saved zoom and pan.
type ViewportDoc struct {
	Scale      float64 `json:"scale" yaml:"scale"`
	TranslateX float64 `json:"translate_x" yaml:"translate_x"`
	TranslateY float64 `json:"translate_y" yaml:"translate_y"`
}

// NodeDocument is one node with its subtree.
type NodeDocument struct {
	ID       string          `json:"id" yaml:"id"`
	Title    string          `json:"title" yaml:"title"`
	X        float64         `json:"x" yaml:"x"`
	Y        float64         `json:"y" yaml:"y"`
	Children []*NodeDocument `json:"children,omitempty" yaml:"children,omitempty"`
}

// Marshal encodes doc in format.
func Marshal(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Unmarshal decodes a document in format.
func Unmarshal(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s document: %w", format, err)
	}
	return &doc, nil
}

// LoadDocument reads and parses the file at path, choosing the format from
// its extension.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, FormatForPath(path))
}
