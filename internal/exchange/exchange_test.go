package exchange

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/mindtree"
	"github.com/alexanderramin/mindcanvas/internal/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMap() *domain.MindMap {
	return &domain.MindMap{
		ID:       "map-1",
		Name:     sample.Name,
		Root:     sample.MindMap(),
		Viewport: domain.Viewport{Scale: 1.2, TranslateX: 10, TranslateY: -5},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"yaml": FormatYAML, "YML": FormatYAML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("map.JSON"))
	assert.Equal(t, FormatYAML, FormatForPath("map.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("map"))
}

func TestYAMLExport_LeavesOmitChildren(t *testing.T) {
	out, err := Marshal(FromMindMap(sampleMap()), FormatYAML)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "name: "+sample.Name)
	assert.Contains(t, text, "id: cost")
	assert.Contains(t, text, "scale: 1.2")
	assert.NotContains(t, text, "children: []")
}

func TestImportExport_PreservesTree(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			src := sampleMap()
			out, err := Marshal(FromMindMap(src), format)
			require.NoError(t, err)

			doc, err := Unmarshal(out, format)
			require.NoError(t, err)
			require.Empty(t, Validate(doc))

			m := ToMindMap(doc)
			assert.NotEqual(t, src.ID, m.ID)
			assert.Equal(t, src.Name, m.Name)
			assert.Equal(t, src.Viewport, m.Viewport)

			want, got := mindtree.Flatten(src.Root), mindtree.Flatten(m.Root)
			require.Len(t, got, len(want))
			for i := range want {
				assert.Equal(t, want[i].ID, got[i].ID)
				assert.Equal(t, want[i].Title, got[i].Title)
				assert.Equal(t, want[i].X, got[i].X)
				assert.Equal(t, want[i].Y, got[i].Y)
				if want[i].Children == nil {
					assert.Nil(t, got[i].Children)
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	doc := &Document{
		Root: &NodeDocument{ID: "root", Children: []*NodeDocument{
			{ID: "a"},
			{ID: "a"},
			{ID: ""},
			nil,
		}},
		Viewport: &ViewportDoc{Scale: -1},
	}

	errs := Validate(doc)
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	assert.Contains(t, msgs, "name is required")
	assert.Contains(t, msgs, "viewport.scale must not be negative")
	assert.Contains(t, msgs, `root.children[1].id "a" is duplicated`)
	assert.Contains(t, msgs, "root.children[2].id is required")
	assert.Contains(t, msgs, "root.children[3]: node is empty")

	assert.Equal(t, []string{"name is required", "root is required"}, errorStrings(Validate(&Document{})))
}

func errorStrings(errs []error) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}

func TestToMindMap_DefaultViewport(t *testing.T) {
	m := ToMindMap(&Document{Name: "x", Root: &NodeDocument{ID: "root"}})
	assert.Equal(t, domain.DefaultViewport(), m.Viewport)
	assert.Nil(t, m.Root.Children)
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.json")
	out, err := Marshal(FromMindMap(sampleMap()), FormatJSON)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, out, 0o644))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, sample.Name, doc.Name)

	_, err = LoadDocument(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
