package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/mindcanvas/internal/editor"
	"github.com/alexanderramin/mindcanvas/internal/mindtree"
	"github.com/alexanderramin/mindcanvas/internal/repository"
	"github.com/alexanderramin/mindcanvas/internal/sample"
	"github.com/alexanderramin/mindcanvas/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "new", "Trip plan")
	require.NoError(t, err)
	assert.Contains(t, out, "Created")
	assert.Contains(t, out, "Trip plan")

	maps, err := app.MindMaps.List(context.Background())
	require.NoError(t, err)
	require.Len(t, maps, 1)
	assert.Equal(t, 1, maps[0].NodeCount)
}

func TestNewCmd_Sample(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "new", "--sample")
	require.NoError(t, err)

	maps, err := app.MindMaps.List(context.Background())
	require.NoError(t, err)
	require.Len(t, maps, 1)
	assert.Equal(t, sample.Name, maps[0].Map.Name)
	assert.Equal(t, len(mindtree.Flatten(sample.MindMap())), maps[0].NodeCount)
}

func TestNewCmd_NameRequiredWhenNotInteractive(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "new")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map name is required")
}

func TestListCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No maps yet")

	m := seedScenario(t, app)
	out, err = executeCmd(t, app, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "Scenario")
	assert.Contains(t, out, m.ID[:8])
}

func TestShowCmd(t *testing.T) {
	app := testApp(t)
	m := seedScenario(t, app)

	out, err := executeCmd(t, app, "show", m.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "SCENARIO")
	assert.Contains(t, out, "└─ C")
	assert.Contains(t, out, "(400, 140)")

	_, err = executeCmd(t, app, "show", "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRenameCmd(t *testing.T) {
	app := testApp(t)
	m := seedScenario(t, app)

	out, err := executeCmd(t, app, "rename", "scenario", "Road", "map")
	require.NoError(t, err)
	assert.Contains(t, out, "Road map")

	got, err := app.MindMaps.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Road map", got.Name)
}

func TestDeleteCmd(t *testing.T) {
	app := testApp(t)
	m := seedScenario(t, app)

	out, err := executeCmd(t, app, "delete", m.ID, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")

	_, err = app.MindMaps.Get(context.Background(), m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestExportCmd_Stdout(t *testing.T) {
	app := testApp(t)
	m := seedScenario(t, app)

	out, err := executeCmd(t, app, "export", m.ID, "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Name string `json:"name"`
		Root struct {
			ID       string `json:"id"`
			Children []any  `json:"children"`
		} `json:"root"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Scenario", doc.Name)
	assert.Equal(t, "root", doc.Root.ID)
	assert.Len(t, doc.Root.Children, 1)
}

func TestExportCmd_BadFormat(t *testing.T) {
	app := testApp(t)
	m := seedScenario(t, app)

	_, err := executeCmd(t, app, "export", m.ID, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestExportImportCmd_File(t *testing.T) {
	app := testApp(t)
	m := seedScenario(t, app)
	path := filepath.Join(t.TempDir(), "scenario.json")

	_, err := executeCmd(t, app, "export", m.ID, "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data), "format follows the .json extension")

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")
	assert.Contains(t, out, "4 nodes")

	maps, err := app.MindMaps.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, maps, 2)
}

func TestEditCmd_DrivesCanvas(t *testing.T) {
	app := testApp(t)
	m := seedScenario(t, app)

	ran := false
	app.RunProgram = func(model tea.Model) error {
		ran = true
		d := teatest.New(t, model, teatest.WithSize(100, 30))
		d.PressKey('a')
		d.PressType(tea.KeyCtrlU)
		d.Type("Idea")
		d.PressEnter()
		d.PressKey('q')
		assert.True(t, d.Quitting)
		return nil
	}

	out, err := executeCmd(t, app, "edit", m.ID[:8])
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Contains(t, out, "Closed Scenario")

	got, err := app.MindMaps.Get(context.Background(), m.ID)
	require.NoError(t, err)
	require.Len(t, got.Root.Children, 2)
	assert.Equal(t, "Idea", got.Root.Children[1].Title)
}

func TestEditCmd_RequiresTarget(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "edit")
	require.Error(t, err)

	_, err = executeCmd(t, app, "edit", "x", "--sample")
	require.Error(t, err)
}

func TestGeometryFollowsConfig(t *testing.T) {
	app := testApp(t)
	app.Config.Canvas.CellWidth = 10
	app.Config.Canvas.CellHeight = 20

	g := app.geometry()
	assert.Equal(t, 10.0, g.CellWidth)
	assert.Equal(t, 20.0, g.CellHeight)
	assert.Equal(t, editor.DefaultGeometry().MenuWidth, g.MenuWidth)
}
