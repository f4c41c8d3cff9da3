package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/alexanderramin/mindcanvas/internal/config"
	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/editor"
	"github.com/alexanderramin/mindcanvas/internal/repository"
	"github.com/alexanderramin/mindcanvas/internal/service"
	"github.com/alexanderramin/mindcanvas/internal/teatest"
	"github.com/alexanderramin/mindcanvas/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteMindMapRepo(database)

	return &App{
		MindMaps: service.NewMindMapService(repo, testutil.NewTestUoW(t, database)),
		Config:   config.Default(t.TempDir()),
		RunProgram: func(tea.Model) error {
			t.Fatalf("unexpected canvas launch")
			return nil
		},
	}
}

// seedScenario stores root -> A -> (B, C) and returns the stored map.
func seedScenario(t *testing.T, app *App) *domain.MindMap {
	t.Helper()
	m, err := app.MindMaps.Create(context.Background(), "Scenario", testutil.ScenarioTree())
	require.NoError(t, err)
	return m
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// newTestCanvas opens m in a canvas driven synchronously at 100x30 cells.
func newTestCanvas(t *testing.T, app *App, m *domain.MindMap, stored bool) (*teatest.Driver, *canvasModel) {
	t.Helper()
	ed := editor.New(m, editor.WithGeometry(app.geometry()))
	t.Cleanup(ed.Close)

	model := newCanvasModel(context.Background(), app.MindMaps, ed, stored)
	d := teatest.New(t, model, teatest.WithSize(100, 30))
	d.DrainInit()
	return d, model
}
