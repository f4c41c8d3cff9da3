package cli

import (
	"io"
	"log/slog"

	"github.com/alexanderramin/mindcanvas/internal/config"
	"github.com/alexanderramin/mindcanvas/internal/editor"
	"github.com/alexanderramin/mindcanvas/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the services and settings shared by CLI commands.
type App struct {
	MindMaps service.MindMapService
	Config   *config.Config
	Logger   *slog.Logger

	// IsInteractive reports whether stdin is a terminal; prompts are only
	// shown when it returns true.
	IsInteractive func() bool

	// RunProgram runs a full-screen bubbletea model. Nil uses
	// runCanvasProgram; tests swap in a synchronous driver.
	RunProgram func(model tea.Model) error
}

// NewRootCmd creates the top-level "mindcanvas" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "mindcanvas",
		Short:         "Terminal mind-map editor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newNewCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newEditCmd(app),
		newRenameCmd(app),
		newDeleteCmd(app),
		newExportCmd(app),
		newImportCmd(app),
	)

	return root
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

func (app *App) logger() *slog.Logger {
	if app.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return app.Logger
}

// geometry returns the canvas geometry with the configured cell size.
func (app *App) geometry() editor.Geometry {
	g := editor.DefaultGeometry()
	if app.Config != nil {
		g.CellWidth = float64(app.Config.Canvas.CellWidth)
		g.CellHeight = float64(app.Config.Canvas.CellHeight)
	}
	return g
}

func (app *App) runProgram(model tea.Model) error {
	if app.RunProgram != nil {
		return app.RunProgram(model)
	}
	return runCanvasProgram(model)
}

func runCanvasProgram(model tea.Model) error {
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
