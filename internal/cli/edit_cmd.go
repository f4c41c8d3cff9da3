package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/mindcanvas/internal/cli/formatter"
	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/editor"
	"github.com/alexanderramin/mindcanvas/internal/sample"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	var withSample bool

	cmd := &cobra.Command{
		Use:   "edit [ID]",
		Short: "Open a map in the interactive canvas",
		Long: `Open a map in the interactive canvas.

With --sample the demonstration map is opened without storing it; saving
it (ctrl+s) creates it as a new map.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if withSample {
				if len(args) > 0 {
					return fmt.Errorf("--sample cannot be combined with a map ID")
				}
				now := time.Now().UTC()
				m := &domain.MindMap{
					Name:      sample.Name,
					Root:      sample.MindMap(),
					Viewport:  domain.DefaultViewport(),
					CreatedAt: now,
					UpdatedAt: now,
				}
				return runEditor(ctx, app, m, false)
			}

			if len(args) == 0 {
				return fmt.Errorf("map ID is required (or use --sample)")
			}
			m, err := app.MindMaps.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if m.Root == nil {
				return fmt.Errorf("map %s has no nodes", m.DisplayID())
			}
			if err := runEditor(ctx, app, m, true); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Closed "+m.Name))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withSample, "sample", false, "Open the demonstration map")

	return cmd
}

// runEditor opens m in the canvas and returns once the user quits. stored
// reports whether m already exists in the database.
func runEditor(ctx context.Context, app *App, m *domain.MindMap, stored bool) error {
	ed := editor.New(m,
		editor.WithGeometry(app.geometry()),
		editor.WithLogger(app.logger().With("map_id", m.ID)),
	)
	defer ed.Close()

	model := newCanvasModel(ctx, app.MindMaps, ed, stored)
	if err := app.runProgram(model); err != nil {
		return fmt.Errorf("running canvas: %w", err)
	}
	return model.saveErr
}
