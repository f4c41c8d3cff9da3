package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/mindcanvas/internal/cli/formatter"
	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/exchange"
	"github.com/alexanderramin/mindcanvas/internal/sample"
	"github.com/spf13/cobra"
)

func newNewCmd(app *App) *cobra.Command {
	var withSample, edit bool

	cmd := &cobra.Command{
		Use:   "new [NAME]",
		Short: "Create a mind map",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			name := strings.Join(args, " ")
			if name == "" && withSample {
				name = sample.Name
			}
			if name == "" {
				if !app.interactive() {
					return fmt.Errorf("map name is required")
				}
				if err := mapNameForm(&name).Run(); err != nil {
					return err
				}
			}

			var root *domain.MindNode
			if withSample {
				root = sample.MindMap()
			}
			m, err := app.MindMaps.Create(ctx, name, root)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSaved("Created", m))

			if edit {
				return runEditor(ctx, app, m, true)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withSample, "sample", false, "Seed the map with the demonstration tree")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Open the map in the canvas after creating it")

	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List mind maps",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			maps, err := app.MindMaps.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMapList(maps))
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a map's details and node tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.MindMaps.Resolve(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMapShow(m))
			return nil
		},
	}
}

func newRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a map",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := app.MindMaps.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			if err := app.MindMaps.Rename(ctx, m.ID, name); err != nil {
				return err
			}
			m.Name = strings.TrimSpace(name)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSaved("Renamed", m))
			return nil
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a map and its nodes",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := app.MindMaps.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				confirmed := false
				if err := confirmDeleteForm(m.Name, &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Kept "+m.Name))
					return nil
				}
			}

			if err := app.MindMaps.Delete(ctx, m.ID); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSaved("Deleted", m))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var format exchange.Format
	var output string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Write a map as YAML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := app.MindMaps.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if output == "" {
				return app.MindMaps.Export(ctx, m.ID, format, cmd.OutOrStdout())
			}

			if !cmd.Flags().Changed("format") {
				format = exchange.FormatForPath(output)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := app.MindMaps.Export(ctx, m.ID, format, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %s to %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(m.Name), output)
			return nil
		},
	}

	addFormatFlag(cmd.Flags(), &format, exchange.FormatYAML)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create a map from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			result, err := app.MindMaps.Import(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSaved("Imported", result.Map))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("  %d nodes", result.NodeCount)))

			if edit {
				return runEditor(ctx, app, result.Map, true)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Open the map in the canvas after importing it")

	return cmd
}
