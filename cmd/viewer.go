package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mdx/internal/library"
	"github.com/desertthunder/mdx/internal/shared"
	"github.com/desertthunder/mdx/internal/ui"
	"github.com/urfave/cli/v3"
)

// Viewer launches the interactive library viewer over an exported JSON file.
func (r *Runner) Viewer(ctx context.Context, cmd *cli.Command) error {
	libraryPath := cmd.String("library")
	if libraryPath == "" {
		libraryPath = r.config.Viewer.LibraryPath
	}
	if libraryPath == "" {
		return fmt.Errorf("%w: provide --library or set viewer.library_path in config.toml", shared.ErrMissingArgument)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/mdx-viewer.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	var model *ui.Model
	lib, err := library.Load(libraryPath)
	if err != nil {
		r.logger.Error("failed to load library", "path", libraryPath, "error", err)
		model = ui.NewErrorModel(err)
	} else {
		r.logger.Info("library loaded", "path", libraryPath, "entries", lib.Len())
		model = ui.NewModel(lib)
	}

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running viewer: %w", err)
	}

	return nil
}
