package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-starfield/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Full-screen terminal star field (default)",
	Long: `Run the star field full-screen in the terminal.

Key bindings:
  t           Toggle dark/light theme
  space, s    Launch a shooting star
  p           Pause
  ?           Show help
  q, esc      Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal; use the snapshot command instead")
	}
	// Log lines would corrupt the alt screen.
	if globalOpts.logFile == "" {
		logger.SetOutput(io.Discard)
	}

	b, src, err := newBackdrop()
	if err != nil {
		return err
	}
	defer stopSource(src)

	model := ui.New(b, ui.Options{
		FrameInterval: cfg.FrameInterval(),
		CellWidth:     cfg.Render.CellWidth,
		CellHeight:    cfg.Render.CellHeight,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	b.Unmount()
	if err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
