package main

import (
	"github.com/spf13/cobra"

	"github.com/litescript/ls-starfield/internal/window"
)

var windowOpts struct {
	width  int
	height int
	title  string
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Open the star field in a desktop window",
	Long: `Open the star field in a resizable desktop window.

Key bindings:
  T           Toggle dark/light theme
  Space       Launch a shooting star
  P           Pause
  I           Show frame info
  Q, Escape   Quit`,
	RunE: runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)

	windowCmd.Flags().IntVar(&windowOpts.width, "width", window.DefaultWidth, "Initial window width in pixels")
	windowCmd.Flags().IntVar(&windowOpts.height, "height", window.DefaultHeight, "Initial window height in pixels")
	windowCmd.Flags().StringVar(&windowOpts.title, "title", window.DefaultTitle, "Window title")
}

func runWindow(cmd *cobra.Command, args []string) error {
	b, src, err := newBackdrop()
	if err != nil {
		return err
	}
	defer stopSource(src)

	opts := window.Options{
		Width:  windowOpts.width,
		Height: windowOpts.height,
		Title:  windowOpts.title,
		Logger: logger,
	}
	logger.Info("opening %dx%d window", opts.Width, opts.Height)
	return window.Run(window.NewGame(b, opts), opts)
}
