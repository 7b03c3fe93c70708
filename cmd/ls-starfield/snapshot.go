package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-starfield/internal/backdrop"
	"github.com/litescript/ls-starfield/internal/canvas"
	"github.com/litescript/ls-starfield/internal/config"
)

const (
	fallbackCols = 80
	fallbackRows = 24
)

var snapshotOpts struct {
	width  int
	height int
	frames int
	plain  bool
	meteor bool
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print a single frame as text",
	Long: `Advance the animation a number of frames and print the last one.

The size defaults to the terminal size, or 80x24 when stdout is not a
terminal. Colors are emitted only when stdout is a terminal and --plain is
not set.`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().IntVar(&snapshotOpts.width, "width", 0, "Width in terminal cells (default: terminal width)")
	snapshotCmd.Flags().IntVar(&snapshotOpts.height, "height", 0, "Height in terminal cells (default: terminal height)")
	snapshotCmd.Flags().IntVar(&snapshotOpts.frames, "frames", 1, "Frames to advance before printing")
	snapshotCmd.Flags().BoolVar(&snapshotOpts.plain, "plain", false, "Print glyphs without colors")
	snapshotCmd.Flags().BoolVar(&snapshotOpts.meteor, "meteor", false, "Launch a shooting star before the first frame")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if snapshotOpts.frames < 1 {
		return errors.New("--frames must be at least 1")
	}

	fd := int(os.Stdout.Fd())
	isTTY := term.IsTerminal(fd)
	cols, rows := snapshotOpts.width, snapshotOpts.height
	if cols <= 0 || rows <= 0 {
		tc, tr := terminalSize(fd, isTTY)
		if cols <= 0 {
			cols = tc
		}
		if rows <= 0 {
			rows = tr
		}
	}

	b, src, err := newBackdrop()
	if err != nil {
		return err
	}
	defer stopSource(src)

	grid := canvas.NewGrid(cols, rows, cfg.Render.CellWidth, cfg.Render.CellHeight)
	if err := renderSnapshot(b, grid, cfg, time.Now(), snapshotOpts.frames, snapshotOpts.meteor); err != nil {
		return err
	}

	styled := isTTY && !snapshotOpts.plain
	return writeGrid(cmd.OutOrStdout(), grid, styled)
}

// renderSnapshot mounts b on grid, draws frames frames one frame interval
// apart starting at start, and unmounts.
func renderSnapshot(b *backdrop.Backdrop, grid *canvas.Grid, c *config.Config, start time.Time, frames int, meteor bool) error {
	w, h := grid.Bounds()
	if !b.Mount(w, h, start) {
		return fmt.Errorf("snapshot size %.0fx%.0f px is empty", w, h)
	}
	defer b.Unmount()

	if meteor {
		if _, err := b.SpawnNow(start); err != nil {
			return err
		}
	}

	now := start
	for i := 0; i < frames; i++ {
		now = now.Add(c.FrameInterval())
		b.Frame(now, grid)
	}

	st := b.Stats()
	cols, rows := grid.Size()
	logger.Debug("snapshot %dx%d cells: %d stars, %d meteors after %d frames",
		cols, rows, st.Stars, st.Meteors, st.Frames)
	return nil
}

func writeGrid(w io.Writer, grid *canvas.Grid, styled bool) error {
	_, err := fmt.Fprintln(w, grid.Render(styled))
	return err
}

func terminalSize(fd int, isTTY bool) (int, int) {
	if !isTTY {
		return fallbackCols, fallbackRows
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return fallbackCols, fallbackRows
	}
	// Leave the last row for the shell prompt.
	return cols, rows - 1
}
