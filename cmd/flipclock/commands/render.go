package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-drift/flipclock/internal/config"
	"github.com/go-drift/flipclock/pkg/animation"
	"github.com/go-drift/flipclock/pkg/engine"
	"github.com/go-drift/flipclock/pkg/flip"
	"github.com/go-drift/flipclock/pkg/rendering"
)

// maxRenderFrames bounds a render so a misconfigured duration cannot fill
// the disk.
const maxRenderFrames = 10000

// epoch is the start of the manual clock used for deterministic renders.
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	From     int           `help:"Value shown before the transition" default:"5"`
	To       int           `help:"Value shown after the transition" default:"4"`
	FPS      int           `name:"fps" help:"Frames per second of simulated time" default:"60"`
	Out      string        `short:"o" help:"Output directory for frame PNGs" default:"./frames" type:"path"`
	Duration time.Duration `help:"Override the transition duration (0 keeps the configured one)"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	resolved, err := root.Resolve()
	if err != nil {
		return err
	}
	if r.Duration != 0 {
		resolved.Theme.Duration = r.Duration
	}
	paths, timeline, err := RenderFrames(resolved, RenderOptions{From: r.From, To: r.To, FPS: r.FPS, Dir: r.Out})
	if err != nil {
		return err
	}
	g.Logger.Info("Rendered transition",
		"frames", len(paths),
		"dir", r.Out,
		"dropped", timeline.DroppedFrames)
	fmt.Fprintf(g.Stdout, "wrote %d frames to %s\n", len(paths), r.Out)
	return nil
}

// RenderOptions selects the transition RenderFrames draws.
type RenderOptions struct {
	From int
	To   int
	FPS  int
	Dir  string
}

// RenderFrames paints the static From value, then every frame of the
// transition to To, advancing a manual clock by 1/FPS between frames. Each
// frame is written to Dir as frame_NNN.png.
func RenderFrames(resolved *config.Resolved, opts RenderOptions) ([]string, engine.FrameTimeline, error) {
	if opts.From < 0 || opts.To < 0 {
		return nil, engine.FrameTimeline{}, fmt.Errorf("values must not be negative, got %d and %d", opts.From, opts.To)
	}
	if opts.FPS <= 0 {
		return nil, engine.FrameTimeline{}, fmt.Errorf("fps must be positive, got %d", opts.FPS)
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, engine.FrameTimeline{}, fmt.Errorf("create output dir: %w", err)
	}

	clock := animation.NewManualClock(epoch)
	step := time.Second / time.Duration(opts.FPS)
	// Frames slower than one output frame count as dropped.
	eng := engine.New(
		engine.WithBackground(resolved.Theme.Background),
		engine.WithClock(clock),
		engine.WithFrameTrace(maxRenderFrames, step),
	)
	digit, err := flip.New(flip.Config{Theme: resolved.Theme, Clock: clock, Scheduler: eng})
	if err != nil {
		return nil, engine.FrameTimeline{}, err
	}
	eng.SetRoot(digit)
	digit.SetValue(opts.From)

	canvas := rendering.NewRasterCanvas(resolved.Width, resolved.Height)

	var paths []string
	for i := 0; eng.NeedsFrame(); i++ {
		if i >= maxRenderFrames {
			return paths, eng.Timeline(), fmt.Errorf("transition did not finish within %d frames", maxRenderFrames)
		}
		if _, err := eng.StepFrame(canvas); err != nil {
			return paths, eng.Timeline(), err
		}
		path := filepath.Join(opts.Dir, fmt.Sprintf("frame_%03d.png", i))
		if err := writePNG(canvas, path); err != nil {
			return paths, eng.Timeline(), err
		}
		slog.Debug("Wrote frame", "path", path, "phase", digit.Phase().String(), "progress", digit.Progress())
		paths = append(paths, path)

		if i == 0 {
			digit.SetValue(opts.To)
			continue
		}
		clock.Advance(step)
	}
	return paths, eng.Timeline(), nil
}

func writePNG(canvas *rendering.RasterCanvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := canvas.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
