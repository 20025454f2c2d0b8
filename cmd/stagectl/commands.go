package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/agiangrant/stagelayout"
	"github.com/agiangrant/stagelayout/config"
	"github.com/agiangrant/stagelayout/layout"
	"github.com/agiangrant/stagelayout/scene"
)

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func loadScene(cmd *cli.Command) (*scene.Scene, error) {
	if cmd.NArg() < 1 {
		return nil, fmt.Errorf("missing SCENE argument")
	}
	s, err := scene.Load(cmd.Args().Get(0), nil)
	if err != nil {
		return nil, fmt.Errorf("unable to load scene: %w", err)
	}
	return s, nil
}

// stageScene stages s against the window size from the configuration, overridden
// by the width and height flags.
func stageScene(ctx context.Context, cmd *cli.Command, s *scene.Scene) (*stagelayout.Engine, []layout.Instruction, error) {
	env := envFromContext(ctx)

	e, err := stagelayout.NewEngine(env.Cfg, env.Log)
	if err != nil {
		return nil, nil, err
	}
	e.SetRoot(s.Root, s.Registry)

	w, h := e.Size()
	if cmd.IsSet("width") {
		w = float32(cmd.Float("width"))
	}
	if cmd.IsSet("height") {
		h = float32(cmd.Float("height"))
	}
	if err := e.Resize(w, h); err != nil {
		return nil, nil, err
	}

	out, err := e.Frame()
	if err != nil {
		return nil, nil, err
	}
	env.Log.Info("Scene staged",
		zap.String("scene", cmd.Args().Get(0)),
		zap.Int("nodes", s.Root.Count()),
		zap.Int("instructions", len(out)),
		zap.Float32("width", w),
		zap.Float32("height", h),
	)
	return e, out, nil
}

func runStage(ctx context.Context, cmd *cli.Command) error {
	s, err := loadScene(cmd)
	if err != nil {
		return err
	}
	e, out, err := stageScene(ctx, cmd, s)
	if err != nil {
		return err
	}

	w := stdout(cmd)
	sty := defaultStyles()
	fmt.Fprintln(w, renderTree(e.Staged(), s, sty))
	if cmd.Bool("instructions") {
		for _, inst := range out {
			fmt.Fprintln(w, describe(inst, s, sty))
		}
	}
	return nil
}

func runHit(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 3 {
		return fmt.Errorf("expected SCENE X Y, got %d arguments", cmd.NArg())
	}
	var pt [2]float32
	for i := range pt {
		v, err := strconv.ParseFloat(cmd.Args().Get(i+1), 32)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", cmd.Args().Get(i+1), err)
		}
		pt[i] = float32(v)
	}

	s, err := loadScene(cmd)
	if err != nil {
		return err
	}
	e, _, err := stageScene(ctx, cmd, s)
	if err != nil {
		return err
	}

	w := stdout(cmd)
	res := e.HitTest(pt[0], pt[1])
	if res == nil {
		fmt.Fprintf(w, "nothing at %g,%g\n", pt[0], pt[1])
		return nil
	}
	names := make([]string, len(res.Chain))
	for i, id := range res.Chain {
		names[i] = s.Name(id)
	}
	fmt.Fprintf(w, "target: %s\n", s.Name(res.Target))
	fmt.Fprintf(w, "area:   %s\n", formatRect(res.Area))
	fmt.Fprintf(w, "local:  %g,%g\n", res.LocalX, res.LocalY)
	fmt.Fprintf(w, "chain:  %s\n", strings.Join(names, " > "))
	return nil
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	s, err := loadScene(cmd)
	if err != nil {
		return err
	}
	w := stdout(cmd)
	path := cmd.Args().Get(0)

	verr := layout.Validate(s.Root)
	if verr == nil {
		fmt.Fprintf(w, "%s: ok (%d nodes)\n", path, s.Root.Count())
		return nil
	}
	errs := multierr.Errors(verr)
	sty := defaultStyles()
	for _, e := range errs {
		fmt.Fprintln(w, sty.Problem.Render(e.Error()))
	}
	envFromContext(ctx).Log.Debug("Scene rejected", zap.String("scene", path), zap.Int("problems", len(errs)))
	return fmt.Errorf("%s: %d problems found", path, len(errs))
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	cfg, state := env.Cfg, "actual"
	if cmd.Bool("default") {
		cfg, state = config.DefaultConfig(), "default"
	}

	fname := cmd.Args().Get(0)
	if len(fname) > 0 {
		if err := config.Save(fname, cfg); err != nil {
			return fmt.Errorf("unable to write configuration: %w", err)
		}
		env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))
		return nil
	}

	data, err := config.Dump(cfg)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}
	if _, err := stdout(cmd).Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
