package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/agiangrant/stagelayout"
	"github.com/agiangrant/stagelayout/config"
)

const appName = "stagectl"

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := envFromContext(ctx)

	if env.CfgFile = cmd.String("config"); env.CfgFile != "" {
		cfg, err := config.Load(env.CfgFile)
		if err != nil {
			return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
		}
		env.Cfg = cfg
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.Level = "debug"
	}
	if err := env.Cfg.Validate(); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}

	errOut := cmd.ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}
	// keep stdout for command output
	env.Log = env.Cfg.Logging.LoggerTo(errOut, errOut)

	env.Log.Debug("Program started", zap.Strings("args", cmd.Args().Slice()), zap.String("ver", stagelayout.Version), zap.String("runtime", runtime.Version()))
	if env.CfgFile == "" {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	env.Log.Debug("Program ended", zap.Duration("elapsed", env.uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	_ = env.Log.Sync()
	return nil
}

// Errors are regular errors returned from subcommands, logged once here.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := envFromContext(ctx)
	if env.Log != nil && env.Cfg.Logging.Level != "none" {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func newApp() *cli.Command {
	sizeFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.FloatFlag{Name: "width", Aliases: []string{"W"}, Usage: "window `WIDTH` in pixels (default from configuration)"},
			&cli.FloatFlag{Name: "height", Aliases: []string{"H"}, Usage: "window `HEIGHT` in pixels (default from configuration)"},
		}
	}

	return &cli.Command{
		Name:            appName,
		Usage:           "stages layout scenes and inspects the result",
		Version:         stagelayout.Version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (TOML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log every staged node"},
		},
		Commands: []*cli.Command{
			{
				Name:         "stage",
				Usage:        "Stages a scene and prints the staged tree",
				OnUsageError: usageErrorHandler,
				Action:       runStage,
				Flags: append(sizeFlags(),
					&cli.BoolFlag{Name: "instructions", Aliases: []string{"i"}, Usage: "also print the render instructions"},
				),
				ArgsUsage: "SCENE",
			},
			{
				Name:         "hit",
				Usage:        "Stages a scene and reports the node under a point",
				OnUsageError: usageErrorHandler,
				Action:       runHit,
				Flags:        sizeFlags(),
				ArgsUsage:    "SCENE X Y",
			},
			{
				Name:         "validate",
				Usage:        "Checks a scene for geometry the engine cannot stage",
				OnUsageError: usageErrorHandler,
				Action:       runValidate,
				ArgsUsage:    "SCENE",
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (TOML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "[DESTINATION]",
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}
