// Package main is the interactive mouthpiece inventory client.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atinyakov/mouthpiecer/internal/client/choices"
	"github.com/atinyakov/mouthpiecer/internal/client/knack"
	"github.com/atinyakov/mouthpiecer/internal/client/menu"
	"github.com/atinyakov/mouthpiecer/internal/client/prompt"
	"github.com/atinyakov/mouthpiecer/internal/client/render"
	"github.com/atinyakov/mouthpiecer/internal/client/session"
	"github.com/atinyakov/mouthpiecer/internal/client/workflow"
	"github.com/atinyakov/mouthpiecer/internal/config"
	"github.com/atinyakov/mouthpiecer/internal/logger"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// exitInterrupted is the conventional status of a process stopped by Ctrl-C.
const exitInterrupted = 130

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "mouthpiecer",
		Short:         "Mouthpiecer manages your mouthpiece collection",
		Args:          cobra.NoArgs,
		Version:       fmt.Sprintf("%s (built %s)", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A")),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.Load(configFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), opts, os.Stdin, os.Stdout)
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration file (default $MOUTHPIECER_CONFIG)")
	return root
}

// run wires the client together and blocks in the main menu.
func run(ctx context.Context, opts *config.Options, in, out *os.File) error {
	var outputs []string
	if opts.LogFile != "" {
		outputs = append(outputs, opts.LogFile)
	}
	log := logger.New(outputs...)
	if err := log.Init(opts.LogLevel); err != nil {
		return err
	}
	defer func() { _ = log.Log.Sync() }()

	client, err := knack.NewFromOptions(opts, log.Log)
	if err != nil {
		return err
	}

	console, release, err := prompt.Open(in, out)
	if err != nil {
		return err
	}
	defer func() { _ = release() }()

	p := prompt.New(console)
	r := render.New(console)
	ctl := workflow.New(workflow.Deps{
		Session:  session.New(),
		Records:  client,
		Accounts: client,
		Makes:    choices.NewRegistry(client, log.Log),
		Prompter: p,
		Renderer: r,
		Log:      log.Log,
	})

	log.Log.Info("client started", zap.String("base_url", opts.BaseURL), zap.String("app_id", opts.AppID))
	err = menu.New(ctl, p, r, log.Log).Run(ctx)
	if err == nil {
		r.Info("Bye")
	}
	return err
}

func main() {
	err := newRootCmd().ExecuteContext(context.Background())
	switch {
	case err == nil:
	case errors.Is(err, prompt.ErrInterrupted):
		os.Exit(exitInterrupted)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
