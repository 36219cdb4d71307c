package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/zjrosen/reltime/internal/config"
	"github.com/zjrosen/reltime/internal/log"
	"github.com/zjrosen/reltime/internal/timeago"
	"github.com/zjrosen/reltime/internal/timestamp"
	"github.com/zjrosen/reltime/internal/tracing"
	uitimeago "github.com/zjrosen/reltime/internal/ui/timeago"
	"github.com/zjrosen/reltime/internal/watcher"
)

func newWatchCmd(f *flags) *cobra.Command {
	var altScreen bool
	cmd := &cobra.Command{
		Use:   "watch <timestamp>",
		Short: "Show a live, self-refreshing relative time",
		Long: `Show a live relative time that refreshes at the cadence of its unit.

The config file is watched and changes apply without a restart.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, f, args[0], altScreen)
		},
	}
	cmd.Flags().BoolVar(&altScreen, "alt-screen", false, "use the terminal's alternate screen")
	return cmd
}

func runWatch(cmd *cobra.Command, f *flags, input string, altScreen bool) error {
	l, err := f.load(cmd)
	if err != nil {
		return err
	}

	programOpts := []tea.ProgramOption{
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	}
	if altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	ts, parseErr := timestamp.Parse(input)
	if parseErr != nil {
		log.ErrorErr(log.CatFormat, "Invalid timestamp", parseErr, "input", input)
		if _, err := tea.NewProgram(uitimeago.NewInvalid(), programOpts...).Run(); err != nil {
			return fmt.Errorf("running program: %w", err)
		}
		return parseErr
	}

	tcfg, err := config.LoadTracing(l.viper)
	if err != nil {
		return err
	}
	provider, err := tracing.NewProvider(tcfg)
	if err != nil {
		return fmt.Errorf("creating tracer: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatUI, "Tracer shutdown failed", err)
		}
	}()

	session, err := timeago.New(ts, l.options, timeago.WithTracer(provider.Tracer()))
	if err != nil {
		return err
	}
	defer session.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := session.Run(ctx, clockwork.NewRealClock()); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	p := tea.NewProgram(uitimeago.New(ctx, session), append(programOpts, tea.WithContext(ctx))...)

	stopWatching := watchConfig(ctx, p, l)
	defer stopWatching()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// watchConfig forwards config file changes to p until ctx is done. A
// missing config directory only disables hot reload.
func watchConfig(ctx context.Context, p *tea.Program, l *loaded) func() {
	if l.path == "" {
		return func() {}
	}
	w, err := watcher.New(watcher.DefaultConfig(l.path))
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Config watcher unavailable", err)
		return func() {}
	}
	changes, err := w.Start()
	if err != nil {
		log.Warn(log.CatWatcher, "Config hot reload disabled", "path", l.path, "error", err)
		_ = w.Stop()
		return func() {}
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				opts, err := reload(l.path, l.overrides)
				if err != nil {
					p.Send(uitimeago.ConfigErrorMsg{Err: err})
					continue
				}
				log.Info(log.CatWatcher, "Config reloaded", "path", l.path)
				p.Send(uitimeago.ConfigReloadedMsg{Options: opts})
			}
		}
	}()

	return func() { _ = w.Stop() }
}
