package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/reltime/internal/config"
	"github.com/zjrosen/reltime/internal/log"
	"github.com/zjrosen/reltime/internal/timeago"
	"github.com/zjrosen/reltime/internal/timestamp"
	uitimeago "github.com/zjrosen/reltime/internal/ui/timeago"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var version = "dev"

// flags holds the values of the shared command-line flags. Only flags the
// user changed become part of the override layer.
type flags struct {
	cfgFile     string
	debug       bool
	locales     []string
	allowFuture bool
	hideSeconds bool
	round       string
	style       string
	numeric     string
	pastText    string
	futureText  string
	element     bool
	now         string
}

// loaded is the configuration for one invocation.
type loaded struct {
	viper     *viper.Viper
	path      string
	overrides config.Options
	options   config.Resolved
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "reltime [flags] <timestamp>...",
		Short: "Localized relative time, like \"4 hours ago\"",
		Long: `reltime formats timestamps as localized relative time text.

Timestamps are ISO-8601 dates or date-times, or epoch milliseconds. The
options layer as defaults, then the config file and RELTIME_* environment,
then the flags given on the command line.`,
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return startLogging(f)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, f, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.cfgFile, "config", "c", "", "config file (default: ~/.config/reltime/config.yaml)")
	pf.BoolVar(&f.debug, "debug", false, "write a debug log (also RELTIME_DEBUG)")
	pf.StringSliceVarP(&f.locales, "locale", "l", nil, "preferred locale, repeatable, most preferred first")
	pf.BoolVar(&f.allowFuture, "allow-future", false, "render future timestamps as \"in ...\"")
	pf.BoolVar(&f.hideSeconds, "hide-seconds", true, "show second-level results as one minute")
	pf.StringVar(&f.round, "round", "", "rounding strategy: round, floor or ceil")
	pf.StringVar(&f.style, "style", "", "text style: long, short or narrow")
	pf.StringVar(&f.numeric, "numeric", "", "numeric mode: always or auto")
	pf.StringVar(&f.pastText, "past-text", "", "text for past second-level results while seconds are hidden")
	pf.StringVar(&f.futureText, "future-text", "", "text for future second-level results while seconds are hidden")
	pf.BoolVar(&f.element, "element", false, "also print the tooltip and ISO timestamp")
	pf.StringVar(&f.now, "now", "", "evaluate against this instant instead of the clock")

	root.AddCommand(newWatchCmd(f), newExplainCmd(f), newInitConfigCmd(f))
	return root
}

var logCleanup func()

func startLogging(f *flags) error {
	if !f.debug && os.Getenv("RELTIME_DEBUG") == "" {
		return nil
	}
	logPath := os.Getenv("RELTIME_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, "reltime")
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCleanup = cleanup
	log.Info(log.CatConfig, "reltime starting", "version", version, "logPath", logPath)
	return nil
}

func stopLogging() {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
		log.Reset()
	}
}

// overrides builds the flag layer from the flags set on cmd.
func (f *flags) overrides(cmd *cobra.Command) config.Options {
	changed := cmd.Flags().Changed
	var o config.Options
	if changed("locale") {
		o.Locales = f.locales
	}
	if changed("allow-future") {
		o.AllowFuture = config.Ptr(f.allowFuture)
	}
	if changed("hide-seconds") {
		o.HideSeconds = config.Ptr(f.hideSeconds)
	}
	if changed("round") {
		o.RoundStrategy = config.Ptr(f.round)
	}
	if changed("style") {
		o.Style = config.Ptr(f.style)
	}
	if changed("numeric") {
		o.Numeric = config.Ptr(f.numeric)
	}
	if changed("past-text") {
		o.HideSecondsText.Past = config.Ptr(f.pastText)
	}
	if changed("future-text") {
		o.HideSecondsText.Future = config.Ptr(f.futureText)
	}
	if changed("element") {
		o.TimeElement = config.Ptr(f.element)
	}
	return o
}

func (f *flags) configPath() string {
	if f.cfgFile != "" {
		return f.cfgFile
	}
	return config.DefaultPath()
}

// load reads the config file and environment and applies the flag layer.
// A missing file is only an error when --config named it.
func (f *flags) load(cmd *cobra.Command) (*loaded, error) {
	l := &loaded{path: f.configPath(), overrides: f.overrides(cmd)}
	if err := config.Validate(l.overrides); err != nil {
		return nil, err
	}

	v, err := readConfig(l.path, f.cfgFile != "")
	if err != nil {
		return nil, err
	}
	l.viper = v

	if l.options, err = resolve(v, l.overrides); err != nil {
		return nil, err
	}
	return l, nil
}

func readConfig(path string, required bool) (*viper.Viper, error) {
	v := config.NewViper()
	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !required && (errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			log.Debug(log.CatConfig, "No config file", "path", path)
			return v, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return v, nil
}

func resolve(v *viper.Viper, overrides config.Options) (config.Resolved, error) {
	ambient, err := config.Load(v)
	if err != nil {
		return config.Resolved{}, fmt.Errorf("loading config: %w", err)
	}
	return config.Resolve(config.Merge(config.Defaults(), ambient, overrides))
}

// reload re-reads path for the watch command, keeping the flag layer on top.
func reload(path string, overrides config.Options) (config.Resolved, error) {
	v, err := readConfig(path, false)
	if err != nil {
		return config.Resolved{}, err
	}
	return resolve(v, overrides)
}

// clockNow returns --now if set, otherwise the current time.
func (f *flags) clockNow() (time.Time, error) {
	if f.now == "" {
		return time.Now(), nil
	}
	ts, err := timestamp.Parse(f.now)
	if err != nil {
		return time.Time{}, fmt.Errorf("--now: %w", err)
	}
	return ts.Time(), nil
}

func runPrint(cmd *cobra.Command, f *flags, args []string) error {
	l, err := f.load(cmd)
	if err != nil {
		return err
	}
	now, err := f.clockNow()
	if err != nil {
		return err
	}

	// The one-shot output is plain text unless --element asks for more; the
	// time_element option only applies to the watch view.
	element := cmd.Flags().Changed("element") && f.element

	out := cmd.OutOrStdout()
	var invalid error
	for _, arg := range args {
		ts, err := timestamp.Parse(arg)
		if err != nil {
			log.ErrorErr(log.CatFormat, "Invalid timestamp", err, "input", arg)
			_, _ = fmt.Fprintln(out, uitimeago.InvalidText)
			invalid = errors.Join(invalid, err)
			continue
		}
		session, err := timeago.New(ts, l.options)
		if err != nil {
			return err
		}
		printResult(out, session, session.Evaluate(cmd.Context(), now), element)
	}
	return invalid
}

// printResult writes the text, and with element the tooltip and ISO form
// indented below it.
func printResult(w io.Writer, s *timeago.Session, r timeago.Result, element bool) {
	_, _ = fmt.Fprintln(w, r.Text)
	if element {
		_, _ = fmt.Fprintf(w, "  %s\n  %s\n", s.Title(), s.DateTime())
	}
}

// Execute runs the root command.
func Execute() error {
	root := newRootCmd()
	defer stopLogging()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
}
