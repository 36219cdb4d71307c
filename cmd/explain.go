package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/zjrosen/reltime/internal/timeago"
	"github.com/zjrosen/reltime/internal/timestamp"
)

func newExplainCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <timestamp>",
		Short: "Show how a timestamp is resolved and how often it refreshes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, f, args[0])
		},
	}
}

func runExplain(cmd *cobra.Command, f *flags, input string) error {
	l, err := f.load(cmd)
	if err != nil {
		return err
	}
	now, err := f.clockNow()
	if err != nil {
		return err
	}
	ts, err := timestamp.Parse(input)
	if err != nil {
		return err
	}
	session, err := timeago.New(ts, l.options)
	if err != nil {
		return err
	}
	r := session.Evaluate(cmd.Context(), now)
	opts := session.Options()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"timestamp", session.DateTime()},
		{"now", timestamp.FromTime(now).ISO()},
		{"elapsed", humanize.RelTime(ts.Time(), now, "ago", "from now")},
		{"locale", session.Locale().String()},
		{"style", string(opts.Format.Style) + ", numeric " + string(opts.Format.Numeric)},
		{"round", string(opts.RoundStrategy)},
		{"magnitude", humanize.Comma(r.Magnitude)},
		{"unit", r.Unit.String()},
		{"cadence", fmt.Sprintf("every %s (%s ms)", r.Unit, humanize.Comma(r.Unit.Millis()))},
		{"text", r.Text},
	}
	for _, row := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}
