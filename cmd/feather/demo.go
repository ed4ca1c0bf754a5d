package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/feather-dev/feather/internal/demo"
	"github.com/feather-dev/feather/pkg/dom"
	"github.com/feather-dev/feather/pkg/feather"
)

func demoCmd(g *globalFlags) *cobra.Command {
	var (
		clicks int
		pretty bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render the counter application offline",
		Long: `Mount the counter into an in-memory document, click it, and print the
resulting tree.

Negative --clicks press the decrement button instead.

Examples:
  feather demo
  feather demo --clicks=3 --pretty
  feather demo --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())
			return runDemo(cmd.OutOrStdout(), logger, cfg.Options(logger, nil), clicks, pretty, asJSON)
		},
	}

	cmd.Flags().IntVarP(&clicks, "clicks", "n", 0, "Clicks on + (or - when negative) before printing")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the HTML output")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the JSON snapshot instead of HTML")

	return cmd
}

func runDemo(w io.Writer, logger *slog.Logger, opts feather.Options, clicks int, pretty, asJSON bool) error {
	doc := dom.NewDocument()
	root := feather.MountWith(opts, doc.Body(), demo.Counter(func(msg string) {
		logger.Info("notify", "message", msg)
	}), nil)
	defer root.Unmount()

	rec := dom.NewRecorder(doc)
	defer rec.Stop()

	label := "+"
	if clicks < 0 {
		label, clicks = "-", -clicks
	}
	btn := demo.FindButton(root.Node(), label)
	for i := 0; i < clicks; i++ {
		root.Dispatch(&dom.Event{Type: "click", Target: btn})
	}
	logger.Debug("demo rendered", "renders", root.Renders(), "mutations", len(rec.Mutations()))

	if asJSON {
		data, err := json.MarshalIndent(root.Node().Snapshot(), "", "  ")
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	if err := dom.WriteHTML(w, root.Node(), dom.HTMLConfig{Pretty: pretty}); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	_, err := fmt.Fprintln(w)
	return err
}
