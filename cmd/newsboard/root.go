package main

import (
	"github.com/spf13/cobra"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/chart"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/middleware"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/service"
)

// renderFlags are shared by the subcommands that draw charts.
type renderFlags struct {
	in      string
	format  string
	width   int
	height  int
	isolate bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.in, "in", "i", "", "HTML page with embedded payloads (required)")
	cmd.Flags().IntVar(&f.width, "width", chart.DefaultWidth, "chart width in pixels")
	cmd.Flags().IntVar(&f.height, "height", chart.DefaultHeight, "chart height in pixels")
	cmd.Flags().BoolVar(&f.isolate, "isolate", false, "draw each chart independently of failures in the others")
	_ = cmd.MarkFlagRequired("in")
}

func (f *renderFlags) service() (*service.DashboardService, error) {
	format, err := chart.ParseFormat(f.format)
	if err != nil {
		return nil, err
	}
	return service.NewDashboardService(nil, service.RenderOptions{
		Format:       format,
		Width:        f.width,
		Height:       f.height,
		IsolateSlots: f.isolate,
	}, middleware.Logger), nil
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "newsboard",
		Short: "Render analytics dashboard charts",
		Long: `newsboard draws the analytics charts of a dashboard page.

The page carries its chart data as JSON in elements with the ids
sentiment-data, keyword-data, trend-data, category-data and channel-data.

Example usage:
  newsboard render --in stats.html --out rendered.html
  newsboard render --in stats.html --format chartjs
  newsboard charts --in stats.html --dir charts/ --format png`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			middleware.InitLoggerTo(cmd.ErrOrStderr(), logLevel, "newsboard-cli")
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newRenderCmd(), newChartsCmd())
	return root
}
