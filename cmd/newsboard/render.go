package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var (
		flags renderFlags
		out   string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the charts of a page into it",
		Long: `Draw the charts of a page and write the rendered page.

Chart failures are logged to stderr; the page is still written.

Examples:
  newsboard render --in stats.html                     # SVG charts to stdout
  newsboard render --in stats.html --out out.html --format png
  newsboard render --in stats.html --format chartjs    # browser-side Chart.js calls`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := flags.service()
			if err != nil {
				return err
			}
			src, err := os.ReadFile(flags.in)
			if err != nil {
				return fmt.Errorf("read page: %w", err)
			}

			res, err := svc.RenderPage(cmd.Context(), src)
			if err != nil {
				return fmt.Errorf("render page: %w", err)
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(res.HTML)
				return err
			}
			if err := os.WriteFile(out, res.HTML, 0o644); err != nil {
				return fmt.Errorf("write page: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d chart(s) drawn into %s\n", len(res.Report.Drawn), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.format, "format", "svg", "chart format (svg, png, chartjs)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
