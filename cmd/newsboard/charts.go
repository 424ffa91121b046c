package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/chart"
)

func newChartsCmd() *cobra.Command {
	var (
		flags renderFlags
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Write each chart of a page as an image file",
		Long: `Render every chart of a page as a standalone image.

One file per drawn chart is written to the output directory, named after
the chart surface (for example sentimentChart.svg).

Examples:
  newsboard charts --in stats.html --dir charts/
  newsboard charts --in stats.html --dir charts/ --format png --width 800`,
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
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			rep, err := svc.ExportCharts(cmd.Context(), src, func(surfaceID string, format chart.Format, img []byte) error {
				return os.WriteFile(filepath.Join(dir, surfaceID+"."+string(format)), img, 0o644)
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, slot := range rep.Drawn {
				fmt.Fprintf(w, "%s\t%s\n", slot, filepath.Join(dir, slot.SurfaceID()+"."+string(svc.Format())))
			}
			if rep.Err != nil {
				return fmt.Errorf("chart %s: %w", rep.Failed, rep.Err)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.format, "format", "svg", "image format (svg, png)")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	return cmd
}
