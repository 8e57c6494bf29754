package cli

import (
	"fmt"
	"io"
	"log"

	"go-review-analytics/internal/export"
	"go-review-analytics/internal/pipeline"
	"go-review-analytics/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:       "export <txt|csv|json>",
		Short:     "Write the per-park summary to a file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"txt", "csv", "json"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(args[0])
			if err != nil {
				return err
			}
			s, err := a.load()
			if err != nil {
				return err
			}
			cfg := a.cfg
			if dir == "" {
				dir = cfg.Export.Dir
			}

			var history export.HistoryRecorder
			if cfg.Export.DB != "" {
				st, err := store.Open(cfg.Export.DB)
				if err != nil {
					return fmt.Errorf("opening export history: %w", err)
				}
				defer st.Close()
				history = st
			}

			exporter := export.NewExporter(dir, cfg.Export.BaseName, history)
			result := exporter.Export(pipeline.Summary(s.Dataset), format)
			if a.verbose && result.Success {
				log.Printf("💾 Exported %d parks to %s", result.RecordCount, result.Path)
			}

			if err := a.render(result, func(w io.Writer) {
				if result.Success {
					fmt.Fprintf(w, "✅ Exported %d parks as %s to %s\n", result.RecordCount, result.Format, result.Path)
					return
				}
				fmt.Fprintf(w, "❌ Export failed: %s\n", result.Error)
			}); err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("export failed: %s", result.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default export.dir)")
	return cmd
}
