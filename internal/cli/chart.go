package cli

import (
	"fmt"
	"io"
	"sort"

	"go-review-analytics/internal/model"
	"go-review-analytics/internal/pipeline"

	"github.com/spf13/cobra"
)

// The charts print pre-aggregated series; drawing is left to the terminal.
func newChartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print chart series (pie, top-locations, monthly)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "pie",
		Short: "Share of reviews per park",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			return a.renderPie(pipeline.ReviewsPerPark(s.Dataset))
		},
	})

	var n int
	top := &cobra.Command{
		Use:   "top-locations <park>",
		Short: "Reviewer locations of a park with the highest mean rating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			if n == 0 {
				n = a.cfg.Query.TopLocations
			}
			ranked, err := pipeline.TopLocationsByRating(s.Dataset, args[0], n)
			if err != nil {
				return err
			}
			return a.render(ranked, func(w io.Writer) {
				heading(w, fmt.Sprintf("Top %d locations for %s", n, args[0]))
				for _, g := range ranked {
					fmt.Fprintf(w, "%-30s %.2f %s\n", g.Key.String(), g.Mean, bar(g.Mean, model.MaxRating))
				}
			})
		},
	}
	top.Flags().IntVarP(&n, "limit", "n", 0, "Number of locations (default query.top_locations)")
	cmd.AddCommand(top)

	cmd.AddCommand(&cobra.Command{
		Use:   "monthly <park>",
		Short: "Mean rating of a park per calendar month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			months, err := pipeline.MonthlyAverages(s.Dataset, args[0])
			if err != nil {
				return err
			}
			return a.render(months, func(w io.Writer) {
				heading(w, fmt.Sprintf("Monthly average rating for %s", args[0]))
				for _, m := range months {
					if !m.HasData {
						fmt.Fprintf(w, "%s  no data\n", m.Label)
						continue
					}
					fmt.Fprintf(w, "%s  %.2f %s\n", m.Label, m.Mean, bar(m.Mean, model.MaxRating))
				}
			})
		},
	})
	return cmd
}

type pieSlice struct {
	Park    string  `json:"park" yaml:"park"`
	Reviews int     `json:"reviews" yaml:"reviews"`
	Percent float64 `json:"percent" yaml:"percent"`
}

func (a *app) renderPie(counts map[string]int) error {
	total := 0
	for _, c := range counts {
		total += c
	}
	slices := make([]pieSlice, 0, len(counts))
	for park, c := range counts {
		slices = append(slices, pieSlice{Park: park, Reviews: c, Percent: 100 * float64(c) / float64(total)})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Reviews != slices[j].Reviews {
			return slices[i].Reviews > slices[j].Reviews
		}
		return slices[i].Park < slices[j].Park
	})

	return a.render(slices, func(w io.Writer) {
		heading(w, "Reviews per park")
		for _, sl := range slices {
			fmt.Fprintf(w, "%-25s %6d %5.1f%% %s\n", sl.Park, sl.Reviews, sl.Percent, bar(sl.Percent, 100))
		}
	})
}
