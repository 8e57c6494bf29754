package cli

import (
	"fmt"
	"io"

	"go-review-analytics/internal/model"
	"go-review-analytics/internal/pipeline"
	"go-review-analytics/internal/session"

	"github.com/spf13/cobra"
)

func newLoadCmd(a *app) *cobra.Command {
	var warnings int

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the dataset and report counts and data quality",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if warnings < 0 {
				return model.InvalidArgument("warnings", fmt.Sprint(warnings), "must not be negative")
			}
			s, err := a.load()
			if err != nil {
				return err
			}
			shown := s.Warnings
			if len(shown) > warnings {
				shown = shown[:warnings]
			}
			out := struct {
				Info     session.Info           `json:"session" yaml:"session"`
				Warnings []model.ParseError     `json:"warnings" yaml:"warnings"`
				Quality  pipeline.QualityReport `json:"quality" yaml:"quality"`
			}{s.Info(), shown, s.Quality}

			return a.render(out, func(w io.Writer) {
				info := s.Info()
				heading(w, "Dataset")
				fmt.Fprintf(w, "Source:            %s\n", info.Source)
				fmt.Fprintf(w, "Reviews loaded:    %d\n", info.Reviews)
				fmt.Fprintf(w, "Rows skipped:      %d\n", info.Skipped)
				fmt.Fprintf(w, "Off-scale ratings: %d\n", info.OutOfRange)
				fmt.Fprintf(w, "Duplicate rows:    %d\n", info.Duplicates)
				fmt.Fprintf(w, "Unknown location:  %d\n", info.UnknownLocation)
				fmt.Fprintf(w, "Unknown date:      %d\n", info.UnknownDate)
				for _, pe := range shown {
					fmt.Fprintf(w, "  ⚠️  %s\n", pe.Error())
				}
			})
		},
	}
	cmd.Flags().IntVar(&warnings, "warnings", 10, "Number of skipped-row warnings to show")
	return cmd
}

func newParkCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "park <name>",
		Short: "List the reviews of a park",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			reviews, err := pipeline.ReviewsForPark(s.Dataset, args[0])
			if err != nil {
				return err
			}
			if limit <= 0 {
				return model.InvalidArgument("limit", fmt.Sprint(limit), "must be positive")
			}

			records := reviews.Records()
			total := len(records)
			if len(records) > limit {
				records = records[:limit]
			}
			out := map[string]interface{}{"park": args[0], "total": total, "reviews": records}

			return a.render(out, func(w io.Writer) {
				heading(w, fmt.Sprintf("Reviews for %q: %d", args[0], total))
				for _, r := range records {
					fmt.Fprintf(w, "%-12s %d/5  %-20s %-8s %s\n", r.ID, r.Rating, r.Location, r.Date, r.Park)
				}
				if total > len(records) {
					fmt.Fprintf(w, "... %d more\n", total-len(records))
				}
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum reviews to print")
	return cmd
}

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count <park> <location>",
		Short: "Count a park's reviews from one reviewer location",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			n, err := pipeline.CountByParkAndLocation(s.Dataset, args[0], args[1])
			if err != nil {
				return err
			}
			out := map[string]interface{}{"park": args[0], "location": args[1], "count": n}
			return a.render(out, func(w io.Writer) {
				fmt.Fprintf(w, "%s reviews from %s: %d\n", args[0], args[1], n)
			})
		},
	}
}

func newAverageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "average <park> <year>",
		Short: "Mean rating of a park in one year",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			mean, err := pipeline.AverageRatingByYear(s.Dataset, args[0], args[1])
			if err != nil {
				return err
			}
			out := map[string]interface{}{"park": args[0], "year": args[1], "average": mean}
			return a.render(out, func(w io.Writer) {
				fmt.Fprintf(w, "Average rating for %s in %s: %.2f/5\n", args[0], args[1], mean)
			})
		},
	}
}

func newLocationsCmd(a *app) *cobra.Command {
	var preview int

	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Average rating per park and reviewer location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			if preview <= 0 {
				preview = a.cfg.Query.LocationPreview
			}
			parks := pipeline.ParkLocationAverages(s.Dataset)

			return a.render(parks, func(w io.Writer) {
				for _, p := range parks {
					heading(w, fmt.Sprintf("%s (%d locations)", p.Park, len(p.Locations)))
					for i, l := range p.Locations {
						if i == preview {
							fmt.Fprintf(w, "  ... %d more\n", len(p.Locations)-preview)
							break
						}
						fmt.Fprintf(w, "  %-30s %.2f (%d)\n", l.Location, l.Mean, l.Count)
					}
				}
			})
		},
	}
	cmd.Flags().IntVar(&preview, "preview", 0, "Locations to print per park (default query.location_preview)")
	return cmd
}

func newTopCmd(a *app) *cobra.Command {
	var (
		by     string
		metric string
		n      int
		year   string
		park   string
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank groups over any dimensions",
		Long: `Group reviews by one or more dimensions and print the highest ranked groups.

Dimensions: park, location, year, month, rating
Metrics:    mean (default), count, sum, min, max

Ties are broken by the group key, ascending.

Examples:
  reviews top                                    # Parks by mean rating
  reviews top --by location --metric count -n 5  # Locations with most reviews
  reviews top --by park --year 2018              # Parks in 2018`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dims, err := pipeline.ParseDimensions(by)
			if err != nil {
				return err
			}
			m, err := pipeline.ParseMetric(metric)
			if err != nil {
				return err
			}
			s, err := a.load()
			if err != nil {
				return err
			}

			q := pipeline.Query{Dimensions: dims, Metric: m, N: n, Park: park, Year: year}
			top, err := pipeline.TopGroups(s.Dataset, q)
			if err != nil {
				return err
			}
			return a.render(top, func(w io.Writer) {
				printRanked(w, top, m)
			})
		},
	}
	cmd.Flags().StringVar(&by, "by", "park", "Comma separated dimensions")
	cmd.Flags().StringVar(&metric, "metric", "mean", "Metric to rank by")
	cmd.Flags().IntVarP(&n, "limit", "n", 10, "Number of groups")
	cmd.Flags().StringVar(&year, "year", "", "Only reviews from this year")
	cmd.Flags().StringVar(&park, "park", "", "Only reviews of this park")
	return cmd
}

func printRanked(w io.Writer, top []pipeline.RankedGroup, m pipeline.Metric) {
	for _, g := range top {
		v, _ := m.Value(g.Stats)
		fmt.Fprintf(w, "%3d. %-40s %s=%.2f  (n=%d)\n", g.Rank, g.Key.String(), m, v, g.Count)
	}
}
