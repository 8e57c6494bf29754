// Package cli contains the cobra commands of the reviews tool.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"go-review-analytics/internal/config"
	"go-review-analytics/internal/session"

	"github.com/spf13/cobra"
)

// Version is the current version of reviews
var Version = "0.1.0"

// app carries global flags and the lazily loaded state shared by subcommands.
type app struct {
	configPath   string
	dataPath     string
	outputFormat string
	verbose      bool

	out     io.Writer
	cfg     *config.Config
	session *session.Session
}

// NewRootCmd builds the command tree writing results to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "reviews",
		Short: "Query and summarise theme park reviews",
		Long: `reviews loads a CSV of theme park reviews once and answers questions about it.

Every command reads the dataset named by --data (or data.path in the config file),
groups and ranks it in memory, and prints the result.

Output Format:
  --output text (default) | json | yaml

Examples:
  reviews load                                  # Load summary and data quality
  reviews park paris                            # Reviews of Disneyland_Paris
  reviews count paris "United Kingdom"          # Reviews from one location
  reviews average hongkong 2018                 # Mean rating in a year
  reviews chart monthly california              # Monthly averages
  reviews top --by park,year --metric count -n 5
  reviews export csv                            # Write the park summary`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.outputFormat != "text" && a.outputFormat != "json" && a.outputFormat != "yaml" {
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", a.outputFormat)
			}
			return nil
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultConfigPath, "Path to config file")
	root.PersistentFlags().StringVar(&a.dataPath, "data", "", "Review CSV (overrides data.path)")
	root.PersistentFlags().StringVarP(&a.outputFormat, "output", "o", "text", "Output format (text|json|yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(
		newLoadCmd(a),
		newParkCmd(a),
		newCountCmd(a),
		newAverageCmd(a),
		newLocationsCmd(a),
		newChartCmd(a),
		newTopCmd(a),
		newExportCmd(a),
	)
	return root
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := NewRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.dataPath != "" {
		cfg.Data.Path = a.dataPath
		cfg.Data.Fallbacks = nil
	}
	a.cfg = cfg
	return cfg, nil
}

// load opens the dataset once per invocation.
func (a *app) load() (*session.Session, error) {
	if a.session != nil {
		return a.session, nil
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	path := cfg.ResolveDataPath()
	s, err := session.Open(path, cfg.Data.Columns)
	if err != nil {
		return nil, err
	}
	if a.verbose {
		log.Printf("📥 Loaded %d reviews from %s in %s (%d rows skipped)",
			s.Dataset.Len(), path, s.LoadDuration, s.Skipped)
	}
	a.session = s
	return s, nil
}
