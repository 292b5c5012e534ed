package cmd

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/DOGE-network/cali-doge-sub006/internal/cmd/globals"
	"github.com/DOGE-network/cali-doge-sub006/internal/config"
	"github.com/DOGE-network/cali-doge-sub006/pkg/departments"
	"github.com/DOGE-network/cali-doge-sub006/pkg/diagnostics"
	"github.com/DOGE-network/cali-doge-sub006/pkg/fuzzy"
)

var (
	searchTarget   string
	searchSnapshot string
)

// searchCmd ranks snapshot entities by fuzzy similarity to a name.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Rank departments by similarity to a name",
	Long: `Search scores every department in a snapshot against a free-text name
and prints the best candidates in descending score order. Useful for
checking how a noisy reference from another dataset would resolve before
wiring it up with match.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchTarget, "target", "", "Name to search for (required)")
	searchCmd.Flags().StringVarP(&searchSnapshot, "snapshot", "f", "",
		"Path to the entity snapshot YAML file (required)")
	_ = searchCmd.MarkFlagRequired("target")
	_ = searchCmd.MarkFlagRequired("snapshot")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	flags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	records, err := departments.LoadSnapshot(searchSnapshot, diagnostics.New())
	if err != nil {
		return err
	}

	names := make([]string, 0, len(records))
	for i := range records {
		names = append(names, records[i].Name)
	}

	opts := fuzzy.DefaultOptions()
	opts.Threshold = config.MatchThreshold()
	opts.Limit = config.FuzzyLimit()

	candidates, err := fuzzy.FindBestMatches(searchTarget, names, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(candidates) == 0 {
		fmt.Fprintln(out, "no candidates")
		return nil
	}

	if strings.ToLower(flags.Output) == "yaml" {
		data, err := yaml.Marshal(candidates)
		if err != nil {
			return fmt.Errorf("encoding candidates: %w", err)
		}
		fmt.Fprint(out, string(data))
		return nil
	}

	for _, c := range candidates {
		fmt.Fprintf(out, "%.3f  %-13s %s\n", c.Result.Score, c.Result.Algorithm, c.Text)
	}
	return nil
}
