package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	calidoge "github.com/DOGE-network/cali-doge-sub006"
	"github.com/DOGE-network/cali-doge-sub006/internal/config"
	"github.com/DOGE-network/cali-doge-sub006/pkg/departments"
	"github.com/DOGE-network/cali-doge-sub006/pkg/resolve"
)

var (
	matchTarget     string
	matchTargetCode string
	matchAliases    []string
	matchRecordCode string
	matchFields     []string
)

// matchCmd resolves a foreign record against a canonical entity.
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Resolve a foreign record against a canonical entity",
	Long: `Match scores a foreign record's candidate fields against a target
entity. Fields are given as name=value pairs with an optional @weight
suffix, e.g.:

  calidoge match --target "Air Resources Board" --target-code 3900 \
      --alias CARB --record-code 3900 --field "department=CARB@0.9"

A structured code match scores 1.0, an exact name match 0.8, and
weighted fuzzy evidence at most 0.7. Below 0.3 the record is reported
as unmatched.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchTarget, "target", "", "Target canonical name (required)")
	matchCmd.Flags().StringVar(&matchTargetCode, "target-code", "", "Target's known organization code")
	matchCmd.Flags().StringArrayVar(&matchAliases, "alias", nil, "Registered alias of the target (repeatable)")
	matchCmd.Flags().StringVar(&matchRecordCode, "record-code", "", "Organization code carried by the foreign record")
	matchCmd.Flags().StringArrayVar(&matchFields, "field", nil, "Candidate field as name=value[@weight] (repeatable)")
	_ = matchCmd.MarkFlagRequired("target")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	record := departments.ExternalRecord{Code: matchRecordCode}
	for _, raw := range matchFields {
		field, err := parseField(raw)
		if err != nil {
			return err
		}
		record.Fields = append(record.Fields, field)
	}

	engine, err := calidoge.New(calidoge.WithMatchThreshold(config.MatchThreshold()))
	if err != nil {
		return err
	}

	result, err := engine.Resolve(resolve.Target{
		Name:    matchTarget,
		Code:    matchTargetCode,
		Aliases: matchAliases,
	}, record)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result == nil {
		fmt.Fprintln(out, "no match")
		return nil
	}

	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

// parseField parses one name=value[@weight] flag.
func parseField(raw string) (departments.Field, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || name == "" {
		return departments.Field{}, fmt.Errorf("invalid field %q: want name=value[@weight]", raw)
	}

	weight := 1.0
	if at := strings.LastIndex(value, "@"); at >= 0 {
		if w, err := strconv.ParseFloat(value[at+1:], 64); err == nil {
			weight = w
			value = value[:at]
		}
	}

	return departments.Field{Name: name, Value: value, Weight: weight}, nil
}
