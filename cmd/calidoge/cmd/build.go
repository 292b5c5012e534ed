package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	calidoge "github.com/DOGE-network/cali-doge-sub006"
	"github.com/DOGE-network/cali-doge-sub006/internal/config"
	"github.com/DOGE-network/cali-doge-sub006/pkg/hierarchy"
	"github.com/DOGE-network/cali-doge-sub006/pkg/logging"
)

var buildSnapshot string

// buildCmd reconstructs the hierarchy from a snapshot file.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the organization hierarchy from a snapshot",
	Long: `Build reads a YAML entity snapshot, reconstructs the organizational
tree, rolls up metrics and salary distributions, and prints the result.
Records whose parent reference cannot be resolved are listed as
unattached rather than guessed onto a parent.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildSnapshot, "snapshot", "f", "",
		"Path to the entity snapshot YAML file (required)")
	_ = buildCmd.MarkFlagRequired("snapshot")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	engine, err := calidoge.New(
		calidoge.WithCollation(config.Collation()),
		calidoge.WithRootName(config.RootName()),
		calidoge.WithMatchThreshold(config.MatchThreshold()),
	)
	if err != nil {
		return err
	}

	tree, report, err := engine.BuildFromSnapshot(buildSnapshot)
	if err != nil {
		return err
	}

	ctx := logging.WithField(cmd.Context(), "snapshot", buildSnapshot)
	logging.Ctx(ctx).Debug().
		Int("nodes", tree.Size()).
		Int("unattached", len(report.Unattached)).
		Int("diagnostics", len(report.Events)).
		Msg("hierarchy built")

	out := cmd.OutOrStdout()
	switch strings.ToLower(globalFlags.Output) {
	case "", "tree":
		printTree(cmd, tree, report)
	case "yaml":
		data, err := yaml.Marshal(buildView(tree, report))
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		fmt.Fprint(out, string(data))
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(buildView(tree, report)); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q", globalFlags.Output)
	}
	return nil
}

// view is the serializable form of a build result.
type view struct {
	Root       nodeView               `json:"root" yaml:"root"`
	Unattached []hierarchy.Unattached `json:"unattached,omitempty" yaml:"unattached,omitempty"`
}

// nodeView is the serializable form of one tree node.
type nodeView struct {
	Name             string                `json:"name" yaml:"name"`
	BudgetCode       string                `json:"budget_code,omitempty" yaml:"budget_code,omitempty"`
	OrgLevel         int                   `json:"org_level" yaml:"org_level"`
	Synthetic        bool                  `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
	SubordinateCount int                   `json:"subordinate_count" yaml:"subordinate_count"`
	Aggregates       *hierarchy.Aggregates `json:"aggregates,omitempty" yaml:"aggregates,omitempty"`
	Children         []nodeView            `json:"children,omitempty" yaml:"children,omitempty"`
}

func buildView(tree *hierarchy.Tree, report *hierarchy.Report) view {
	return view{
		Root:       toNodeView(tree.Root()),
		Unattached: report.Unattached,
	}
}

func toNodeView(n *hierarchy.Node) nodeView {
	v := nodeView{
		Name:             n.Department.Name,
		BudgetCode:       n.Department.BudgetCode,
		OrgLevel:         n.Department.OrgLevel,
		Synthetic:        n.Synthetic,
		SubordinateCount: n.SubordinateCount,
		Aggregates:       n.Aggregates,
	}
	for _, child := range n.Children() {
		v.Children = append(v.Children, toNodeView(child))
	}
	return v
}

// printTree renders an indented text tree plus the unattached report.
func printTree(cmd *cobra.Command, tree *hierarchy.Tree, report *hierarchy.Report) {
	out := cmd.OutOrStdout()

	tree.Walk(func(n *hierarchy.Node, depth int) bool {
		marker := ""
		if n.Synthetic {
			marker = " (synthetic)"
		}
		fmt.Fprintf(out, "%s%s%s [subordinates: %d]\n",
			strings.Repeat("  ", depth), n.Department.Name, marker, n.SubordinateCount)
		return true
	})

	if len(report.Unattached) > 0 {
		fmt.Fprintf(out, "\nUnattached records (%d):\n", len(report.Unattached))
		for _, u := range report.Unattached {
			fmt.Fprintf(out, "  %s: %s\n", u.Department.Name, u.Reason)
		}
	}
}
