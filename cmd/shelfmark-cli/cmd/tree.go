package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"shelfmark/internal/application"
	"shelfmark/internal/domain"
)

var treeOutput string

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the bookmark dashboard",
	Long: `Display every folder under the bookmarks menu and toolbar with its
bookmarks, followed by the uncategorized bookmarks.

Examples:
  shelfmark-cli tree
  shelfmark-cli tree -o yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := GetStore().GetTree(cmd.Context())
		if err != nil {
			return err
		}
		return writeProjection(cmd.OutOrStdout(), domain.ProjectTree(root), treeOutput)
	},
}

func writeProjection(w io.Writer, p *domain.Projection, format string) error {
	switch format {
	case "text":
		return application.WriteDashboard(w, p)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (expected text, json, or yaml)", format)
	}
}

func init() {
	treeCmd.Flags().StringVarP(&treeOutput, "output", "o", "text", "output format: text, json, or yaml")
	rootCmd.AddCommand(treeCmd)
}
