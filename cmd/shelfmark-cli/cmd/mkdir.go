package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mkdirParent string

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a folder",
	Long: `Create a bookmark folder. Without --parent it goes into the default
container (SHELFMARK_DEFAULT_PARENT).

Examples:
  shelfmark-cli mkdir "Reading"
  shelfmark-cli mkdir "Go" --parent 3f2a9c01b7de`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetGateway().CreateFolder(cmd.Context(), args[0], mkdirParent)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]\n", result.Message, result.Folder.ID)
		return nil
	},
}

func init() {
	mkdirCmd.Flags().StringVarP(&mkdirParent, "parent", "p", "", "ID of the folder to create it in")
	rootCmd.AddCommand(mkdirCmd)
}
