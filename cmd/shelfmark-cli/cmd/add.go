package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addTitle  string
	addFolder string
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a bookmark",
	Long: `Add a bookmark to a folder. Without --folder it goes into the default
container and shows up as uncategorized.

Examples:
  shelfmark-cli add https://go.dev --title "Go"
  shelfmark-cli add https://pkg.go.dev --folder 3f2a9c01b7de`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetGateway().AddItem(cmd.Context(), addFolder, args[0], addTitle)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]\n", result.Message, result.Item.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "bookmark title")
	addCmd.Flags().StringVarP(&addFolder, "folder", "f", "", "ID of the folder to add it to")
	rootCmd.AddCommand(addCmd)
}
