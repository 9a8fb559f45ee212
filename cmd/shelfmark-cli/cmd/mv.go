package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mvCmd = &cobra.Command{
	Use:   "mv <source-id> <destination-id>",
	Short: "Move a folder or bookmark",
	Long: `Move a folder or bookmark into another folder. It is appended after
the destination's current contents. A folder cannot be moved into itself
or one of its subfolders.

Example:
  shelfmark-cli mv 9b1e44d0c2aa 3f2a9c01b7de`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetGateway().MoveNode(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mvCmd)
}
