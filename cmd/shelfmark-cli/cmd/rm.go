package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"shelfmark/internal/application/commands"
	"shelfmark/internal/ports"
)

var rmYes bool

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a folder or bookmark",
	Long: `Remove a bookmark, or a folder with everything in it.

Warning: This operation cannot be undone. You are asked to confirm
unless --yes is given.

Examples:
  shelfmark-cli rm 9b1e44d0c2aa
  shelfmark-cli rm 3f2a9c01b7de --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var confirmer ports.Confirmer = commands.AutoConfirm(true)
		if !rmYes {
			confirmer = &promptConfirmer{in: cmd.InOrStdin(), out: cmd.ErrOrStderr()}
		}

		result, err := GetGateway().Confirming(confirmer).Remove(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

// promptConfirmer asks on out and reads a y/N answer from in
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (p *promptConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	answer, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func init() {
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "remove without asking")
	rootCmd.AddCommand(rmCmd)
}
