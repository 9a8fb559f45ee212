package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"shelfmark/internal/adapters/sqlite"
	"shelfmark/internal/application/commands"
	"shelfmark/internal/config"
)

var (
	dbPath string
	cfg    *config.Config
	store  *sqlite.Store
	gw     *commands.Gateway
)

var rootCmd = &cobra.Command{
	Use:   "shelfmark-cli",
	Short: "CLI for managing the shelfmark bookmark store",
	Long: `shelfmark-cli is a command-line interface for the bookmark store
shared with the shelfmark dashboard.

It provides commands to show the dashboard, create and rename folders,
add, move, and remove bookmarks. A running dashboard picks up every
change made here.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DatabasePath = dbPath
		}

		store = sqlite.NewStore()
		if err := store.Open(cfg.DatabasePath); err != nil {
			return err
		}
		gw = commands.NewGateway(store, commands.WithDefaultParent(cfg.DefaultParent))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs the command line, then closes the store and flushes logs
// whether or not the command failed
func execute() error {
	err := rootCmd.Execute()
	if cerr := closeStore(); err == nil {
		err = cerr
	}
	glog.Flush()
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the bookmark database (default $SHELFMARK_DB)")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func closeStore() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store, gw = nil, nil
	return err
}

// GetGateway returns the gateway over the opened store
func GetGateway() *commands.Gateway {
	return gw
}

// GetStore returns the opened store
func GetStore() *sqlite.Store {
	return store
}
