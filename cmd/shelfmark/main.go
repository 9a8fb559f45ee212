package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"

	"shelfmark/internal/adapters/browser"
	"shelfmark/internal/adapters/memory"
	"shelfmark/internal/adapters/sqlite"
	"shelfmark/internal/adapters/tui"
	"shelfmark/internal/adapters/tui/views"
	"shelfmark/internal/application/commands"
	"shelfmark/internal/application/reconcile"
	"shelfmark/internal/config"
	"shelfmark/internal/ports"
)

type store interface {
	ports.BookmarkStore
	Close() error
}

func main() {
	demo := flag.Bool("demo", false, "run against an in-memory store with sample bookmarks")
	flag.Parse()
	defer glog.Flush()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize adapters
	var bookmarks store
	if *demo {
		bookmarks = memory.NewDemo()
	} else {
		db := sqlite.NewStore()
		if err := db.Open(cfg.DatabasePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		go func() {
			if err := db.Watch(ctx, cfg.PollInterval); err != nil {
				glog.Errorf("watch %s: %v", db.Path(), err)
			}
		}()
		bookmarks = db
	}
	defer bookmarks.Close()

	bridge := tui.NewBridge()
	loop := reconcile.NewLoop(bookmarks, bridge, reconcile.WithNotifier(bridge))
	gw := commands.NewGateway(bookmarks,
		commands.WithConfirmer(bridge),
		commands.WithTrigger(loop),
		commands.WithDefaultParent(cfg.DefaultParent),
	)

	// Create and run TUI app
	app := tui.NewApp(views.DashboardOptions{
		Gateway:   gw,
		Loop:      loop,
		Opener:    browser.NewOpener(),
		HideEmpty: cfg.HideEmptyFolders,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	bridge.Attach(p)
	go loop.Run(ctx, bookmarks.Subscribe(ctx))

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
