package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/drillworks/bithub/internal/datasource"
	"github.com/drillworks/bithub/pkg/api"
	"github.com/drillworks/bithub/pkg/config"
	"github.com/drillworks/bithub/pkg/debug"
	"github.com/drillworks/bithub/pkg/model"
	"github.com/drillworks/bithub/pkg/prefs"
	"github.com/drillworks/bithub/pkg/table"
	"github.com/drillworks/bithub/pkg/ui"
	"github.com/drillworks/bithub/pkg/version"
	"github.com/drillworks/bithub/pkg/watcher"
)

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	shopFlag := flag.String("shop", "", "Shop data directory (overrides config and BDH_SHOP_DIR)")
	serverFlag := flag.String("server", "", "MES server base URL (overrides config)")
	tokenFlag := flag.String("token", "", "CSRF token for server writes (overrides config)")
	viewFlag := flag.String("view", "", "Preference namespace (default: bitdesign-hub)")
	exportFlag := flag.String("export-dir", "", "Directory for CSV/SVG exports (default: current directory)")
	noWatch := flag.Bool("no-watch", false, "Disable data source watching")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: bdh [options]")
		fmt.Println("\nAn interactive table over the shop's bit designs.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("bdh %s\n", version.Version)
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "bdh is interactive; run it in a terminal.")
		os.Exit(1)
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue with defaults.
		fmt.Fprintf(os.Stderr, "warning: %v\n", cfgErr)
		cfg = config.DefaultConfig()
	}
	if *serverFlag != "" {
		cfg.Server.BaseURL = *serverFlag
	}
	if *tokenFlag != "" {
		cfg.Server.CSRFToken = *tokenFlag
	}
	if *viewFlag != "" {
		cfg.UI.View = *viewFlag
	}
	if *exportFlag != "" {
		cfg.UI.ExportDir = *exportFlag
	}
	if *shopFlag != "" {
		cfg.ShopDir = *shopFlag
	}

	// A missing or unreadable data source degrades to an empty table:
	// the watcher and the reload key recover once a source appears.
	shopDir := datasource.ShopDir(cfg.ShopDir)
	designs, loadErr := datasource.LoadDesigns(shopDir)
	if loadErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", loadErr)
		fmt.Fprintf(os.Stderr, "Expected shop.db or a *.jsonl snapshot in %s.\n", shopDir)
	}

	client := api.New(cfg.Server.BaseURL, api.WithCSRFToken(cfg.Server.CSRFToken))
	store := prefs.NewStore(config.StateDir(), cfg.View(), client)

	st := table.New(model.HubColumns, model.BuildRows(designs))

	// Local tier first; the remote column sync runs in the background
	// after the UI is up and wins when the server has a preference.
	snap, err := store.LoadLocal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	ui.ApplyPreferences(st, snap)
	if cols, found := store.LoadColumnsLocal(); found {
		st.ApplyVisibleColumnKeys(cols)
	}
	ui.WirePersistence(st, store)

	var w *watcher.Watcher
	if cfg.WatchEnabled() && !*noWatch {
		w = startWatcher(shopDir)
		if w != nil {
			defer w.Stop()
		}
	}

	m := ui.New(cfg, shopDir, designs, st, store, client, w)
	if loadErr != nil {
		m = m.WithLoadError(loadErr)
	}
	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error running bit design hub: %v\n", err)
		os.Exit(1)
	}
}

// startWatcher watches the freshest discovered source. Watch failures
// degrade to a static view, never a startup failure.
func startWatcher(shopDir string) *watcher.Watcher {
	sources, err := datasource.DiscoverSources(shopDir)
	if err != nil || len(sources) == 0 {
		return nil
	}

	w, err := watcher.New(sources[0].Path,
		watcher.WithOnError(func(err error) {
			debug.Log("watcher: %v", err)
		}),
	)
	if err != nil {
		debug.Log("watcher setup failed: %v", err)
		return nil
	}
	if err := w.Start(); err != nil {
		debug.Log("watcher start failed: %v", err)
		return nil
	}
	return w
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
