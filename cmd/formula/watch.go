package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/recruitiq-sub007/pkg/cli"
	"github.com/kishan-gau/recruitiq-sub007/pkg/library"
	"github.com/kishan-gau/recruitiq-sub007/pkg/server"
	"github.com/kishan-gau/recruitiq-sub007/pkg/telemetry/health"
)

const (
	shutdownTimeout    = 5 * time.Second
	healthCheckTimeout = 2 * time.Second
)

var watchFlags struct {
	path        string
	metricsAddr string
	debounce    time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a formula library and reload it on change",
	Long: `Load a catalog file or directory and reload it whenever files change.

A reload that fails to load keeps the previously loaded formulas. Formulas
that fail validation are reported and skipped.

With --metrics-addr an HTTP server exposes Prometheus metrics, the
/healthz, /readyz and /version probes, and the list of loaded formulas at
/formulas. Readiness fails until the library loads and while the latest
reload is failing.

Examples:
  # Watch the configured library path
  formula watch

  # Watch a directory and serve metrics
  formula watch --path formulas/ --metrics-addr :9090`,
	RunE: watchLibrary,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.path, "path", "p", "", "catalog file or directory (default: library.path from config)")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "address for the metrics HTTP server")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 0, "quiet period before reloading (default: library.debounce from config)")
}

func watchLibrary(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	path := watchFlags.path
	if path == "" {
		path = a.cfg.Library.Path
	}
	debounce := watchFlags.debounce
	if debounce <= 0 {
		debounce = a.cfg.Library.Debounce
	}

	ctx, stop := cli.SetupSignalHandler(commandContext(cmd))
	defer stop()

	out := &lockedWriter{w: cmd.OutOrStdout()}
	registry := library.NewRegistry(a.metrics)

	watcher, err := library.NewWatcher(library.WatcherConfig{
		Path:             path,
		DebounceInterval: debounce,
		OnReload: func(ev library.ReloadEvent) {
			if ev.Err != nil {
				fmt.Fprintf(out, "✗ Reload failed: %v\n", ev.Err)
				return
			}
			fmt.Fprintf(out, "✓ Loaded %d formula(s) (version %s)\n", registry.Count(), ev.Version)
		},
	}, library.NewLoader(a.engine, nil), registry, a.logger, a.metrics)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	checker := health.New(healthCheckTimeout)
	checker.RegisterCheck("library", watcher.HealthCheck)

	if watchFlags.metricsAddr != "" {
		srv := server.New(server.Config{
			Addr:            watchFlags.metricsAddr,
			ShutdownTimeout: shutdownTimeout,
		}, newWatchMux(a, registry, checker), a.logger)

		addr, err := srv.Listen()
		if err != nil {
			return cli.NewCommandError("watch", err)
		}

		srvCtx, cancelSrv := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() { done <- srv.Serve(srvCtx) }()
		defer func() {
			cancelSrv()
			if err := <-done; err != nil {
				a.logger.Error("metrics server failed", "error", err)
			}
		}()

		fmt.Fprintf(out, "✓ Metrics endpoint: http://%s%s\n", addr, a.metrics.Path())
	}

	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", path)

	if err := watcher.Run(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}

	fmt.Fprintln(out, "✓ Watcher stopped")
	return nil
}

// formulaInfo is the /formulas view of a registered formula.
type formulaInfo struct {
	Name       string   `json:"name"`
	Expression string   `json:"expression"`
	Variables  []string `json:"variables"`
	Catalog    string   `json:"catalog"`
	Source     string   `json:"source"`
}

// newWatchMux serves metrics, health probes and the registry contents.
func newWatchMux(a *app, registry *library.Registry, checker *health.Checker) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(a.metrics.Path(), a.metrics.Handler())
	health.Register(mux, checker, health.VersionInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuildDate: BuildDate,
	})
	mux.HandleFunc("/formulas", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		formulas := registry.All()
		resp := struct {
			Version  string        `json:"version"`
			LoadedAt time.Time     `json:"loaded_at"`
			Formulas []formulaInfo `json:"formulas"`
		}{
			Version:  registry.Version(),
			LoadedAt: registry.LoadTime(),
			Formulas: make([]formulaInfo, 0, len(formulas)),
		}
		for _, f := range formulas {
			resp.Formulas = append(resp.Formulas, formulaInfo{
				Name:       f.Name,
				Expression: f.Expression,
				Variables:  f.Variables,
				Catalog:    f.Catalog,
				Source:     f.SourceFile,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			a.logger.Warn("failed to encode formulas", "error", err)
		}
	})
	return mux
}

// lockedWriter serializes writes from the reload callback and the command.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
