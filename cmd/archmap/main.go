// Command archmap inspects a pipeline topology definition. Without --web it
// validates the topology, computes the layered layout, and prints a summary;
// with --web it serves the interactive architecture diagram dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/pflag"

	"github.com/vatne/archmap/pkg/config"
	"github.com/vatne/archmap/pkg/layout"
	"github.com/vatne/archmap/pkg/logging"
	"github.com/vatne/archmap/pkg/model"
	"github.com/vatne/archmap/pkg/output"
	"github.com/vatne/archmap/pkg/watcher"
	"github.com/vatne/archmap/pkg/web"
)

func main() {
	flags := pflag.NewFlagSet("archmap", pflag.ExitOnError)
	flags.String("topology", "", "Topology YAML file (default: built-in pipeline)")
	flags.Bool("web", false, "Serve the interactive dashboard instead of printing a summary")
	flags.Int("port", 8080, "Dashboard port (with --web)")
	flags.Bool("watch", false, "Reload when the topology file changes (with --web)")
	flags.Bool("open", true, "Open the browser after starting the server")
	flags.CountP("verbose", "v", "Increase log verbosity")
	flags.Bool("json-logs", false, "Log as JSON instead of compact console lines")
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level := logging.LevelFromVerbosity(cfg.Verbose)
	if cfg.JSONLogs {
		logging.SetJSONOutput(level)
	} else {
		logging.SetLevel(level)
	}

	topo, err := loadTopology(cfg.Topology)
	if err != nil {
		logging.Fatal("loading topology", "error", err)
	}

	engine := layout.New(layout.Config{RankSep: cfg.RankSep, NodeSep: cfg.NodeSep})
	result, err := engine.Compute(topo)
	if err != nil {
		logging.Fatal("computing layout", "error", err)
	}

	if !cfg.Web {
		output.PrintSummary(topo, result)
		return
	}

	server := web.NewServer(topo, result)

	if cfg.Watch {
		if cfg.Topology == "" {
			logging.Warn("--watch ignored: the built-in topology has no file to watch")
		} else {
			startWatcher(cfg, engine, server)
		}
	}

	if cfg.Open {
		go func() {
			time.Sleep(500 * time.Millisecond)
			openBrowser(fmt.Sprintf("http://localhost:%d", cfg.Port))
		}()
	}

	if err := server.Start(cfg.Port); err != nil {
		logging.Fatal("server stopped", "error", err)
	}
}

// loadTopology reads the configured topology file, or falls back to the
// built-in pipeline when none is configured. Both paths validate.
func loadTopology(path string) (*model.Topology, error) {
	if path == "" {
		t := model.DefaultTopology()
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("built-in topology: %w", err)
		}
		return t, nil
	}
	return model.Load(path)
}

// startWatcher wires the file watcher through the debouncer into topology
// reloads. A reload that fails validation keeps the last good topology
// serving and notifies clients instead of crashing.
func startWatcher(cfg *config.Config, engine *layout.Engine, server *web.Server) {
	fw, err := watcher.New(cfg.Topology)
	if err != nil {
		logging.Fatal("starting watcher", "error", err)
	}

	ctx := context.Background()
	debouncer := watcher.NewDebouncer(fw.Events(), 300*time.Millisecond, 2*time.Second)
	fw.Start(ctx)
	debouncer.Start(ctx)

	go func() {
		for range debouncer.Events() {
			topo, err := model.Load(cfg.Topology)
			if err != nil {
				logging.Warn("topology reload failed, keeping previous", "error", err)
				server.PublishReloadError(err)
				continue
			}
			result, err := engine.Compute(topo)
			if err != nil {
				logging.Warn("layout after reload failed, keeping previous", "error", err)
				server.PublishReloadError(err)
				continue
			}
			server.Swap(topo, result)
			logging.Info("topology reloaded", "nodes", len(topo.Nodes), "edges", len(topo.Edges))
		}
	}()
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		logging.Warn("could not open browser", "error", err)
	}
}
