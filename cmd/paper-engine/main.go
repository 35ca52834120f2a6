// Package main is the paper-engine CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Player01osu/paper-engine/internal/config"
	"github.com/Player01osu/paper-engine/internal/extract"
	"github.com/Player01osu/paper-engine/internal/index"
	"github.com/Player01osu/paper-engine/internal/ingest"
	"github.com/Player01osu/paper-engine/internal/intern"
	"github.com/Player01osu/paper-engine/internal/server"
	"github.com/Player01osu/paper-engine/internal/storage"
	"github.com/Player01osu/paper-engine/internal/watcher"
	"github.com/Player01osu/paper-engine/pkg/utils"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/paper-engine/config.yaml"
	defaultServerURL  = "http://localhost:42069"
)

// loadConfig loads config from path. When path is the default, a config.yaml
// in the current directory takes precedence, so running from the project dir
// picks up the project's config. Returns the config and the path actually
// loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "server":
		runServer()
	case "submit":
		runSubmit()
	case "search":
		runSearch()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("paper-engine version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`paper-engine: a TF-IDF search engine for local papers

Usage:
  paper-engine server  [-config path] [-debug]     run the HTTP server
  paper-engine submit  [-server url] [-dupe p] <path>...
                                                   submit papers to a running server
  paper-engine search  [-server url] [-json] <query>
                                                   rank papers against a query
  paper-engine status  [-server url]               show index statistics
  paper-engine version                             print version
`)
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	// A malformed snapshot is fatal: starting with a partial index would
	// silently lose documents on the next save.
	store, err := storage.Load(cfg.Storage.SnapshotPath, intern.NewPool())
	if err != nil {
		logger.Fatal("failed to load snapshot", zap.Error(err))
	}
	logger.Info("snapshot loaded",
		zap.String("path", cfg.Storage.SnapshotPath),
		zap.Int("documents", store.Len()),
		zap.Int("vocabulary", store.VocabSize()),
	)

	policy, err := cfg.Ingest.Policy()
	if err != nil {
		logger.Fatal("invalid dupe policy", zap.Error(err))
	}

	var subOpts []ingest.SubmitterOption
	if debugMode {
		subOpts = append(subOpts, ingest.WithLogger(logger))
	}
	sub := ingest.NewSubmitter(store, extract.NewExtractor(), subOpts...)
	srv := server.NewServer(store, sub, &cfg.Server, cfg.Storage.SnapshotPath, policy, logger)

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if len(cfg.Watch.Directories) > 0 {
		var watchOpts []watcher.Option
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		// Re-submissions of a changed file replace the previous document.
		watchSvc := watcher.New(
			cfg.Watch.Directories,
			cfg.Watch.Extensions,
			cfg.Watch.RecursiveOrDefault(),
			func(path string) {
				if _, err := sub.SubmitFile(path, index.DupeReplace); err != nil {
					logger.Warn("watch submit failed", zap.String("path", path), zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)

	if err := storage.Save(cfg.Storage.SnapshotPath, store); err != nil {
		logger.Error("failed to write snapshot", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("snapshot written",
		zap.String("path", cfg.Storage.SnapshotPath),
		zap.Int("documents", store.Len()),
	)
}

func runSubmit() {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	dupe := fs.String("dupe", "", "duplicate policy: fail, replace, rename, or ignore")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 1 {
		fmt.Println("Usage: paper-engine submit [-server url] [-dupe policy] <path>...")
		os.Exit(1)
	}

	failed := 0
	for _, path := range fs.Args() {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		params := url.Values{"path": {abs}}
		if *dupe != "" {
			params.Set("dupe", *dupe)
		}
		body, err := getJSON(*serverURL + "/api/document/submit?" + params.Encode())
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		var resp struct {
			Title string `json:"title"`
		}
		_ = json.Unmarshal(body, &resp)
		fmt.Printf("indexed %s as %q\n", path, resp.Title)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	asJSON := fs.Bool("json", false, "print raw JSON results")
	_ = fs.Parse(os.Args[2:])
	query := buildQuery(fs.Args())
	if query == "" {
		fmt.Println("Usage: paper-engine search [-server url] [-json] <query>")
		os.Exit(1)
	}

	body, err := getJSON(*serverURL + "/api/document/search?s=" + url.QueryEscape(query))
	if err != nil {
		fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
		os.Exit(1)
	}
	if *asJSON {
		fmt.Println(string(body))
		return
	}
	var results []index.Result
	if err := json.Unmarshal(body, &results); err != nil {
		fmt.Fprintf(os.Stderr, "bad response: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Println("no matches")
		return
	}
	for i, r := range results {
		fmt.Printf("%2d. [%d] %s (%s)\n", i+1, r.Score, r.Title, r.Path)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	_ = fs.Parse(os.Args[2:])

	body, err := getJSON(*serverURL + "/status")
	if err != nil {
		fmt.Fprintf(os.Stderr, "status failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(body))
}

// buildQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// getJSON performs a GET and returns the body, treating non-2xx statuses as
// errors carrying the server's message.
func getJSON(target string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(target)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return nil, fmt.Errorf("server: %s", e.Error)
		}
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}
	return body, nil
}
