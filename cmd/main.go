// Main command logic, flag parsing, and orchestration

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/xtruder/json-bookmarks-viewer/internal/bookmarks"
	"github.com/xtruder/json-bookmarks-viewer/internal/config"
	"github.com/xtruder/json-bookmarks-viewer/internal/loader"
	"github.com/xtruder/json-bookmarks-viewer/internal/render"
	"github.com/xtruder/json-bookmarks-viewer/internal/server"
	"github.com/xtruder/json-bookmarks-viewer/internal/viewer"
	"github.com/xtruder/json-bookmarks-viewer/internal/x"
)

var (
	// Command line flags
	folderPath    string
	searchQuery   string
	listBookmarks bool
	ignoreFolders string
	serve         bool
)

func main() {
	cfg := config.Load()

	// Define command line flags, defaults come from the environment
	flag.StringVar(&cfg.Source, "source", cfg.Source, "URL or .json file of the bookmarks export")
	flag.StringVar(&folderPath, "path", "", "Folder path to show, e.g. 0/2")
	flag.StringVar(&searchQuery, "search", "", "Search bookmark titles and URLs")
	flag.BoolVar(&listBookmarks, "list", false, "List all bookmarks with their folder path")
	flag.StringVar(&ignoreFolders, "ignore", "", "Comma-separated list of folder paths to leave out of -list")
	flag.BoolVar(&serve, "serve", false, "Serve the viewer API over HTTP")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Address to serve the viewer API on")
	flag.BoolVar(&cfg.AllowFiles, "allow-files", cfg.AllowFiles, "Allow the API to load local files")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable verbose logging")
	flag.Parse()

	// Initialize logger
	logLevel := slog.LevelInfo
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize HTTP client
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.Logger = nil // Disable retryable client logging

	ctrl, err := viewer.New(loader.New(client), cfg.SearchCacheSize)
	if err != nil {
		slog.Error("failed to initialize viewer", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Source != "" {
		if _, err := ctrl.Load(ctx, cfg.Source); err != nil && !serve {
			slog.Error("failed to load bookmarks", "source", cfg.Source, "error", err)
			os.Exit(1)
		}
	}

	if serve {
		srv := server.New(ctrl, server.Options{
			CORSOrigins: cfg.CORSOrigins,
			AllowFiles:  cfg.AllowFiles,
		}, logger)
		if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if cfg.Source == "" {
		fmt.Fprintln(os.Stderr, "no bookmarks source given, use -source or BOOKMARKS_SOURCE")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(ctrl, os.Stdout); err != nil {
		slog.Error("failed to show bookmarks", "error", err)
		os.Exit(1)
	}
}

func run(ctrl *viewer.Controller, w io.Writer) error {
	out := render.New(w)

	switch {
	case listBookmarks:
		doc, err := ctrl.Document()
		if err != nil {
			return err
		}

		all, err := bookmarks.All(doc.Source)
		if err != nil {
			return err
		}

		ignored := parseIgnore(ignoreFolders)
		listed := x.Filter2(all, func(path string, _ bookmarks.Bookmark) bool {
			return !isIgnored(path, ignored)
		})

		for path, b := range listed {
			fmt.Fprintf(w, "%s\t%s\n", path, b.URI)
		}

	case searchQuery != "":
		result, err := ctrl.Search(searchQuery)
		if err != nil {
			return err
		}
		out.Search(searchQuery, result)

	case folderPath != "":
		path, err := bookmarks.ParsePath(folderPath)
		if err != nil {
			return err
		}

		_, view, err := ctrl.Open("", path)
		if err != nil {
			return err
		}
		out.Folder(view)

	default:
		_, folders, err := ctrl.Root()
		if err != nil {
			return err
		}
		out.Folders(folders)
	}

	return nil
}

// parseIgnore splits a comma-separated list of breadcrumbs, dropping empty
// entries
func parseIgnore(s string) []string {
	var prefixes []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.Trim(strings.TrimSpace(p), "/"); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}

// isIgnored reports whether path is one of the ignored breadcrumbs or lies
// below one. Whole folder titles are compared, so "Bar" does not hide "Barn".
func isIgnored(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
