// Copyright 2025 The wordlook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements wordlook, an as-you-type dictionary lookup for the terminal.

Every key press refilters a small dictionary (rows of text fields pulled from
a spreadsheet) and redraws the matching headwords under the query line.
Matching ignores case and diacritics: "cafe" finds "Café".

# Usage

Start the interactive lookup:

	wordlook

Force a fresh pull from the spreadsheet instead of the cached snapshot:

	wordlook -sync

Serve lookups over msgpack IPC on stdin/stdout:

	wordlook -serve

# Keys

	any printable key   append to the query
	Backspace           drop the last character
	Ctrl+U              clear the query
	Enter               accepted, does nothing
	Ctrl+C / Ctrl+D     quit

# Data

On startup the snapshot cached by the previous run is loaded. When it is
missing or cannot be decoded the spreadsheet is pulled again and the cache is
rewritten. Failing to reach the spreadsheet without a usable cache is fatal.

# Configuration

config.toml lives in the user config directory and is created with defaults:

	[dict]
	cache_path = "zasospika.json"
	persist = true

	[source]
	sheet_id = "..."
	gid = "0"

	[cli]
	default_limit = 10

WORDLOOK_SHEET_ID, WORDLOOK_SHEET_GID, WORDLOOK_SHEET_URL and WORDLOOK_TOKEN,
from the environment or a .env file, override the [source] section.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordlook/internal/cli"
	"github.com/bastiangx/wordlook/internal/logger"
	"github.com/bastiangx/wordlook/internal/utils"
	"github.com/bastiangx/wordlook/pkg/config"
	"github.com/bastiangx/wordlook/pkg/dictionary"
	"github.com/bastiangx/wordlook/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "wordlook"
)

func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config.toml (default: user config dir)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	serveMode := flag.Bool("serve", false, "Serve msgpack lookups on stdin/stdout instead of the interactive screen")
	forceSync := flag.Bool("sync", false, "Pull the spreadsheet even when a cached snapshot exists")
	limit := flag.Int("limit", 0, "Number of results to show (default from config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	log.SetOutput(os.Stderr)

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	if *configPath == "" {
		*configPath, err = pathResolver.GetConfigPath("config.toml")
		if err != nil {
			log.Fatalf("Failed to determine config path: (%v)", err)
		}
	}
	log.Debugf("Using config file: (%s)", *configPath)

	appConfig, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *limit <= 0 {
		*limit = appConfig.CLI.DefaultLimit
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	store, err := openStore(ctx, pathResolver, appConfig, *forceSync)
	stop()
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debug("Dictionary ready", "records", store.Len())

	if *serveMode {
		srv := server.NewServer(store, os.Stdin, os.Stdout, *limit)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	// interactive mode owns the terminal, logs go to a file next to the cache
	logPath := filepath.Join(pathResolver.GetCacheDir(), AppName+".log")
	closer, err := logger.RedirectToFile(logPath)
	if err != nil {
		log.Fatalf("Failed to open log file %s: %v", logPath, err)
	}
	defer closer.Close()

	opts := cli.InputOptions{
		Limit:        *limit,
		BufferRow:    appConfig.CLI.BufferRow,
		ResultOffset: appConfig.CLI.ResultOffset,
		MaxQueryLen:  appConfig.CLI.MaxQueryLen,
	}
	if err := runInteractive(store, opts); err != nil {
		log.Error("Lookup stopped", "err", err)
		closer.Close()
		fmt.Fprintf(os.Stderr, "wordlook: %v\n", err)
		os.Exit(1)
	}
}

// openStore builds the store from config and applies the startup policy
func openStore(ctx context.Context, pr *utils.PathResolver, cfg *config.Config, forceSync bool) (*dictionary.Store, error) {
	format := dictionary.FormatUnknown
	if cfg.Dict.CacheFormat != "" {
		f, err := dictionary.ParseFormat(cfg.Dict.CacheFormat)
		if err != nil {
			return nil, err
		}
		format = f
	}

	provider := dictionary.NewSheetProvider(dictionary.SheetOptions{
		SheetID: cfg.Source.SheetID,
		GID:     cfg.Source.GID,
		URL:     cfg.Source.URL,
		Token:   cfg.Source.Token,
		Timeout: cfg.Source.Timeout(),
	})

	cachePath := pr.GetCachePath(cfg.Dict.CachePath)
	log.Debugf("Using snapshot cache at: %s", cachePath)

	store := dictionary.NewStore(dictionary.Options{
		CachePath:   cachePath,
		CacheFormat: format,
		Provider:    provider,
		Persist:     cfg.Dict.Persist,
	})

	if forceSync {
		return store, store.Resynchronize(ctx)
	}
	return store, store.Open(ctx)
}

// runInteractive puts the terminal in raw mode and runs the input loop.
// The terminal is restored on every exit path, SIGTERM included.
func runInteractive(store *dictionary.Store, opts cli.InputOptions) error {
	keys, err := cli.OpenTerminalKeys(os.Stdin)
	if err != nil {
		return err
	}
	// called by both the signal goroutine and the deferred exit path
	var once sync.Once
	restore := func() {
		once.Do(func() {
			keys.Close()
			fmt.Fprint(os.Stdout, "\r\n")
		})
	}
	defer restore()

	// raw mode turns Ctrl+C into a key, only SIGTERM/SIGHUP arrive as signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			restore()
			os.Exit(0)
		}
	}()

	surface := cli.NewANSISurface(os.Stdout, cli.TerminalSize(os.Stdout))
	return cli.NewInputHandler(store, surface, keys, opts).Start()
}

// printVersion shows the version banner
func printVersion() {
	banner := logger.NewWithConfig(os.Stderr, "", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["config"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ wordlook ] as-you-type dictionary lookup")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	if pr, err := utils.NewPathResolver(); err == nil {
		banner.Print("Config directory", "config", pr.GetConfigDir())
	}
}
