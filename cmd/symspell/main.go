// Copyright 2026 The Symspell Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements a Symmetric Delete (SymSpell) spelling-correction
server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

Symspell provides fast fuzzy term lookup and spelling correction using a
delete-variant inverted index with frequency ranking. It can operate as a
MessagePack IPC server for integration with editors and other tooling, or
as a CLI application for testing and debugging dictionaries directly.

The server mode can back the index with an in-memory store or a persistent
SQLite-backed store, and can populate either from a directory of lazily
loaded chunked binary dictionaries or from a single delimited text file.

# Usage

Start the server with default settings:

	symspell

Use a custom dictionary directory and enable debug mode:

	symspell -data /path/to/chunks -d

Run in CLI mode for interactive testing:

	symspell -c -limit 10 -dist 2

The data directory should contain chunked binary files named dict_0001.bin,
dict_0002.bin, etc., or a plain text dictionary can be loaded with -words.

# Configuration

Runtime configuration is managed through a TOML file covering the index,
server, dictionary loader, and CLI sections:

	[index]
	max_edit_distance = 2
	prefix_length = 7
	count_threshold = 1

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	verbosity = "closest"

	[dict]
	chunk_size = 10000
	min_frequency_threshold = 1
	store = "memory"
	sqlite_path = "dictionary.db"

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout, documented in
pkg/server. A lookup request:

	{"id": "req1", "cmd": "lookup", "p": "hellp", "l": 10, "v": "closest"}

gets back ranked suggestions with microsecond timing:

	{"id": "req1", "s": [{"term": "hello", "d": 1, "f": 1000}], "c": 1, "t": 3}

# Server Mode

The default mode starts a MessagePack IPC server that processes lookup and
insert requests from stdin and writes responses to stdout, suitable for
integration with text editors and other applications through process
communication.

# CLI Mode

CLI mode provides an interactive terminal interface for testing dictionary
corrections directly. It is primarily intended for development and
debugging before deploying a dictionary to server mode.

# Command Line Flags

	-data string
	    Directory containing binary chunk files (default "data/")
	-words string
	    Path to a plain text term/frequency dictionary to load instead
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return (default from config)
	-dist int
	    Maximum edit distance for the index
	-no-filter
	    Disable input filtering for debugging
	-chunk int
	    Chunk size handed to the chunk loader; how many words are read
	    from each chunk file is set by that file's own header
	-store string
	    Backing store: "memory" or "sqlite"
	-sqlite string
	    Path to the SQLite database file when -store=sqlite

The application automatically resolves data and config paths relative to the
executable location, supporting both development and production deployments.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/trvon/yams-symspell/internal/browse"
	"github.com/trvon/yams-symspell/internal/cli"
	"github.com/trvon/yams-symspell/internal/utils"
	"github.com/trvon/yams-symspell/pkg/config"
	"github.com/trvon/yams-symspell/pkg/dictionary"
	"github.com/trvon/yams-symspell/pkg/server"
	"github.com/trvon/yams-symspell/pkg/symspell"
)

const (
	Version = "0.1.0-beta"
	AppName = "symspell"
	gh      = "https://github.com/trvon/yams-symspell"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig, _, _ := config.LoadConfigWithPriority("")

	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "data/", "Directory containing binary chunk files")
	textDict := flag.String("words", "", "Path to a plain text term/frequency dictionary to load instead of chunks")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")
	maxDist := flag.Int("dist", defaultConfig.Index.MaxEditDistance, "Maximum edit distance for the index")
	prefixLen := flag.Int("prefix", defaultConfig.Index.PrefixLength, "Delete-prefix length for the index")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering (DBG only) - shows all raw dictionary entries (numbers, symbols, etc)")
	chunkSize := flag.Int("chunk", defaultConfig.Dict.ChunkSize, "Chunk size handed to the chunk loader (words read per chunk follow each file's header)")
	storeKind := flag.String("store", defaultConfig.Dict.Store, "Backing store: \"memory\" or \"sqlite\"")
	sqlitePath := flag.String("sqlite", defaultConfig.Dict.SQLitePath, "Path to the SQLite database file when -store=sqlite")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
		log.Print("Either env is not set or system is not supported")
		os.Exit(1)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	index, closeStore, err := buildIndex(*storeKind, *sqlitePath, *maxDist, *prefixLen, defaultConfig.Index.CountThreshold)
	if err != nil {
		log.Fatalf("Failed to build index: %v", err)
		os.Exit(1)
	}
	if closeStore != nil {
		defer closeStore()
	}

	browseIndex := browse.NewIndex()

	resolvedDataDir, err := pathResolver.GetDataDir(*dataDir)
	if err != nil {
		log.Fatalf("Failed to resolve data dir: (%v)", err)
		os.Exit(1)
	}

	if err := loadDictionary(index, browseIndex, resolvedDataDir, *textDict, *chunkSize); err != nil {
		log.Warnf("Dictionary load incomplete: %v", err)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Starting CLI", "limit", *limit, "maxDist", *maxDist, "noFilter", *noFilter)

		repl := cli.NewREPL(index, *limit, symspell.ParseVerbosity(defaultConfig.CLI.DefaultVerbosity), *noFilter)
		if err := repl.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	showStartupInfo(resolvedDataDir, *storeKind)

	srv := server.NewServer(index)
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// buildIndex constructs a symspell.Index over the requested store kind and
// returns an optional close function for the underlying store.
func buildIndex(storeKind, sqlitePath string, maxDist, prefixLen int, countThreshold int64) (*symspell.Index, func(), error) {
	switch storeKind {
	case "sqlite":
		pstore, maxWordLen, err := symspell.OpenPersistentStore(sqlitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store at %s: %w", sqlitePath, err)
		}
		index := symspell.NewIndex(pstore, maxDist, prefixLen)
		index.SetCountThreshold(countThreshold)
		index.SetMaxWordLengthHint(maxWordLen)
		return index, func() { pstore.Close() }, nil
	default:
		index := symspell.NewIndex(symspell.NewMemoryStore(), maxDist, prefixLen)
		index.SetCountThreshold(countThreshold)
		return index, nil, nil
	}
}

// loadDictionary populates index (and, opportunistically, browseIndex) from
// either a plain text dictionary or a directory of chunk files.
func loadDictionary(index *symspell.Index, browseIndex *browse.Index, dataDir, textDict string, chunkSize int) error {
	if textDict != "" {
		inserted, skipped, err := dictionary.LoadTextDictionary(textDict, index, browseIndex)
		if err != nil {
			return fmt.Errorf("loading text dictionary %s: %w", textDict, err)
		}
		log.Infof("Loaded %d terms from %s (%d skipped)", inserted, textDict, skipped)
		return nil
	}

	loader := dictionary.NewChunkLoader(dataDir, index, browseIndex, chunkSize)
	chunks, err := loader.GetAvailableChunks()
	if err != nil {
		return fmt.Errorf("scanning chunk directory %s: %w", dataDir, err)
	}
	if len(chunks) == 0 {
		log.Warnf("No chunk files found in %s, running with empty dictionary", dataDir)
		return nil
	}
	if err := loader.StartLazyLoading(); err != nil {
		return fmt.Errorf("starting lazy load: %w", err)
	}
	log.Debugf("Lazy-loading %d chunk(s) from %s", len(chunks), dataDir)
	return nil
}

// printVersion renders a styled version banner, matching the CLI's style
// palette.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ Symspell ] Fast fuzzy term lookup and spelling correction!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir, storeKind string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" Symspell ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("data dir: ( %s )", dataDir)
	log.Infof("store: ( %s )", storeKind)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
