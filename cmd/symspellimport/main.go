// Package main implements symspellimport, a batch dictionary loader that
// populates a persistent SQLite-backed index and exits, for preparing a
// dictionary file ahead of running the symspell server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/trvon/yams-symspell/pkg/dictionary"
	"github.com/trvon/yams-symspell/pkg/symspell"
)

func main() {
	sqlitePath := flag.String("sqlite", "dictionary.db", "Path to the SQLite database file to populate")
	textDict := flag.String("words", "", "Path to a plain text term/frequency dictionary (term<TAB>frequency per line)")
	dataDir := flag.String("data", "", "Directory of chunked binary dictionary files (dict_NNNN.bin)")
	maxDist := flag.Int("dist", 2, "Maximum edit distance for the index")
	prefixLen := flag.Int("prefix", 7, "Delete-prefix length for the index")
	debugMode := flag.Bool("d", false, "Toggle debug mode")

	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	if *textDict == "" && *dataDir == "" {
		fmt.Fprintln(os.Stderr, "symspellimport: one of -words or -data is required")
		flag.Usage()
		os.Exit(2)
	}

	store, _, err := symspell.OpenPersistentStore(*sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open sqlite store at %s: %v", *sqlitePath, err)
	}
	defer store.Close()

	index := symspell.NewIndex(store, *maxDist, *prefixLen)

	if err := store.BeginTransaction(); err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}

	var inserted, skipped int
	if *textDict != "" {
		inserted, skipped, err = dictionary.LoadTextDictionary(*textDict, index, nil)
		if err != nil {
			store.RollbackTransaction()
			log.Fatalf("Failed to load text dictionary %s: %v", *textDict, err)
		}
	} else {
		inserted, skipped, err = loadChunkDirSync(*dataDir, index)
		if err != nil {
			store.RollbackTransaction()
			log.Fatalf("Failed to load chunk directory %s: %v", *dataDir, err)
		}
	}

	if err := store.CommitTransaction(); err != nil {
		log.Fatalf("Failed to commit transaction: %v", err)
	}

	log.Infof("Import complete: %d inserted, %d skipped, db=%s", inserted, skipped, *sqlitePath)
}

// loadChunkDirSync loads every available chunk synchronously (no background
// goroutine), since this tool exits as soon as the import finishes.
func loadChunkDirSync(dataDir string, target dictionary.Target) (inserted, skipped int, err error) {
	loader := dictionary.NewChunkLoader(dataDir, target, nil, 10000)
	chunks, err := loader.GetAvailableChunks()
	if err != nil {
		return 0, 0, err
	}
	for _, chunk := range chunks {
		if err := loader.LoadSpecificChunk(chunk.ChunkID); err != nil {
			log.Warnf("chunk %d: %v", chunk.ChunkID, err)
			skipped += chunk.WordCount
			continue
		}
		inserted += chunk.WordCount
	}
	return inserted, skipped, nil
}
