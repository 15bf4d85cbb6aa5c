// Package dictionary loads term/frequency dictionaries into a
// symspell.Index, either from a single text file or from a directory of
// chunked binary files intended for large dictionaries that should stream
// in progressively rather than block startup on one big read.
package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/trvon/yams-symspell/internal/browse"
)

// Target is what a loaded dictionary entry is posted into. *symspell.Index
// satisfies it directly; loaders never need the rest of Index's API.
type Target interface {
	Insert(key string, count int64) bool
}

// ChunkLoader manages lazy, background loading of dictionary chunks into a
// Target index, optionally mirroring every posted term into a browse.Index
// for prefix listing.
type ChunkLoader struct {
	dirPath   string
	target    Target
	browse    *browse.Index
	chunkSize int

	mu           sync.RWMutex
	loadedChunks map[int]bool
	totalWords   int

	loadingCh chan int
	done      chan struct{}
	closeOnce sync.Once

	errorCount map[int]int
	maxRetries int
}

// ChunkInfo describes one chunk file found on disk.
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// LoaderStats reports current loading progress.
type LoaderStats struct {
	TotalWords      int
	LoadedChunks    int
	AvailableChunks int
	IsLoading       bool
}

// NewChunkLoader creates a loader that posts words into target, optionally
// also mirroring them into browseIndex (pass nil to skip mirroring).
func NewChunkLoader(dirPath string, target Target, browseIndex *browse.Index, chunkSize int) *ChunkLoader {
	return &ChunkLoader{
		dirPath:      dirPath,
		target:       target,
		browse:       browseIndex,
		chunkSize:    chunkSize,
		loadedChunks: make(map[int]bool),
		loadingCh:    make(chan int, 10),
		done:         make(chan struct{}),
		errorCount:   make(map[int]int),
		maxRetries:   3,
	}
}

// GetAvailableChunks scans the directory for available chunk files, named
// dict_NNNN.bin, sorted by chunk ID ascending.
func (cl *ChunkLoader) GetAvailableChunks() ([]ChunkInfo, error) {
	pattern := filepath.Join(cl.dirPath, "dict_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		basename := filepath.Base(file)
		if !strings.HasPrefix(basename, "dict_") || !strings.HasSuffix(basename, ".bin") {
			continue
		}
		idStr := strings.TrimSuffix(strings.TrimPrefix(basename, "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := cl.getChunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			wordCount = 0
		}
		chunks = append(chunks, ChunkInfo{ChunkID: chunkID, Filename: file, WordCount: wordCount})
	}

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].ChunkID < chunks[j].ChunkID })
	return chunks, nil
}

func (cl *ChunkLoader) getChunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// StartLazyLoading queues every available chunk for background loading and
// returns immediately; loading happens on a goroutine started here.
func (cl *ChunkLoader) StartLazyLoading() error {
	chunks, err := cl.GetAvailableChunks()
	if err != nil {
		return fmt.Errorf("failed to get available chunks: %w", err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no chunk files found in %s", cl.dirPath)
	}

	log.Debugf("Found %d chunk files", len(chunks))
	go cl.backgroundLoader()

	for _, chunk := range chunks {
		select {
		case cl.loadingCh <- chunk.ChunkID:
			log.Debugf("Queued chunk %d for loading", chunk.ChunkID)
		case <-time.After(100 * time.Millisecond):
			log.Warnf("Loading queue full, chunk %d will be loaded later", chunk.ChunkID)
		}
	}
	return nil
}

func (cl *ChunkLoader) backgroundLoader() {
	for {
		select {
		case chunkID := <-cl.loadingCh:
			if err := cl.loadChunk(chunkID); err != nil {
				log.Errorf("Failed to load chunk %d: %v", chunkID, err)

				cl.mu.Lock()
				cl.errorCount[chunkID]++
				errCount := cl.errorCount[chunkID]
				cl.mu.Unlock()

				if errCount < cl.maxRetries {
					log.Debugf("Retrying chunk %d (attempt %d/%d)", chunkID, errCount+1, cl.maxRetries)
					go func(id int) {
						select {
						case <-time.After(time.Duration(errCount) * time.Second):
						case <-cl.done:
							return
						}
						select {
						case cl.loadingCh <- id:
						case <-cl.done:
						}
					}(chunkID)
				} else {
					log.Errorf("Chunk %d failed %d times, giving up", chunkID, cl.maxRetries)
				}
			} else {
				log.Debugf("Successfully loaded chunk %d", chunkID)
			}
		case <-cl.done:
			return
		}
	}
}

// loadChunk reads one chunk file and posts every word into the target
// Target, skipping malformed entries rather than aborting the whole chunk.
//
// Chunk format: little-endian int32 word count, then per word: uint16
// byte-length prefix, the UTF-8 bytes, and a little-endian int64 frequency.
func (cl *ChunkLoader) loadChunk(chunkID int) error {
	cl.mu.Lock()
	if cl.loadedChunks[chunkID] {
		cl.mu.Unlock()
		return nil
	}
	cl.mu.Unlock()

	filename := filepath.Join(cl.dirPath, fmt.Sprintf("dict_%04d.bin", chunkID))
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return fmt.Errorf("failed to read chunk header: %w", err)
	}

	log.Debugf("Loading chunk %d with %d words", chunkID, totalEntries)

	count := 0
	skipped := 0
	for count < int(totalEntries) {
		word, freq, err := readChunkEntry(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warnf("Chunk %d: skipping malformed entry after %d words: %v", chunkID, count, err)
			skipped++
			count++
			continue
		}

		cl.target.Insert(word, freq)
		if cl.browse != nil {
			cl.browse.Add(word)
		}

		cl.mu.Lock()
		cl.totalWords++
		cl.mu.Unlock()

		count++
	}

	if skipped > 0 {
		log.Warnf("Chunk %d: skipped %d malformed entries", chunkID, skipped)
	}

	cl.mu.Lock()
	cl.loadedChunks[chunkID] = true
	cl.mu.Unlock()

	log.Debugf("Chunk %d loaded: %d words (%d skipped)", chunkID, count-skipped, skipped)
	return nil
}

func readChunkEntry(r io.Reader) (string, int64, error) {
	var wordLen uint16
	if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
		return "", 0, err
	}

	wordBytes := make([]byte, wordLen)
	if _, err := io.ReadFull(r, wordBytes); err != nil {
		return "", 0, fmt.Errorf("read word: %w", err)
	}

	var freq int64
	if err := binary.Read(r, binary.LittleEndian, &freq); err != nil {
		return "", 0, fmt.Errorf("read frequency: %w", err)
	}

	return string(wordBytes), freq, nil
}

// LoadSpecificChunk synchronously loads a single chunk by ID, outside the
// background queue, so a caller can load-on-demand.
func (cl *ChunkLoader) LoadSpecificChunk(chunkID int) error {
	cl.mu.RLock()
	alreadyLoaded := cl.loadedChunks[chunkID]
	cl.mu.RUnlock()
	if alreadyLoaded {
		return nil
	}
	return cl.loadChunk(chunkID)
}

// GetStats returns current loading statistics.
func (cl *ChunkLoader) GetStats() LoaderStats {
	cl.mu.RLock()
	defer cl.mu.RUnlock()

	chunks, _ := cl.GetAvailableChunks()
	return LoaderStats{
		TotalWords:      cl.totalWords,
		LoadedChunks:    len(cl.loadedChunks),
		AvailableChunks: len(chunks),
		IsLoading:       len(cl.loadingCh) > 0,
	}
}

// GetLoadedChunkIDs returns every chunk ID loaded so far, sorted ascending.
func (cl *ChunkLoader) GetLoadedChunkIDs() []int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()

	ids := make([]int, 0, len(cl.loadedChunks))
	for id, loaded := range cl.loadedChunks {
		if loaded {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Stop terminates the background loader goroutine. Safe to call more than
// once.
func (cl *ChunkLoader) Stop() {
	cl.closeOnce.Do(func() { close(cl.done) })
}

// LoadTextDictionary loads a plain-text dictionary: one "term<TAB>frequency"
// entry per line, blank lines and lines starting with '#' ignored. It
// returns the number of terms inserted and the number of lines skipped for
// being malformed.
func LoadTextDictionary(path string, target Target, browseIndex *browse.Index) (inserted, skipped int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open text dictionary %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			log.Warnf("%s:%d: expected \"term<TAB>frequency\", got %q", path, lineNum, line)
			skipped++
			continue
		}

		term := fields[0]
		freq, parseErr := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
		if parseErr != nil || term == "" {
			log.Warnf("%s:%d: invalid frequency %q for term %q", path, lineNum, fields[1], term)
			skipped++
			continue
		}

		target.Insert(term, freq)
		if browseIndex != nil {
			browseIndex.Add(term)
		}
		inserted++
	}

	if err := scanner.Err(); err != nil {
		return inserted, skipped, fmt.Errorf("scan %s: %w", path, err)
	}
	return inserted, skipped, nil
}
