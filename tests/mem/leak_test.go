//go:build test

package mem

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/trvon/yams-symspell/internal/browse"
	"github.com/trvon/yams-symspell/pkg/dictionary"
	"github.com/trvon/yams-symspell/pkg/symspell"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var testPrefixes = []string{
	"a", "ab", "abc", "abcd",
	"h", "he", "hel", "hell", "hello",
	"w", "wo", "wor", "worl", "world",
	"p", "pr", "pro", "prog", "program",
	"t", "th", "the", "ther", "there",
	"c", "co", "com", "comp", "computer",
}

func seedIndex() *symspell.Index {
	index := symspell.NewIndex(symspell.NewMemoryStore(), 2, 7)
	words := []string{"hello", "help", "world", "word", "program", "programming",
		"there", "their", "computer", "compute", "development", "developer"}
	for i, w := range words {
		index.Insert(w, int64((i+1)*100))
	}
	return index
}

func TestMemoryLeakBasic(t *testing.T) {
	iterations := []int{100, 500, 1000, 2500, 5000}

	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			runBasicMemoryTest(t, iterCount, testPrefixes)
		})
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 1000},
		{workers: 2, iterationsPerWorker: 500},
		{workers: 4, iterationsPerWorker: 250},
		{workers: 8, iterationsPerWorker: 125},
	}

	for _, config := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", config.workers, config.iterationsPerWorker), func(t *testing.T) {
			runConcurrentMemoryTest(t, config.workers, config.iterationsPerWorker)
		})
	}
}

// TestChunkLoaderStopIsLeakFree verifies that the background loader
// goroutine exits after Stop(), and that calling Stop() more than once does
// not panic (the teacher's original close(cl.done) was not safe against a
// second call).
func TestChunkLoaderStopIsLeakFree(t *testing.T) {
	dir := t.TempDir()
	// StartLazyLoading refuses a directory with no chunk files, so give it
	// one chunk whose header declares zero words.
	if err := os.WriteFile(filepath.Join(dir, "dict_0001.bin"), []byte{0, 0, 0, 0}, 0o644); err != nil {
		t.Fatalf("write chunk: %v", err)
	}
	index := symspell.NewIndex(symspell.NewMemoryStore(), 2, 7)
	browseIndex := browse.NewIndex()

	baselineGoroutines := runtime.NumGoroutine()

	loader := dictionary.NewChunkLoader(dir, index, browseIndex, 1000)
	if err := loader.StartLazyLoading(); err != nil {
		t.Fatalf("StartLazyLoading: %v", err)
	}

	loader.Stop()
	loader.Stop() // must not panic or double-close

	runtime.Gosched()
	finalGoroutines := runtime.NumGoroutine()
	if delta := finalGoroutines - baselineGoroutines; delta > 1 {
		t.Errorf("goroutine leak detected after Stop(): delta=%d", delta)
	}
}

func runBasicMemoryTest(t *testing.T, iterations int, prefixes []string) {
	index := seedIndex()

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	for i := 0; i < iterations; i++ {
		for _, prefix := range prefixes {
			suggestions := index.Lookup(prefix, symspell.Closest, -1)
			_ = suggestions
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	memDelta := int64(final.Alloc - baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	totalOps := iterations * len(prefixes)
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		iterations, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}

	if goroutineDelta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func runConcurrentMemoryTest(t *testing.T, workers, iterationsPerWorker int) {
	memFile, err := os.Create("concurrent_memory.prof")
	if err != nil {
		t.Fatalf("profile file creation failed: %v", err)
	}
	defer func() {
		memFile.Close()
		os.Remove("concurrent_memory.prof")
	}()

	index := seedIndex()

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	var wg sync.WaitGroup
	var totalOps int64

	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for iter := 0; iter < iterationsPerWorker; iter++ {
				for _, prefix := range testPrefixes {
					suggestions := index.Lookup(prefix, symspell.Closest, -1)
					_ = suggestions
					totalOps++
				}
			}
		}()
	}

	wg.Wait()

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	memDelta := int64(final.Alloc - baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("workers=%d iter_per_worker=%d total_ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		workers, iterationsPerWorker, totalOps, memDelta, memPerOp, goroutineDelta)

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		t.Errorf("heap profile write failed: %v", err)
	}

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}

	if goroutineDelta > 3 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}
