// Package cli provides an interactive REPL for querying a symspell.Index
// directly from a terminal, for debugging and manual dictionary checks.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/trvon/yams-symspell/internal/utils"
	"github.com/trvon/yams-symspell/pkg/symspell"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	termStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))
)

// REPL drives an interactive lookup session over an Index.
type REPL struct {
	index        *symspell.Index
	verbosity    symspell.Verbosity
	limit        int
	noFilter     bool
	requestCount int
}

// NewREPL creates a REPL over index with the given default limit and
// verbosity; noFilter bypasses input validation for debugging raw queries.
func NewREPL(index *symspell.Index, limit int, verbosity symspell.Verbosity, noFilter bool) *REPL {
	return &REPL{index: index, verbosity: verbosity, limit: limit, noFilter: noFilter}
}

// Start begins the interactive input loop, blocking until stdin closes or
// an unrecoverable read error occurs.
func (r *REPL) Start() error {
	fmt.Println(bannerStyle.Render("symspell CLI"))
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("type a word, press enter to see corrections (Ctrl+C to exit):")

	for {
		fmt.Print(promptStyle.Render("> "))
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.handleInput(line)
	}
}

func (r *REPL) handleInput(input string) {
	r.requestCount++

	if !r.noFilter {
		if !utils.IsValidQuery(input) {
			log.Warnf("input %q filtered out (numbers-only, special chars, or repetitive)", input)
			return
		}
	}

	start := time.Now()
	suggestions := r.index.Lookup(input, r.verbosity, -1)
	elapsed := time.Since(start)

	if len(suggestions) == 0 {
		log.Warnf("no suggestions found for %q", input)
		return
	}

	if r.limit > 0 && r.limit < len(suggestions) {
		suggestions = suggestions[:r.limit]
	}

	fmt.Printf("found %d suggestion(s) for %q in %v:\n", len(suggestions), input, elapsed)
	for i, s := range suggestions {
		word := termStyle.Render(s.Term)
		fmt.Printf("%2d. %-30s (distance: %d, freq: %s)\n", i+1, word, s.Distance, formatWithCommas(s.Frequency))
	}
}

// formatWithCommas formats an integer with comma thousands separators.
func formatWithCommas(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteByte(',')
		}
		result.WriteRune(char)
	}
	return result.String()
}
