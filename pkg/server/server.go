package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/trvon/yams-symspell/pkg/symspell"
)

const (
	defaultLimit = 10
	maxPrefixLen = 60
)

// Server handles msgpack IPC for lookups and inserts against an Index.
type Server struct {
	index   *symspell.Index
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
}

// NewServer creates a server reading Requests from stdin and writing
// responses to stdout, against index.
func NewServer(index *symspell.Index) *Server {
	return &Server{
		index:   index,
		decoder: msgpack.NewDecoder(os.Stdin),
		encoder: msgpack.NewEncoder(os.Stdout),
	}
}

// NewServerIO creates a server over arbitrary reader/writer, for tests and
// for the example client that pipes a subprocess's stdio.
func NewServerIO(index *symspell.Index, r io.Reader, w io.Writer) *Server {
	return &Server{
		index:   index,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests until the stream is closed.
func (s *Server) Start() error {
	log.Debug("Starting symspell server.")
	s.sendResponse(HealthResponse{Status: "ready"})

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	switch req.Command {
	case "lookup":
		s.handleLookup(req)
	case "insert":
		s.handleInsert(req)
	case "health":
		s.sendResponse(HealthResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown command: %s", req.Command), 400)
	}
}

func (s *Server) sendResponse(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(CompletionError{ID: id, Error: message, Code: code})
}

func (s *Server) handleLookup(req Request) {
	prefix := req.Prefix
	if prefix == "" {
		s.sendError(req.ID, "missing 'p' (prefix) parameter", 400)
		return
	}
	if len(prefix) > maxPrefixLen {
		s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d characters", maxPrefixLen), 400)
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	verbosity := symspell.ParseVerbosity(req.Verbosity)

	start := time.Now()
	suggestions := s.index.Lookup(prefix, verbosity, -1)
	elapsed := time.Since(start)

	if limit < len(suggestions) {
		suggestions = suggestions[:limit]
	}

	out := make([]LookupSuggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = LookupSuggestion{Term: sg.Term, Distance: sg.Distance, Frequency: sg.Frequency}
	}

	s.sendResponse(LookupResponse{
		ID:          req.ID,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleInsert(req Request) {
	if req.Term == "" {
		s.sendError(req.ID, "missing 'term' parameter", 400)
		return
	}
	if req.Count <= 0 {
		s.sendError(req.ID, "'count' must be positive", 400)
		return
	}

	promoted := s.index.Insert(req.Term, req.Count)
	s.sendResponse(InsertResponse{ID: req.ID, Status: "ok", Promoted: promoted})
}
