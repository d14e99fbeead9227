package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"aptls/internal/apt"
)

// Server exposes the table session as a small JSON API, so external summary
// or status displays can read the current table and counters.
//
// The session model assumes rebuilds are serialized; net/http serves each
// request on its own goroutine, so the mutex restores that serialization at
// this boundary.
type Server struct {
	mu          sync.Mutex
	session     *apt.Session
	baseCommand string
	target      string
}

// NewServer wires the API to a session and the configured list command.
func NewServer(session *apt.Session, baseCommand, target string) *Server {
	return &Server{session: session, baseCommand: baseCommand, target: target}
}

// Start runs the HTTP server on the given port. Blocks.
func (s *Server) Start(port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/list", s.handleList)
	mux.HandleFunc("/api/stats", s.handleStats)

	fmt.Printf("Starting aptls API at http://localhost:%s\n", port)
	fmt.Printf("  GET /api/list   - run the list command, return records and stats\n")
	fmt.Printf("  GET /api/stats  - current statistics counters\n")

	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Print(err)
		return err
	}
	return nil
}

// handleList runs a fresh list (honoring ?upgradable=1) and returns the
// resulting snapshot. On failure the session keeps its prior table and the
// error is reported instead.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	command := s.baseCommand
	if r.URL.Query().Get("upgradable") == "1" {
		command += " --upgradable"
	}

	s.mu.Lock()
	err := s.session.RunList(command, s.target)
	snap := s.session.Snapshot()
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// handleStats returns the current counters without triggering a rebuild.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := s.session.Stats()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
