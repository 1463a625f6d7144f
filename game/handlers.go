package game

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/julienschmidt/httprouter"
)

// Server wraps one Game behind a mutex and exposes it over HTTP. Every
// endpoint is a POST with a JSON body; every success response is JSON, and
// every failure is a plain-text status that clients must not try to parse.
type Server struct {
	mu   sync.Mutex
	game Game
	logf func(format string, args ...any)
	errs chan<- error
}

// NewServer creates a server with fresh decks. logf may be nil.
func NewServer(logf func(format string, args ...any)) *Server {
	if logf == nil {
		logf = func(format string, args ...any) {}
	}
	s := &Server{logf: logf}
	s.game.Reset()
	return s
}

// Register wires the six game endpoints onto mux under prefix. Write
// failures are reported on errs.
func (s *Server) Register(prefix string, mux *httprouter.Router, errs chan<- error) {
	s.errs = errs

	mux.POST(prefix+"/join", s.handleJoin)
	mux.POST(prefix+"/state", s.handleState)
	mux.POST(prefix+"/playCard", s.handlePlayCard)
	mux.POST(prefix+"/czar", s.handleCzar)
	mux.POST(prefix+"/czarChoice", s.handleCzarChoice)
	mux.POST(prefix+"/reset", s.handleReset)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil && s.errs != nil {
		s.errs <- err
	}
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req JoinReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		http.Error(w, "a name is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	rsp := s.game.Join(name)
	s.mu.Unlock()

	s.logf("GAMES: Player %q joined as %s", name, rsp.PlayerId)
	s.writeJSON(w, rsp)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req StateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.game.Players[req.PlayerId]; !exists {
		http.Error(w, "unknown player", http.StatusBadRequest)
		return
	}

	s.writeJSON(w, s.game.StateFor(req.PlayerId))
}

func (s *Server) handlePlayCard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := PlayCardReq{PlayerId: "", CardId: noCard}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	rsp, ok := s.game.PlayCard(req.PlayerId, req.CardId)
	s.mu.Unlock()

	if !ok {
		http.Error(w, "unknown player", http.StatusBadRequest)
		return
	}

	s.writeJSON(w, rsp)
}

func (s *Server) handleCzar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CzarReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	rsp, ok := s.game.Submissions(req.PlayerId)
	s.mu.Unlock()

	if !ok {
		http.Error(w, "not everyone has played yet", http.StatusBadRequest)
		return
	}

	s.writeJSON(w, rsp)
}

func (s *Server) handleCzarChoice(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CzarChoiceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	rsp := s.game.ConcludeRound(req.PlayerId, req.WinningPlayerId)
	s.mu.Unlock()

	s.logf("GAMES: Round won by %s", req.WinningPlayerId)
	s.writeJSON(w, rsp)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.mu.Lock()
	s.game.Reset()
	s.mu.Unlock()

	s.logf("GAMES: Game reset, decks rebuilt")
	s.writeJSON(w, struct{}{})
}
