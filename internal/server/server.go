// Package server exposes a read-only HTTP inspection API over a loaded
// network: counts and energy summary, per-minimum and per-edge detail,
// and on-demand pair selection. The network is loaded once at startup;
// the API never mutates it.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	apperrors "github.com/matzehuels/landscape/pkg/errors"
	"github.com/matzehuels/landscape/pkg/ktn"
	"github.com/matzehuels/landscape/pkg/pairs"
)

// Server serves the inspection API for one network.
type Server struct {
	network  *ktn.Network
	provider pairs.Provider
	logger   *log.Logger
}

// New creates a Server over the given network and provider.
func New(n *ktn.Network, p pairs.Provider, logger *log.Logger) *Server {
	return &Server{network: n, provider: p, logger: logger}
}

// Handler returns the chi route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Get("/network", s.handleNetwork)
	r.Get("/minima", s.handleMinima)
	r.Get("/minima/{id}", s.handleMinimum)
	r.Get("/ts", s.handleTS)
	r.Get("/pairs", s.handlePairs)
	return r
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("serving inspection API", "addr", addr)
	return srv.ListenAndServe()
}

// requestLogger logs each request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}

type networkSummary struct {
	NMinima    int     `json:"n_minima"`
	NTS        int     `json:"n_ts"`
	Dim        int     `json:"dim"`
	PairList   int     `json:"pairlist_entries"`
	Components int     `json:"components"`
	MinEnergy  float64 `json:"min_energy,omitempty"`
	MaxEnergy  float64 `json:"max_energy,omitempty"`
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	n := s.network
	out := networkSummary{
		NMinima:  n.NMinima(),
		NTS:      n.NTS(),
		Dim:      n.Dim(),
		PairList: len(n.PairList()),
	}
	if n.NMinima() > 0 {
		out.Components = componentCount(n, s.provider)
		out.MinEnergy, out.MaxEnergy = energyRange(n)
	}
	writeJSON(w, http.StatusOK, out)
}

type minimumView struct {
	ID     int       `json:"id"`
	Energy float64   `json:"energy"`
	Coords []float64 `json:"coords,omitempty"`
}

func (s *Server) handleMinima(w http.ResponseWriter, r *http.Request) {
	n := s.network
	out := make([]minimumView, n.NMinima())
	for id := range out {
		energy, _ := n.MinimumEnergy(id)
		out[id] = minimumView{ID: id, Energy: energy}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMinimum(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest,
			apperrors.New(apperrors.ErrCodeInvalidInput, "minimum id must be an integer"))
		return
	}
	coords, err := s.network.MinimumCoords(id)
	if err != nil {
		writeError(w, http.StatusNotFound,
			apperrors.Wrap(apperrors.ErrCodeMinimumNotFound, err, "minimum %d", id))
		return
	}
	energy, _ := s.network.MinimumEnergy(id)
	writeJSON(w, http.StatusOK, minimumView{ID: id, Energy: energy, Coords: coords})
}

type tsView struct {
	Min1   int     `json:"min1"`
	Min2   int     `json:"min2"`
	Energy float64 `json:"energy"`
}

func (s *Server) handleTS(w http.ResponseWriter, r *http.Request) {
	out := make([]tsView, 0, s.network.NTS())
	s.network.EachTS(func(rec *ktn.TransitionState) {
		out = append(out, tsView{Min1: rec.Min1, Min2: rec.Min2, Energy: rec.Energy})
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePairs(w http.ResponseWriter, r *http.Request) {
	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = "closest"
	}
	k := 1
	if raw := r.URL.Query().Get("k"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest,
				apperrors.New(apperrors.ErrCodeInvalidInput, "k must be an integer"))
			return
		}
		k = v
	}
	if err := apperrors.ValidateNeighbours(k); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var selected []pairs.Pair
	switch strategy {
	case "closest":
		selected = pairs.ClosestEnumeration(s.network, s.provider, k)
	case "unconnected":
		selected = pairs.ConnectUnconnected(s.network, s.provider, k)
	default:
		writeError(w, http.StatusBadRequest,
			apperrors.New(apperrors.ErrCodeInvalidStrategy,
				"unknown strategy %q (want closest or unconnected)", strategy))
		return
	}
	if selected == nil {
		selected = []pairs.Pair{}
	}
	writeJSON(w, http.StatusOK, selected)
}

// componentCount counts connectivity components by repeated provider
// queries over the unvisited remainder.
func componentCount(n *ktn.Network, p pairs.Provider) int {
	visited := make(map[int]struct{}, n.NMinima())
	count := 0
	for id := 0; id < n.NMinima(); id++ {
		if _, ok := visited[id]; ok {
			continue
		}
		count++
		for member := range p.ComponentOf(n, id) {
			visited[member] = struct{}{}
		}
	}
	return count
}

func energyRange(n *ktn.Network) (lo, hi float64) {
	lo, _ = n.MinimumEnergy(0)
	hi = lo
	for id := 1; id < n.NMinima(); id++ {
		e, _ := n.MinimumEnergy(id)
		if e < lo {
			lo = e
		}
		if e > hi {
			hi = e
		}
	}
	return lo, hi
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{
		Code:    string(apperrors.GetCode(err)),
		Message: apperrors.UserMessage(err),
	})
}
