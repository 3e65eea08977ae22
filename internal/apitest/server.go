package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riordanpawley/daybook/internal/domain"
)

type ctxKey struct{}

// Request records one request seen by the server
type Request struct {
	Method string
	Path   string
	Query  string
	Auth   string
}

// Server is an httptest server backed by an in-memory Backend
type Server struct {
	*httptest.Server
	Backend *Backend

	mu        sync.Mutex
	requests  []Request
	overrides map[string]http.HandlerFunc
}

// NewServer starts a server seeded with the default fixtures and closes it
// when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	return NewServerWithFixtures(t, DefaultFixtures())
}

// NewServerWithFixtures starts a server seeded with f
func NewServerWithFixtures(t testing.TB, f Fixtures) *Server {
	t.Helper()

	backend := NewBackend()
	if err := backend.Seed(f); err != nil {
		t.Fatalf("seed backend: %v", err)
	}

	s := &Server{
		Backend:   backend,
		overrides: make(map[string]http.HandlerFunc),
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// Override replaces the handler for method and path, e.g.
// Override("GET", "/api/tasks", h). Overrides run after request recording
// and before authentication.
func (s *Server) Override(method, path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = h
}

// Requests returns every request recorded so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Login opens a session for a fixture user and returns its token
func (s *Server) Login(t testing.TB, username, password string) string {
	t.Helper()
	token, err := s.Backend.Login(username, password)
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	return token
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/analytics", s.handleAnalytics)
		r.Get("/pending-dates", s.handlePendingDates)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDelete)
	})

	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
		})
		override := s.overrides[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if override != nil {
			override(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		username, ok := s.Backend.Authenticate(token)
		if !ok {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, username)))
	})
}

func owner(r *http.Request) string {
	username, _ := r.Context().Value(ctxKey{}).(string)
	return username
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request")
		return
	}
	token, err := s.Backend.Login(req.Username, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if err := s.Backend.AddUser(req.Email, req.Password, req.FullName); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Backend.Tasks(owner(r), r.URL.Query().Get("date")))
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Backend.Analytics(owner(r), r.URL.Query().Get("date")))
}

func (s *Server) handlePendingDates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Backend.PendingDates(owner(r)))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.Task
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request")
		return
	}
	created, err := s.Backend.Create(owner(r), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task id")
		return
	}
	var in domain.Task
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request")
		return
	}
	updated, err := s.Backend.Update(owner(r), id, in)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task id")
		return
	}
	if err := s.Backend.Delete(owner(r), id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
