package mockapi

import (
	"net/http"
	"sync"
	"time"
)

type fault struct {
	status int
	detail string
	delay  time.Duration
}

// faults replaces or slows down matching routes and counts every call.
type faults struct {
	mu     sync.Mutex
	rules  map[string]fault
	counts map[string]int
}

func newFaults() *faults {
	return &faults{rules: make(map[string]fault), counts: make(map[string]int)}
}

func routeKey(method, path string) string {
	return method + " " + path
}

// Fail makes method+path answer status with a FastAPI-style detail until
// Reset is called.
func (s *Server) Fail(method, path string, status int, detail string) {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()

	f := s.faults.rules[routeKey(method, path)]
	f.status, f.detail = status, detail
	s.faults.rules[routeKey(method, path)] = f
}

// Delay holds method+path for d before it is served (or failed).
func (s *Server) Delay(method, path string, d time.Duration) {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()

	f := s.faults.rules[routeKey(method, path)]
	f.delay = d
	s.faults.rules[routeKey(method, path)] = f
}

// Reset drops every fault rule and call count.
func (s *Server) Reset() {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()

	s.faults.rules = make(map[string]fault)
	s.faults.counts = make(map[string]int)
}

// Calls returns how many requests reached method+path.
func (s *Server) Calls(method, path string) int {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()
	return s.faults.counts[routeKey(method, path)]
}

func (s *Server) injectFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := routeKey(r.Method, r.URL.Path)

		s.faults.mu.Lock()
		s.faults.counts[key]++
		f, ok := s.faults.rules[key]
		s.faults.mu.Unlock()

		if ok && f.delay > 0 {
			select {
			case <-time.After(f.delay):
			case <-r.Context().Done():
				return
			}
		}
		if ok && f.status != 0 {
			writeDetail(w, f.status, f.detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}
