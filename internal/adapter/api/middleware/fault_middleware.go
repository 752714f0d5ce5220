package middleware

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
)

type fault struct {
	method string
	path   string
	status int
}

// Faults makes chosen requests fail once with a given status. Tests use it
// to drive rollback and stale-if-error paths against a live server.
type Faults struct {
	mu      sync.Mutex
	pending []fault
}

// NewFaults creates an empty fault table.
func NewFaults() *Faults {
	return &Faults{}
}

// FailNext arms a single failure for the next request matching method and
// path exactly.
func (f *Faults) FailNext(method, path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, fault{method: method, path: path, status: status})
}

func (f *Faults) take(method, path string) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.pending {
		if p.method == method && p.path == path {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return p.status, true
		}
	}
	return 0, false
}

func (f *Faults) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if status, ok := f.take(req.Method, req.URL.Path); ok {
			return echo.NewHTTPError(status, http.StatusText(status))
		}
		return next(c)
	}
}
