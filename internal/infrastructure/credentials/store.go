package credentials

import (
	"context"
	"net/http"
	"sync"
)

// Store persists the session cookies the API hands out so a later process
// can resume the same session.
type Store interface {
	Load(ctx context.Context) ([]*http.Cookie, error)
	Save(ctx context.Context, cookies []*http.Cookie) error
	Clear(ctx context.Context) error
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func toStored(cookies []*http.Cookie) []storedCookie {
	out := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, storedCookie{Name: c.Name, Value: c.Value})
	}
	return out
}

func fromStored(stored []storedCookie) []*http.Cookie {
	out := make([]*http.Cookie, 0, len(stored))
	for _, s := range stored {
		out = append(out, &http.Cookie{Name: s.Name, Value: s.Value, Path: "/"})
	}
	return out
}

// Memory keeps cookies for the lifetime of the process only.
type Memory struct {
	mu      sync.Mutex
	cookies []storedCookie
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(context.Context) ([]*http.Cookie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fromStored(m.cookies), nil
}

func (m *Memory) Save(_ context.Context, cookies []*http.Cookie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cookies = toStored(cookies)
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cookies = nil
	return nil
}
