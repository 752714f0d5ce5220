package view

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"marketplace/internal/usecase"
	apperrors "marketplace/pkg/errors"
)

// ErrUnresolved is returned when a page is requested before the identity
// probe has run.
var ErrUnresolved = errors.New("session not resolved yet")

// RedirectError tells the caller which area to show instead.
type RedirectError struct {
	Target usecase.Area
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to %s", e.Target)
}

func IsRedirect(err error) (usecase.Area, bool) {
	var r *RedirectError
	if errors.As(err, &r) {
		return r.Target, true
	}
	return "", false
}

// Pages renders every screen of the marketplace as plain text. Each page
// resolves the role gate before touching any store.
type Pages struct {
	sessions *usecase.SessionStore
	products *usecase.ProductStore
	cart     *usecase.CartStore
	tags     *usecase.TagStore
	gate     *usecase.Gate
}

// NewPages creates the page set over the stores.
func NewPages(sessions *usecase.SessionStore, products *usecase.ProductStore, cart *usecase.CartStore, tags *usecase.TagStore) *Pages {
	return &Pages{
		sessions: sessions,
		products: products,
		cart:     cart,
		tags:     tags,
		gate:     usecase.NewGate(sessions),
	}
}

func (p *Pages) guard(area usecase.Area) error {
	d := p.gate.Resolve(area)
	switch d.Action {
	case usecase.ActionWait:
		return ErrUnresolved
	case usecase.ActionRedirect:
		return &RedirectError{Target: d.Target}
	}
	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// writeFieldErrors prints validation failures one per line, sorted by field.
func writeFieldErrors(w io.Writer, err error) bool {
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	fields := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %s: %s\n", f, verr.Fields[f])
	}
	return true
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
