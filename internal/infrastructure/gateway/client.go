package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"marketplace/internal/infrastructure/credentials"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/logger"
	"marketplace/pkg/response"

	"github.com/rs/zerolog"
)

// Reply carries what the caller needs beyond the decoded payload.
type Reply struct {
	Status  int
	Message string
}

// FilePart is one file attached to a multipart request.
type FilePart struct {
	Name        string
	ContentType string
	Data        []byte
}

// Client is the single HTTP client every store action goes through. It owns
// the base URL and the cookie jar. There is no retry and no timeout policy;
// a call resolves or fails once, and only ctx can cancel it.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	jar     http.CookieJar
	creds   credentials.Store
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCredentials persists session cookies through store.
func WithCredentials(store credentials.Store) Option {
	return func(c *Client) {
		c.creds = store
	}
}

// WithTransport swaps the round tripper, mostly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// New creates a gateway for baseURL and restores any stored cookies.
func New(ctx context.Context, baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Jar: jar},
		jar:     jar,
		log:     logger.With("gateway"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.creds != nil {
		cookies, err := c.creds.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load stored credentials: %w", err)
		}
		if len(cookies) > 0 {
			jar.SetCookies(c.rootURL(), cookies)
		}
	}

	return c, nil
}

// Do sends body as JSON (when non-nil) and decodes a 2xx reply into out
// (when non-nil).
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) (*Reply, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Internal("Failed to encode request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return nil, apperrors.Internal("Failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// PostMultipart sends jsonPart encoded as JSON under jsonField plus every
// file under the repeated fileField.
func (c *Client) PostMultipart(ctx context.Context, path, jsonField string, jsonPart interface{}, fileField string, files []FilePart, out interface{}) (*Reply, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	payload, err := json.Marshal(jsonPart)
	if err != nil {
		return nil, apperrors.Internal("Failed to encode request", err)
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, jsonField))
	header.Set("Content-Type", "application/json")
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, apperrors.Internal("Failed to build multipart body", err)
	}
	if _, err := part.Write(payload); err != nil {
		return nil, apperrors.Internal("Failed to build multipart body", err)
	}

	for _, f := range files {
		fh := make(textproto.MIMEHeader)
		fh.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, f.Name))
		contentType := f.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(f.Data)
		}
		fh.Set("Content-Type", contentType)
		fp, err := w.CreatePart(fh)
		if err != nil {
			return nil, apperrors.Internal("Failed to build multipart body", err)
		}
		if _, err := fp.Write(f.Data); err != nil {
			return nil, apperrors.Internal("Failed to build multipart body", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, apperrors.Internal("Failed to build multipart body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), &buf)
	if err != nil {
		return nil, apperrors.Internal("Failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, out)
}

// ForgetCredentials drops stored cookies, used after logout.
func (c *Client) ForgetCredentials(ctx context.Context) error {
	expired := make([]*http.Cookie, 0)
	for _, ck := range c.jar.Cookies(c.rootURL()) {
		expired = append(expired, &http.Cookie{Name: ck.Name, Path: "/", MaxAge: -1})
	}
	if len(expired) > 0 {
		c.jar.SetCookies(c.rootURL(), expired)
	}
	if c.creds == nil {
		return nil
	}
	return c.creds.Clear(ctx)
}

func (c *Client) send(req *http.Request, out interface{}) (*Reply, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.Warn().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("request failed")
		return nil, apperrors.Network("Unable to reach the marketplace", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Network("Failed to read response", err)
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api call")

	c.persistCookies(req.Context())

	reply := &Reply{Status: resp.StatusCode, Message: response.ExtractMessage(raw)}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return reply, apperrors.FromStatus(resp.StatusCode, reply.Message)
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return reply, apperrors.Internal("Unexpected response from the marketplace", err)
		}
	}

	return reply, nil
}

func (c *Client) persistCookies(ctx context.Context) {
	if c.creds == nil {
		return
	}
	if err := c.creds.Save(ctx, c.jar.Cookies(c.rootURL())); err != nil {
		c.log.Warn().Err(err).Msg("failed to persist credentials")
	}
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) rootURL() *url.URL {
	return &url.URL{Scheme: c.baseURL.Scheme, Host: c.baseURL.Host, Path: "/"}
}
