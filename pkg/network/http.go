package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/amaas/amaas-core-sdk-go/internal/logger"
	apperrors "github.com/amaas/amaas-core-sdk-go/pkg/errors"
)

// HTTPTransport is a Transport backed by the AMaaS REST API.
//
// Resources live at {base}/{class}/{amid}[/{id}]; searches are
// GET {base}/{class}?{key}={value}.
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.SugaredLogger
}

// Option configures an HTTPTransport.
type Option func(*HTTPTransport)

// WithRateLimit paces requests to at most rps per second. Zero or less disables pacing.
func WithRateLimit(rps float64) Option {
	return func(t *HTTPTransport) {
		if rps <= 0 {
			t.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(t *HTTPTransport) { t.log = l }
}

// NewHTTPTransport creates a transport for the API at baseURL (including the
// version segment, e.g. https://api.amaas.com/v1.0).
func NewHTTPTransport(baseURL string, httpClient *http.Client, opts ...Option) *HTTPTransport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	t := &HTTPTransport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = logger.Or(t.log)
	return t
}

// Read issues GET {class}/{amid}[/{id}].
func (t *HTTPTransport) Read(ctx context.Context, p Params) (json.RawMessage, error) {
	return t.do(ctx, http.MethodGet, t.resourceURL(p), p.Token, nil)
}

// Create issues POST {class}/{amid}.
func (t *HTTPTransport) Create(ctx context.Context, p Params) (json.RawMessage, error) {
	p.ResourceID = ""
	return t.do(ctx, http.MethodPost, t.resourceURL(p), p.Token, p.Data)
}

// Replace issues PUT {class}/{amid}/{id}.
func (t *HTTPTransport) Replace(ctx context.Context, p Params) (json.RawMessage, error) {
	return t.do(ctx, http.MethodPut, t.resourceURL(p), p.Token, p.Data)
}

// PartialUpdate issues PATCH {class}/{amid}/{id}.
func (t *HTTPTransport) PartialUpdate(ctx context.Context, p Params) (json.RawMessage, error) {
	return t.do(ctx, http.MethodPatch, t.resourceURL(p), p.Token, p.Data)
}

// Delete issues DELETE {class}/{amid}/{id}.
func (t *HTTPTransport) Delete(ctx context.Context, p Params) (json.RawMessage, error) {
	return t.do(ctx, http.MethodDelete, t.resourceURL(p), p.Token, nil)
}

// Query issues GET {class}?{key}={value}.
func (t *HTTPTransport) Query(ctx context.Context, p Params) (json.RawMessage, error) {
	q := url.Values{}
	q.Set(p.QueryKey, p.QueryValue)
	return t.do(ctx, http.MethodGet, t.baseURL+"/"+url.PathEscape(p.Class)+"?"+q.Encode(), p.Token, nil)
}

func (t *HTTPTransport) resourceURL(p Params) string {
	u := t.baseURL + "/" + url.PathEscape(p.Class) + "/" + strconv.Itoa(p.AMID)
	if p.ResourceID != "" {
		u += "/" + url.PathEscape(p.ResourceID)
	}
	return u
}

func (t *HTTPTransport) do(ctx context.Context, method, target, token string, body json.RawMessage) (json.RawMessage, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrTransport, fmt.Errorf("waiting for rate limiter: %w", err))
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTransport, fmt.Errorf("creating request: %w", err))
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.log.Warnw("request failed",
			"request_id", requestID,
			"method", method,
			"path", req.URL.Path,
			"error", err,
		)
		return nil, apperrors.Wrap(apperrors.ErrTransport, fmt.Errorf("%s %s: %w", method, req.URL.Path, err))
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	t.log.Infow("request",
		"request_id", requestID,
		"method", method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTransport, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(method, req.URL.Path, resp.StatusCode, payload)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(payload), nil
}

// statusError maps a non-2xx response onto the SDK error taxonomy. The body is
// kept verbatim in the internal error.
func statusError(method, path string, status int, body []byte) error {
	internal := fmt.Errorf("%s %s: unexpected status %d: %s", method, path, status, strings.TrimSpace(string(body)))
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.WithStatus(apperrors.ErrUnauthorized, status, internal)
	case http.StatusNotFound:
		return apperrors.WithStatus(apperrors.ErrNotFound, status, internal)
	default:
		return apperrors.WithStatus(apperrors.ErrTransport, status, internal)
	}
}

var _ Transport = (*HTTPTransport)(nil)
