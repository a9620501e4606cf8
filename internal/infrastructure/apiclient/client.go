// Package apiclient talks to the POS backend REST API.
//
// Every call goes through one path that attaches the bearer token and a
// request id, records a span, passes the circuit breaker and maps the
// outcome onto apperror codes. Calls are never retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"chuipos/internal/core/apperror"
	appctx "chuipos/internal/core/context"
	"chuipos/pkg/logger"
)

var tracer = otel.Tracer("chuipos/apiclient")

// maxBodySize caps how much of a response is read.
const maxBodySize = 8 << 20

// TokenSource supplies the bearer token for each call.
type TokenSource interface {
	Token() string
}

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. http://127.0.0.1:9000/api/pos/.
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource

	// OnAuthFailure is called once for every 401/403 response to an
	// authenticated call.
	OnAuthFailure func(status int)

	// FailureThreshold consecutive transport failures open the breaker for
	// OpenTimeout. Zero values use defaults.
	FailureThreshold uint32
	OpenTimeout      time.Duration

	// HTTPClient overrides the default gzip-aware client. Timeout still applies.
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Client is the backend API client. Safe for concurrent use.
type Client struct {
	base          *url.URL
	http          *http.Client
	tokens        TokenSource
	onAuthFailure func(status int)
	breaker       *gobreaker.CircuitBreaker[*rawResponse]
	log           *logger.Logger
}

type rawResponse struct {
	status int
	body   []byte
}

// New creates a client.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, apperror.NewValidation("base url must be absolute").WithDetail("value", cfg.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: gzhttp.Transport(http.DefaultTransport)}
	}
	if cfg.Timeout > 0 {
		cp := *httpClient
		cp.Timeout = cfg.Timeout
		httpClient = &cp
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	log = log.WithComponent("apiclient")

	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	openTimeout := cfg.OpenTimeout
	if openTimeout == 0 {
		openTimeout = 10 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[*rawResponse](gobreaker.Settings{
		Name:        "pos-api",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// A cashier cancelling is not a backend failure.
			return err == nil || isCanceled(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnw("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		base:          base,
		http:          httpClient,
		tokens:        cfg.Tokens,
		onAuthFailure: cfg.OnAuthFailure,
		breaker:       breaker,
		log:           log,
	}, nil
}

// call describes one API request.
type call struct {
	method string
	path   string
	query  url.Values
	body   any

	// anonymous calls carry no token and never report auth failures.
	anonymous bool
}

// do executes c and decodes a 2xx body into out (may be nil).
func (cl *Client) do(ctx context.Context, c call, out any) error {
	ctx = appctx.EnsureTrace(ctx)
	route := routeOf(c.path)

	ctx, span := tracer.Start(ctx, c.method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", c.method),
			attribute.String("http.route", route),
			attribute.String("request.id", appctx.GetRequestID(ctx)),
		))
	defer span.End()

	err := cl.execute(ctx, c, out, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperror.UserMessage(err))
		cl.log.WithContext(ctx).Warnw("api call failed",
			"method", c.method,
			"path", c.path,
			"code", codeOf(err),
			"error", err)
	}
	return err
}

func (cl *Client) execute(ctx context.Context, c call, out any, span trace.Span) error {
	req, err := cl.newRequest(ctx, c)
	if err != nil {
		return err
	}

	resp, err := cl.breaker.Execute(func() (*rawResponse, error) {
		return cl.roundTrip(req)
	})
	if err != nil {
		return transportError(ctx, err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.status))

	if resp.status >= 200 && resp.status < 300 {
		if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
			return nil
		}
		if err := json.Unmarshal(resp.body, out); err != nil {
			return apperror.NewDecode(err).WithDetail("path", c.path)
		}
		return nil
	}

	if (resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden) && !c.anonymous {
		if cl.onAuthFailure != nil {
			cl.onAuthFailure(resp.status)
		}
		return apperror.NewSessionExpired(resp.status)
	}
	return statusError(resp.status, resp.body)
}

func (cl *Client) newRequest(ctx context.Context, c call) (*http.Request, error) {
	target := cl.base.ResolveReference(&url.URL{Path: c.path})
	if len(c.query) > 0 {
		target.RawQuery = c.query.Encode()
	}

	var body io.Reader
	if c.body != nil {
		data, err := json.Marshal(c.body)
		if err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("encode %s body: %w", c.path, err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, target.String(), body)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := appctx.GetRequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	if !c.anonymous && cl.tokens != nil {
		if token := cl.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// roundTrip returns an error only when no response was received, so the
// breaker counts transport failures and not server rejections.
func (cl *Client) roundTrip(req *http.Request) (*rawResponse, error) {
	resp, err := cl.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	return &rawResponse{status: resp.StatusCode, body: body}, nil
}

// routeOf strips ids so span names stay low-cardinality.
func routeOf(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p != "" && strings.Trim(p, "0123456789") == "" {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func codeOf(err error) string {
	if appErr, ok := apperror.AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}
