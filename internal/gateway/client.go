// Package gateway talks to the remote user directory over its
// JSONPlaceholder-compatible REST API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/core/datamodel/directoryuser"
	"github.com/frahmantamala/user-dashboard/internal/record"
	"github.com/frahmantamala/user-dashboard/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const tracerName = "github.com/frahmantamala/user-dashboard/internal/gateway"

// Directory is what the dashboard needs from the remote record source.
type Directory interface {
	ListUsers(ctx context.Context) ([]directoryuser.RawUser, error)
	CreateUser(ctx context.Context, draft record.Draft) (directoryuser.RawUser, error)
	UpdateUser(ctx context.Context, id int64, draft record.Draft) (directoryuser.RawUser, error)
	DeleteUser(ctx context.Context, id int64) error
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

func NewClient(config Config, logger *slog.Logger, m *metrics.Metrics) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    m,
		tracer:     otel.Tracer(tracerName),
	}
}

// BuildPayload is the request body for add (id 0) and edit. Only name, email,
// username and company come from the form; the remaining directory fields are
// sent empty.
func BuildPayload(draft record.Draft, id int64) directoryuser.RawUser {
	return directoryuser.RawUser{
		ID:       id,
		Name:     draft.FullName(),
		Username: cases.Lower(language.Und).String(draft.FirstName),
		Email:    draft.Email,
		Company:  directoryuser.Company{Name: draft.Department},
	}
}

func (c *Client) ListUsers(ctx context.Context) ([]directoryuser.RawUser, error) {
	var users []directoryuser.RawUser
	err := c.do(ctx, "list_users", http.MethodGet, "/users", nil, &users)
	if err != nil {
		return nil, internal.NewFetchFailure(err)
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, draft record.Draft) (directoryuser.RawUser, error) {
	var created directoryuser.RawUser
	err := c.do(ctx, "create_user", http.MethodPost, "/users", BuildPayload(draft, 0), &created)
	if err != nil {
		return directoryuser.RawUser{}, internal.NewSaveFailure(err)
	}
	return created, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, draft record.Draft) (directoryuser.RawUser, error) {
	var updated directoryuser.RawUser
	err := c.do(ctx, "update_user", http.MethodPut, userPath(id), BuildPayload(draft, id), &updated)
	if err != nil {
		return directoryuser.RawUser{}, internal.NewSaveFailure(err)
	}
	return updated, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if err := c.do(ctx, "delete_user", http.MethodDelete, userPath(id), nil, nil); err != nil {
		return internal.NewDeleteFailure(err)
	}
	return nil
}

// Ping checks that the directory answers at all.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/users/1", nil, nil)
}

func userPath(id int64) string {
	return "/users/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) (err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "directory."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer func() {
		elapsed := time.Since(start)
		c.metrics.ObserveDirectory(operation, err, elapsed)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.logger.Warn("directory request failed",
				"operation", operation,
				"method", method,
				"path", path,
				"duration_ms", elapsed.Milliseconds(),
				"error", err)
		} else {
			c.logger.Debug("directory request completed",
				"operation", operation,
				"duration_ms", elapsed.Milliseconds())
		}
		span.End()
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// StatusError is a non-2xx answer from the directory.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("directory returned status %d", e.StatusCode)
}
