// Package languagetool implements domain.Checker against a LanguageTool
// HTTP server (`POST /v2/check`, `GET /v2/languages`).
package languagetool

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/texspell/texspell/internal/domain"
	"github.com/texspell/texspell/internal/domain/normalize"
)

const (
	checkPath     = "/v2/check"
	languagesPath = "/v2/languages"

	// maxBody caps how much of a response is read.
	maxBody = 16 << 20
)

// Options tunes the check request beyond text and language.
type Options struct {
	Timeout       time.Duration
	DisabledRules []string
	Picky         bool
	MotherTongue  string
}

// Client talks to one LanguageTool server. Requests carry no credentials.
type Client struct {
	baseURL    string
	opts       Options
	http       *http.Client
	normalizer *normalize.Normalizer
	logger     *slog.Logger
}

// New creates a Client for the server rooted at baseURL.
func New(baseURL string, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		opts:       opts,
		http:       &http.Client{Timeout: opts.Timeout},
		normalizer: normalize.New(logger),
		logger:     logger,
	}
}

// Check sends the text once and normalizes the matches.
func (c *Client) Check(ctx context.Context, req domain.CheckRequest) (*domain.CheckResult, error) {
	form := url.Values{}
	form.Set("text", req.Text)
	form.Set("language", req.Language)
	if len(c.opts.DisabledRules) > 0 {
		form.Set("disabledRules", strings.Join(c.opts.DisabledRules, ","))
	}
	if c.opts.Picky {
		form.Set("level", "picky")
	}
	if c.opts.MotherTongue != "" {
		form.Set("motherTongue", c.opts.MotherTongue)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+checkPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	body, err := c.do(ctx, httpReq)
	if err != nil {
		return nil, err
	}
	return c.normalizer.Matches(body, domain.NewPlainText("", req.Text))
}

// Languages fetches the server's language catalog.
func (c *Client) Languages(ctx context.Context) ([]domain.Language, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+languagesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	body, err := c.do(ctx, httpReq)
	if err != nil {
		return nil, err
	}
	return c.normalizer.Languages(body)
}

// do performs exactly one round trip and classifies its failure.
func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	reqID := uuid.NewString()
	start := time.Now()

	c.logger.Debug("checker.http.request",
		"req_id", reqID,
		"method", req.Method,
		"url", req.URL.String(),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("checker.http.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.CheckError{Kind: domain.Network, Err: err}
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.logger.Warn("checker.http.response_body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.CheckError{Kind: domain.Network, Err: fmt.Errorf("reading response: %w", err)}
	}

	c.logger.Debug("checker.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return nil, &domain.CheckError{
			Kind:   domain.Unavailable,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, snippet(raw)),
		}
	}
	return raw, nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		s = "empty body"
	}
	return s
}
