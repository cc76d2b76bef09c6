package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/coveralls-ci/internal/config"
)

const (
	jobsPath         = "/api/v1/jobs"
	maxResponseBytes = 1 << 20
)

// Response is the service answer to an accepted job.
type Response struct {
	Message string `json:"message"`
	URL     string `json:"url"`
	Error   bool   `json:"error"`
}

// Client uploads jobs to a Coveralls compatible endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures Client behaviour.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client, primarily for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New constructs a Client from the provided settings.
func New(settings config.Settings, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint:   strings.TrimSuffix(settings.Endpoint, "/"),
		httpClient: &http.Client{Timeout: settings.Timeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Upload posts job as the json_file part of a multipart form. It makes a
// single attempt.
func (c *Client) Upload(ctx context.Context, job Job) (*Response, error) {
	if token, ok := job.Config.Get(config.FieldRepoToken); !ok || strings.TrimSpace(token) == "" {
		return nil, ErrMissingRepoToken
	}

	body, contentType, err := multipartBody(job)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+jobsPath, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Info("request completed",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	return decodeResponse(resp)
}

func multipartBody(job Job) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("json_file", "coveralls.json")
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if err := json.NewEncoder(part).Encode(newPayload(job)); err != nil {
		return nil, "", fmt.Errorf("encode job: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}

	return &buf, mw.FormDataContentType(), nil
}

func decodeResponse(resp *http.Response) (*Response, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var out Response
	decodeErr := json.Unmarshal(data, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(out.Message)
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(data))
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrRejected, resp.Status, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	if out.Error {
		return nil, fmt.Errorf("%w: %s", ErrRejected, out.Message)
	}
	return &out, nil
}
