// Package courseit implements the courseit backend API client.
// The backend exposes two endpoints: track generation (/create_track) and
// free-text answer assessment (/assess_answer). Both are slow LLM-backed
// calls served from a free-tier deployment, so the client wraps every
// request in a fixed timeout, retries with backoff, and a circuit breaker.
package courseit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/internal/domain/track"
	"github.com/courseit/courseit-core/pkg/circuitbreaker"
	"github.com/courseit/courseit-core/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// DefaultTimeout is the fixed per-request timeout. The backend can take
// several seconds on a cold start; anything beyond this reads as an outage.
const DefaultTimeout = 8 * time.Second

// MinScore and MaxScore bound a valid assessment score.
const (
	MinScore = 0
	MaxScore = 10
)

// ClientConfig contains configuration for the courseit API client.
type ClientConfig struct {
	// BaseURL is the courseit backend base URL.
	BaseURL string

	// Timeout is the fixed per-request timeout.
	Timeout time.Duration

	// Logger for structured logging.
	Logger *slog.Logger

	// Debug enables request-level debug logging.
	Debug bool
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL: baseURL,
		Timeout: DefaultTimeout,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client is the courseit backend API client.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *slog.Logger
	retrier    *retry.Retrier
	breaker    *circuitbreaker.CircuitBreaker
}

// NewClient creates a new courseit API client.
func NewClient(config ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	logger := config.Logger
	return &Client{
		config:     config,
		httpClient: &http.Client{},
		logger:     logger,
		retrier:    retry.CourseitAPIRetrier(),
		breaker: circuitbreaker.CourseitAPIBreaker(func(name string, from, to circuitbreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		}),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// TRACK GENERATION
// ══════════════════════════════════════════════════════════════════════════════

// CreateTrack asks the backend to generate a new learning track.
// The returned track is validated and ready to be cached.
func (c *Client) CreateTrack(ctx context.Context, req track.CreateRequest) (*track.Track, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var dto TrackDTO
	if err := c.doRequest(ctx, "/create_track", NewCreateTrackRequestDTO(req), &dto); err != nil {
		return nil, fmt.Errorf("create track: %w", err)
	}

	generated := dto.ToDomain()
	if err := generated.Validate(); err != nil {
		return nil, shared.WrapError("courseit", "CreateTrack", shared.ErrInvalidFormat, "backend returned an invalid track", err)
	}

	c.logger.Info("track generated",
		"track_id", generated.ID,
		"checkpoints", generated.CheckpointCount())
	return &generated, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ANSWER ASSESSMENT
// ══════════════════════════════════════════════════════════════════════════════

// Assessment is the result of grading a free-text answer.
type Assessment struct {
	// Score is the grade on a 0-10 scale.
	Score int
	// Feedback is a short explanation to show the user.
	Feedback string
}

// Passed reports whether the score meets the given passing threshold.
func (a Assessment) Passed(passingScore int) bool {
	return a.Score >= passingScore
}

// AssessAnswer submits a free-text answer for grading.
// Scores outside the 0-10 range are rejected as invalid responses.
func (c *Client) AssessAnswer(ctx context.Context, trackID string, checkpointID int, answer string) (*Assessment, error) {
	req := AssessRequestDTO{
		TrackID:      trackID,
		CheckpointID: strconv.Itoa(checkpointID),
		UserAnswer:   answer,
	}

	var dto AssessmentDTO
	if err := c.doRequest(ctx, "/assess_answer", req, &dto); err != nil {
		return nil, fmt.Errorf("assess answer: %w", err)
	}

	if dto.Score < MinScore || dto.Score > MaxScore {
		return nil, shared.WrapError("courseit", "AssessAnswer", shared.ErrValueOutOfRange,
			fmt.Sprintf("score %d outside %d-%d", dto.Score, MinScore, MaxScore), nil)
	}

	c.logger.Info("answer assessed",
		"track_id", trackID,
		"checkpoint_id", checkpointID,
		"score", dto.Score)
	return &Assessment{Score: dto.Score, Feedback: dto.Feedback}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HTTP REQUEST HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// doRequest performs a POST with circuit breaking, retries, and a fixed
// per-attempt timeout.
func (c *Client) doRequest(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.retrier.Do(ctx, func(ctx context.Context) error {
			err := c.doSingleRequest(ctx, path, body, result)
			if err == nil {
				return nil
			}
			if isRetryable(err) {
				return retry.Retryable(err)
			}
			return retry.Permanent(err)
		})
	})
}

// doSingleRequest performs a single POST request with the fixed timeout.
func (c *Client) doSingleRequest(ctx context.Context, path string, body interface{}, result interface{}) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.config.Debug {
		c.logger.Debug("courseit api request", "path", path)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr APIErrorDTO
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			if resp.StatusCode >= 500 {
				return fmt.Errorf("%w: %s", shared.ErrServiceUnavailable, apiErr.Message)
			}
			return &apiErr
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode)
		}
		return fmt.Errorf("api error: status %d", resp.StatusCode)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return shared.WrapError("courseit", "Parse", shared.ErrInvalidFormat, "invalid response body", err)
		}
	}
	return nil
}

// classifyTransportError maps low-level transport failures onto the domain
// error taxonomy so callers can tell a timeout from an outage.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", shared.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", shared.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
}

// isRetryable checks if an error is worth another attempt.
// Timeouts and outages are retryable; client-side API errors are not.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, shared.ErrTimeout) || errors.Is(err, shared.ErrServiceUnavailable)
}

// IsHealthy checks if the courseit backend is reachable.
func (c *Client) IsHealthy(ctx context.Context) bool {
	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.config.BaseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// Reset resets the circuit breaker. Primarily for tests.
func (c *Client) Reset() {
	c.breaker.Reset()
}
