package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/urbanatlas/bdnbq/internal/domain"
	"github.com/urbanatlas/bdnbq/internal/metrics"
)

// Completer calls a chat-completion model through the OpenAI-compatible API.
// One instance serves one oracle role (classification, formatting, synthesis)
// so metrics and timeouts stay per-role.
type Completer struct {
	client  *openai.Client
	model   string
	oracle  string
	timeout time.Duration
	logger  *zap.Logger
}

// CompleterConfig holds the chat-completion provider settings.
type CompleterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Oracle labels metrics for this instance's role.
	Oracle  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewCompleter creates an OpenAI-compatible chat-completion oracle.
func NewCompleter(cfg *CompleterConfig) *Completer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultOracleTimeout
	}

	return &Completer{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		oracle:  cfg.Oracle,
		timeout: timeout,
		logger:  cfg.Logger,
	}
}

// Complete implements domain.Completer: single user message in, raw assistant
// text out. Deadline overruns map to domain.ErrOracleTimeout, transport
// failures to domain.ErrOracleUnavailable.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.OracleRequestsTotal.WithLabelValues(c.oracle, c.model, "error").Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			metrics.OracleErrorsTotal.WithLabelValues(c.oracle, c.model, "timeout").Inc()
			return "", fmt.Errorf("%s oracle: %w", c.oracle, domain.ErrOracleTimeout)
		}
		metrics.OracleErrorsTotal.WithLabelValues(c.oracle, c.model, "api_error").Inc()
		return "", parseAPIError(c.oracle, err)
	}

	if len(resp.Choices) == 0 {
		metrics.OracleRequestsTotal.WithLabelValues(c.oracle, c.model, "error").Inc()
		metrics.OracleErrorsTotal.WithLabelValues(c.oracle, c.model, "empty_response").Inc()
		return "", fmt.Errorf("%s oracle: empty completion response: %w", c.oracle, domain.ErrOracleUnavailable)
	}

	metrics.OracleRequestsTotal.WithLabelValues(c.oracle, c.model, "success").Inc()
	metrics.OracleRequestDuration.WithLabelValues(c.oracle, c.model).Observe(duration.Seconds())

	return resp.Choices[0].Message.Content, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Completer) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}
