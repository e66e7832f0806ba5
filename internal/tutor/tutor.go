// Package tutor answers learners' free-form questions through an LLM
// provider, with per-client rate limits.
package tutor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/logging"
)

var (
	ErrQuestionRequired = errors.New("问题不能为空")
	ErrNotConfigured    = errors.New("服务器未配置 API Key")
)

// Answer is a reply to one question.
type Answer struct {
	Text    string
	Model   string
	Latency time.Duration
}

// Example is one sentence of an Explanation.
type Example struct {
	En string `json:"en"`
	Zh string `json:"zh"`
}

// Explanation is a structured explanation of one word.
type Explanation struct {
	Meaning  string    `json:"meaning"`
	Usage    string    `json:"usage"`
	Examples []Example `json:"examples"`
	Tip      string    `json:"tip"`
}

// Options tune requests. Zero values fall back to 0.7, 1000 tokens and
// 30 s.
type Options struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Service answers questions. A nil provider leaves it unconfigured:
// every request fails with ErrNotConfigured.
type Service struct {
	provider llm.Provider
	limiter  *Limiter
	opts     Options
	log      logrus.FieldLogger
}

// NewService creates a tutor. limiter may be nil to disable limits.
func NewService(p llm.Provider, limiter *Limiter, opts Options, logger logrus.FieldLogger) *Service {
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 1000
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Service{provider: p, limiter: limiter, opts: opts, log: logging.OrDiscard(logger)}
}

// Configured reports whether a provider is available.
func (s *Service) Configured() bool { return s.provider != nil }

// Limiter returns the rate limiter, or nil.
func (s *Service) Limiter() *Limiter { return s.limiter }

// Ask answers question on behalf of client.
func (s *Service) Ask(ctx context.Context, client, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, ErrQuestionRequired
	}
	if err := s.admit(client); err != nil {
		return Answer{}, err
	}

	log := s.log.WithField("client", client).WithField("question_len", len([]rune(question)))
	log.Info("tutor question")

	req := llm.UserRequest(SystemPrompt, question)
	req.Temperature = s.opts.Temperature
	req.MaxTokens = s.opts.MaxTokens

	start := time.Now()
	resp, err := s.generate(llm.WithPurpose(ctx, llm.PurposeQA), req)
	if err != nil {
		log.WithError(err).Error("tutor question failed")
		return Answer{}, err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		err := &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty answer")}
		log.WithError(err).Error("tutor question failed")
		return Answer{}, err
	}
	return Answer{Text: text, Model: resp.Model, Latency: time.Since(start)}, nil
}

// ExplainWord asks for a structured explanation of w.
func (s *Service) ExplainWord(ctx context.Context, client string, w content.WordItem) (Explanation, error) {
	if strings.TrimSpace(w.Word) == "" {
		return Explanation{}, ErrQuestionRequired
	}
	if err := s.admit(client); err != nil {
		return Explanation{}, err
	}

	req := llm.UserRequest(SystemPrompt, explainPrompt(w))
	req.Schema = explanationSchema
	req.Temperature = s.opts.Temperature
	req.MaxTokens = s.opts.MaxTokens

	resp, err := s.generate(llm.WithPurpose(ctx, llm.PurposeExplain), req)
	if err != nil {
		return Explanation{}, err
	}
	var ex Explanation
	if err := llm.Decode(resp, explanationSchema, &ex); err != nil {
		s.log.WithError(err).WithField("word", w.ID).Warn("explanation did not match schema")
		return Explanation{}, err
	}
	return ex, nil
}

func (s *Service) admit(client string) error {
	if s.provider == nil {
		return ErrNotConfigured
	}
	if s.limiter == nil {
		return nil
	}
	if err := s.limiter.Allow(client); err != nil {
		s.log.WithField("client", client).WithError(err).Warn("rate limit hit")
		return err
	}
	return nil
}

func (s *Service) generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	return s.provider.Generate(ctx, req)
}
