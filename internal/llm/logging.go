package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/wordiz/internal/store"
)

// LoggingProvider logs every call and, with an event repo, stores it so
// `wordiz llm` can list and price past requests. It sits below the retry
// layer, so each attempt is its own event.
type LoggingProvider struct {
	inner   Provider
	backend string
	events  store.EventRepo
	log     logrus.FieldLogger
}

// WithLogging wraps p. events and logger may both be nil.
func WithLogging(p Provider, backend string, events store.EventRepo, logger logrus.FieldLogger) Provider {
	if logger == nil {
		quiet := logrus.New()
		quiet.SetLevel(logrus.PanicLevel)
		logger = quiet
	}
	return &LoggingProvider{inner: p, backend: backend, events: events, log: logger}
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.event(PurposeFrom(ctx), req, resp, err, time.Since(start))

	entry := l.log.WithFields(logrus.Fields{
		"provider":   ev.Provider,
		"model":      ev.Model,
		"purpose":    ev.Purpose,
		"latency_ms": ev.LatencyMs,
		"tokens_in":  ev.InputTokens,
		"tokens_out": ev.OutputTokens,
	})
	if err != nil {
		entry.WithError(err).Warn("llm request failed")
	} else {
		entry.Debug("llm request")
	}

	if l.events != nil {
		// a lost event must not cost the learner their answer
		if recErr := l.events.AppendLLMRequest(ctx, ev); recErr != nil {
			l.log.WithError(recErr).Warn("record llm request event")
		}
	}
	return resp, err
}

func (l *LoggingProvider) event(purpose string, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.backend,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	if resp != nil {
		ev.InputTokens, ev.OutputTokens = resp.Usage.InputTokens, resp.Usage.OutputTokens
		ev.ResponseBody = resp.Text()
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	return ev
}

// transcript renders req as "[role]" sections, with the schema last.
func transcript(req Request) string {
	var b strings.Builder
	section := func(head, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", head, body)
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
