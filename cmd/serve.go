package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/server"
	"github.com/abhisek/wordiz/internal/tutor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Q&A HTTP server",
	Long: `Serve the AI helper over HTTP: POST /api/chat answers a question,
GET /api/status reports configuration and rate limits, GET /metrics
exposes Prometheus metrics. With --static the web front end is served
from the given directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		t, err := newTutor(ctx, e)
		if err != nil {
			return err
		}
		return server.New(e.cfg.Server, t, e.log).Run(ctx)
	},
}

// newTutor builds the tutor over the configured provider. A provider
// without credentials yields an unconfigured tutor rather than an error,
// so the server still starts and reports the problem per request.
func newTutor(ctx context.Context, e *env) (*tutor.Service, error) {
	var provider llm.Provider
	if e.cfg.LLM.Configured() {
		p, err := llm.NewProvider(ctx, e.cfg.LLM, e.events(), e.log)
		if err != nil {
			return nil, err
		}
		provider = p
	} else {
		e.log.WithField("provider", e.cfg.LLM.Provider).Warn("LLM provider not configured")
	}
	limiter := tutor.NewLimiter(e.cfg.RateLimit, time.Now)
	return tutor.NewService(provider, limiter, tutor.Options{
		Temperature: e.cfg.LLM.Temperature,
		MaxTokens:   e.cfg.LLM.MaxTokens,
		Timeout:     e.cfg.LLM.Timeout,
	}, e.log), nil
}

func init() {
	f := serveCmd.Flags()
	f.Int("port", 8082, "Port to listen on (also PORT or WORDIZ_SERVER_PORT)")
	f.String("static", "", "Directory of static files to serve at /")
	f.String("provider", "", "LLM provider: minimax, anthropic, openai, gemini, openrouter or mock")
}
