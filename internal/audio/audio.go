// Package audio speaks words aloud through an external text-to-speech
// command. Playback is fire-and-forget: callers never wait for it and
// failures are only logged.
package audio

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/wordiz/internal/config"
)

// Speaker speaks text without blocking.
type Speaker interface {
	Speak(text string)
}

// Nop is a Speaker that stays silent.
type Nop struct{}

func (Nop) Speak(string) {}

// Candidates are the TTS commands probed, in order, when none is configured.
var Candidates = []string{"say", "espeak-ng", "espeak"}

// DefaultTimeout bounds a single utterance.
const DefaultTimeout = 10 * time.Second

// baseWPM is the speaking rate a rate of 1.0 maps to.
const baseWPM = 175

// Executor runs a command to completion.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) error {
	out, err := exec.CommandContext(ctx, binary, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", binary, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Option configures a CommandSpeaker.
type Option func(*CommandSpeaker)

// WithExecutor replaces the command runner, mainly for tests.
func WithExecutor(e Executor) Option {
	return func(s *CommandSpeaker) {
		if e != nil {
			s.exec = e
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *CommandSpeaker) { s.timeout = d }
}

// CommandSpeaker speaks through a TTS binary such as say or espeak-ng.
// A new utterance cancels the one still playing.
type CommandSpeaker struct {
	binary  string
	accent  string
	rate    float64
	timeout time.Duration
	exec    Executor
	log     logrus.FieldLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCommandSpeaker returns a speaker driving binary. accent is a BCP 47
// tag (en-GB or en-US) and rate a multiplier of the normal speaking rate.
func NewCommandSpeaker(binary, accent string, rate float64, log logrus.FieldLogger, opts ...Option) *CommandSpeaker {
	if rate <= 0 {
		rate = 1
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	s := &CommandSpeaker{
		binary:  binary,
		accent:  accent,
		rate:    rate,
		timeout: DefaultTimeout,
		exec:    commandExecutor{},
		log:     log.WithField("component", "audio"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Speak starts speaking text in the background.
func (s *CommandSpeaker) Speak(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	s.cancel = cancel
	s.mu.Unlock()

	args := s.Args(text)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		if err := s.exec.Run(ctx, s.binary, args); err != nil && ctx.Err() == nil {
			s.log.WithError(err).Warn("speech playback failed")
		}
	}()
}

// Wait blocks until every started utterance has finished.
func (s *CommandSpeaker) Wait() {
	s.wg.Wait()
}

// Args returns the command line used to speak text.
func (s *CommandSpeaker) Args(text string) []string {
	wpm := fmt.Sprintf("%d", int(baseWPM*s.rate+0.5))
	switch strings.TrimSuffix(filepath.Base(s.binary), ".exe") {
	case "say":
		args := []string{"-r", wpm}
		if v := sayVoice(s.accent); v != "" {
			args = append(args, "-v", v)
		}
		return append(args, "--", text)
	case "espeak", "espeak-ng":
		return []string{"-v", strings.ToLower(s.accent), "-s", wpm, "--", text}
	}
	return []string{text}
}

func sayVoice(accent string) string {
	switch accent {
	case "en-GB":
		return "Daniel"
	case "en-US":
		return "Samantha"
	}
	return ""
}

// Detect returns the first candidate command found on PATH, or "".
func Detect(candidates ...string) string {
	for _, c := range candidates {
		if p, err := exec.LookPath(c); err == nil {
			return p
		}
	}
	return ""
}

// New builds the speaker described by cfg, falling back to Nop when audio
// is disabled or no TTS command is available.
func New(cfg config.Audio, log logrus.FieldLogger) Speaker {
	if !cfg.Enabled {
		return Nop{}
	}
	binary := cfg.Command
	if binary == "" {
		binary = Detect(Candidates...)
	}
	if binary == "" {
		if log != nil {
			log.Info("no text-to-speech command found, pronunciation is disabled")
		}
		return Nop{}
	}
	return NewCommandSpeaker(binary, cfg.Accent, cfg.Rate, log)
}
