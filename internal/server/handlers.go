package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/tutor"
)

// maxBodyBytes bounds a chat request body.
const maxBodyBytes = 64 << 10

var validate = validator.New()

type chatRequest struct {
	Question *string `json:"question" validate:"required,max=2000"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
	Help  string `json:"help,omitempty"`
}

type rateLimitStatus struct {
	RequestsPerHour   int `json:"requests_per_hour"`
	CooldownSeconds   int `json:"cooldown_seconds"`
	RequestsPerDay    int `json:"requests_per_day"`
	RequestsPerMinute int `json:"requests_per_minute"`
}

type statusResponse struct {
	Status        string           `json:"status"`
	APIConfigured bool             `json:"api_configured"`
	RateLimit     *rateLimitStatus `json:"rate_limit"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	resp := statusResponse{Status: "ok", APIConfigured: s.tutor.Configured()}
	if l := s.tutor.Limiter(); l != nil {
		c := l.Status()
		resp.RateLimit = &rateLimitStatus{
			RequestsPerHour:   c.RequestsPerHour,
			CooldownSeconds:   c.CooldownSeconds,
			RequestsPerDay:    c.RequestsPerDay,
			RequestsPerMinute: c.RequestsPerMinute,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "请提供问题内容"})
		return
	}
	if err := validate.Struct(req); err != nil {
		msg := "请提供问题内容"
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Tag() == "max" {
			msg = "问题太长了，请精简后再问"
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	start := time.Now()
	ans, err := s.tutor.Ask(r.Context(), clientID(r), *req.Question)
	if err != nil {
		s.writeChatError(w, r, err)
		return
	}
	s.metrics.chatLatency.Observe(time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, chatResponse{Answer: ans.Text})
}

func (s *Server) writeChatError(w http.ResponseWriter, r *http.Request, err error) {
	var rl *tutor.RateLimitError
	switch {
	case errors.Is(err, tutor.ErrQuestionRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &rl):
		s.metrics.rateLimited.WithLabelValues(rl.Reason).Inc()
		w.Header().Set("Retry-After", strconv.Itoa(int(rl.Retry.Seconds()+0.999)))
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: rl.Message})
	case errors.Is(err, tutor.ErrNotConfigured):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: err.Error(),
			Help:  "请设置环境变量 MINIMAX_API_KEY 或在配置文件中填写 llm 的 api_key",
		})
	default:
		s.log.WithError(err).WithField("request_id", requestIDFrom(r.Context())).Error("chat failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "API 请求失败: " + describe(err)})
	}
}

// describe keeps provider internals out of learner-facing messages.
func describe(err error) string {
	var (
		unauthorized *llm.ErrUnauthorized
		rateLimit    *llm.ErrRateLimit
		unavailable  *llm.ErrProviderUnavailable
	)
	switch {
	case errors.As(err, &unauthorized):
		return "API Key 无效"
	case errors.As(err, &rateLimit):
		return "AI 服务繁忙，请稍后再试"
	case errors.As(err, &unavailable):
		return "AI 服务暂时不可用"
	default:
		return strings.TrimSpace(err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
