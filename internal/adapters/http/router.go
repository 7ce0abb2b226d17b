package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sportspulse/sportspulse/internal/core/domain"
	"github.com/sportspulse/sportspulse/internal/core/ports"
	"github.com/sportspulse/sportspulse/internal/observability/metrics"
)

type Router struct {
	service     ports.QuestionService
	serviceName string
	metrics     *metrics.Metrics
}

func NewRouter(service ports.QuestionService, serviceName string, m *metrics.Metrics) *Router {
	return &Router{
		service:     service,
		serviceName: serviceName,
		metrics:     m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/qa/ask", rt.ask)
	mux.HandleFunc("/v1/qa/capabilities", rt.capabilities)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.serviceName, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type askRequest struct {
	Question string `json:"question"`
	UseWeb   *bool  `json:"use_web"`
}

func (r askRequest) webUsage() domain.WebUsage {
	switch {
	case r.UseWeb == nil:
		return domain.WebAuto
	case *r.UseWeb:
		return domain.WebForcedOn
	default:
		return domain.WebForcedOff
	}
}

func (rt *Router) ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	start := time.Now()
	resp, err := rt.service.Ask(r.Context(), req.Question, req.webUsage())
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordQAObservation(rt.serviceName, string(resp.Source), len(resp.AllAnswers), time.Since(start))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) capabilities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, rt.service.Capabilities())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
