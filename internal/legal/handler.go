package legal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Vovarama1992/lexbridge/internal/challenge"
	"github.com/Vovarama1992/lexbridge/internal/expertise"
	"github.com/Vovarama1992/lexbridge/internal/prompts"
	"github.com/Vovarama1992/lexbridge/internal/reasoning"
)

const maxBodySize = 1 << 20

type Handler struct {
	svc    Service
	chain  *reasoning.Chain
	loader *expertise.Loader
	logger *zap.Logger
}

func NewHandler(svc Service, chain *reasoning.Chain, loader *expertise.Loader, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, chain: chain, loader: loader, logger: logger}
}

// HandleTurn serves POST /conversations/{id}/turns
func (h *Handler) HandleTurn(w http.ResponseWriter, r *http.Request) {
	var req TurnRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.ConversationID = chi.URLParam(r, "id")

	res, err := h.svc.HandleTurn(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// HandleChallenges serves GET /conversations/{id}/challenges
func (h *Handler) HandleChallenges(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Challenges(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// HandleAnswerChallenge serves POST /conversations/{id}/challenges/answer
func (h *Handler) HandleAnswerChallenge(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if !h.decode(w, r, &payload) {
		return
	}

	res, err := h.svc.AnswerChallenge(r.Context(), chi.URLParam(r, "id"), payload.Question, payload.Answer)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// HandleTemplate serves POST /templates
func (h *Handler) HandleTemplate(w http.ResponseWriter, r *http.Request) {
	var session prompts.Session
	if !h.decode(w, r, &session) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"template": session.Template()})
}

// HandleDetectDomain serves POST /domains/detect
func (h *Handler) HandleDetectDomain(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text   string `json:"text"`
		Domain string `json:"domain"`
	}
	if !h.decode(w, r, &payload) {
		return
	}

	domain, profile := h.loader.Load(payload.Domain, payload.Text)
	writeJSON(w, http.StatusOK, map[string]any{
		"domain":  domain,
		"profile": profile,
	})
}

// HandleReasoning serves POST /reasoning
func (h *Handler) HandleReasoning(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Query string `json:"query"`
	}
	if !h.decode(w, r, &payload) {
		return
	}
	if payload.Query == "" {
		writeError(w, http.StatusBadRequest, "missing query")
		return
	}

	writeJSON(w, http.StatusOK, h.chain.Run(payload.Query))
}

// ------------------------------------------------------------

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, challenge.ErrUnknownChallenge):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAI):
		writeError(w, http.StatusBadGateway, "answer step failed")
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "processing error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
