package legal

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/conversations/{id}", func(r chi.Router) {
		r.Post("/turns", h.HandleTurn)
		r.Get("/challenges", h.HandleChallenges)
		r.Post("/challenges/answer", h.HandleAnswerChallenge)
	})

	r.Post("/templates", h.HandleTemplate)
	r.Post("/domains/detect", h.HandleDetectDomain)
	r.Post("/reasoning", h.HandleReasoning)
}
