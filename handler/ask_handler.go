package handler

import (
	"encoding/json"
	"net/http"

	"github.com/quentinbedos-gif/ops-help-raul/service"
	"github.com/quentinbedos-gif/ops-help-raul/types"
)

type AskHandler struct {
	agent *service.Agent
}

func NewAskHandler(agent *service.Agent) *AskHandler {
	return &AskHandler{
		agent: agent,
	}
}

func (h *AskHandler) HandleAsk() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var askRequest types.AskRequest
		if err := json.NewDecoder(r.Body).Decode(&askRequest); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if askRequest.Question == "" {
			http.Error(w, "question is required", http.StatusBadRequest)
			return
		}

		answer := h.agent.Answer(r.Context(), askRequest.Question, askRequest.ThreadContext)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(
			types.DataResponse{
				Status: "ok",
				Data: types.AskResponse{
					Answer: answer,
				},
			},
		)
	}
}
