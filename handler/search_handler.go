package handler

import (
	"encoding/json"
	"net/http"

	"github.com/quentinbedos-gif/ops-help-raul/service"
	"github.com/quentinbedos-gif/ops-help-raul/types"
)

// SearchHandler exposes the retrieval pipeline directly, useful for checking
// what the agent would see for a given question.
type SearchHandler struct {
	retriever *service.Retriever
}

func NewSearchHandler(retriever *service.Retriever) *SearchHandler {
	return &SearchHandler{
		retriever: retriever,
	}
}

func (h *SearchHandler) HandleSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		query := r.URL.Query().Get("q")
		if query == "" {
			http.Error(w, "q parameter is required", http.StatusBadRequest)
			return
		}

		entries := h.retriever.Retrieve(r.Context(), query)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(
			types.DataResponse{
				Status: "ok",
				Data: types.SearchResponse{
					Entries: entries,
				},
			},
		)
	}
}
