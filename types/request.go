package types

type AskRequest struct {
	Question      string `json:"question"`
	ThreadContext string `json:"thread_context,omitempty"`
}
