package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type SearchResponse struct {
	Entries []KnowledgeEntry `json:"entries"`
}
