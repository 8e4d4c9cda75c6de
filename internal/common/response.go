package common

import (
	"encoding/json"
	"net/http"
)

// Every endpoint answers with a `success` boolean in the envelope.

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type ListResponse struct {
	Success    bool        `json:"success"`
	Count      int         `json:"count"`
	Pagination interface{} `json:"pagination,omitempty"`
	Data       interface{} `json:"data"`
}

type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// ProjectDocuments reduces each serialized item to the selected keys plus
// _id, so a projected list answers with only the fields the caller asked
// for instead of zero-filled structs.
func ProjectDocuments(items interface{}, keys []string) ([]map[string]interface{}, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	var docs []map[string]interface{}
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	keep := map[string]struct{}{"_id": {}}
	for _, k := range keys {
		keep[k] = struct{}{}
	}
	for _, doc := range docs {
		for k := range doc {
			if _, ok := keep[k]; !ok {
				delete(doc, k)
			}
		}
	}
	return docs, nil
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Success: false, Error: message})
}

// RespondWithDomainError maps a service error to its status and message.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	RespondWithError(w, HTTPStatusFromError(err), ErrorMessage(err))
}

func RespondWithData(w http.ResponseWriter, code int, data interface{}) {
	RespondWithJSON(w, code, DataResponse{Success: true, Data: data})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false, "error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
