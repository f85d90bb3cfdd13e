package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/invopop/jsonschema"
)

// responseSchemas reflects the JSON schemas of the API bodies once.
var responseSchemas = sync.OnceValues(func() (map[string]any, error) {
	bodies := map[string]any{
		"evaluate": &EvaluateResponse{},
		"series":   &SeriesInfo{},
		"error":    &ErrorResponse{},
	}

	schemas := make(map[string]any, len(bodies))
	for name, ptr := range bodies {
		b, err := json.Marshal(jsonschema.Reflect(ptr))
		if err != nil {
			return nil, err
		}
		var schemaMap map[string]any
		if err := json.Unmarshal(b, &schemaMap); err != nil {
			return nil, err
		}
		schemas[name] = schemaMap
	}
	return schemas, nil
})

// handleSchema serves the JSON schemas of the response bodies.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	schemas, err := responseSchemas()
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSONResponse(w, http.StatusOK, schemas)
}
