package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/series"
	"github.com/agbru/seqcalc/internal/service"
)

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleSeries returns the available series with their descriptions.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	list := s.service.Series()
	infos := make([]SeriesInfo, 0, len(list))
	for _, sr := range list {
		infos = append(infos, SeriesInfo{Name: sr.Name(), Description: sr.Description()})
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]any{"series": infos})
}

// handleEvaluate sums the series named by the 'series' query parameter.
// Missing numeric parameters fall back to the server defaults.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name, p, err := parseEvaluateParams(r.URL.Query(), s.cfg.ToParams())
	if err != nil {
		var parseErr EvaluateParseError
		if errors.As(err, &parseErr) {
			s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	result, err := s.service.Evaluate(ctx, name, p)
	if status, ok := errorStatus(err); ok {
		s.writeErrorResponse(w, status, err.Error())
		return
	}

	s.writeJSONResponse(w, http.StatusOK, buildEvaluateResponse(name, p, result, err))
}

// errorStatus maps request errors to a HTTP status. Evaluation failures such
// as timeouts are reported in the response body instead.
func errorStatus(err error) (int, bool) {
	var validationErr apperrors.ValidationError
	var domainErr apperrors.DomainError
	switch {
	case err == nil:
		return 0, false
	case errors.As(err, &validationErr) && validationErr.Field == "series":
		return http.StatusNotFound, true
	case errors.As(err, &validationErr),
		errors.As(err, &domainErr),
		errors.Is(err, service.ErrMaxTermsExceeded):
		return http.StatusBadRequest, true
	}
	return 0, false
}

// parseEvaluateParams extracts the series name and parameters from the query,
// starting from defaults.
//
// Returns:
//   - name: The series name.
//   - p: The parameters.
//   - err: An EvaluateParseError if a value does not parse.
func parseEvaluateParams(q url.Values, defaults series.Params) (name string, p series.Params, err error) {
	name = q.Get("series")
	if name == "" {
		return "", p, EvaluateParseError{
			Message:    "Missing 'series' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}

	p = defaults
	floats := []struct {
		key string
		dst *float64
	}{
		{"x", &p.X}, {"a", &p.A}, {"tol", &p.Tolerance},
	}
	for _, f := range floats {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		v, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil {
			return "", p, EvaluateParseError{
				Message:    fmt.Sprintf("Invalid '%s' parameter: must be a number", f.key),
				StatusCode: http.StatusBadRequest,
			}
		}
		*f.dst = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"terms", &p.MaxTerms}, {"show", &p.Show},
	}
	for _, f := range ints {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		v, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			return "", p, EvaluateParseError{
				Message:    fmt.Sprintf("Invalid '%s' parameter: must be an integer", f.key),
				StatusCode: http.StatusBadRequest,
			}
		}
		*f.dst = v
	}

	return name, p, nil
}

// buildEvaluateResponse constructs the response body of an evaluation.
func buildEvaluateResponse(name string, p series.Params, result series.Result, err error) EvaluateResponse {
	resp := EvaluateResponse{
		Series:   name,
		X:        p.X,
		A:        p.A,
		Terms:    result.Terms,
		Duration: result.Duration.String(),
	}

	if err != nil {
		resp.Error = err.Error()
		return resp
	}

	resp.Sum = &result.Sum
	resp.Converged = result.Converged
	resp.Shown = result.Shown
	if result.HasReference {
		resp.Reference = &result.Reference
		resp.AbsError = &result.AbsError
		resp.WithinTolerance = result.WithinTolerance
	}
	return resp
}

// writeJSONResponse writes data as JSON with the given status code. data is
// encoded before the header goes out, so an encoding failure becomes a 500
// with an error body.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("encoding response", err)
		statusCode = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(append(body, '\n')); err != nil {
		s.logger.Error("writing response", err)
	}
}

// writeErrorResponse writes a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
