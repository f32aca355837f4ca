package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/panelhire/hiring-agent/internal/pipeline"
	"github.com/panelhire/hiring-agent/internal/preprocess"
	"github.com/panelhire/hiring-agent/internal/types"
)

// maxResumeUpload caps the multipart form, resume file included.
const maxResumeUpload = 10 << 20

// EvaluateRequest is the POST /evaluate body: the candidate submission plus
// optional company hiring criteria.
type EvaluateRequest struct {
	Candidate types.CandidateInput  `json:"candidate" validate:"required"`
	Criteria  *types.HiringCriteria `json:"criteria,omitempty"`
}

// decodeEvaluateRequest accepts either a plain JSON body or a multipart form
// with a "request" JSON field and an optional "resume" file. PDF uploads have
// their text extracted; any other file is taken as plain text.
func decodeEvaluateRequest(r *http.Request) (*EvaluateRequest, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return decodeMultipartEvaluateRequest(r)
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return &req, nil
}

func decodeMultipartEvaluateRequest(r *http.Request) (*EvaluateRequest, error) {
	if err := r.ParseMultipartForm(maxResumeUpload); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	payload := r.FormValue("request")
	if payload == "" {
		return nil, fmt.Errorf(`multipart form is missing the "request" JSON field`)
	}
	var req EvaluateRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return nil, fmt.Errorf(`invalid "request" field: %w`, err)
	}

	file, header, err := r.FormFile("resume")
	if err == http.ErrMissingFile {
		return &req, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid resume upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume upload: %w", err)
	}
	text, err := resumeText(data, header)
	if err != nil {
		return nil, err
	}
	req.Candidate.Resume = types.Resume{Text: text, FileName: header.Filename}
	return &req, nil
}

func resumeText(data []byte, header *multipart.FileHeader) (string, error) {
	isPDF := strings.EqualFold(filepath.Ext(header.Filename), ".pdf") ||
		strings.HasPrefix(header.Header.Get("Content-Type"), "application/pdf")
	if isPDF {
		return preprocess.ExtractPDFText(data)
	}
	return string(data), nil
}

// handleEvaluate runs a full evaluation and streams its events over SSE.
// Request problems are reported as plain JSON errors before the stream
// starts; once streaming begins, every outcome arrives as events.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeEvaluateRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.New().Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	criteria := types.DefaultCriteria()
	if req.Criteria != nil {
		criteria = req.Criteria.Normalize()
	}

	input := req.Candidate
	s.enricher.Enrich(r.Context(), &input)

	events, err := pipeline.Run(r.Context(), pipeline.Options{
		Input:       &input,
		Criteria:    criteria,
		Tasks:       s.tasks,
		Logger:      s.log,
		Recorder:    s.recorder(),
		EventBuffer: s.cfg.EventBuffer,
		TaskTimeout: s.cfg.TaskTimeout(),
	})
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	for event := range events {
		if err := sse.WriteEvent(event); err != nil {
			// Client went away; the run context is tied to the request, so
			// cancellation propagates on its own. Drain to let it finish.
			s.log.Warn("client disconnected mid-stream", zap.Error(err))
			for range events {
			}
			return
		}
	}
}

// handleListEvaluations returns recent stored evaluations.
func (s *Server) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	evaluations, err := s.db.ListEvaluations(r.Context(), 50)
	if err != nil {
		s.log.Error("failed to list evaluations", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list evaluations")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"evaluations": evaluations})
}

// handleGetEvaluation returns one stored evaluation.
func (s *Server) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid evaluation id")
		return
	}

	evaluation, err := s.db.GetEvaluation(r.Context(), id)
	if err != nil {
		s.log.Error("failed to get evaluation", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get evaluation")
		return
	}
	if evaluation == nil {
		s.errorResponse(w, http.StatusNotFound, "evaluation not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, evaluation)
}

// handleListTaskResults returns the per-task results of a stored evaluation.
func (s *Server) handleListTaskResults(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid evaluation id")
		return
	}

	results, err := s.db.ListTaskResults(r.Context(), id)
	if err != nil {
		s.log.Error("failed to list task results", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list task results")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"results": results})
}
