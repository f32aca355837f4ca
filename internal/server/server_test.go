package server

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/panelhire/hiring-agent/internal/agents"
	"github.com/panelhire/hiring-agent/internal/config"
	"github.com/panelhire/hiring-agent/internal/preprocess"
	"github.com/panelhire/hiring-agent/internal/types"
)

// stubTask completes immediately with a fixed payload.
type stubTask struct {
	name    string
	payload any
}

func (t *stubTask) Name() string { return t.name }

func (t *stubTask) Execute(context.Context, *types.CandidateInput, types.HiringCriteria, types.ResultView) *types.TaskResult {
	return &types.TaskResult{Task: t.name, Payload: t.payload}
}

func testServer() *Server {
	tasks := []agents.ScoringTask{}
	for _, source := range types.AnalystSources {
		tasks = append(tasks, &stubTask{name: source, payload: types.ResumeScore{Score: 80}})
	}
	tasks = append(tasks,
		&stubTask{name: types.TaskFairnessAudit, payload: types.FairnessAudit{}},
		&stubTask{name: types.TaskFinalVerdict, payload: &types.Verdict{FinalScore: 80, Verdict: types.VerdictShortlisted}},
	)

	s := &Server{
		cfg:      &config.Config{EventBuffer: 8},
		log:      zap.NewNop(),
		tasks:    tasks,
		enricher: preprocess.NewEnricher(nil, nil),
	}
	return s
}

func testHandler(s *Server) http.Handler {
	return s.withLogging(s.withCORS(s.routes()))
}

const evaluateBody = `{
	"candidate": {
		"personal_info": {
			"name": "Jordan Reyes",
			"location": {"city": "Lisbon", "country": "Portugal"}
		},
		"resume": {"text": "Go engineer with six years of experience."},
		"job_description": {
			"description": "Backend engineer role.",
			"role": "Backend Engineer",
			"company_name": "Acme"
		}
	}
}`

func TestHealth(t *testing.T) {
	server := httptest.NewServer(testHandler(testServer()))
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEvaluateStreamsEvents(t *testing.T) {
	server := httptest.NewServer(testHandler(testServer()))
	defer server.Close()

	resp, err := http.Post(server.URL+"/evaluate", "application/json", strings.NewReader(evaluateBody))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	var eventNames []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if name, found := strings.CutPrefix(line, "event: "); found {
			eventNames = append(eventNames, name)
		}
	}
	require.NoError(t, scanner.Err())

	// Five analysts + audit, then the verdict, then the terminal event.
	require.Len(t, eventNames, 8)
	for _, name := range eventNames[:6] {
		assert.Equal(t, "analysis", name)
	}
	assert.Equal(t, "verdict", eventNames[6])
	assert.Equal(t, "system", eventNames[7])
}

// multipartRequestBody is a candidate with no resume text: the upload fills it.
const multipartRequestBody = `{
	"candidate": {
		"personal_info": {
			"name": "Jordan Reyes",
			"location": {"city": "Lisbon", "country": "Portugal"}
		},
		"job_description": {
			"description": "Backend engineer role.",
			"role": "Backend Engineer",
			"company_name": "Acme"
		}
	}
}`

func multipartEvaluateBody(t *testing.T, requestJSON, resumeName string, resumeContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if requestJSON != "" {
		require.NoError(t, form.WriteField("request", requestJSON))
	}
	if resumeName != "" {
		part, err := form.CreateFormFile("resume", resumeName)
		require.NoError(t, err)
		_, err = part.Write(resumeContent)
		require.NoError(t, err)
	}
	require.NoError(t, form.Close())
	return &buf, form.FormDataContentType()
}

func TestEvaluateMultipartTextResumeStreamsEvents(t *testing.T) {
	server := httptest.NewServer(testHandler(testServer()))
	defer server.Close()

	body, contentType := multipartEvaluateBody(t, multipartRequestBody,
		"resume.txt", []byte("Go engineer with six years of experience."))

	resp, err := http.Post(server.URL+"/evaluate", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	stream, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 8, strings.Count(string(stream), "event: "))
}

func TestEvaluateMultipartRejectsUnreadablePDF(t *testing.T) {
	server := httptest.NewServer(testHandler(testServer()))
	defer server.Close()

	body, contentType := multipartEvaluateBody(t, multipartRequestBody,
		"resume.pdf", []byte("this is not a real PDF"))

	resp, err := http.Post(server.URL+"/evaluate", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEvaluateMultipartRequiresRequestField(t *testing.T) {
	server := httptest.NewServer(testHandler(testServer()))
	defer server.Close()

	body, contentType := multipartEvaluateBody(t, "", "resume.txt", []byte("text"))

	resp, err := http.Post(server.URL+"/evaluate", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEvaluateMultipartWithoutResumeFileStillValidates(t *testing.T) {
	server := httptest.NewServer(testHandler(testServer()))
	defer server.Close()

	// No resume in the JSON and no upload either: the candidate is incomplete.
	body, contentType := multipartEvaluateBody(t, multipartRequestBody, "", nil)

	resp, err := http.Post(server.URL+"/evaluate", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEvaluateRejectsInvalidJSON(t *testing.T) {
	server := httptest.NewServer(testHandler(testServer()))
	defer server.Close()

	resp, err := http.Post(server.URL+"/evaluate", "application/json", strings.NewReader("{nope"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEvaluateRejectsIncompleteCandidate(t *testing.T) {
	server := httptest.NewServer(testHandler(testServer()))
	defer server.Close()

	resp, err := http.Post(server.URL+"/evaluate", "application/json",
		strings.NewReader(`{"candidate": {"personal_info": {"name": "X"}}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEvaluationEndpointsWithoutDatabase(t *testing.T) {
	server := httptest.NewServer(testHandler(testServer()))
	defer server.Close()

	for _, path := range []string{
		"/evaluations",
		"/evaluations/8c2e4c26-98d4-4d0a-9f0e-0b9ad4a0c001",
		"/evaluations/8c2e4c26-98d4-4d0a-9f0e-0b9ad4a0c001/results",
	} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, path)
	}
}

func TestCORSPreflight(t *testing.T) {
	server := httptest.NewServer(testHandler(testServer()))
	defer server.Close()

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/evaluate", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
