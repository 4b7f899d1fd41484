package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargefit/reconcile-backend/internal/api/dto"
	"github.com/chargefit/reconcile-backend/internal/application/reconcile"
	"github.com/chargefit/reconcile-backend/internal/infrastructure/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.MockRepository) {
	t.Helper()
	repo := storage.NewMockRepository()
	service := reconcile.NewService(repo, nil, 1)
	return NewServer(DefaultConfig(), repo, service, nil), repo
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestServer_Fit(t *testing.T) {
	t.Run("fits a batch and persists a run", func(t *testing.T) {
		s, repo := newTestServer(t)

		req := dto.FitRequest{
			Rows: []dto.FitRowRequest{
				{Target: 10, Candidates: []float64{1, 2, 3, 4, 5, 6}},
				{Target: 5, Candidates: []float64{10, 15, 20}},
			},
		}

		rec := doRequest(t, s, http.MethodPost, "/api/fit", req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp dto.FitResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

		assert.NotEmpty(t, resp.RunID)
		assert.Equal(t, 2, resp.RowCount)
		assert.Equal(t, 1, resp.ExactFits)

		require.Len(t, resp.Results, 2)
		assert.Equal(t, 10.0, resp.Results[0].Sum)
		assert.True(t, resp.Results[0].ExactFit)
		assert.Equal(t, 0.0, resp.Results[1].Sum)
		assert.Equal(t, 5.0, resp.Results[1].Gap)

		assert.True(t, repo.SaveRunCalled)
	})

	t.Run("dry run skips persistence", func(t *testing.T) {
		s, repo := newTestServer(t)

		req := dto.FitRequest{
			Rows:   []dto.FitRowRequest{{Target: 10, Candidates: []float64{7}}},
			DryRun: true,
		}

		rec := doRequest(t, s, http.MethodPost, "/api/fit", req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, repo.SaveRunCalled)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		s, _ := newTestServer(t)

		rec := doRequest(t, s, http.MethodPost, "/api/fit", dto.FitRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects invalid rows", func(t *testing.T) {
		s, _ := newTestServer(t)

		req := dto.FitRequest{
			Rows: []dto.FitRowRequest{{Target: -5, Candidates: []float64{1}}},
		}

		rec := doRequest(t, s, http.MethodPost, "/api/fit", req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var apiErr dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
		assert.Equal(t, dto.ErrCodeValidation, apiErr.Code)
		assert.Contains(t, apiErr.Message, "row 0")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		s, _ := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/fit", bytes.NewBufferString("{nope"))
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_Runs(t *testing.T) {
	s, repo := newTestServer(t)

	// Seed a run through the fit endpoint.
	req := dto.FitRequest{
		Rows: []dto.FitRowRequest{{Target: 15, Candidates: []float64{5, 10, 3, 7}}},
	}
	rec := doRequest(t, s, http.MethodPost, "/api/fit", req)
	require.Equal(t, http.StatusOK, rec.Code)

	var fitResp dto.FitResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fitResp))

	t.Run("lists runs", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/runs", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.RunListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Runs, 1)
		assert.Equal(t, fitResp.RunID, resp.Runs[0].ID)
	})

	t.Run("gets a run with results", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/runs/"+fitResp.RunID, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var run storage.ReconcileRun
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&run))
		assert.Equal(t, fitResp.RunID, run.ID)
		require.Len(t, run.Results, 1)
		assert.Equal(t, 15.0, run.Results[0].Sum)
	})

	t.Run("unknown run returns 404", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/runs/does-not-exist", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("storage failure returns 500", func(t *testing.T) {
		repo.ListRunsErr = assert.AnError
		defer func() { repo.ListRunsErr = nil }()

		rec := doRequest(t, s, http.MethodGet, "/api/runs", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestServer_Stats(t *testing.T) {
	s, _ := newTestServer(t)

	req := dto.FitRequest{
		Rows: []dto.FitRowRequest{
			{Target: 10, Candidates: []float64{1, 2, 3, 4, 5, 6}},
			{Target: 5, Candidates: []float64{10, 15, 20}},
		},
	}
	rec := doRequest(t, s, http.MethodPost, "/api/fit", req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats storage.Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, 1, stats.TotalRuns)
	assert.Equal(t, 2, stats.TotalRows)
	assert.Equal(t, 1, stats.ExactFits)
}
