package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chargefit/reconcile-backend/internal/api/dto"
	"github.com/chargefit/reconcile-backend/internal/application/reconcile"
	"github.com/chargefit/reconcile-backend/internal/domain/fitter"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewHealthResponse())
}

// handleFit runs a reconciliation batch over the submitted rows.
func (s *Server) handleFit(c *gin.Context) {
	var req dto.FitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}
	if len(req.Rows) == 0 {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("rows must not be empty"))
		return
	}

	rows := make([]fitter.Row, len(req.Rows))
	for i, r := range req.Rows {
		row := fitter.Row{Target: r.Target, Candidates: r.Candidates}
		if !fitter.IsValidRow(row) {
			c.JSON(http.StatusBadRequest, dto.ValidationError(
				fmt.Sprintf("row %d: target must be positive, with at most %d positive candidates",
					i, fitter.MaxCandidates)))
			return
		}
		rows[i] = row
	}

	source := req.Source
	if source == "" {
		source = "api"
	}

	run, results, err := s.service.Reconcile(c.Request.Context(), rows, reconcile.Options{
		Source: source,
		DryRun: req.DryRun,
	})
	if err != nil {
		s.logger.Error("fit failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	resp := dto.FitResponse{
		RunID:     run.ID,
		RowCount:  run.RowCount,
		ExactFits: run.ExactFits,
		Results:   make([]dto.FitRowResult, len(results)),
	}
	for i, res := range results {
		resp.Results[i] = dto.FitRowResult{
			RowIndex: i,
			Target:   res.Row.Target,
			Selected: res.Selected,
			Sum:      res.Sum,
			Gap:      res.Gap(),
			ExactFit: res.ExactFit(),
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleListRuns(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	runs, err := s.repo.ListRuns(limit)
	if err != nil {
		s.logger.Error("failed to list runs", "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	resp := dto.RunListResponse{Runs: make([]dto.RunSummary, len(runs))}
	for i, run := range runs {
		resp.Runs[i] = dto.RunSummary{
			ID:         run.ID,
			Source:     run.Source,
			StartedAt:  run.StartedAt,
			FinishedAt: run.FinishedAt,
			RowCount:   run.RowCount,
			ExactFits:  run.ExactFits,
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetRun(c *gin.Context) {
	run, err := s.repo.GetRun(c.Param("id"))
	if err != nil {
		s.logger.Error("failed to get run", "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, dto.NotFoundError("run"))
		return
	}

	c.JSON(http.StatusOK, run)
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.repo.GetStats()
	if err != nil {
		s.logger.Error("failed to get stats", "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, stats)
}
