package server

import (
	"net/http"
	"time"

	"github.com/ternlane/newsdesk/internal/common"
	"github.com/ternlane/newsdesk/internal/models"
)

// newsResponse is the envelope for collection endpoints.
type newsResponse struct {
	Status string            `json:"status"`
	Data   []models.NewsItem `json:"data"`
	Count  int               `json:"count"`
	Tags   []string          `json:"tags,omitempty"`
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": common.GetVersion(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleConfig handles GET /api/config. No secrets live in this config.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"environment": s.app.Config.Environment,
		"backend_url": s.app.Config.Backend.BaseURL,
	})
}

// handleNews handles GET /api/news?positive=&negative=&tag=.
// Each request refreshes the collection from the backend; a failed refresh
// serves the current (possibly empty) view unchanged.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if err := s.app.Feed.Load(r.Context()); err != nil {
		s.logger.Warn().Err(err).Msg("News refresh failed, serving current view")
	}

	sel := models.FilterSelection{
		Positive: QueryBool(r, "positive"),
		Negative: QueryBool(r, "negative"),
		Tag:      r.URL.Query().Get("tag"),
	}

	items := s.app.Feed.Filtered(sel)
	WriteJSON(w, http.StatusOK, newsResponse{
		Status: "success",
		Data:   items,
		Count:  len(items),
		Tags:   s.app.Feed.Tags(),
	})
}

// handleNewsTags handles GET /api/news/tags.
func (s *Server) handleNewsTags(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	tags := s.app.Feed.Tags()
	WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   tags,
		"count":  len(tags),
	})
}

// handleNewsChart handles GET /api/news/chart.
func (s *Server) handleNewsChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	png, err := s.app.Feed.RenderSentimentChart()
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleClients handles GET /api/clients?ticker=&headline=.
func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker parameter is required")
		return
	}
	headline := r.URL.Query().Get("headline")

	impacts := s.app.Impact.ClientsFor(r.Context(), ticker, headline)
	WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   impacts,
		"count":  len(impacts),
	})
}

// handleRegenerate handles POST /api/regenerate. The coordinator does not
// guard against overlapping calls, so the re-entrancy check lives here.
func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Refresh.Busy() {
		WriteJSON(w, http.StatusConflict, map[string]any{
			"success": false,
			"message": "regeneration already in progress",
		})
		return
	}

	result := s.app.Refresh.Regenerate(r.Context())
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	WriteJSON(w, status, result)
}
