package ui

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"datalens/app"
	"datalens/domain/core"
	"datalens/internal/errors"
)

// Server represents the JSON API server
type Server struct {
	router   *gin.Engine
	datasets *app.DatasetService
	insights *app.InsightService
}

// NewServer creates a new API server instance
func NewServer(datasets *app.DatasetService, insights *app.InsightService) *Server {
	s := &Server{
		router:   gin.Default(),
		datasets: datasets,
		insights: insights,
	}
	s.setupRoutes()
	return s
}

// Run starts the HTTP server on the given port
func (s *Server) Run(port string) error {
	log.Printf("[Server] listening on :%s", port)
	return s.router.Run(":" + port)
}

// Router exposes the underlying handler for tests
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/datasets/upload", s.handleDatasetUpload)
		api.GET("/datasets", s.handleDatasetList)
		api.GET("/datasets/:id", s.handleDatasetDetail)
		api.GET("/datasets/:id/report", s.handleDatasetReport)

		api.POST("/query", s.handleQuery)
		api.POST("/chart", s.handleChart)

		api.GET("/users/:id/history", s.handleHistory)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleDatasetUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload"})
		return
	}
	defer file.Close()

	ds, err := s.datasets.Ingest(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ds)
}

func (s *Server) handleDatasetList(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	list, err := s.datasets.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"datasets": list, "count": len(list)})
}

func (s *Server) handleDatasetDetail(c *gin.Context) {
	id, err := datasetIDParam(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	ds, err := s.datasets.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ds)
}

func (s *Server) handleDatasetReport(c *gin.Context) {
	id, err := datasetIDParam(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	ds, err := s.datasets.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", RenderReportHTML(ds))
}

// datasetIDParam validates the :id path parameter
func datasetIDParam(c *gin.Context) (core.ID, error) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		return "", errors.ValidationError(err.Error())
	}
	return core.ID(id), nil
}

type queryRequest struct {
	UserID    string `json:"user_id"`
	DatasetID string `json:"dataset_id" binding:"required"`
	Query     string `json:"query" binding:"required"`
}

func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, errors.ValidationError(fmt.Sprintf("invalid request: %v", err)))
		return
	}
	if req.UserID == "" {
		req.UserID = "anonymous"
	}

	record, err := s.insights.Answer(c.Request.Context(), req.UserID, core.ID(req.DatasetID), req.Query)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

type chartRequest struct {
	DatasetID string `json:"dataset_id" binding:"required"`
	Query     string `json:"query" binding:"required"`
	Bins      int    `json:"bins"`
}

func (s *Server) handleChart(c *gin.Context) {
	var req chartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, errors.ValidationError(fmt.Sprintf("invalid request: %v", err)))
		return
	}

	spec, result, err := s.insights.Chart(c.Request.Context(), core.ID(req.DatasetID), req.Query, req.Bins)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spec": spec, "data": result})
}

func (s *Server) handleHistory(c *gin.Context) {
	messages := s.insights.History(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"messages": messages, "count": len(messages)})
}

// writeError maps domain and app errors onto HTTP status codes
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case core.IsNotFoundError(err) || errors.GetCode(err) == errors.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.GetCode(err) == errors.CodeInvalidInput,
		errors.GetCode(err) == errors.CodeValidationError,
		errors.GetCode(err) == errors.CodeUnreadableFile:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[Server] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
