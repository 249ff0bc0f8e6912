// Package server exposes the packing engine over HTTP.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/piwi3910/BoxPack/internal/engine"
	"github.com/piwi3910/BoxPack/internal/export"
	"github.com/piwi3910/BoxPack/internal/model"
)

// Server serves packing requests. Every request packs in its own session,
// so handlers share nothing but the read-only preset inventory.
type Server struct {
	inventory model.Inventory
	logger    *slog.Logger
	router    *gin.Engine
}

// PackRequest is the body of POST /api/pack.
type PackRequest struct {
	Container model.Dimensions   `json:"container"`
	PresetID  string             `json:"preset_id,omitempty"` // overrides Container when set
	Items     []model.Item       `json:"items"`
	Settings  model.PackSettings `json:"settings"`
	Verify    bool               `json:"verify,omitempty"`
}

// PackResponse is the JSON answer to POST /api/pack.
type PackResponse struct {
	Result           model.PackResult `json:"result"`
	ContainersUsed   int              `json:"containers_used"`
	PlacedCount      int              `json:"placed_count"`
	RejectedCount    int              `json:"rejected_count"`
	GlobalEfficiency float64          `json:"global_efficiency"`
	Voids            []model.Void     `json:"voids,omitempty"`
	Violations       []string         `json:"violations,omitempty"`
}

// CompareRequest is the body of POST /api/compare. Without scenarios the
// default set derived from Settings is compared.
type CompareRequest struct {
	Container model.Dimensions            `json:"container"`
	PresetID  string                      `json:"preset_id,omitempty"`
	Items     []model.Item                `json:"items"`
	Settings  model.PackSettings          `json:"settings"`
	Scenarios []engine.ComparisonScenario `json:"scenarios,omitempty"`
}

// ScenarioSummary is one row of a comparison answer.
type ScenarioSummary struct {
	Name           string             `json:"name"`
	Settings       model.PackSettings `json:"settings"`
	ContainersUsed int                `json:"containers_used"`
	PlacedCount    int                `json:"placed_count"`
	RejectedCount  int                `json:"rejected_count"`
	Efficiency     float64            `json:"efficiency"`
	Error          string             `json:"error,omitempty"`
}

// CompareResponse is the JSON answer to POST /api/compare.
type CompareResponse struct {
	Scenarios []ScenarioSummary `json:"scenarios"`
	Best      int               `json:"best"` // index into Scenarios, -1 if all failed
	Result    *model.PackResult `json:"result,omitempty"`
}

// EstimateRequest is the body of POST /api/estimate.
type EstimateRequest struct {
	Container         model.Dimensions   `json:"container"`
	PresetID          string             `json:"preset_id,omitempty"`
	Items             []model.Item       `json:"items"`
	AllowRotation     model.RotationMode `json:"allow_rotation"`
	WastePercent      float64            `json:"waste_percent"`
	PricePerContainer float64            `json:"price_per_container"`
}

// voidMinSide is the smallest reported void side, as a fraction of the
// smallest container side.
const voidMinSide = 0.1

// New builds a server answering from the given preset inventory. A nil
// logger discards output.
func New(inv model.Inventory, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{inventory: inv, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.GET("/healthz", s.handleHealth)
	api := r.Group("/api")
	api.GET("/presets", s.handlePresets)
	api.POST("/pack", s.handlePack)
	api.POST("/compare", s.handleCompare)
	api.POST("/estimate", s.handleEstimate)
	s.router = r

	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until the server fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("Server: listening", "addr", addr)
	return s.router.Run(addr)
}

// requestLogger tags every request with an ID and logs it once done.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := uuid.New().String()[:8]
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)

		c.Next()

		s.logger.Info("Server: request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// sessionLogger returns the logger handed to the engine for this request.
func (s *Server) sessionLogger(c *gin.Context) *slog.Logger {
	return s.logger.With("request_id", c.GetString("request_id"))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handlePresets(c *gin.Context) {
	c.JSON(http.StatusOK, s.inventory.Containers)
}

// resolveContainer picks the preset dimensions when an ID is given.
func (s *Server) resolveContainer(container model.Dimensions, presetID string) (model.Dimensions, bool) {
	if presetID == "" {
		return container, true
	}
	p := s.inventory.FindContainerByID(presetID)
	if p == nil {
		return model.Dimensions{}, false
	}
	return p.Dimensions, true
}

// handlePack packs the request items. ?format=svg or ?format=chart answer
// with the rendered layout instead of JSON.
func (s *Server) handlePack(c *gin.Context) {
	var req PackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	container, ok := s.resolveContainer(req.Container, req.PresetID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown preset " + req.PresetID})
		return
	}

	result, err := engine.New(req.Settings, engine.WithLogger(s.sessionLogger(c))).Pack(container, req.Items)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	switch c.Query("format") {
	case "svg":
		c.Header("Content-Type", "image/svg+xml")
		if err := export.WriteSVG(c.Writer, result); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		}
		return
	case "chart":
		c.Header("Content-Type", "text/html; charset=utf-8")
		if err := export.WriteChart(c.Writer, result); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		}
		return
	}

	resp := PackResponse{
		Result:           result,
		ContainersUsed:   len(result.Containers),
		PlacedCount:      result.PlacedCount(),
		RejectedCount:    len(result.Rejected()),
		GlobalEfficiency: result.GlobalEfficiency(),
		Voids:            model.DetectAllVoids(result, container.Smallest()*voidMinSide),
	}
	if req.Verify {
		resp.Violations = engine.FormatViolations(engine.Verify(result))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCompare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	container, ok := s.resolveContainer(req.Container, req.PresetID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown preset " + req.PresetID})
		return
	}
	if err := req.Settings.Validate(container); err != nil {
		writeEngineError(c, err)
		return
	}
	if err := model.CheckItemCount(req.Items); err != nil {
		writeEngineError(c, err)
		return
	}

	scenarios := req.Scenarios
	if len(scenarios) == 0 {
		scenarios = engine.BuildDefaultScenarios(req.Settings)
	}

	results := engine.CompareScenarios(container, scenarios, req.Items, engine.WithLogger(s.sessionLogger(c)))
	resp := CompareResponse{Best: engine.BestResult(results)}
	for _, r := range results {
		row := ScenarioSummary{
			Name:           r.Scenario.Name,
			Settings:       r.Scenario.Settings,
			ContainersUsed: r.ContainersUsed,
			PlacedCount:    r.PlacedCount,
			RejectedCount:  r.RejectedCount,
			Efficiency:     r.Efficiency,
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		resp.Scenarios = append(resp.Scenarios, row)
	}
	if resp.Best >= 0 {
		best := results[resp.Best].Result
		resp.Result = &best
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleEstimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	container, ok := s.resolveContainer(req.Container, req.PresetID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown preset " + req.PresetID})
		return
	}
	if !container.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": model.ErrInvalidDimensions.Error()})
		return
	}
	mode := req.AllowRotation
	if mode == "" {
		mode = model.RotationNone
	}
	if !mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown allow_rotation " + string(mode)})
		return
	}

	c.JSON(http.StatusOK, model.EstimateContainers(req.Items, container, mode, req.WastePercent, req.PricePerContainer))
}

// writeEngineError maps settings and job-size errors to 400 and anything
// else to 500.
func writeEngineError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, model.ErrInvalidSettings) || errors.Is(err, model.ErrTooManyItems) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
