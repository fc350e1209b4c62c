package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nathanyu/boarding-optimizer/internal/analyzer"
	"github.com/nathanyu/boarding-optimizer/internal/domain"
	"github.com/nathanyu/boarding-optimizer/internal/ingest"
	"github.com/nathanyu/boarding-optimizer/internal/queue"
	"github.com/nathanyu/boarding-optimizer/internal/seatmap"
	"github.com/nathanyu/boarding-optimizer/internal/sequencer"
	"github.com/nathanyu/boarding-optimizer/internal/telemetry"
)

// Handler holds the HTTP handler dependencies.
type Handler struct {
	sequencer *sequencer.Sequencer
	resolver  *seatmap.Resolver
	publisher *queue.Publisher // nil when event fan-out is disabled
}

// NewHandler creates a new Handler.
func NewHandler(seq *sequencer.Sequencer, resolver *seatmap.Resolver, publisher *queue.Publisher) *Handler {
	return &Handler{
		sequencer: seq,
		resolver:  resolver,
		publisher: publisher,
	}
}

// RegisterRoutes sets up the Gin routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.POST("/process-booking-data", h.ProcessBookingData)
	r.POST("/upload-file", h.UploadFile)
	r.POST("/test-optimization", h.TestOptimization)
	r.POST("/benchmark", h.Benchmark)
}

// Root returns the service banner.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Bus Boarding Optimizer API",
		"status":  "running",
	})
}

// Health returns a health check response.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "boarding-optimizer",
		"timestamp": time.Now().Unix(),
	})
}

// ProcessRequest is the request body for endpoints that accept raw booking
// text. Data is a pointer so a missing field and an empty payload stay
// distinguishable.
type ProcessRequest struct {
	Data       *string `json:"data"`
	Iterations int     `json:"iterations"`
}

// SequenceResponse is the client-facing result bundle. Server-side
// diagnostics (processing time, cache statistics) deliberately have no
// fields here.
type SequenceResponse struct {
	BoardingSequence   []domain.SequencedEntry `json:"boardingSequence"`
	TotalBookings      int                     `json:"totalBookings"`
	TotalPassengers    int                     `json:"totalPassengers"`
	Efficiency         domain.EfficiencyReport `json:"efficiency"`
	Filename           string                  `json:"filename,omitempty"`
	TestCompleted      bool                    `json:"testCompleted,omitempty"`
	BenchmarkCompleted bool                    `json:"benchmarkCompleted,omitempty"`
	Success            bool                    `json:"success"`
}

// ProcessBookingData handles POST /process-booking-data.
func (h *Handler) ProcessBookingData(c *gin.Context) {
	req, ok := h.bindProcessRequest(c)
	if !ok {
		return
	}

	bookings := ingest.ParseBookingData(*req.Data)
	result, efficiency, err := h.runPipeline(c.Request.Context(), bookings)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.publishSequence(result, "")

	c.JSON(http.StatusOK, SequenceResponse{
		BoardingSequence: result.BoardingSequence,
		TotalBookings:    result.TotalBookings,
		TotalPassengers:  result.TotalPassengers,
		Efficiency:       efficiency,
		Success:          true,
	})
}

// UploadFile handles POST /upload-file.
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	if !strings.HasSuffix(file.Filename, ".txt") && !strings.HasSuffix(file.Filename, ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only .txt and .csv files are supported"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}

	bookings := ingest.ParseBookingData(string(data))
	result, efficiency, err := h.runPipeline(c.Request.Context(), bookings)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.publishSequence(result, file.Filename)

	c.JSON(http.StatusOK, SequenceResponse{
		BoardingSequence: result.BoardingSequence,
		TotalBookings:    result.TotalBookings,
		TotalPassengers:  result.TotalPassengers,
		Efficiency:       efficiency,
		Filename:         file.Filename,
		Success:          true,
	})
}

// TestOptimization handles POST /test-optimization. Each trial starts from a
// cold cache; the response comes from one more warm run so trial timing never
// shapes what the client sees.
func (h *Handler) TestOptimization(c *gin.Context) {
	req, ok := h.bindProcessRequest(c)
	if !ok {
		return
	}

	iterations := req.Iterations
	if iterations <= 0 {
		iterations = 1
	}

	bookings := ingest.ParseBookingData(*req.Data)

	var totalElapsed time.Duration
	var totalHitRate float64
	for i := 0; i < iterations; i++ {
		h.resolver.Reset()
		_, report, err := h.sequencer.Sequence(c.Request.Context(), bookings)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		totalElapsed += report.Elapsed
		totalHitRate += report.HitRate
	}

	telemetry.BenchmarkRunsTotal.WithLabelValues("test-optimization").Inc()
	slog.Info("optimization trials finished",
		"bookings", len(bookings),
		"iterations", iterations,
		"avgElapsed", totalElapsed/time.Duration(iterations),
		"avgCacheHitRate", totalHitRate/float64(iterations),
	)

	result, efficiency, err := h.runPipeline(c.Request.Context(), bookings)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, SequenceResponse{
		BoardingSequence: result.BoardingSequence,
		TotalBookings:    result.TotalBookings,
		TotalPassengers:  result.TotalPassengers,
		Efficiency:       efficiency,
		TestCompleted:    true,
		Success:          true,
	})
}

// Benchmark handles POST /benchmark.
func (h *Handler) Benchmark(c *gin.Context) {
	req, ok := h.bindProcessRequest(c)
	if !ok {
		return
	}

	iterations := req.Iterations
	if iterations <= 0 {
		iterations = 10
	}

	bookings := ingest.ParseBookingData(*req.Data)

	var totalElapsed time.Duration
	for i := 0; i < iterations; i++ {
		h.resolver.Reset()
		_, report, err := h.sequencer.Sequence(c.Request.Context(), bookings)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		totalElapsed += report.Elapsed
	}

	telemetry.BenchmarkRunsTotal.WithLabelValues("benchmark").Inc()
	slog.Info("benchmark finished",
		"bookings", len(bookings),
		"iterations", iterations,
		"avgElapsed", totalElapsed/time.Duration(iterations),
	)

	result, efficiency, err := h.runPipeline(c.Request.Context(), bookings)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, SequenceResponse{
		BoardingSequence:   result.BoardingSequence,
		TotalBookings:      result.TotalBookings,
		TotalPassengers:    result.TotalPassengers,
		Efficiency:         efficiency,
		BenchmarkCompleted: true,
		Success:            true,
	})
}

// bindProcessRequest parses the JSON body and enforces the data field.
func (h *Handler) bindProcessRequest(c *gin.Context) (ProcessRequest, bool) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	if req.Data == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'data' field"})
		return req, false
	}
	return req, true
}

// runPipeline sequences a parsed batch, analyzes the result and logs the
// server-side diagnostics that never cross into responses.
func (h *Handler) runPipeline(ctx context.Context, bookings []domain.Booking) (*domain.BoardingResult, domain.EfficiencyReport, error) {
	result, report, err := h.sequencer.Sequence(ctx, bookings)
	if err != nil {
		return nil, domain.EfficiencyReport{}, err
	}

	efficiency := analyzer.Analyze(result.BoardingSequence)

	slog.InfoContext(ctx, "sequenced booking batch",
		"bookings", result.TotalBookings,
		"passengers", result.TotalPassengers,
		"elapsed", report.Elapsed,
		"cacheHits", report.CacheHits,
		"cacheMisses", report.CacheMisses,
		"cacheHitRate", report.HitRate,
	)

	return result, efficiency, nil
}

// publishSequence fans the result out when a publisher is wired.
func (h *Handler) publishSequence(result *domain.BoardingResult, filename string) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishSequence(result, filename); err != nil {
		slog.Warn("failed to publish sequence event", "error", err)
	}
}
