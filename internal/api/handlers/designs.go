package handlers

import (
	"context"
	"log"
	"net/http"

	"batterydesign/internal/api/models"
	"batterydesign/internal/cell"
	"batterydesign/internal/config"
	"batterydesign/internal/design"
	"batterydesign/internal/requirements"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

var designsRun = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "batterydesign_api_designs_runs_total",
		Help: "Number of design runs served by the API, labeled by outcome.",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(designsRun)
}

// DesignsHandler handles the /api/v1/designs surface.
type DesignsHandler struct {
	defaults config.Config
}

// NewDesignsHandler builds a DesignsHandler using cfg as the baseline for any
// field a request leaves unset.
func NewDesignsHandler(cfg config.Config) *DesignsHandler {
	return &DesignsHandler{defaults: cfg}
}

// RunDesign handles POST /api/v1/designs: it loads the requirements and
// catalog named in the request body, runs the enumeration/ranking pipeline
// synchronously, and returns the ranked survivors.
func (h *DesignsHandler) RunDesign(c *gin.Context) {
	runID := uuid.New().String()
	log.Printf("[api] design run %s: started", runID)

	var req models.DesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		designsRun.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	reqs, err := requirements.Load(req.RequirementsPath)
	if err != nil {
		designsRun.WithLabelValues("bad_requirements").Inc()
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUIREMENTS", Message: err.Error()},
		})
		return
	}

	catalog, err := cell.LoadCatalog(req.CatalogPath)
	if err != nil {
		designsRun.WithLabelValues("bad_catalog").Inc()
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_CATALOG", Message: err.Error()},
		})
		return
	}

	manufacturer, model := reqs.Manufacturer, reqs.Model
	if req.Cell != "" {
		manufacturer, model = splitCellFilter(req.Cell)
	}
	cells := catalog.Filter(manufacturer, model, reqs.Format)
	if len(cells) == 0 {
		designsRun.WithLabelValues("no_matching_cells").Inc()
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NO_MATCHING_CELLS", Message: "no cells in the catalog match the requested manufacturer/model/format filters"},
		})
		return
	}

	cfg := h.defaults
	if req.OverheadPlugin != "" {
		cfg.OverheadPlugin = req.OverheadPlugin
	}
	if req.Cores > 0 {
		cfg.Cores = req.Cores
	}
	maxSolutions := cfg.MaxNumberOfSolutions
	if req.MaxNumberOfSolutions > 0 {
		maxSolutions = req.MaxNumberOfSolutions
	}

	opts := design.Options{
		PinsPerSlave:   cfg.PinsPerSlave,
		Cores:          cfg.Cores,
		OverheadPlugin: cfg.OverheadPlugin,
		CoolingFilter:  reqs.Cooling,
	}

	records, err := design.Run(context.Background(), cells, reqs, opts, maxSolutions)
	if err != nil {
		designsRun.WithLabelValues("run_error").Inc()
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "RUN_ERROR", Message: err.Error()},
		})
		return
	}

	designsRun.WithLabelValues("ok").Inc()
	log.Printf("[api] design run %s: %d surviving designs", runID, len(records))
	summaries := make([]models.DesignSummary, len(records))
	for i, r := range records {
		summaries[i] = models.DesignSummary{
			Rank:          i + 1,
			Manufacturer:  r.Cell.Identification.Manufacturer,
			Model:         r.Cell.Identification.Model,
			Cooling:       r.Cooling.String(),
			CellsSeries:   r.Electrical.CellsInSeries,
			CellsParallel: r.Electrical.CellsInParallel,
			VolumeM3:      r.Mechanical.Volume(),
			WeightKg:      r.Mechanical.Weight,
			HeightM:       r.Mechanical.Height,
			LengthM:       r.Mechanical.Length,
			WidthM:        r.Mechanical.Width,
		}
	}
	c.JSON(http.StatusOK, models.DesignResponse{RunID: runID, Count: len(summaries), Designs: summaries})
}

func splitCellFilter(s string) (manufacturer, model string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}
