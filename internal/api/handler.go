package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"chronostat/adapters/battery"
	"chronostat/adapters/stats/ttest"
	"chronostat/app"
	"chronostat/domain/core"
	"chronostat/domain/dataset"
	domainstats "chronostat/domain/stats"
	"chronostat/internal/container"
	apperrors "chronostat/internal/errors"
	"chronostat/internal/report"
)

// Handler serves the statistics API
type Handler struct {
	container *container.Container
}

// NewHandler creates a new API handler
func NewHandler(c *container.Container) *Handler {
	return &Handler{container: c}
}

// PermutationRequest asks for a single permutation comparison
type PermutationRequest struct {
	NameA   string    `json:"name_a"`
	NameB   string    `json:"name_b"`
	SampleA []float64 `json:"sample_a" binding:"required"`
	SampleB []float64 `json:"sample_b" binding:"required"`
	Trials  int       `json:"trials"`
	Seed    *int64    `json:"seed"`
	Workers int       `json:"workers"`
	RunID   *string   `json:"run_id"`
}

// OneSampleRequest asks for a one-sample t-test
type OneSampleRequest struct {
	Name   string    `json:"name"`
	Sample []float64 `json:"sample" binding:"required"`
	Mu     float64   `json:"mu"`
}

// PairedRequest asks for a paired t-test
type PairedRequest struct {
	Pre  []float64 `json:"pre" binding:"required"`
	Post []float64 `json:"post" binding:"required"`
}

// AnalysisRequest asks for a full analysis of an inline table. A null cell
// counts as missing.
type AnalysisRequest struct {
	Columns    map[string][]*float64 `json:"columns" binding:"required"`
	Conditions []string              `json:"conditions"`
	Target     string                `json:"target"`
	References []app.Reference       `json:"references"`
	Pairs      []app.PairSpec        `json:"pairs"`
	Welch      bool                  `json:"welch"`
	Trials     int                   `json:"trials"`
	Seed       *int64                `json:"seed"`
	RunID      *string               `json:"run_id"`
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Permutation runs a permutation test between two inline samples
func (h *Handler) Permutation(c *gin.Context) {
	var req PermutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperrors.WithCode(apperrors.CodeValidationError, err))
		return
	}

	opts, err := h.engineOverrides(req.Trials, req.Seed, req.Workers, req.RunID)
	if err != nil {
		h.fail(c, err)
		return
	}

	nameA, nameB := orDefault(req.NameA, "sample_a"), orDefault(req.NameB, "sample_b")
	engine := h.container.Engine(opts...)
	res, err := engine.Run(c.Request.Context(),
		domainstats.NewSample(nameA, req.SampleA),
		domainstats.NewSample(nameB, req.SampleB))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// OneSample runs a one-sample t-test
func (h *Handler) OneSample(c *gin.Context) {
	var req OneSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperrors.WithCode(apperrors.CodeValidationError, err))
		return
	}

	res, err := ttest.OneSample(domainstats.NewSample(orDefault(req.Name, "sample"), req.Sample), req.Mu)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Paired runs a paired t-test
func (h *Handler) Paired(c *gin.Context) {
	var req PairedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperrors.WithCode(apperrors.CodeValidationError, err))
		return
	}

	res, err := ttest.Paired(domainstats.NewSample("pre", req.Pre), domainstats.NewSample("post", req.Post))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Analyze runs a full analysis. ?format=html or ?format=markdown renders the
// report document instead of returning JSON.
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperrors.WithCode(apperrors.CodeValidationError, err))
		return
	}

	if len(req.Columns) == 0 {
		h.fail(c, apperrors.ValidationError("columns must name at least one condition"))
		return
	}

	format, err := report.ParseFormat(c.DefaultQuery("format", "json"))
	if err != nil {
		h.fail(c, err)
		return
	}

	plan := app.Plan{
		Conditions: req.Conditions,
		Target:     req.Target,
		References: req.References,
		Pairs:      req.Pairs,
		Welch:      req.Welch,
	}
	if plan.Target == "" && len(plan.Conditions) == 0 && len(plan.References) == 0 && len(plan.Pairs) == 0 {
		plan.Conditions = h.container.DefaultPlan().Conditions
	}

	opts, err := h.engineOverrides(req.Trials, req.Seed, 0, req.RunID)
	if err != nil {
		h.fail(c, err)
		return
	}

	engine := h.container.Engine(opts...)
	svc := h.container.AnalysisService(engine)
	rep, err := svc.Analyze(c.Request.Context(), tableFromRequest(req.Columns), plan)
	if err != nil {
		h.fail(c, err)
		return
	}

	doc := report.NewReportDocument(rep)
	switch format {
	case report.FormatHTML:
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		err = report.RenderHTML(c.Writer, doc)
	case report.FormatMarkdown:
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.Status(http.StatusOK)
		err = doc.RenderMarkdown(c.Writer)
	default:
		c.JSON(http.StatusOK, rep)
	}
	if err != nil {
		h.container.Logger.Error("rendering report %s: %v", rep.ID, err)
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.container.Logger.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
	} else {
		h.container.Logger.Debug("%s %s rejected: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{
		"code":  apperrors.GetCode(err),
		"error": err.Error(),
	})
}

// engineOverrides turns request settings into engine options, rejecting
// counts above the configured limits
func (h *Handler) engineOverrides(trials int, seed *int64, workers int, run *string) ([]battery.Option, error) {
	if err := h.container.CheckLimits(trials, workers); err != nil {
		return nil, err
	}

	var opts []battery.Option
	if trials != 0 {
		opts = append(opts, battery.WithTrials(trials))
	}
	if seed != nil {
		opts = append(opts, battery.WithSeed(*seed))
	}
	if workers > 0 {
		opts = append(opts, battery.WithWorkers(workers))
	}
	if run != nil {
		id, err := core.ParseRunID(*run)
		if err != nil {
			return nil, err
		}
		opts = append(opts, battery.WithRunID(id))
	}
	return opts, nil
}

// tableFromRequest orders columns by name and drops null cells
func tableFromRequest(columns map[string][]*float64) *dataset.Table {
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	table := dataset.NewTable("request")
	for _, name := range names {
		col := dataset.Column{Name: name, Values: []float64{}}
		for _, v := range columns[name] {
			if v == nil {
				col.Missing++
				continue
			}
			col.Values = append(col.Values, *v)
		}
		table.Columns = append(table.Columns, col)
	}
	return table
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
