package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"qusim"
)

// Handlers holds the HTTP handlers for the simulation service.
type Handlers struct {
	selector *qusim.BackendSelector
}

// NewHandlers creates handlers over a backend selector.
func NewHandlers(selector *qusim.BackendSelector) *Handlers {
	return &Handlers{selector: selector}
}

// HandleRoot handles GET /.
func (h *Handlers) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":  "qusim",
		"backends": len(h.selector.KnownBackends()),
	})
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleListBackends handles GET /api/backends.
func (h *Handlers) HandleListBackends(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"backends": h.selector.KnownBackends()})
}

// HandleGetBackend handles GET /api/backends/:name.
func (h *Handlers) HandleGetBackend(c *gin.Context) {
	name := c.Param("name")
	info, err := h.selector.Describe(name)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "UNKNOWN_BACKEND"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// HandleExecute handles POST /api/execute: parse circuit source, pick a
// backend, run, and report the histogram.
func (h *Handlers) HandleExecute(c *gin.Context) {
	jobID := uuid.NewString()
	logger := zap.L().With(zap.String("job_id", jobID))

	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	circuit, err := qusim.ParseDSL(req.Source)
	if err != nil {
		logger.Warn("parse failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "PARSE_ERROR"})
		return
	}

	noise, err := buildNoiseModel(req.Noise)
	if err != nil {
		logger.Warn("bad noise spec", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_NOISE"})
		return
	}

	backend, err := h.selector.Select(circuit, req.Backend, noise)
	if err != nil {
		status, code := http.StatusInternalServerError, "SELECT_FAILED"
		var unknown *qusim.UnknownBackendError
		if errors.As(err, &unknown) {
			status, code = http.StatusBadRequest, "UNKNOWN_BACKEND"
		}
		logger.Warn("backend selection failed", zap.Error(err))
		c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
		return
	}

	logger.Info("executing circuit",
		zap.String("backend", backend.Name()),
		zap.Int("num_qubits", circuit.NumQubits),
		zap.Int("gates", len(circuit.Ops)),
		zap.Int("shots", req.Shots))

	result, err := backend.Execute(circuit, qusim.RunOptions{
		Shots:        req.Shots,
		Seed:         req.Seed,
		TrackHistory: req.History,
	})
	if err != nil {
		status, code := executeErrorStatus(err)
		logger.Error("execution failed", zap.Error(err))
		c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
		return
	}

	c.JSON(http.StatusOK, ExecuteResponse{
		JobID:         jobID,
		Backend:       result.Backend,
		Shots:         result.Shots,
		NumQubits:     circuit.NumQubits,
		Depth:         circuit.Depth(),
		GateCounts:    circuit.GateCounts(),
		Counts:        result.Counts(),
		Probabilities: result.Probabilities(),
		NoiseEvents:   result.TotalNoiseEvents(),
		Metadata:      result.Metadata,
		DurationMs:    float64(result.Duration.Microseconds()) / 1000,
	})
}

// executeErrorStatus maps engine errors onto HTTP statuses.
func executeErrorStatus(err error) (int, string) {
	var (
		qubitErr    *qusim.QubitIndexError
		arityErr    *qusim.GateArityError
		cliffordErr *qusim.NonCliffordGateError
		dimErr      *qusim.DimensionMismatchError
	)
	switch {
	case errors.As(err, &qubitErr):
		return http.StatusBadRequest, "QUBIT_INDEX"
	case errors.As(err, &arityErr):
		return http.StatusBadRequest, "GATE_ARITY"
	case errors.As(err, &cliffordErr):
		return http.StatusUnprocessableEntity, "NON_CLIFFORD"
	case errors.As(err, &dimErr):
		return http.StatusBadRequest, "DIMENSION_MISMATCH"
	}
	return http.StatusInternalServerError, "EXECUTION_FAILED"
}

// buildNoiseModel turns request noise specs into a channel map.
func buildNoiseModel(specs []NoiseSpec) (*qusim.NoiseModel, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	model := qusim.NewNoiseModel()
	for _, spec := range specs {
		ch, err := channelByName(spec.Channel, spec.Param)
		if err != nil {
			return nil, err
		}
		model.Add(spec.Qubit, ch)
	}
	return model, nil
}

func channelByName(name string, param float64) (qusim.NoiseChannel, error) {
	switch name {
	case "depolarizing":
		return qusim.Depolarizing(param)
	case "amplitude_damping":
		return qusim.AmplitudeDamping(param)
	case "phase_damping":
		return qusim.PhaseDamping(param)
	case "bit_flip":
		return qusim.BitFlip(param)
	case "phase_flip":
		return qusim.PhaseFlip(param)
	}
	return qusim.NoiseChannel{}, errors.New("unknown noise channel " + name)
}
