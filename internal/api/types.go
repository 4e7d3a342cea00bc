package api

// NoiseSpec asks for one channel on one qubit.
type NoiseSpec struct {
	Qubit   int     `json:"qubit"`
	Channel string  `json:"channel"`
	Param   float64 `json:"param"`
}

// ExecuteRequest is the body of POST /api/execute.
type ExecuteRequest struct {
	Source  string      `json:"source" binding:"required"`
	Backend string      `json:"backend"`
	Shots   int         `json:"shots"`
	Seed    int64       `json:"seed"`
	History bool        `json:"history"`
	Noise   []NoiseSpec `json:"noise"`
}

// ExecuteResponse reports one finished simulation.
type ExecuteResponse struct {
	JobID         string            `json:"job_id"`
	Backend       string            `json:"backend"`
	Shots         int               `json:"shots"`
	NumQubits     int               `json:"num_qubits"`
	Depth         int               `json:"depth"`
	GateCounts    map[string]int    `json:"gate_counts"`
	Counts        map[string]int    `json:"counts"`
	Probabilities []float64         `json:"probabilities"`
	NoiseEvents   int               `json:"noise_events"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	DurationMs    float64           `json:"duration_ms"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
