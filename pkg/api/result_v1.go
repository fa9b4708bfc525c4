// pkg/api/result_v1.go
package api

// ResultV1 is the stable JSON schema for one estimation run.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	RunID         string  `json:"run_id"`
	Experiments   int     `json:"experiments"`
	Tosses        int     `json:"tosses"`
	InitialA      float64 `json:"initial_a"`
	InitialB      float64 `json:"initial_b"`
	PA            float64 `json:"p_a"`
	PB            float64 `json:"p_b"`
	Iterations    int     `json:"iterations"`
	MaxIterations int     `json:"max_iterations"`
	Converged     bool    `json:"converged"`
	Tolerance     float64 `json:"tolerance,omitempty"`
	// LogLikelihood is omitted when it is not finite (some trial is
	// impossible under both estimates).
	LogLikelihood   *float64      `json:"log_likelihood,omitempty"`
	DegenerateSteps int           `json:"degenerate_steps,omitempty"`
	History         []IterationV1 `json:"history,omitempty"`
}

// IterationV1 summarizes the estimates after one M-step.
type IterationV1 struct {
	Iteration     int      `json:"iteration"`
	PA            float64  `json:"p_a"`
	PB            float64  `json:"p_b"`
	LogLikelihood *float64 `json:"log_likelihood,omitempty"`
	Degenerate    bool     `json:"degenerate,omitempty"`
}

// TrialTraceV1 is one per-trial diagnostic record (JSONL trace stream).
// PA/PB are the estimates the E-step used for this trial.
type TrialTraceV1 struct {
	RunID     string  `json:"run_id,omitempty"`
	Iteration int     `json:"iteration"`
	Trial     int     `json:"trial"`
	TrialID   string  `json:"trial_id,omitempty"`
	PA        float64 `json:"p_a"`
	PB        float64 `json:"p_b"`
	Heads     int     `json:"heads"`
	Tails     int     `json:"tails"`
	RA        float64 `json:"r_a"`
	RB        float64 `json:"r_b"`
	HeadsA    float64 `json:"heads_a"`
	TailsA    float64 `json:"tails_a"`
	HeadsB    float64 `json:"heads_b"`
	TailsB    float64 `json:"tails_b"`
}
