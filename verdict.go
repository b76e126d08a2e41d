package agentloop

// Verdict is the aggregated outcome of an external quality evaluation: a
// pass flag, a raw score on the evaluator's own scale, and a free-text
// rationale.
//
// Verdicts are produced outside this package (see [Jury]) and treated as
// opaque, immutable input by termination strategies.
type Verdict struct {
	// Pass indicates whether the evaluation considers the run acceptable.
	Pass bool

	// Score is the raw score on the evaluator's scale. Use
	// [ScoreNormalization] to map it onto [0, 1] before comparing against
	// a threshold.
	Score float64

	// Rationale is the evaluator's free-text explanation.
	Rationale string
}

// ScoreNormalization maps an evaluator's raw score scale onto [0, 1].
//
// The zero value treats the raw score as already normalized and only clamps
// it into [0, 1]. Threshold comparisons in termination strategies are only
// meaningful when the evaluator's scale and the configured normalization
// agree; that is an evaluator contract, not enforced here.
type ScoreNormalization struct {
	// Min is the raw score that maps to 0.
	Min float64

	// Max is the raw score that maps to 1. When Max <= Min the scale is
	// assumed to be [0, 1] already.
	Max float64
}

// Normalize maps raw onto [0, 1]. The result is always clamped.
func (n ScoreNormalization) Normalize(raw float64) float64 {
	min, max := n.Min, n.Max
	if max <= min {
		min, max = 0, 1
	}
	v := (raw - min) / (max - min)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
