package models

import "math"

// Verdict is the three-way classification outcome for a piece of content.
type Verdict string

const (
	VerdictReal      Verdict = "REAL"
	VerdictFake      Verdict = "FAKE"
	VerdictUncertain Verdict = "UNCERTAIN"
)

// Valid reports whether v is one of the three allowed verdict tags.
func (v Verdict) Valid() bool {
	return v == VerdictReal || v == VerdictFake || v == VerdictUncertain
}

// AnalysisResult is the full verdict produced by the model gateway.
// Confidence is a percentage in [0,100]; KeyPhrases keeps the model's
// output order.
type AnalysisResult struct {
	Verdict    Verdict  `json:"verdict"`
	Confidence float64  `json:"confidence"`
	KeyPhrases []string `json:"keyPhrases"`
	Reasoning  string   `json:"reasoning"`
}

// ClampConfidence forces Confidence into [0,100]. The upstream model is not
// contractually bounded, so out-of-range but finite values are clamped
// rather than rejected.
func (r *AnalysisResult) ClampConfidence() {
	r.Confidence = math.Min(100, math.Max(0, r.Confidence))
}
