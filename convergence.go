package delegate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// ConvergenceTracker computes a deterministic novelty signature over batches
// of agent outcomes and counts consecutive no-novelty rounds. One tracker is
// created per run and never shared across runs.
//
// The signature is order-independent: evidence fragments are sorted before
// hashing, so two batches carrying the same information in different orders
// yield the same signature.
type ConvergenceTracker struct {
	evidenceKeys []string
	history      []string
	stagnation   int
}

// NewConvergenceTracker creates a tracker extracting the given evidence keys
// from structured outcomes. With no keys, DefaultEvidenceKeys applies.
func NewConvergenceTracker(evidenceKeys ...string) *ConvergenceTracker {
	if len(evidenceKeys) == 0 {
		evidenceKeys = DefaultEvidenceKeys
	}
	return &ConvergenceTracker{evidenceKeys: evidenceKeys}
}

// Signature computes the deterministic signature for a batch of outcomes.
// Structured outcomes contribute their evidence-key values; outcomes without
// structure are stringified wholesale. Signature does not mutate the tracker.
func (t *ConvergenceTracker) Signature(results []*AgentOutcome) string {
	var fragments []string
	for _, r := range results {
		if r == nil {
			continue
		}
		fragments = append(fragments, t.extract(r)...)
	}
	sort.Strings(fragments)

	sum := sha256.Sum256([]byte(strings.Join(fragments, "\x1f")))
	return hex.EncodeToString(sum[:])
}

// extract returns the evidence fragments of a single outcome.
func (t *ConvergenceTracker) extract(r *AgentOutcome) []string {
	if r.Fields == nil {
		return []string{r.Raw}
	}

	var fragments []string
	for _, key := range t.evidenceKeys {
		if v, ok := r.Fields[key]; ok {
			fragments = append(fragments, fmt.Sprintf("%s=%v", key, v))
		}
	}
	if len(fragments) > 0 {
		return fragments
	}

	// Structured outcome carrying none of the evidence keys: stringify the
	// whole field set deterministically.
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fragments = append(fragments, fmt.Sprintf("%s=%v", k, r.Fields[k]))
	}
	return fragments
}

// Observe computes the batch signature and compares it to the most recently
// recorded one. An unchanged signature increments the stagnation count and
// returns false (no novelty); a new signature is appended to history, resets
// the stagnation count, and returns true.
func (t *ConvergenceTracker) Observe(results []*AgentOutcome) bool {
	sig := t.Signature(results)
	if n := len(t.history); n > 0 && t.history[n-1] == sig {
		t.stagnation++
		return false
	}
	t.history = append(t.history, sig)
	t.stagnation = 0
	return true
}

// Converged reports whether the stagnation count has reached the threshold.
// Converged is pure; only Observe mutates the tracker.
func (t *ConvergenceTracker) Converged(threshold int) bool {
	return t.stagnation >= threshold
}

// Stagnation returns the current count of consecutive no-novelty rounds.
func (t *ConvergenceTracker) Stagnation() int {
	return t.stagnation
}

// LastSignature returns the most recently recorded signature, empty when no
// batch has been observed yet.
func (t *ConvergenceTracker) LastSignature() string {
	if len(t.history) == 0 {
		return ""
	}
	return t.history[len(t.history)-1]
}

// History returns the recorded signature sequence.
func (t *ConvergenceTracker) History() []string {
	out := make([]string, len(t.history))
	copy(out, t.history)
	return out
}
