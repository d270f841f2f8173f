package delegate

// EngineOption configures an Engine via the functional options pattern.
type EngineOption func(*engineOptions)

// engineOptions holds all configurable fields set via EngineOption functions.
type engineOptions struct {
	registry     Registry
	store        SessionStore
	observers    []Observer
	convergence  ConvergencePredicate
	evidenceKeys []string
}

// applyDefaults fills in zero-value fields with sensible defaults.
func (o *engineOptions) applyDefaults() {
	if len(o.evidenceKeys) == 0 {
		o.evidenceKeys = DefaultEvidenceKeys
	}
}

// resolveOptions applies all option functions and fills defaults.
func resolveOptions(opts []EngineOption) engineOptions {
	var o engineOptions
	for _, fn := range opts {
		fn(&o)
	}
	o.applyDefaults()
	return o
}

// WithRegistry sets the registry used to resolve agent names before
// execution. Without a registry every name is accepted.
func WithRegistry(r Registry) EngineOption {
	return func(o *engineOptions) { o.registry = r }
}

// WithSessionStore persists each run's session transcript to the given
// store when the run finishes.
func WithSessionStore(s SessionStore) EngineOption {
	return func(o *engineOptions) { o.store = s }
}

// WithObservers registers fire-and-forget observers notified on agent spawn
// and completion. A panicking observer never aborts the run.
func WithObservers(obs ...Observer) EngineOption {
	return func(o *engineOptions) { o.observers = append(o.observers, obs...) }
}

// WithConvergencePredicate overrides the default signature-based novelty
// check. The predicate's verdict takes precedence over stagnation-count
// logic for the run.
func WithConvergencePredicate(p ConvergencePredicate) EngineOption {
	return func(o *engineOptions) { o.convergence = p }
}

// WithEvidenceKeys sets the structured-outcome fields that count as evidence
// for the convergence signature.
func WithEvidenceKeys(keys ...string) EngineOption {
	return func(o *engineOptions) { o.evidenceKeys = keys }
}
