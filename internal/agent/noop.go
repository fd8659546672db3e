package agent

// NoopExperimenter never intervenes and never reports. It is the control
// arm: a session driven by it behaves exactly like the bare world.
type NoopExperimenter struct{}

func (NoopExperimenter) Name() string {
	return "noop"
}

func (NoopExperimenter) Act(_ Observation, _ float64, _ uint64) (Action, *Discovery) {
	return Noop(), nil
}
