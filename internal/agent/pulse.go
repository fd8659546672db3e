package agent

import "fmt"

// Schedule for the pulse experimenter's fixed habits, in ticks.
const (
	pulsePerturbEvery = 30
	pulseFlipEvery    = 60
	pulseReportEvery  = 120
	pulsePerturbDelta = 2.0
)

// PulseExperimenter pokes the world on a fixed schedule: center flips on
// grids, axis kicks on state vectors, a status line every so often. Useful
// as a deterministic stand-in while judging worlds, and as the simplest
// non-trivial policy.
type PulseExperimenter struct{}

func (PulseExperimenter) Name() string {
	return "pulse"
}

func (PulseExperimenter) Act(obs Observation, _ float64, step uint64) (Action, *Discovery) {
	action := Noop()
	switch obs.Kind {
	case ObsGridSummary:
		if step%pulseFlipEvery == 0 {
			action = FlipCell(obs.Height/2, obs.Width/2)
		}
	case ObsStateVec:
		if step%pulsePerturbEvery == 0 {
			action = Perturb(0, pulsePerturbDelta)
		}
	}

	var discovery *Discovery
	if step > 0 && step%pulseReportEvery == 0 {
		discovery = TextDiscovery(fmt.Sprintf("Scientist: Tick %d shows interesting stability.", step))
	}
	return action, discovery
}
