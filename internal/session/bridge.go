package session

import (
	"github.com/Mklevns/aletheia-phenom/internal/agent"
	"github.com/Mklevns/aletheia-phenom/internal/world"
)

// mapObservation narrows a world observation to the agent vocabulary. Total
// by construction: unknown kinds collapse to None, and grid detail the
// agents have no use for (the live-cell count) is dropped.
func mapObservation(obs world.Observation) agent.Observation {
	switch obs.Kind {
	case world.ObsGridSummary:
		return agent.GridObservation(obs.Grid.Width, obs.Grid.Height)
	case world.ObsStateVec:
		return agent.VecObservation(obs.Vec[0], obs.Vec[1], obs.Vec[2])
	default:
		return agent.NoObservation()
	}
}

// mapAction widens an agent action to the world vocabulary. Total: unknown
// kinds collapse to Noop, never to an error.
func mapAction(act agent.Action) world.Action {
	switch act.Kind {
	case agent.ActFlipCell:
		return world.FlipCell(act.Row, act.Col)
	case agent.ActPerturb:
		return world.Perturb(act.Axis, act.Delta)
	case agent.ActSetParam:
		return world.SetParam(act.Name, world.FloatParam(act.Value))
	default:
		return world.Noop()
	}
}
