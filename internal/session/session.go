// Package session wires one world to one experimenter and drives the
// observe/act/step loop.
package session

import (
	"github.com/Mklevns/aletheia-phenom/internal/agent"
	"github.com/Mklevns/aletheia-phenom/internal/world"
)

// Session owns a world/experimenter pair. Neither is shared: all access to
// the agent's learned state flows through its Act calls, and the world only
// changes through Tick.
type Session struct {
	world world.World
	agent agent.Experimenter
	steps uint64
}

func New(w world.World, exp agent.Experimenter) *Session {
	return &Session{world: w, agent: exp}
}

// Tick advances the pair by one step: the agent observes and intervenes if
// the world supports experimentation, then physics advance unconditionally.
// Returns the agent's discovery for this tick, if it published one.
func (s *Session) Tick() *agent.Discovery {
	var discovery *agent.Discovery

	if exp, ok := s.world.(world.Experimentable); ok {
		obs := mapObservation(exp.Observe())
		action, event := s.agent.Act(obs, exp.Reward(), s.steps)
		discovery = event
		exp.ApplyAction(mapAction(action))
	}

	s.world.Step()
	s.steps++
	return discovery
}

// State forwards the world's current snapshot without caching.
func (s *Session) State() world.StateSnapshot {
	return s.world.State()
}

func (s *Session) Steps() uint64 {
	return s.steps
}
