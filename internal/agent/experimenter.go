// Package agent holds the experimenters: autonomous policies that observe a
// world, choose interventions, and occasionally publish what they found.
package agent

// Experimenter chooses an action for the current observation and may attach
// a discovery worth surfacing. Implementations are total: any observation,
// reward, or step must yield an action, degrading to Noop rather than
// failing.
type Experimenter interface {
	Name() string
	Act(obs Observation, reward float64, step uint64) (Action, *Discovery)
}

type ObservationKind string

const (
	ObsNone        ObservationKind = "none"
	ObsGridSummary ObservationKind = "grid_summary"
	ObsStateVec    ObservationKind = "state_vec"
)

// Observation is the agent-side view of a world: grid dimensions for
// cellular models, a three-component state vector for continuous ones.
type Observation struct {
	Kind   ObservationKind
	Width  int
	Height int
	Vec    [3]float64
}

func NoObservation() Observation {
	return Observation{Kind: ObsNone}
}

func GridObservation(width, height int) Observation {
	return Observation{Kind: ObsGridSummary, Width: width, Height: height}
}

func VecObservation(x, y, z float64) Observation {
	return Observation{Kind: ObsStateVec, Vec: [3]float64{x, y, z}}
}

type ActionKind string

const (
	ActNoop     ActionKind = "noop"
	ActFlipCell ActionKind = "flip_cell"
	ActPerturb  ActionKind = "perturb"
	ActSetParam ActionKind = "set_param"
)

// Action is the agent-side intervention vocabulary. SetParam carries a bare
// float; richer parameter types belong to the world boundary.
type Action struct {
	Kind  ActionKind
	Row   int
	Col   int
	Axis  int
	Delta float64
	Name  string
	Value float64
}

func Noop() Action {
	return Action{Kind: ActNoop}
}

func FlipCell(row, col int) Action {
	return Action{Kind: ActFlipCell, Row: row, Col: col}
}

func Perturb(axis int, delta float64) Action {
	return Action{Kind: ActPerturb, Axis: axis, Delta: delta}
}

func SetParam(name string, value float64) Action {
	return Action{Kind: ActSetParam, Name: name, Value: value}
}

type DiscoveryKind string

const (
	DiscoveryText    DiscoveryKind = "text"
	DiscoveryInsight DiscoveryKind = "insight"
)

// Discovery is a finding worth publishing: either a free-form status line or
// a structured insight with a topic.
type Discovery struct {
	Kind    DiscoveryKind `json:"kind"`
	Text    string        `json:"text,omitempty"`
	Topic   string        `json:"topic,omitempty"`
	Content string        `json:"content,omitempty"`
}

func TextDiscovery(text string) *Discovery {
	return &Discovery{Kind: DiscoveryText, Text: text}
}

func InsightDiscovery(topic, content string) *Discovery {
	return &Discovery{Kind: DiscoveryInsight, Topic: topic, Content: content}
}
