package agent

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

const (
	// foveaScale sets the resolution of the log-bucketed state key: fine
	// near zero, coarse far out.
	foveaScale = 10.0
	// componentClamp stands in for infinite observation components so the
	// tables never key on non-finite values.
	componentClamp = 1e9

	surpriseGain   = 1.0
	surpriseCap    = 10.0
	firstTimeBonus = 5.0
	modelBlend     = 0.2

	insightThreshold = 2.5
	insightEvery     = 100
	statusEvery      = 200

	curiousPerturbDelta = 2.0
	// One noop plus a positive and a negative kick per axis.
	numActions = 7
)

// CuriousConfig fixes the learner's hyperparameters at construction. Zero
// values select the defaults; only the exploration rate mutates afterwards,
// and only downward.
type CuriousConfig struct {
	Rand             *rand.Rand
	LearningRate     float64
	Discount         float64
	Exploration      float64
	ExplorationDecay float64
	ExplorationFloor float64
}

// CuriousExperimenter is a tabular Q-learner driven by prediction error: it
// keeps a one-step forward model of the world, treats the model's misses as
// intrinsic reward, and reports the regions where its predictions break.
type CuriousExperimenter struct {
	rng *rand.Rand

	learningRate     float64
	discount         float64
	exploration      float64
	explorationDecay float64
	explorationFloor float64

	qTable map[string][]float64
	model  map[string][3]float64
	visits map[string]uint64

	prevKey    string
	prevAction int
	prevVec    [3]float64
	hasPrev    bool
}

func NewCurious(cfg CuriousConfig) *CuriousExperimenter {
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = 0.1
	}
	if cfg.Discount <= 0 {
		cfg.Discount = 0.9
	}
	if cfg.Exploration <= 0 {
		cfg.Exploration = 1.0
	}
	if cfg.ExplorationDecay <= 0 {
		cfg.ExplorationDecay = 0.995
	}
	if cfg.ExplorationFloor <= 0 {
		cfg.ExplorationFloor = 0.05
	}
	return &CuriousExperimenter{
		rng:              cfg.Rand,
		learningRate:     cfg.LearningRate,
		discount:         cfg.Discount,
		exploration:      cfg.Exploration,
		explorationDecay: cfg.ExplorationDecay,
		explorationFloor: cfg.ExplorationFloor,
		qTable:           make(map[string][]float64),
		model:            make(map[string][3]float64),
		visits:           make(map[string]uint64),
	}
}

func (c *CuriousExperimenter) Name() string {
	return "curious"
}

// Act runs one observe/learn/decide/report cycle. Non-vector observations
// are outside the learner's vocabulary and leave all state untouched.
func (c *CuriousExperimenter) Act(obs Observation, reward float64, step uint64) (Action, *Discovery) {
	if obs.Kind != ObsStateVec {
		return Noop(), nil
	}

	vec := sanitizeVec(obs.Vec)
	key := discretize(vec)
	c.visits[key]++

	// Surprise: how badly did the forward model miss? An unmodeled
	// transition (including the very first tick) earns the novelty bonus.
	surprise := firstTimeBonus
	if c.hasPrev {
		if pred, ok := c.model[transitionKey(c.prevKey, c.prevAction)]; ok {
			surprise = math.Min(floats.Distance(pred[:], vec[:], 2)*surpriseGain, surpriseCap)
		}
	}

	if c.hasPrev {
		c.updateModel(c.prevKey, c.prevAction, vec)
		effective := sanitizeReward(reward) + surprise
		c.updateQ(c.prevKey, c.prevAction, key, effective)
	}

	actionID := c.chooseAction(key)
	c.exploration = math.Max(c.explorationFloor, c.exploration*c.explorationDecay)

	discovery := c.report(key, vec, surprise, step)

	c.prevKey = key
	c.prevAction = actionID
	c.prevVec = vec
	c.hasPrev = true

	return perturbAction(actionID), discovery
}

// StatesCharted counts the distinct discretized states seen so far. It only
// grows.
func (c *CuriousExperimenter) StatesCharted() int {
	return len(c.visits)
}

// Exploration reports the current epsilon. It decays per vector tick but
// never drops below the floor.
func (c *CuriousExperimenter) Exploration() float64 {
	return c.exploration
}

func (c *CuriousExperimenter) updateModel(key string, actionID int, observed [3]float64) {
	tk := transitionKey(key, actionID)
	pred, ok := c.model[tk]
	if !ok {
		c.model[tk] = observed
		return
	}
	for i := range pred {
		pred[i] += modelBlend * (observed[i] - pred[i])
	}
	c.model[tk] = pred
}

func (c *CuriousExperimenter) updateQ(prevKey string, actionID int, curKey string, effective float64) {
	row, ok := c.qTable[prevKey]
	if !ok {
		row = make([]float64, numActions)
		c.qTable[prevKey] = row
	}
	best := maxValue(c.qTable[curKey])
	row[actionID] += c.learningRate * (effective + c.discount*best - row[actionID])
}

func (c *CuriousExperimenter) chooseAction(key string) int {
	if c.rng.Float64() < c.exploration {
		return c.rng.Intn(numActions)
	}
	return argmax(c.qTable[key])
}

func (c *CuriousExperimenter) report(key string, vec [3]float64, surprise float64, step uint64) *Discovery {
	if step == 0 {
		return nil
	}
	if surprise >= insightThreshold && step%insightEvery == 0 {
		content := fmt.Sprintf("Model error %.2f on visit %d.", surprise, c.visits[key])
		if c.hasPrev {
			content = fmt.Sprintf("Transition from %s broke the model by %.2f (jump of %.2f, visit %d).",
				c.prevKey, surprise, floats.Distance(c.prevVec[:], vec[:], 2), c.visits[key])
		}
		return InsightDiscovery(fmt.Sprintf("Anomaly near state %s", key), content)
	}
	if step%statusEvery == 0 {
		return TextDiscovery(fmt.Sprintf("Scientist: charted %d states, exploring at %.0f%% (tick %d).",
			len(c.visits), c.exploration*100, step))
	}
	return nil
}

// discretize folds a state vector into a foveated key: each component is
// log-compressed, scaled, and rounded, so resolution is highest where the
// dynamics are smallest.
func discretize(vec [3]float64) string {
	return fmt.Sprintf("%d|%d|%d", bucket(vec[0]), bucket(vec[1]), bucket(vec[2]))
}

func bucket(v float64) int {
	scaled := math.Log1p(math.Abs(v)) * foveaScale
	if v < 0 {
		scaled = -scaled
	}
	return int(math.Round(scaled))
}

func transitionKey(stateKey string, actionID int) string {
	return fmt.Sprintf("%s#%d", stateKey, actionID)
}

func perturbAction(id int) Action {
	if id <= 0 || id >= numActions {
		return Noop()
	}
	axis := (id - 1) / 2
	delta := curiousPerturbDelta
	if (id-1)%2 == 1 {
		delta = -curiousPerturbDelta
	}
	return Perturb(axis, delta)
}

func sanitizeVec(vec [3]float64) [3]float64 {
	for i, v := range vec {
		switch {
		case math.IsNaN(v):
			vec[i] = 0
		case math.IsInf(v, 1):
			vec[i] = componentClamp
		case math.IsInf(v, -1):
			vec[i] = -componentClamp
		}
	}
	return vec
}

func sanitizeReward(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

func maxValue(row []float64) float64 {
	if len(row) == 0 {
		return 0
	}
	best := row[0]
	for _, v := range row[1:] {
		if v > best {
			best = v
		}
	}
	return best
}

// argmax breaks ties toward the lowest action id, so an untouched row
// always yields the noop.
func argmax(row []float64) int {
	if len(row) == 0 {
		return 0
	}
	bestID := 0
	for id, v := range row {
		if v > row[bestID] {
			bestID = id
		}
	}
	return bestID
}
