// Package aletheia exposes the embedding API for driving observer/world
// sessions and querying the run journal.
package aletheia

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mklevns/aletheia-phenom/internal/agent"
	"github.com/Mklevns/aletheia-phenom/internal/model"
	"github.com/Mklevns/aletheia-phenom/internal/session"
	"github.com/Mklevns/aletheia-phenom/internal/storage"
	"github.com/Mklevns/aletheia-phenom/internal/world"
)

const (
	defaultDBPath  = "aletheia.db"
	defaultTicks   = 1000
	tickStatsEvery = 100
)

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store storage.Store
	ready bool
}

type RunRequest struct {
	RunID  string
	World  string
	Agent  string
	Ticks  int
	Seed   int64
	Params map[string]string

	// TPS throttles the session to the given ticks per second.
	// Zero runs unthrottled.
	TPS float64
	// OnDiscovery, when set, receives each discovery as the session
	// publishes it, before the run is journaled.
	OnDiscovery func(DiscoveryItem)
	// OnTick, when set, receives the step count after every tick.
	OnTick func(step uint64)
}

type RunSummary struct {
	RunID         string
	World         string
	Agent         string
	Ticks         uint64
	Discoveries   int
	StatesCharted int
	Exploration   float64
	CreatedAtUTC  string
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID         string
	CreatedAtUTC  string
	World         string
	Agent         string
	Seed          int64
	Ticks         uint64
	Discoveries   int
	StatesCharted int
	Exploration   float64
}

type JournalRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

type DiscoveryItem struct {
	Step    uint64
	Kind    string
	Text    string
	Topic   string
	Content string
}

type TickStatsRequest struct {
	RunID  string
	Latest bool
}

type TickStatsItem struct {
	Step          uint64
	Reward        float64
	StatesCharted int
	Exploration   float64
}

type CatalogItem struct {
	Kind    string
	Summary string
}

// explorer is the optional learning surface an experimenter may expose.
type explorer interface {
	StatesCharted() int
	Exploration() float64
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Worlds lists the world kinds a run request may name.
func (c *Client) Worlds() []CatalogItem {
	entries := world.Catalog()
	out := make([]CatalogItem, 0, len(entries))
	for _, entry := range entries {
		out = append(out, CatalogItem{Kind: entry.Kind, Summary: entry.Summary})
	}
	return out
}

// Agents lists the experimenter kinds a run request may name.
func (c *Client) Agents() []CatalogItem {
	entries := agent.Catalog()
	out := make([]CatalogItem, 0, len(entries))
	for _, entry := range entries {
		out = append(out, CatalogItem{Kind: entry.Kind, Summary: entry.Summary})
	}
	return out
}

// Run drives a fresh world/agent session for the requested number of ticks
// and journals the outcome: one run record, every published discovery, and
// periodic tick stats samples.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.World == "" {
		req.World = "life"
	}
	if req.Agent == "" {
		req.Agent = "noop"
	}
	if req.Ticks <= 0 {
		req.Ticks = defaultTicks
	}

	w, err := world.New(req.World)
	if err != nil {
		return RunSummary{}, err
	}
	exp, err := agent.New(req.Agent, agent.Config{Seed: req.Seed})
	if err != nil {
		return RunSummary{}, err
	}
	if err := c.ensureStore(ctx); err != nil {
		return RunSummary{}, err
	}

	for name, raw := range req.Params {
		w.SetParam(name, paramValue(raw))
	}

	now := time.Now().UTC()
	runID := req.RunID
	if runID == "" {
		runID = fmt.Sprintf("%s-%s", w.Name(), uuid.NewString()[:8])
	}

	var throttle *time.Ticker
	var pacer *session.Pacer
	var lastAdvance time.Time
	due := 0
	if req.TPS > 0 {
		pacer = session.NewPacer(req.TPS, 0)
		throttle = time.NewTicker(pacer.Interval())
		defer throttle.Stop()
		lastAdvance = time.Now()
	}

	sess := session.New(w, exp)
	var discoveries []model.DiscoveryRecord
	var stats []model.TickStats
	for i := 0; i < req.Ticks; i++ {
		if pacer != nil {
			for due == 0 {
				select {
				case <-ctx.Done():
					return RunSummary{}, ctx.Err()
				case now := <-throttle.C:
					due = pacer.Advance(now.Sub(lastAdvance))
					lastAdvance = now
				}
			}
			due--
		} else if err := ctx.Err(); err != nil {
			return RunSummary{}, err
		}
		step := sess.Steps()
		if d := sess.Tick(); d != nil {
			record := discoveryRecord(runID, step, d)
			discoveries = append(discoveries, record)
			if req.OnDiscovery != nil {
				req.OnDiscovery(discoveryItem(record))
			}
		}
		if sess.Steps()%tickStatsEvery == 0 {
			stats = append(stats, sampleTickStats(sess.Steps(), w, exp))
		}
		if req.OnTick != nil {
			req.OnTick(sess.Steps())
		}
	}

	charted, exploration := 0, 0.0
	if learner, ok := exp.(explorer); ok {
		charted = learner.StatesCharted()
		exploration = learner.Exploration()
	}

	record := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:            runID,
		World:         w.Name(),
		Agent:         exp.Name(),
		Seed:          req.Seed,
		Ticks:         sess.Steps(),
		Discoveries:   len(discoveries),
		StatesCharted: charted,
		Exploration:   exploration,
		CreatedAtUTC:  now.Format(time.RFC3339Nano),
	}
	if err := c.store.SaveRun(ctx, record); err != nil {
		return RunSummary{}, err
	}
	if len(discoveries) > 0 {
		if err := c.store.AppendDiscoveries(ctx, runID, discoveries); err != nil {
			return RunSummary{}, err
		}
	}
	if len(stats) > 0 {
		if err := c.store.SaveTickStats(ctx, runID, stats); err != nil {
			return RunSummary{}, err
		}
	}

	return RunSummary{
		RunID:         record.ID,
		World:         record.World,
		Agent:         record.Agent,
		Ticks:         record.Ticks,
		Discoveries:   record.Discoveries,
		StatesCharted: record.StatesCharted,
		Exploration:   record.Exploration,
		CreatedAtUTC:  record.CreatedAtUTC,
	}, nil
}

// Runs lists journaled runs, most recent first.
func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if err := c.ensureStore(ctx); err != nil {
		return nil, err
	}

	records, err := c.store.ListRuns(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	out := make([]RunItem, 0, len(records))
	for _, r := range records {
		out = append(out, RunItem{
			RunID:         r.ID,
			CreatedAtUTC:  r.CreatedAtUTC,
			World:         r.World,
			Agent:         r.Agent,
			Seed:          r.Seed,
			Ticks:         r.Ticks,
			Discoveries:   r.Discoveries,
			StatesCharted: r.StatesCharted,
			Exploration:   r.Exploration,
		})
	}
	return out, nil
}

// Journal returns the discoveries a run published, in step order. A quiet
// run yields an empty journal, not an error.
func (c *Client) Journal(ctx context.Context, req JournalRequest) ([]DiscoveryItem, error) {
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}
	runID, err := c.resolveRunID(ctx, req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}

	_, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("run not found: %s", runID)
	}

	discoveries, _, err := c.store.GetDiscoveries(ctx, runID, req.Limit)
	if err != nil {
		return nil, err
	}

	out := make([]DiscoveryItem, 0, len(discoveries))
	for _, d := range discoveries {
		out = append(out, discoveryItem(d))
	}
	return out, nil
}

// TickStats returns the periodic health samples recorded during a run.
func (c *Client) TickStats(ctx context.Context, req TickStatsRequest) ([]TickStatsItem, error) {
	runID, err := c.resolveRunID(ctx, req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}

	stats, ok, err := c.store.GetTickStats(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("tick stats not found for run id: %s", runID)
	}
	out := make([]TickStatsItem, 0, len(stats))
	for _, s := range stats {
		out = append(out, TickStatsItem{
			Step:          s.Step,
			Reward:        s.Reward,
			StatesCharted: s.StatesCharted,
			Exploration:   s.Exploration,
		})
	}
	return out, nil
}

func (c *Client) resolveRunID(ctx context.Context, runID string, latest bool) (string, error) {
	if runID != "" && latest {
		return "", errors.New("use either run id or latest")
	}
	if err := c.ensureStore(ctx); err != nil {
		return "", err
	}
	if latest {
		records, err := c.store.ListRuns(ctx, 1)
		if err != nil {
			return "", err
		}
		if len(records) == 0 {
			return "", errors.New("no runs available")
		}
		return records[0].ID, nil
	}
	if runID == "" {
		return "", errors.New("run id or latest is required")
	}
	return runID, nil
}

func (c *Client) ensureStore(ctx context.Context) error {
	if c.ready {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.ready = true
	return nil
}

func discoveryRecord(runID string, step uint64, d *agent.Discovery) model.DiscoveryRecord {
	record := model.DiscoveryRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:    fmt.Sprintf("%s-%d", runID, step),
		RunID: runID,
		Step:  step,
	}
	switch d.Kind {
	case agent.DiscoveryInsight:
		record.Kind = "insight"
		record.Topic = d.Topic
		record.Content = d.Content
	default:
		record.Kind = "text"
		record.Text = d.Text
	}
	return record
}

func discoveryItem(d model.DiscoveryRecord) DiscoveryItem {
	return DiscoveryItem{
		Step:    d.Step,
		Kind:    d.Kind,
		Text:    d.Text,
		Topic:   d.Topic,
		Content: d.Content,
	}
}

func sampleTickStats(step uint64, w world.World, exp agent.Experimenter) model.TickStats {
	sample := model.TickStats{Step: step}
	if ew, ok := w.(world.Experimentable); ok {
		sample.Reward = ew.Reward()
	}
	if learner, ok := exp.(explorer); ok {
		sample.StatesCharted = learner.StatesCharted()
		sample.Exploration = learner.Exploration()
	}
	return sample
}

// paramValue coerces a raw flag value: numbers become floats, the bool
// literals become bools, anything else stays a string.
func paramValue(raw string) world.ParamValue {
	trimmed := strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return world.FloatParam(f)
	}
	if b, err := strconv.ParseBool(trimmed); err == nil {
		return world.BoolParam(b)
	}
	return world.StringParam(trimmed)
}
