package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Mklevns/aletheia-phenom/internal/model"
)

func TestSQLiteStoreJournalRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "aletheia.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	older := model.RunRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		ID:              "life-11111111",
		World:           "life",
		Agent:           "pulse",
		Ticks:           240,
		CreatedAtUTC:    "2026-08-21T08:00:00Z",
	}
	newer := model.RunRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		ID:              "lorenz-22222222",
		World:           "lorenz",
		Agent:           "curious",
		Seed:            7,
		Ticks:           2400,
		Discoveries:     3,
		StatesCharted:   61,
		Exploration:     0.12,
		CreatedAtUTC:    "2026-08-23T08:00:00Z",
	}
	for _, run := range []model.RunRecord{older, newer} {
		if err := store.SaveRun(ctx, run); err != nil {
			t.Fatalf("save run %s: %v", run.ID, err)
		}
	}

	loaded, ok, err := store.GetRun(ctx, newer.ID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatalf("expected run %s", newer.ID)
	}
	if loaded.StatesCharted != newer.StatesCharted || loaded.Exploration != newer.Exploration {
		t.Fatalf("unexpected run loaded: %+v", loaded)
	}

	_, ok, err = store.GetRun(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing run: %v", err)
	}
	if ok {
		t.Fatal("expected missing run to report absent")
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != newer.ID || runs[1].ID != older.ID {
		t.Fatalf("unexpected run listing: %+v", runs)
	}

	limited, err := store.ListRuns(ctx, 1)
	if err != nil {
		t.Fatalf("list runs limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != newer.ID {
		t.Fatalf("unexpected limited listing: %+v", limited)
	}

	discoveries := []model.DiscoveryRecord{
		{VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion}, ID: "d1", RunID: newer.ID, Step: 100, Kind: "insight", Topic: "Anomaly near state 4|0|0"},
		{VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion}, ID: "d2", RunID: newer.ID, Step: 200, Kind: "text", Text: "Scientist: charted 41 states, exploring at 37% (tick 200)."},
		{VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion}, ID: "d3", RunID: newer.ID, Step: 300, Kind: "insight", Topic: "Anomaly near state 5|1|0"},
	}
	if err := store.AppendDiscoveries(ctx, newer.ID, discoveries[:2]); err != nil {
		t.Fatalf("append discoveries: %v", err)
	}
	if err := store.AppendDiscoveries(ctx, newer.ID, discoveries[2:]); err != nil {
		t.Fatalf("append more discoveries: %v", err)
	}

	loadedDiscoveries, ok, err := store.GetDiscoveries(ctx, newer.ID, 0)
	if err != nil {
		t.Fatalf("get discoveries: %v", err)
	}
	if !ok {
		t.Fatal("expected discoveries")
	}
	if len(loadedDiscoveries) != 3 || loadedDiscoveries[0].ID != "d1" || loadedDiscoveries[2].ID != "d3" {
		t.Fatalf("unexpected discoveries loaded: %+v", loadedDiscoveries)
	}

	recent, ok, err := store.GetDiscoveries(ctx, newer.ID, 2)
	if err != nil {
		t.Fatalf("get recent discoveries: %v", err)
	}
	if !ok {
		t.Fatal("expected recent discoveries")
	}
	if len(recent) != 2 || recent[0].ID != "d2" || recent[1].ID != "d3" {
		t.Fatalf("unexpected recent discoveries: %+v", recent)
	}

	_, ok, err = store.GetDiscoveries(ctx, older.ID, 0)
	if err != nil {
		t.Fatalf("get discoveries for quiet run: %v", err)
	}
	if ok {
		t.Fatal("expected no discoveries for quiet run")
	}

	stats := []model.TickStats{
		{Step: 100, Reward: 0.4, StatesCharted: 18, Exploration: 0.61},
		{Step: 200, Reward: 0.9, StatesCharted: 29, Exploration: 0.37},
	}
	if err := store.SaveTickStats(ctx, newer.ID, stats); err != nil {
		t.Fatalf("save tick stats: %v", err)
	}
	loadedStats, ok, err := store.GetTickStats(ctx, newer.ID)
	if err != nil {
		t.Fatalf("get tick stats: %v", err)
	}
	if !ok {
		t.Fatal("expected tick stats")
	}
	if len(loadedStats) != 2 || loadedStats[1].Step != 200 {
		t.Fatalf("unexpected tick stats loaded: %+v", loadedStats)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "aletheia.db")

	first := NewSQLiteStore(dbPath)
	if err := first.Init(ctx); err != nil {
		t.Fatalf("first init: %v", err)
	}
	run := model.RunRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		ID:              "persisted-run",
		World:           "gray-scott",
		CreatedAtUTC:    "2026-08-23T10:15:00Z",
	}
	if err := first.SaveRun(ctx, run); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}

	second := NewSQLiteStore(dbPath)
	if err := second.Init(ctx); err != nil {
		t.Fatalf("second init: %v", err)
	}
	t.Cleanup(func() {
		_ = second.Close()
	})

	loaded, ok, err := second.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if !ok || loaded.World != run.World {
		t.Fatalf("expected persisted run, got ok=%t value=%+v", ok, loaded)
	}
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "aletheia.db"))

	if err := store.SaveRun(ctx, model.RunRecord{ID: "r1"}); err == nil {
		t.Fatal("expected error before init")
	}
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	store := NewSQLiteStore("")
	if err := store.Init(context.Background()); err == nil {
		t.Fatal("expected error for empty path")
	}
}
