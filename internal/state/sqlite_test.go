package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "state.db")
	store, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func TestAddLearnedIsIdempotentPerRegion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	item := LearnedWord{Front: "hola", Back: "hello", RegionKey: "saludos", Points: 10}
	first, err := store.AddLearned(ctx, item)
	if err != nil {
		t.Fatalf("add learned: %v", err)
	}
	if !first {
		t.Fatalf("expected first insert to report newly learned")
	}

	again, err := store.AddLearned(ctx, item)
	if err != nil {
		t.Fatalf("add learned duplicate: %v", err)
	}
	if again {
		t.Fatalf("duplicate insert must not report newly learned")
	}

	xp, err := store.TotalXP(ctx)
	if err != nil {
		t.Fatalf("total xp: %v", err)
	}
	if xp != 10 {
		t.Fatalf("expected 10 xp after duplicate insert, got %d", xp)
	}

	// Same word in another region counts separately.
	other, err := store.AddLearned(ctx, LearnedWord{Front: "hola", Back: "hello", RegionKey: "restaurante", Points: 15})
	if err != nil {
		t.Fatalf("add learned other region: %v", err)
	}
	if !other {
		t.Fatalf("expected insert in second region to be new")
	}
	xp, err = store.TotalXP(ctx)
	if err != nil {
		t.Fatalf("total xp: %v", err)
	}
	if xp != 25 {
		t.Fatalf("expected 25 xp, got %d", xp)
	}
}

func TestLearnedCountByRegion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	words := []LearnedWord{
		{Front: "hola", Back: "hello", RegionKey: "saludos", Points: 10},
		{Front: "gracias", Back: "thank you", RegionKey: "saludos", Points: 10},
		{Front: "la cuenta", Back: "the check", RegionKey: "restaurante", Points: 15},
	}
	for _, w := range words {
		if _, err := store.AddLearned(ctx, w); err != nil {
			t.Fatalf("add learned %q: %v", w.Front, err)
		}
	}

	counts, err := store.LearnedCountByRegion(ctx)
	if err != nil {
		t.Fatalf("count by region: %v", err)
	}
	if counts["saludos"] != 2 || counts["restaurante"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	learned, err := store.IsLearned(ctx, "hola", "saludos")
	if err != nil {
		t.Fatalf("is learned: %v", err)
	}
	if !learned {
		t.Fatalf("expected hola to be learned in saludos")
	}
	learned, err = store.IsLearned(ctx, "hola", "preguntas")
	if err != nil {
		t.Fatalf("is learned other region: %v", err)
	}
	if learned {
		t.Fatalf("hola must not be learned in preguntas")
	}
}

func TestSettingsRoundTripAndClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveSettings(ctx, map[string]string{
		"ttsAutoPlay": "true",
		"ttsVolume":   "0.8",
	}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if err := store.SaveSettings(ctx, map[string]string{"ttsVolume": "0.5"}); err != nil {
		t.Fatalf("update setting: %v", err)
	}

	got, err := store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if got["ttsAutoPlay"] != "true" {
		t.Fatalf("expected ttsAutoPlay=true, got %q", got["ttsAutoPlay"])
	}
	if got["ttsVolume"] != "0.5" {
		t.Fatalf("expected upserted ttsVolume=0.5, got %q", got["ttsVolume"])
	}

	if err := store.ClearSettings(ctx); err != nil {
		t.Fatalf("clear settings: %v", err)
	}
	got, err = store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("load settings after clear: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty settings after clear, got %v", got)
	}
}

func TestPrefsReturnEmptyWhenUnset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	v, err := store.GetPref(ctx, "currentTab")
	if err != nil {
		t.Fatalf("get unset pref: %v", err)
	}
	if v != "" {
		t.Fatalf("expected empty value for unset pref, got %q", v)
	}

	if err := store.SetPref(ctx, "currentTab", "progress"); err != nil {
		t.Fatalf("set pref: %v", err)
	}
	if err := store.SetPref(ctx, "currentTab", "game"); err != nil {
		t.Fatalf("overwrite pref: %v", err)
	}
	v, err = store.GetPref(ctx, "currentTab")
	if err != nil {
		t.Fatalf("get pref: %v", err)
	}
	if v != "game" {
		t.Fatalf("expected overwritten pref, got %q", v)
	}
}

func TestStudyRunsTracked(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.StartStudyRun(ctx, StudyRun{
		SessionID: "s-1",
		RegionKey: "saludos",
		Mode:      "flashcard",
		StartTS:   time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("start study run: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := store.IncrementCardsSeen(ctx, id); err != nil {
			t.Fatalf("increment cards seen: %v", err)
		}
	}

	sum, err := store.GetSummary(ctx)
	if err != nil {
		t.Fatalf("get summary: %v", err)
	}
	if sum.StudyRuns != 1 || sum.CardsSeen != 3 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}
