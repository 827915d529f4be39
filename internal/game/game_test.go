package game

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hax2/altlang/internal/content"
	"github.com/hax2/altlang/internal/state"
)

type nopLogger struct{}

func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}

func testRegistry(t *testing.T) *content.Registry {
	t.Helper()
	reg, err := content.NewRegistry([]content.Region{
		{
			Key: "saludos", Name: "Saludos", Category: "Fundamentos",
			Cards: []content.Card{
				{Front: "hola", Back: "hello"},
				{Front: "gracias", Back: "thank you"},
				{Front: "hasta luego", Back: "see you later"},
			},
		},
		{
			Key: "restaurante", Name: "Restaurante", Category: "Situaciones",
			Cards: []content.Card{
				{Front: "la cuenta", Back: "the check"},
			},
		},
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return reg
}

func newTestGame(t *testing.T) (*Game, *state.SQLiteStore) {
	t.Helper()
	store, err := state.NewSQLite(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	g, err := New(ctx, testRegistry(t), store, nopLogger{})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g, store
}

func TestGameStartsOnFirstRegionFlashcardMode(t *testing.T) {
	g, _ := newTestGame(t)
	if g.CurrentRegionKey() != "saludos" {
		t.Fatalf("expected first region active, got %q", g.CurrentRegionKey())
	}
	if g.CurrentMode() != ModeFlashcard {
		t.Fatalf("expected flashcard mode, got %q", g.CurrentMode())
	}
	if n := len(g.CurrentFlashcards()); n != 3 {
		t.Fatalf("expected 3 flashcards, got %d", n)
	}
}

func TestSetCurrentRegionReloadsDecks(t *testing.T) {
	g, _ := newTestGame(t)
	ctx := context.Background()

	g.SetCurrentRegion(ctx, "restaurante")
	if g.CurrentRegionKey() != "restaurante" {
		t.Fatalf("region switch failed: %q", g.CurrentRegionKey())
	}
	if n := len(g.CurrentFlashcards()); n != 1 {
		t.Fatalf("expected restaurante deck, got %d cards", n)
	}

	g.SetCurrentRegion(ctx, "no-such-region")
	if g.CurrentRegionKey() != "restaurante" {
		t.Fatalf("unknown region must be ignored, got %q", g.CurrentRegionKey())
	}
}

func TestQuizDeckExhaustsThenResets(t *testing.T) {
	g, _ := newTestGame(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for {
		card := g.NextQuizCard(ctx)
		if card == nil {
			break
		}
		seen[card.Front] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct quiz cards, saw %d", len(seen))
	}
	if g.NextQuizCard(ctx) != nil {
		t.Fatalf("exhausted deck must return nil")
	}

	g.ResetQuiz(ctx)
	if g.NextQuizCard(ctx) == nil {
		t.Fatalf("reset deck must serve cards again")
	}
}

func TestQuizOptionsContainCorrectAnswer(t *testing.T) {
	g, _ := newTestGame(t)
	card := content.Card{Front: "hola", Back: "hello"}
	for i := 0; i < 10; i++ {
		options := g.QuizOptions(card)
		if len(options) != 3 {
			t.Fatalf("expected 3 options, got %v", options)
		}
		found := false
		dup := map[string]bool{}
		for _, o := range options {
			if o == card.Front {
				found = true
			}
			if dup[o] {
				t.Fatalf("duplicate option %q in %v", o, options)
			}
			dup[o] = true
		}
		if !found {
			t.Fatalf("correct answer missing from %v", options)
		}
	}
}

func TestQuizOptionsSmallRegion(t *testing.T) {
	g, _ := newTestGame(t)
	g.SetCurrentRegion(context.Background(), "restaurante")
	options := g.QuizOptions(content.Card{Front: "la cuenta", Back: "the check"})
	if len(options) != 1 || options[0] != "la cuenta" {
		t.Fatalf("one-card region should yield only the correct option, got %v", options)
	}
}

func TestCheckCRAnswerGradesAgainstFront(t *testing.T) {
	g, _ := newTestGame(t)
	card := content.Card{Front: "hola", Back: "hello"}

	if ev := g.CheckCRAnswer("hola", card); !ev.IsCorrect || ev.Type != MatchExact {
		t.Fatalf("typing the Spanish front must be accepted, got %+v", ev)
	}
	// Typing the English gloss back at the prompt is not an answer.
	if ev := g.CheckCRAnswer("hello", card); ev.IsCorrect {
		t.Fatalf("the prompt text itself must not grade as correct, got %+v", ev)
	}
	misspelled := content.Card{Front: "gracias", Back: "thank you"}
	if ev := g.CheckCRAnswer("grasias", misspelled); !ev.IsCorrect || ev.Type != MatchFuzzy {
		t.Fatalf("near-miss spelling must grade fuzzy against the front, got %+v", ev)
	}
}

func TestAddLearnedCreditsOncePerRegion(t *testing.T) {
	g, _ := newTestGame(t)
	ctx := context.Background()

	newly, err := g.AddLearned(ctx, "hola", "hello", "saludos", PointsFlashcardLearn)
	if err != nil {
		t.Fatalf("add learned: %v", err)
	}
	if !newly {
		t.Fatalf("first learn must report newly learned")
	}
	newly, err = g.AddLearned(ctx, "hola", "hello", "saludos", PointsFlashcardLearn)
	if err != nil {
		t.Fatalf("add learned again: %v", err)
	}
	if newly {
		t.Fatalf("repeat learn must not credit again")
	}

	info, err := g.LevelInfo(ctx)
	if err != nil {
		t.Fatalf("level info: %v", err)
	}
	if info.XP != PointsFlashcardLearn {
		t.Fatalf("expected %d xp, got %d", PointsFlashcardLearn, info.XP)
	}
}

func TestLevelInfoDerivation(t *testing.T) {
	g, _ := newTestGame(t)
	ctx := context.Background()

	fronts := []string{"w1", "w2", "w3", "w4", "w5", "w6", "w7", "w8"}
	for _, f := range fronts {
		if _, err := g.AddLearned(ctx, f, "x", "saludos", PointsQuizCorrect); err != nil {
			t.Fatalf("add learned: %v", err)
		}
	}
	info, err := g.LevelInfo(ctx)
	if err != nil {
		t.Fatalf("level info: %v", err)
	}
	if info.XP != 120 {
		t.Fatalf("expected 120 xp, got %d", info.XP)
	}
	if info.Level != 2 {
		t.Fatalf("expected level 2, got %d", info.Level)
	}
	if info.LevelProgress != 20 {
		t.Fatalf("expected 20 progress within level, got %d", info.LevelProgress)
	}
}

func TestAllRegionsWithProgress(t *testing.T) {
	g, _ := newTestGame(t)
	ctx := context.Background()
	if _, err := g.AddLearned(ctx, "hola", "hello", "saludos", 10); err != nil {
		t.Fatalf("add learned: %v", err)
	}

	regions, err := g.AllRegionsWithProgress(ctx)
	if err != nil {
		t.Fatalf("regions with progress: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}
	if regions[0].Region.Key != "saludos" || regions[0].LearnedCount != 1 || regions[0].TotalCards != 3 {
		t.Fatalf("unexpected first region progress: %+v", regions[0])
	}
	if regions[1].LearnedCount != 0 {
		t.Fatalf("expected zero progress in second region: %+v", regions[1])
	}
}

func TestSettingsPersistAcrossGames(t *testing.T) {
	g, store := newTestGame(t)
	ctx := context.Background()

	if g.Setting(SettingTTSVolume) != "1" {
		t.Fatalf("expected default volume, got %q", g.Setting(SettingTTSVolume))
	}
	if err := g.UpdateSetting(ctx, SettingTTSVolume, "0.4"); err != nil {
		t.Fatalf("update setting: %v", err)
	}

	g2, err := New(ctx, testRegistry(t), store, nopLogger{})
	if err != nil {
		t.Fatalf("reopen game: %v", err)
	}
	if g2.Setting(SettingTTSVolume) != "0.4" {
		t.Fatalf("expected persisted volume, got %q", g2.Setting(SettingTTSVolume))
	}

	if err := g2.ResetSettings(ctx); err != nil {
		t.Fatalf("reset settings: %v", err)
	}
	if g2.Setting(SettingTTSVolume) != "1" {
		t.Fatalf("expected default after reset, got %q", g2.Setting(SettingTTSVolume))
	}
	saved, err := store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if len(saved) != 0 {
		t.Fatalf("reset must clear persisted overrides, got %v", saved)
	}
}

func TestSettingHelpers(t *testing.T) {
	if !SettingBool("true") || SettingBool("nope") {
		t.Fatalf("bool parsing broken")
	}
	if SettingFloat("0.5", 1) != 0.5 {
		t.Fatalf("float parsing broken")
	}
	if SettingFloat("garbage", 1.5) != 1.5 {
		t.Fatalf("float fallback broken")
	}
}
