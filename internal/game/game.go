package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hax2/altlang/internal/content"
	"github.com/hax2/altlang/internal/state"
)

// Mode names the three study modes.
type Mode string

const (
	ModeFlashcard    Mode = "flashcard"
	ModeQuiz         Mode = "quiz"
	ModeCallResponse Mode = "call-response"
)

// Logger is the small structured-logging surface the game needs.
type Logger interface {
	Info(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// RegionProgress is a region plus the player's learned-count within it.
type RegionProgress struct {
	Region       content.Region
	LearnedCount int
	TotalCards   int
}

// LevelInfo summarizes XP. Every 100 XP is a level; LevelProgress is
// the XP earned within the current level.
type LevelInfo struct {
	XP            int
	Level         int
	LevelProgress int
}

// XP awards per learning action.
const (
	PointsFlashcardLearn = 10
	PointsQuizCorrect    = 15
	PointsCRCorrect      = 15
)

// Game owns study state: the current region and mode, the quiz and
// call-response decks, settings, and progress persistence. Safe for
// concurrent use.
type Game struct {
	mu sync.Mutex

	registry *content.Registry
	store    state.Store
	logger   Logger
	rng      *rand.Rand

	sessionID  string
	regionKey  string
	mode       Mode
	quiz       *Session
	cr         *Session
	settings   map[string]string
	quizRunID  int64
	crRunID    int64
	flashRunID int64
}

// New builds a Game over loaded content and an opened store. Persisted
// settings overlay the defaults.
func New(ctx context.Context, registry *content.Registry, store state.Store, logger Logger) (*Game, error) {
	settings := defaultSettings()
	saved, err := store.LoadSettings(ctx)
	if err != nil {
		return nil, err
	}
	for k, v := range saved {
		settings[k] = v
	}
	g := &Game{
		registry:  registry,
		store:     store,
		logger:    logger,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		sessionID: uuid.NewString(),
		regionKey: registry.FirstKey(),
		mode:      ModeFlashcard,
		quiz:      NewSession(),
		cr:        NewSession(),
		settings:  settings,
	}
	g.reloadDecksLocked(ctx)
	return g, nil
}

func (g *Game) SessionID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessionID
}

// AllRegionsWithProgress lists every region in load order with the
// player's learned counts.
func (g *Game) AllRegionsWithProgress(ctx context.Context) ([]RegionProgress, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	counts, err := g.store.LearnedCountByRegion(ctx)
	if err != nil {
		return nil, err
	}
	regions := g.registry.Regions()
	out := make([]RegionProgress, 0, len(regions))
	for _, r := range regions {
		out = append(out, RegionProgress{
			Region:       r,
			LearnedCount: counts[r.Key],
			TotalCards:   len(r.Cards),
		})
	}
	return out, nil
}

// SetCurrentRegion switches regions and rebuilds the mode decks.
// Unknown keys are ignored.
func (g *Game) SetCurrentRegion(ctx context.Context, key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.registry.Region(key); !ok {
		g.logger.Error("unknown region", map[string]any{"key": key})
		return
	}
	if key == g.regionKey {
		return
	}
	g.regionKey = key
	g.reloadDecksLocked(ctx)
}

func (g *Game) CurrentRegionKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.regionKey
}

func (g *Game) CurrentRegion() (content.Region, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.registry.Region(g.regionKey)
}

func (g *Game) CurrentMode() Mode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mode
}

func (g *Game) SetCurrentMode(ctx context.Context, mode Mode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch mode {
	case ModeFlashcard, ModeQuiz, ModeCallResponse:
	default:
		g.logger.Error("unknown mode", map[string]any{"mode": string(mode)})
		return
	}
	g.mode = mode
	g.startRunLocked(ctx, mode)
}

// CurrentFlashcards returns the active region's deck in pack order.
func (g *Game) CurrentFlashcards() []content.Card {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.regionCardsLocked()
}

// NextQuizCard returns the card under the quiz cursor and advances the
// cursor, or nil when the quiz deck is exhausted.
func (g *Game) NextQuizCard(ctx context.Context) *content.Card {
	g.mu.Lock()
	defer g.mu.Unlock()
	card := g.quiz.Current()
	if card == nil {
		return nil
	}
	g.quiz.Advance()
	if g.quizRunID != 0 {
		if err := g.store.IncrementCardsSeen(ctx, g.quizRunID); err != nil {
			g.logger.Error("record card seen", map[string]any{"err": err.Error()})
		}
	}
	return card
}

// QuizOptions returns the card's Spanish text plus two distractor
// fronts from the same region, shuffled. Fewer options come back when
// the region is too small to supply distractors.
func (g *Game) QuizOptions(card content.Card) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	options := []string{card.Front}
	pool := g.regionCardsLocked()
	perm := g.rng.Perm(len(pool))
	for _, i := range perm {
		if len(options) == 3 {
			break
		}
		if pool[i].Front == card.Front {
			continue
		}
		options = append(options, pool[i].Front)
	}
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// ResetQuiz rewinds the quiz deck to the first card.
func (g *Game) ResetQuiz(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.quiz.Load(g.regionCardsLocked())
	g.startRunLocked(ctx, ModeQuiz)
}

// NextCRCard returns the card under the call-response cursor and
// advances it, or nil when the deck is exhausted.
func (g *Game) NextCRCard(ctx context.Context) *content.Card {
	g.mu.Lock()
	defer g.mu.Unlock()
	card := g.cr.Current()
	if card == nil {
		return nil
	}
	g.cr.Advance()
	if g.crRunID != 0 {
		if err := g.store.IncrementCardsSeen(ctx, g.crRunID); err != nil {
			g.logger.Error("record card seen", map[string]any{"err": err.Error()})
		}
	}
	return card
}

func (g *Game) ResetCR(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cr.Load(g.regionCardsLocked())
	g.startRunLocked(ctx, ModeCallResponse)
}

// CheckCRAnswer grades a typed target-language answer against the
// card's front face.
func (g *Game) CheckCRAnswer(userAnswer string, card content.Card) Evaluation {
	ev := Evaluate(userAnswer, card.Front)
	g.logger.Info("cr answer", map[string]any{
		"front":      card.Front,
		"type":       string(ev.Type),
		"correct":    ev.IsCorrect,
		"confidence": ev.Confidence,
	})
	return ev
}

// AddLearned credits a learned item once per (front, region) and
// reports whether it was newly learned.
func (g *Game) AddLearned(ctx context.Context, front, back, regionKey string, points int) (bool, error) {
	newly, err := g.store.AddLearned(ctx, state.LearnedWord{
		Front:     front,
		Back:      back,
		RegionKey: regionKey,
		Points:    points,
	})
	if err != nil {
		return false, err
	}
	if newly {
		g.logger.Info("learned", map[string]any{"front": front, "region": regionKey, "points": points})
	}
	return newly, nil
}

// IsLearned reports whether an item is already recorded for the
// active region.
func (g *Game) IsLearned(ctx context.Context, front string) bool {
	g.mu.Lock()
	regionKey := g.regionKey
	g.mu.Unlock()
	learned, err := g.store.IsLearned(ctx, front, regionKey)
	if err != nil {
		g.logger.Error("is learned", map[string]any{"err": err.Error()})
		return false
	}
	return learned
}

// LevelInfo derives the level from total XP: 100 XP per level.
func (g *Game) LevelInfo(ctx context.Context) (LevelInfo, error) {
	xp, err := g.store.TotalXP(ctx)
	if err != nil {
		return LevelInfo{}, err
	}
	return LevelInfo{
		XP:            xp,
		Level:         xp/100 + 1,
		LevelProgress: xp % 100,
	}, nil
}

// Setting returns the stored value for a key, or the default when the
// key is unknown.
func (g *Game) Setting(key string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if v, ok := g.settings[key]; ok {
		return v
	}
	return defaultSettings()[key]
}

// Settings returns a copy of the full settings map.
func (g *Game) Settings() map[string]string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[string]string, len(g.settings))
	for k, v := range g.settings {
		out[k] = v
	}
	return out
}

// UpdateSetting stores one setting in memory and persists it.
func (g *Game) UpdateSetting(ctx context.Context, key, value string) error {
	g.mu.Lock()
	g.settings[key] = value
	g.mu.Unlock()
	return g.store.SaveSettings(ctx, map[string]string{key: value})
}

// UpdateSettings stores a batch of settings and persists them.
func (g *Game) UpdateSettings(ctx context.Context, values map[string]string) error {
	g.mu.Lock()
	for k, v := range values {
		g.settings[k] = v
	}
	g.mu.Unlock()
	return g.store.SaveSettings(ctx, values)
}

// ResetSettings restores the defaults and clears persisted overrides.
func (g *Game) ResetSettings(ctx context.Context) error {
	g.mu.Lock()
	g.settings = defaultSettings()
	g.mu.Unlock()
	return g.store.ClearSettings(ctx)
}

func (g *Game) regionCardsLocked() []content.Card {
	region, ok := g.registry.Region(g.regionKey)
	if !ok {
		return nil
	}
	return region.Cards
}

func (g *Game) reloadDecksLocked(ctx context.Context) {
	cards := g.regionCardsLocked()
	g.quiz.Load(cards)
	g.cr.Load(cards)
	g.startRunLocked(ctx, g.mode)
}

func (g *Game) startRunLocked(ctx context.Context, mode Mode) {
	id, err := g.store.StartStudyRun(ctx, state.StudyRun{
		SessionID: g.sessionID,
		RegionKey: g.regionKey,
		Mode:      string(mode),
		StartTS:   time.Now().UTC(),
	})
	if err != nil {
		g.logger.Error("start study run", map[string]any{"err": err.Error()})
		return
	}
	switch mode {
	case ModeQuiz:
		g.quizRunID = id
	case ModeCallResponse:
		g.crRunID = id
	default:
		g.flashRunID = id
	}
}
