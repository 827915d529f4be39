// Package app wires content, study logic, persistence, speech, and the
// terminal view into the running application. It implements
// ui.Controller: every user intent lands here.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hax2/altlang/internal/annotate"
	"github.com/hax2/altlang/internal/content"
	"github.com/hax2/altlang/internal/game"
	"github.com/hax2/altlang/internal/speech"
	"github.com/hax2/altlang/internal/state"
	"github.com/hax2/altlang/internal/telemetry"
	"github.com/hax2/altlang/internal/ui"
)

// Delays that drive the study flow.
const (
	autoAdvanceDelay = 2 * time.Second
	flipSpeakDelay   = 500 * time.Millisecond
)

// UI preference keys persisted across sessions.
const (
	prefCurrentTab       = "currentTab"
	prefFlashcardTipSeen = "flashcardTipSeen"
)

type App struct {
	cfg Config

	logger  *telemetry.JSONLogger
	store   *state.SQLiteStore
	game    *game.Game
	speaker speech.Speaker
	view    *ui.Root

	mu  sync.Mutex
	tab ui.Tab

	tipSeen bool

	fcIndex   int
	fcFlipped bool

	quizCard     *content.Card
	quizOptions  []string
	quizChosen   int
	quizCorrect  int
	quizScore    int
	quizIndex    int
	quizComplete bool
	quizFeedback string
	quizGood     bool

	crCard       *content.Card
	crLocked     bool
	crFeedback   string
	crGood       bool
	crCanonical  string
	crAttempt    string
	crSimilarity int
	crIndex      int
	crComplete   bool

	// timerGen invalidates pending auto-advance and speech timers
	// whenever the user changes cards, modes, or regions.
	timerGen atomic.Uint64
}

func New(cfg Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	logger, err := telemetry.NewJSONLogger(cfg.LogPath)
	if err != nil {
		return nil, err
	}

	store, err := state.NewSQLite(filepath.Join(cfg.DataDir, "state.db"))
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		_ = logger.Close()
		return nil, err
	}

	registry, err := content.NewLoader().Load(cfg.ContentDir)
	if err != nil {
		_ = store.Close()
		_ = logger.Close()
		return nil, err
	}
	if registry.Len() == 0 {
		_ = store.Close()
		_ = logger.Close()
		return nil, fmt.Errorf("no regions available")
	}

	g, err := game.New(ctx, registry, store, logger)
	if err != nil {
		_ = store.Close()
		_ = logger.Close()
		return nil, err
	}

	var speaker speech.Speaker = speech.Null{}
	if cfg.TTS != "off" {
		speaker = speech.Detect(
			game.SettingFloat(g.Setting(game.SettingTTSVolume), 1),
			game.SettingFloat(g.Setting(game.SettingTTSRate), 1),
		)
	}

	motion := cfg.UI.MotionLevel
	if !game.SettingBool(g.Setting(game.SettingAnimationsEnabled)) {
		motion = "off"
	}
	view := ui.New(ui.Options{
		ASCIIOnly:    cfg.ASCIIOnly,
		Debug:        cfg.Debug,
		StyleVariant: cfg.UI.StyleVariant,
		MotionLevel:  motion,
		FlipSpeed:    game.SettingFloat(g.Setting(game.SettingFlashcardFlipSpeed), 0.6),
	})

	a := &App{
		cfg:         cfg,
		logger:      logger,
		store:       store,
		game:        g,
		speaker:     speaker,
		view:        view,
		quizChosen:  -1,
		quizCorrect: -1,
	}
	view.SetController(a)
	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("app.start", map[string]any{
		"session": a.game.SessionID(),
		"speaker": a.speaker.Name(),
		"regions": len(a.mustRegions(ctx)),
	})

	a.restorePrefs(ctx)

	a.pushRegions(ctx)
	a.pushProgress(ctx)
	a.view.SetSettings(a.game.Settings())
	a.view.SetTab(a.tab)

	a.mu.Lock()
	a.pushStudyLocked(ctx)
	a.mu.Unlock()

	return a.view.Run()
}

func (a *App) Close() {
	a.cancelTimers()
	_ = a.store.Close()
	_ = a.logger.Close()
}

func (a *App) restorePrefs(ctx context.Context) {
	if tab, err := a.store.GetPref(ctx, prefCurrentTab); err == nil && tab != "" {
		a.tab = ui.TabFromString(tab)
	}
	if seen, err := a.store.GetPref(ctx, prefFlashcardTipSeen); err == nil {
		a.tipSeen = seen == "true"
	}
}

// --- ui.Controller ---

func (a *App) OnSelectTab(tab ui.Tab) {
	ctx := context.Background()
	a.mu.Lock()
	a.tab = tab
	a.mu.Unlock()

	a.view.SetTab(tab)
	if err := a.store.SetPref(ctx, prefCurrentTab, tab.String()); err != nil {
		a.logger.Error("save tab pref", map[string]any{"err": err.Error()})
	}
	if tab == ui.TabProgress {
		a.pushProgress(ctx)
	}
	if tab == ui.TabGame {
		a.maybeShowTip()
	}
}

func (a *App) OnSelectRegion(key string) {
	ctx := context.Background()
	a.cancelTimers()
	a.game.SetCurrentRegion(ctx, key)

	a.mu.Lock()
	a.tab = ui.TabGame
	a.resetModeStateLocked(ctx)
	a.pushStudyLocked(ctx)
	a.mu.Unlock()

	a.view.SetTab(ui.TabGame)
	if err := a.store.SetPref(ctx, prefCurrentTab, ui.TabGame.String()); err != nil {
		a.logger.Error("save tab pref", map[string]any{"err": err.Error()})
	}
	a.pushRegions(ctx)
	a.maybeShowTip()
}

func (a *App) OnSwitchMode(mode string) {
	ctx := context.Background()
	a.cancelTimers()
	a.game.SetCurrentMode(ctx, game.Mode(mode))

	a.mu.Lock()
	a.resetModeStateLocked(ctx)
	a.pushStudyLocked(ctx)
	a.mu.Unlock()

	a.maybeShowTip()
}

func (a *App) OnFlipCard() {
	ctx := context.Background()
	a.mu.Lock()
	card := a.currentFlashcardLocked()
	if card == nil {
		a.mu.Unlock()
		return
	}
	a.fcFlipped = !a.fcFlipped
	flipped := a.fcFlipped
	back := card.Back
	a.pushStudyLocked(ctx)
	a.mu.Unlock()

	if flipped && game.SettingBool(a.game.Setting(game.SettingTTSAutoPlayEnglish)) {
		a.schedule(flipSpeakDelay, func() { a.speak(back, "en") })
	}
}

func (a *App) OnNextCard() {
	ctx := context.Background()
	a.cancelTimers()
	a.mu.Lock()
	switch a.game.CurrentMode() {
	case game.ModeQuiz:
		a.advanceQuizLocked(ctx)
	case game.ModeCallResponse:
		a.advanceCRLocked(ctx)
	default:
		total := len(a.game.CurrentFlashcards())
		if a.fcIndex < total {
			a.fcIndex++
		}
		a.fcFlipped = false
		a.autoplayFlashcardLocked()
	}
	a.pushStudyLocked(ctx)
	a.mu.Unlock()
}

func (a *App) OnPrevCard() {
	ctx := context.Background()
	a.cancelTimers()
	a.mu.Lock()
	if a.game.CurrentMode() == game.ModeFlashcard && a.fcIndex > 0 {
		a.fcIndex--
		a.fcFlipped = false
		a.autoplayFlashcardLocked()
	}
	a.pushStudyLocked(ctx)
	a.mu.Unlock()
}

func (a *App) OnMarkLearned() {
	ctx := context.Background()
	a.mu.Lock()
	card := a.currentFlashcardLocked()
	if card == nil {
		a.mu.Unlock()
		return
	}
	front, back := card.Front, card.Back
	a.mu.Unlock()

	newly, err := a.game.AddLearned(ctx, front, back, a.game.CurrentRegionKey(), game.PointsFlashcardLearn)
	if err != nil {
		a.logger.Error("mark learned", map[string]any{"err": err.Error()})
	} else if newly {
		a.view.FlashStatus(fmt.Sprintf("+%d XP", game.PointsFlashcardLearn))
		a.pushProgress(ctx)
		a.pushRegions(ctx)
	}

	// The session moves on whether or not the item was newly learned.
	a.mu.Lock()
	total := len(a.game.CurrentFlashcards())
	if a.fcIndex < total {
		a.fcIndex++
	}
	a.fcFlipped = false
	a.autoplayFlashcardLocked()
	a.pushStudyLocked(ctx)
	a.mu.Unlock()
}

func (a *App) OnRestartMode() {
	ctx := context.Background()
	a.cancelTimers()
	a.mu.Lock()
	switch a.game.CurrentMode() {
	case game.ModeQuiz:
		a.game.ResetQuiz(ctx)
		a.quizScore = 0
		a.quizIndex = -1
		a.quizComplete = false
		a.advanceQuizLocked(ctx)
	case game.ModeCallResponse:
		a.game.ResetCR(ctx)
		a.crIndex = -1
		a.crComplete = false
		a.advanceCRLocked(ctx)
	default:
		a.fcIndex = 0
		a.fcFlipped = false
		a.autoplayFlashcardLocked()
	}
	a.pushStudyLocked(ctx)
	a.mu.Unlock()
}

func (a *App) OnChooseQuizOption(index int) {
	ctx := context.Background()
	a.mu.Lock()
	if a.quizCard == nil || a.quizComplete || a.quizChosen >= 0 ||
		index < 0 || index >= len(a.quizOptions) {
		a.mu.Unlock()
		return
	}
	card := *a.quizCard
	a.quizChosen = index
	for i, option := range a.quizOptions {
		if option == card.Front {
			a.quizCorrect = i
			break
		}
	}
	correct := index == a.quizCorrect
	if correct {
		a.quizScore++
		a.quizFeedback = "¡Correcto!"
		a.quizGood = true
	} else {
		a.quizFeedback = fmt.Sprintf("Incorrecto. La respuesta correcta es: %s", card.Front)
		a.quizGood = false
	}
	a.pushStudyLocked(ctx)
	a.mu.Unlock()

	if correct {
		newly, err := a.game.AddLearned(ctx, card.Front, card.Back, a.game.CurrentRegionKey(), game.PointsQuizCorrect)
		if err != nil {
			a.logger.Error("quiz credit", map[string]any{"err": err.Error()})
		} else if newly {
			a.view.FlashStatus(fmt.Sprintf("+%d XP", game.PointsQuizCorrect))
			a.pushProgress(ctx)
			a.pushRegions(ctx)
		}
	}

	a.schedule(autoAdvanceDelay, func() {
		ctx := context.Background()
		a.mu.Lock()
		a.advanceQuizLocked(ctx)
		a.pushStudyLocked(ctx)
		a.mu.Unlock()
	})
}

func (a *App) OnSubmitCRAnswer(answer string) {
	ctx := context.Background()
	a.mu.Lock()
	if a.crCard == nil || a.crComplete || a.crLocked {
		a.mu.Unlock()
		return
	}
	card := *a.crCard
	a.mu.Unlock()

	ev := a.game.CheckCRAnswer(answer, card)

	a.mu.Lock()
	a.crFeedback = feedbackForEvaluation(ev)
	a.crGood = ev.IsCorrect
	if ev.IsCorrect {
		a.crCanonical = ""
		a.crAttempt = ""
		a.crSimilarity = 0
		if showCanonicalAnswer(ev) {
			// A loose match shows the ideal answer next to what was typed.
			a.crCanonical = card.Front
			a.crAttempt = answer
			a.crSimilarity = similarityPercent(ev.Confidence)
		}
	} else {
		a.crLocked = true
		a.crCanonical = card.Front
		a.crAttempt = answer
		a.crSimilarity = similarityPercent(ev.Confidence)
	}
	a.pushStudyLocked(ctx)
	a.mu.Unlock()

	if !ev.IsCorrect {
		return
	}

	newly, err := a.game.AddLearned(ctx, card.Front, card.Back, a.game.CurrentRegionKey(), game.PointsCRCorrect)
	if err != nil {
		a.logger.Error("cr credit", map[string]any{"err": err.Error()})
	} else if newly {
		a.view.FlashStatus(fmt.Sprintf("+%d XP", game.PointsCRCorrect))
		a.pushProgress(ctx)
		a.pushRegions(ctx)
	}

	a.schedule(autoAdvanceDelay, func() {
		ctx := context.Background()
		a.mu.Lock()
		a.advanceCRLocked(ctx)
		a.pushStudyLocked(ctx)
		a.mu.Unlock()
	})
}

func (a *App) OnClearCRAnswer() {
	ctx := context.Background()
	a.mu.Lock()
	if !a.crLocked {
		a.mu.Unlock()
		return
	}
	a.crLocked = false
	a.crFeedback = ""
	a.crCanonical = ""
	a.crAttempt = ""
	a.crSimilarity = 0
	a.pushStudyLocked(ctx)
	a.mu.Unlock()
}

func (a *App) OnContinueCR() {
	ctx := context.Background()
	a.cancelTimers()
	a.mu.Lock()
	a.advanceCRLocked(ctx)
	a.pushStudyLocked(ctx)
	a.mu.Unlock()
}

func (a *App) OnSpeak(text, lang string) {
	a.speak(text, lang)
}

func (a *App) OnWordSelected(word, explanation string) {
	a.logger.Info("word.selected", map[string]any{"word": word, "explanation": explanation})
	if game.SettingBool(a.game.Setting(game.SettingTTSAutoPlay)) {
		a.speak(word, "es")
	}
}

func (a *App) OnSaveSettings(values map[string]string) {
	ctx := context.Background()
	if err := a.game.UpdateSettings(ctx, values); err != nil {
		a.logger.Error("save settings", map[string]any{"err": err.Error()})
	}
	a.applySpeakerSettings()
	a.view.SetSettings(a.game.Settings())
	a.pushProgress(ctx)
}

func (a *App) OnResetSettings() {
	ctx := context.Background()
	if err := a.game.ResetSettings(ctx); err != nil {
		a.logger.Error("reset settings", map[string]any{"err": err.Error()})
	}
	a.applySpeakerSettings()
	a.view.SetSettings(a.game.Settings())
	a.pushProgress(ctx)
}

func (a *App) OnDismissTip() {
	ctx := context.Background()
	a.mu.Lock()
	a.tipSeen = true
	a.mu.Unlock()
	a.view.SetTipVisible(false)
	if err := a.store.SetPref(ctx, prefFlashcardTipSeen, "true"); err != nil {
		a.logger.Error("save tip pref", map[string]any{"err": err.Error()})
	}
}

func (a *App) OnQuit() {
	a.logger.Info("app.quit", nil)
	a.cancelTimers()
	a.view.Stop()
}

// --- internals ---

func (a *App) resetModeStateLocked(ctx context.Context) {
	a.fcIndex = 0
	a.fcFlipped = false
	a.quizCard = nil
	a.quizOptions = nil
	a.quizChosen = -1
	a.quizCorrect = -1
	a.quizScore = 0
	a.quizIndex = -1
	a.quizComplete = false
	a.quizFeedback = ""
	a.crCard = nil
	a.crLocked = false
	a.crFeedback = ""
	a.crCanonical = ""
	a.crAttempt = ""
	a.crSimilarity = 0
	a.crIndex = -1
	a.crComplete = false

	switch a.game.CurrentMode() {
	case game.ModeQuiz:
		a.game.ResetQuiz(ctx)
		a.advanceQuizLocked(ctx)
	case game.ModeCallResponse:
		a.game.ResetCR(ctx)
		a.advanceCRLocked(ctx)
	default:
		a.autoplayFlashcardLocked()
	}
}

func (a *App) currentFlashcardLocked() *content.Card {
	cards := a.game.CurrentFlashcards()
	if a.fcIndex < 0 || a.fcIndex >= len(cards) {
		return nil
	}
	return &cards[a.fcIndex]
}

func (a *App) advanceQuizLocked(ctx context.Context) {
	card := a.game.NextQuizCard(ctx)
	if card == nil {
		a.quizCard = nil
		a.quizComplete = true
		return
	}
	a.quizCard = card
	a.quizOptions = a.game.QuizOptions(*card)
	a.quizChosen = -1
	a.quizCorrect = -1
	a.quizFeedback = ""
	a.quizGood = false
	a.quizIndex++
	// No autoplay here: speaking the Spanish would give the answer away.
}

func (a *App) advanceCRLocked(ctx context.Context) {
	card := a.game.NextCRCard(ctx)
	a.crLocked = false
	a.crFeedback = ""
	a.crCanonical = ""
	a.crAttempt = ""
	a.crSimilarity = 0
	if card == nil {
		a.crCard = nil
		a.crComplete = true
		return
	}
	a.crCard = card
	a.crIndex++
	// No autoplay here: the Spanish front is the answer being asked for.
}

func (a *App) autoplayFlashcardLocked() {
	card := a.currentFlashcardLocked()
	if card == nil {
		return
	}
	if game.SettingBool(a.game.Setting(game.SettingTTSAutoPlay)) {
		front := card.Front
		go a.speak(front, "es")
	}
}

func (a *App) pushStudyLocked(ctx context.Context) {
	region, _ := a.game.CurrentRegion()
	st := ui.StudyState{
		Mode:        string(a.game.CurrentMode()),
		RegionName:  region.Name,
		RegionEmoji: region.Emoji,
	}

	cards := a.game.CurrentFlashcards()
	if a.fcIndex >= len(cards) {
		st.Flashcard = ui.FlashcardState{Total: len(cards), Index: len(cards), Complete: len(cards) > 0}
	} else {
		card := cards[a.fcIndex]
		st.Flashcard = ui.FlashcardState{
			Front:     annotate.Annotate(card.Front, card.Breakdown),
			Back:      annotate.Annotate(card.Back, card.Breakdown),
			Breakdown: card.Breakdown,
			Context:   card.Context,
			Grammar:   card.Grammar,
			Flipped:   a.fcFlipped,
			Learned:   a.game.IsLearned(ctx, card.Front),
			Index:     a.fcIndex,
			Total:     len(cards),
		}
	}

	st.Quiz = ui.QuizState{
		ChosenIndex:  a.quizChosen,
		CorrectIndex: a.quizCorrect,
		Feedback:     a.quizFeedback,
		FeedbackGood: a.quizGood,
		Score:        a.quizScore,
		Index:        max(0, a.quizIndex),
		Total:        len(cards),
		Complete:     a.quizComplete,
	}
	if a.quizCard != nil {
		question := fmt.Sprintf("¿Cómo se dice \"%s\" en español?", a.quizCard.Back)
		st.Quiz.Prompt = annotate.Annotate(question, nil)
		st.Quiz.Options = a.quizOptions
	}

	st.CR = ui.CRState{
		Locked:        a.crLocked,
		Feedback:      a.crFeedback,
		FeedbackGood:  a.crGood,
		CorrectAnswer: a.crCanonical,
		Attempt:       a.crAttempt,
		Similarity:    a.crSimilarity,
		Index:         max(0, a.crIndex),
		Total:         len(cards),
		Complete:      a.crComplete,
	}
	if a.crCard != nil {
		st.CR.Prompt = annotate.Annotate(a.crCard.Back, a.crCard.Breakdown)
	}

	a.view.SetStudy(st)
}

func (a *App) pushRegions(ctx context.Context) {
	a.view.SetRegions(a.regionRows(ctx))
}

func (a *App) regionRows(ctx context.Context) []ui.RegionRow {
	progress, err := a.game.AllRegionsWithProgress(ctx)
	if err != nil {
		a.logger.Error("load regions", map[string]any{"err": err.Error()})
		return nil
	}
	rows := make([]ui.RegionRow, 0, len(progress))
	for _, p := range progress {
		rows = append(rows, ui.RegionRow{
			Key:          p.Region.Key,
			Name:         p.Region.Name,
			Emoji:        p.Region.Emoji,
			Category:     p.Region.Category,
			LearnedCount: p.LearnedCount,
			TotalCards:   p.TotalCards,
		})
	}
	return rows
}

func (a *App) mustRegions(ctx context.Context) []ui.RegionRow {
	return a.regionRows(ctx)
}

func (a *App) pushProgress(ctx context.Context) {
	info, err := a.game.LevelInfo(ctx)
	if err != nil {
		a.logger.Error("level info", map[string]any{"err": err.Error()})
		return
	}
	a.view.SetProgress(ui.ProgressState{
		XP:            info.XP,
		Level:         info.Level,
		LevelProgress: info.LevelProgress,
		ShowXP:        game.SettingBool(a.game.Setting(game.SettingShowXP)),
		ShowBars:      game.SettingBool(a.game.Setting(game.SettingShowProgressBars)),
		Regions:       a.regionRows(ctx),
	})
}

func (a *App) maybeShowTip() {
	a.mu.Lock()
	show := !a.tipSeen && a.tab == ui.TabGame && a.game.CurrentMode() == game.ModeFlashcard
	a.mu.Unlock()
	if show {
		a.view.SetTipVisible(true)
	}
}

func (a *App) applySpeakerSettings() {
	if es, ok := a.speaker.(*speech.ESpeak); ok {
		es.SetVolume(game.SettingFloat(a.game.Setting(game.SettingTTSVolume), 1))
		es.SetRate(game.SettingFloat(a.game.Setting(game.SettingTTSRate), 1))
	}
}

func (a *App) speak(text, lang string) {
	if a.cfg.TTS == "off" || text == "" {
		return
	}
	a.applySpeakerSettings()
	a.view.SetSpeaking(true)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.speaker.Speak(ctx, text, lang); err != nil {
		a.logger.Error("speak", map[string]any{"err": err.Error(), "lang": lang})
	}
	a.view.SetSpeaking(false)
}

// schedule runs fn after d unless the timer generation has moved on,
// which happens whenever the user navigates away.
func (a *App) schedule(d time.Duration, fn func()) {
	gen := a.timerGen.Load()
	time.AfterFunc(d, func() {
		if a.timerGen.Load() != gen {
			return
		}
		fn()
	})
}

func (a *App) cancelTimers() {
	a.timerGen.Add(1)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var _ ui.Controller = (*App)(nil)
