package ui

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/hax2/altlang/internal/annotate"
)

type mockController struct {
	quitCalls    int
	flipCalls    int
	nextCalls    int
	learnCalls   int
	regionKeys   []string
	tabs         []Tab
	modes        []string
	quizChoices  []int
	crAnswers    []string
	words        []string
	savedDrafts  []map[string]string
	resetCalls   int
	dismissCalls int
}

func (m *mockController) OnSelectTab(tab Tab)        { m.tabs = append(m.tabs, tab) }
func (m *mockController) OnSelectRegion(key string)  { m.regionKeys = append(m.regionKeys, key) }
func (m *mockController) OnSwitchMode(mode string)   { m.modes = append(m.modes, mode) }
func (m *mockController) OnFlipCard()                { m.flipCalls++ }
func (m *mockController) OnNextCard()                { m.nextCalls++ }
func (m *mockController) OnPrevCard()                {}
func (m *mockController) OnMarkLearned()             { m.learnCalls++ }
func (m *mockController) OnRestartMode()             {}
func (m *mockController) OnChooseQuizOption(i int)   { m.quizChoices = append(m.quizChoices, i) }
func (m *mockController) OnSubmitCRAnswer(a string)  { m.crAnswers = append(m.crAnswers, a) }
func (m *mockController) OnClearCRAnswer()           {}
func (m *mockController) OnContinueCR()              {}
func (m *mockController) OnSpeak(string, string)     {}
func (m *mockController) OnWordSelected(w, _ string) { m.words = append(m.words, w) }
func (m *mockController) OnSaveSettings(values map[string]string) {
	m.savedDrafts = append(m.savedDrafts, values)
}
func (m *mockController) OnResetSettings() { m.resetCalls++ }
func (m *mockController) OnDismissTip()    { m.dismissCalls++ }
func (m *mockController) OnQuit()          { m.quitCalls++ }

func press(v *Root, code rune, mod tea.KeyMod, text string) {
	_, _ = v.Update(tea.KeyPressMsg{Code: code, Mod: mod, Text: text})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(300 * time.Millisecond)
	for !cond() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !cond() {
		t.Fatalf("condition not met in time")
	}
}

func annotated(breakdown map[string]string, text string) annotate.Annotated {
	return annotate.Annotate(text, breakdown)
}

func TestCtrlQQuitsFromAnyTab(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	ctrl := &mockController{}
	v.SetController(ctrl)

	press(v, 'q', tea.ModCtrl, "")
	waitFor(t, func() bool { return ctrl.quitCalls == 1 })
}

func TestFunctionKeysSwitchTabs(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	ctrl := &mockController{}
	v.SetController(ctrl)

	press(v, tea.KeyF3, 0, "")
	waitFor(t, func() bool { return len(ctrl.tabs) == 1 && ctrl.tabs[0] == TabProgress })
}

func TestMapEnterSelectsRegion(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetRegions([]RegionRow{
		{Key: "saludos", Name: "Saludos", Category: "Fundamentos"},
		{Key: "restaurante", Name: "Restaurante", Category: "Situaciones"},
	})

	press(v, tea.KeyDown, 0, "")
	press(v, tea.KeyEnter, 0, "")
	waitFor(t, func() bool { return len(ctrl.regionKeys) == 1 && ctrl.regionKeys[0] == "restaurante" })
}

func TestSpaceFlipsFlashcard(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetTab(TabGame)
	v.SetStudy(StudyState{
		Mode:      "flashcard",
		Flashcard: FlashcardState{Front: annotated(nil, "hola"), Back: annotated(nil, "hello"), Total: 3},
	})

	press(v, ' ', 0, "")
	waitFor(t, func() bool { return ctrl.flipCalls == 1 })
}

func TestTabCyclesWordsAndEnterOpensPopup(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetTab(TabGame)
	front := annotated(map[string]string{"buenos días": "good morning"}, "buenos días")
	v.SetStudy(StudyState{
		Mode:      "flashcard",
		Flashcard: FlashcardState{Front: front, Back: annotated(nil, "good morning"), Total: 1},
	})

	press(v, tea.KeyTab, 0, "")
	if v.wordCursor != 0 {
		t.Fatalf("expected word cursor on first word, got %d", v.wordCursor)
	}
	press(v, tea.KeyEnter, 0, "")
	if !v.wordOpen {
		t.Fatalf("expected word popup to open")
	}
	waitFor(t, func() bool { return len(ctrl.words) == 1 && ctrl.words[0] == "buenos días" })

	// Enter with no word selected flips instead.
	press(v, tea.KeyEsc, 0, "")
	press(v, tea.KeyTab, 0, "")
	if v.wordCursor != -1 {
		t.Fatalf("cycling past last word must clear the cursor, got %d", v.wordCursor)
	}
	press(v, tea.KeyEnter, 0, "")
	waitFor(t, func() bool { return ctrl.flipCalls == 1 })
}

func TestQuizEnterChoosesHighlightedOption(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetTab(TabGame)
	v.SetStudy(StudyState{
		Mode: "quiz",
		Quiz: QuizState{
			Prompt:       annotated(nil, "hola"),
			Options:      []string{"hello", "goodbye", "please"},
			ChosenIndex:  -1,
			CorrectIndex: -1,
			Total:        3,
		},
	})

	press(v, tea.KeyDown, 0, "")
	press(v, tea.KeyEnter, 0, "")
	waitFor(t, func() bool { return len(ctrl.quizChoices) == 1 && ctrl.quizChoices[0] == 1 })
}

func TestCRTypedAnswerSubmitsOnEnter(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetTab(TabGame)
	v.SetStudy(StudyState{
		Mode: "call-response",
		CR:   CRState{Prompt: annotated(nil, "hello"), Total: 2},
	})

	for _, ch := range "hola" {
		press(v, ch, 0, string(ch))
	}
	press(v, tea.KeyEnter, 0, "")
	waitFor(t, func() bool { return len(ctrl.crAnswers) == 1 })
	if ctrl.crAnswers[0] != "hola" {
		t.Fatalf("expected typed answer submitted, got %q", ctrl.crAnswers[0])
	}
}

func TestCREmptyAnswerNotSubmitted(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetTab(TabGame)
	v.SetStudy(StudyState{
		Mode: "call-response",
		CR:   CRState{Prompt: annotated(nil, "hello"), Total: 2},
	})

	press(v, tea.KeyEnter, 0, "")
	time.Sleep(50 * time.Millisecond)
	if len(ctrl.crAnswers) != 0 {
		t.Fatalf("blank answer must not submit, got %v", ctrl.crAnswers)
	}
}

func TestSettingsSaveDispatchesDraft(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetSettings(map[string]string{"showXP": "true", "ttsVolume": "1"})

	press(v, tea.KeyF9, 0, "")
	if !v.settingsOpen {
		t.Fatalf("expected settings overlay open")
	}
	// First row is a bool toggle.
	press(v, ' ', 0, "")
	press(v, tea.KeyEnter, 0, "")
	waitFor(t, func() bool { return len(ctrl.savedDrafts) == 1 })
	if v.settingsOpen {
		t.Fatalf("expected settings overlay closed after save")
	}
}

func TestSettingsEscDiscardsDraft(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetSettings(map[string]string{"ttsAutoPlay": "true"})

	press(v, tea.KeyF9, 0, "")
	press(v, ' ', 0, "")
	press(v, tea.KeyEsc, 0, "")
	time.Sleep(50 * time.Millisecond)
	if len(ctrl.savedDrafts) != 0 {
		t.Fatalf("esc must not save the draft")
	}
	if v.settings["ttsAutoPlay"] != "true" {
		t.Fatalf("stored settings must be untouched")
	}
}

func TestTipDismissedByAnyKey(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetTab(TabGame)
	v.SetStudy(StudyState{Mode: "flashcard", Flashcard: FlashcardState{Front: annotated(nil, "hola"), Total: 1}})
	v.SetTipVisible(true)

	press(v, ' ', 0, "")
	waitFor(t, func() bool { return ctrl.dismissCalls == 1 })
	if v.tipVisible {
		t.Fatalf("expected tip hidden after key press")
	}
	if ctrl.flipCalls != 0 {
		t.Fatalf("tip-dismissing key must not flip the card")
	}
}

func TestFlippedCardCyclesBackWords(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetTab(TabGame)
	breakdown := map[string]string{"morning": "la mañana"}
	v.SetStudy(StudyState{
		Mode: "flashcard",
		Flashcard: FlashcardState{
			Front:     annotated(nil, "buenos días"),
			Back:      annotated(breakdown, "good morning"),
			Breakdown: breakdown,
			Flipped:   true,
			Total:     1,
		},
	})

	press(v, tea.KeyTab, 0, "")
	if v.wordCursor != 0 {
		t.Fatalf("expected back-face word under cursor, got %d", v.wordCursor)
	}
	press(v, tea.KeyEnter, 0, "")
	if !v.wordOpen {
		t.Fatalf("expected word popup for a back-face word")
	}
	waitFor(t, func() bool { return len(ctrl.words) == 1 && ctrl.words[0] == "morning" })
}

func TestCRPromptWordPopupDoesNotSubmit(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetTab(TabGame)
	prompt := annotated(map[string]string{"hello": "saludo informal"}, "hello")
	v.SetStudy(StudyState{Mode: "call-response", CR: CRState{Prompt: prompt, Total: 1}})

	for _, ch := range "hola" {
		press(v, ch, 0, string(ch))
	}
	press(v, tea.KeyTab, 0, "")
	if v.wordCursor != 0 {
		t.Fatalf("expected prompt word under cursor, got %d", v.wordCursor)
	}
	press(v, tea.KeyEnter, 0, "")
	if !v.wordOpen {
		t.Fatalf("expected word popup over the input")
	}
	time.Sleep(50 * time.Millisecond)
	if len(ctrl.crAnswers) != 0 {
		t.Fatalf("inspecting a word must not submit the answer, got %v", ctrl.crAnswers)
	}
}

func TestBreakdownOnlyCardOpensNotes(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	v.SetController(&mockController{})
	v.SetTab(TabGame)
	breakdown := map[string]string{"hola": "saludo"}
	v.SetStudy(StudyState{
		Mode:      "flashcard",
		Flashcard: FlashcardState{Front: annotated(breakdown, "hola"), Breakdown: breakdown, Total: 1},
	})

	press(v, 'g', 0, "")
	if !v.detailOpen {
		t.Fatalf("a card with only a breakdown must open the notes overlay")
	}
	text := ansi.Strip(v.detailText())
	if !strings.Contains(text, "Desglose") || !strings.Contains(text, "saludo") {
		t.Fatalf("notes must list the breakdown entries, got %q", text)
	}
}

func TestPanicRecoverySetsStatus(t *testing.T) {
	v := New(Options{MotionLevel: "off"})
	v.onModelPanic("update", "boom", tea.KeyPressMsg{Code: 'x'})
	if v.statusFlash != "Recovered UI panic" {
		t.Fatalf("expected recovery status, got %q", v.statusFlash)
	}
}

func TestWrapIndex(t *testing.T) {
	if wrapIndex(-1, 3) != 2 || wrapIndex(3, 3) != 0 || wrapIndex(1, 3) != 1 {
		t.Fatalf("wrapIndex broken")
	}
	if wrapIndex(5, 0) != 0 {
		t.Fatalf("wrapIndex with empty list must be 0")
	}
}

func TestTrimForWidth(t *testing.T) {
	if got := trimForWidth("hello world", 5); got != "hell…" {
		t.Fatalf("unexpected trim: %q", got)
	}
	if got := trimForWidth("hi", 5); got != "hi" {
		t.Fatalf("short strings pass through, got %q", got)
	}
}

func TestComposeOverlayCentersContent(t *testing.T) {
	base := "aaaa\naaaa\naaaa\naaaa"
	out := composeOverlay(base, "XX", 4, 4)
	lines := splitLines(out)
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lines))
	}
	if lines[1] != "aXXa" {
		t.Fatalf("expected centered overlay, got %q", lines[1])
	}
}

func TestViewImplementsInterfaceCompileTime(t *testing.T) {
	var _ View = New(Options{})
}
