package ui

import "github.com/hax2/altlang/internal/annotate"

// Controller receives user intents from the view. Implementations run
// outside the render loop; the view dispatches each call on its own
// goroutine.
type Controller interface {
	OnSelectTab(tab Tab)
	OnSelectRegion(key string)
	OnSwitchMode(mode string)
	OnFlipCard()
	OnNextCard()
	OnPrevCard()
	OnMarkLearned()
	OnRestartMode()
	OnChooseQuizOption(index int)
	OnSubmitCRAnswer(answer string)
	OnClearCRAnswer()
	OnContinueCR()
	OnSpeak(text, lang string)
	OnWordSelected(word, explanation string)
	OnSaveSettings(values map[string]string)
	OnResetSettings()
	OnDismissTip()
	OnQuit()
}

type View interface {
	Run() error
	Stop()
	SetController(Controller)
	SetTab(tab Tab)
	SetRegions(regions []RegionRow)
	SetProgress(state ProgressState)
	SetStudy(state StudyState)
	SetSettings(values map[string]string)
	SetTipVisible(visible bool)
	SetSpeaking(speaking bool)
	FlashStatus(msg string)
}

type Tab int

const (
	TabMap Tab = iota
	TabGame
	TabProgress
)

func (t Tab) String() string {
	switch t {
	case TabGame:
		return "game"
	case TabProgress:
		return "progress"
	default:
		return "map"
	}
}

func TabFromString(s string) Tab {
	switch s {
	case "game":
		return TabGame
	case "progress":
		return TabProgress
	default:
		return TabMap
	}
}

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutCompact
	LayoutTooSmall
)

// RegionRow is one selectable region with the player's progress in it.
type RegionRow struct {
	Key          string
	Name         string
	Emoji        string
	Category     string
	LearnedCount int
	TotalCards   int
}

type ProgressState struct {
	XP            int
	Level         int
	LevelProgress int
	ShowXP        bool
	ShowBars      bool
	Regions       []RegionRow
}

// StudyState is the full render state of the game tab. Only the
// sub-state for the active mode is meaningful.
type StudyState struct {
	Mode        string
	RegionName  string
	RegionEmoji string
	Flashcard   FlashcardState
	Quiz        QuizState
	CR          CRState
}

type FlashcardState struct {
	Front annotate.Annotated
	Back  annotate.Annotated
	// Breakdown is the card's word-by-word gloss, shown in the detail
	// overlay; both faces carry its entries as interactive spans.
	Breakdown map[string]string
	Context   string
	Grammar   string
	Flipped   bool
	Learned   bool
	Index     int
	Total     int
	Complete  bool
}

type QuizState struct {
	Prompt annotate.Annotated
	// Options holds the shuffled answer choices for the current card.
	Options []string
	// ChosenIndex and CorrectIndex are -1 until the card is answered.
	ChosenIndex  int
	CorrectIndex int
	Feedback     string
	FeedbackGood bool
	Score        int
	Index        int
	Total        int
	Complete     bool
}

type CRState struct {
	Prompt        annotate.Annotated
	Locked        bool
	Feedback      string
	FeedbackGood  bool
	CorrectAnswer string
	Attempt       string
	Similarity    int
	Index         int
	Total         int
	Complete      bool
}
