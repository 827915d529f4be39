package ui

import (
	"fmt"
	"os"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/hax2/altlang/internal/annotate"
)

type applyMsg struct {
	fn func(*Root)
}

type drawMsg struct{}
type clockMsg time.Time
type animateMsg time.Time

type studyKeyMap struct {
	Map      key.Binding
	Study    key.Binding
	Progress key.Binding
	Flip     key.Binding
	Word     key.Binding
	Learn    key.Binding
	Speak    key.Binding
	Settings key.Binding
	Quit     key.Binding
}

func (k studyKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Map, k.Study, k.Progress, k.Flip, k.Word, k.Learn, k.Speak, k.Settings, k.Quit}
}

func (k studyKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Map, k.Study, k.Progress, k.Settings}, {k.Flip, k.Word, k.Learn, k.Speak, k.Quit}}
}

type Root struct {
	theme        Theme
	ascii        bool
	debug        bool
	ctrl         Controller
	styleVariant string
	motionLevel  string

	mu      sync.Mutex
	program *tea.Program
	running bool

	tab    Tab
	layout LayoutMode
	cols   int
	rows   int

	regions     []RegionRow
	regionIndex int

	progressState ProgressState
	study         StudyState
	quizCursor    int
	wordCursor    int

	settings      map[string]string
	settingsDraft map[string]string
	settingsOpen  bool
	settingsIndex int

	tipVisible  bool
	wordOpen    bool
	wordText    string
	wordExplain string
	detailOpen  bool

	statusFlash string
	speaking    bool

	input     textinput.Model
	help      help.Model
	keymap    studyKeyMap
	xpBar     progress.Model
	speakSpin spinner.Model
	markdown  *glamour.TermRenderer
	logger    *clog.Logger

	flipPos float64
	flipVel float64
	spring  harmonica.Spring

	drawPending atomic.Bool

	lastInputEvent string
}

type Options struct {
	ASCIIOnly    bool
	Debug        bool
	StyleVariant string
	MotionLevel  string
	FlipSpeed    float64
}

func New(opts Options) *Root {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "altlang-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(60),
	)
	if err != nil {
		renderer = nil
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()
	motionLevel := normalizeMotionLevel(opts.MotionLevel)
	styleVariant := normalizeStyleVariant(opts.StyleVariant)
	theme := ThemeForVariant(styleVariant)
	spring := flipSpring(motionLevel, opts.FlipSpeed)

	xpBar := progress.New(
		progress.WithWidth(30),
		progress.WithColors(lipgloss.Color("#F2B872"), lipgloss.Color("#80C4A3"), lipgloss.Color("#86B6F6")),
		progress.WithScaled(true),
	)
	if motionLevel == "off" {
		xpBar.SetSpringOptions(1000.0, 1.0)
	}
	speakSpin := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(theme.Accent),
	)

	input := textinput.New()
	input.Placeholder = "Escribe la traducción…"
	input.CharLimit = 120

	r := &Root{
		theme:        theme,
		ascii:        opts.ASCIIOnly,
		debug:        opts.Debug,
		styleVariant: styleVariant,
		motionLevel:  motionLevel,
		tab:          TabMap,
		layout:       LayoutWide,
		cols:         120,
		rows:         30,
		wordCursor:   -1,
		settings:     map[string]string{},
		input:        input,
		help:         h,
		xpBar:        xpBar,
		speakSpin:    speakSpin,
		markdown:     renderer,
		logger:       logger,
		spring:       spring,
	}
	r.keymap = studyKeyMap{
		Map:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "Mapa")),
		Study:    key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "Estudiar")),
		Progress: key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "Progreso")),
		Flip:     key.NewBinding(key.WithKeys("space"), key.WithHelp("espacio", "voltear")),
		Word:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "palabra")),
		Learn:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "aprendida")),
		Speak:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "escuchar")),
		Settings: key.NewBinding(key.WithKeys("f9"), key.WithHelp("F9", "Ajustes")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "salir")),
	}
	return r
}

func flipSpring(motionLevel string, flipSpeed float64) harmonica.Spring {
	if flipSpeed <= 0 {
		flipSpeed = 0.6
	}
	// Stiffer spring for faster configured flips.
	freq := 6.0 / flipSpeed
	switch motionLevel {
	case "reduced":
		return harmonica.NewSpring(harmonica.FPS(30), freq*0.75, 0.9)
	case "off":
		return harmonica.NewSpring(harmonica.FPS(60), 1000.0, 1.0)
	default:
		return harmonica.NewSpring(harmonica.FPS(60), freq, 0.8)
	}
}

func (r *Root) Init() tea.Cmd {
	return tea.Batch(clockTickCmd(), animateTickCmd(), spinnerTickCmd(r.speakSpin))
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		r.layout = DetermineLayoutMode(r.cols, r.rows)
		return r, nil
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, r.animateIfNeeded()
	case drawMsg:
		r.drawPending.Store(false)
		return r, nil
	case clockMsg:
		return r, clockTickCmd()
	case animateMsg:
		target := 0.0
		if r.study.Flashcard.Flipped {
			target = 1.0
		}
		r.flipPos, r.flipVel = r.spring.Update(r.flipPos, r.flipVel, target)
		if r.shouldAnimate(target) {
			return r, animateTickCmd()
		}
		r.flipPos = target
		r.flipVel = 0
		return r, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		r.speakSpin, cmd = r.speakSpin.Update(msg)
		return r, cmd
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			width := max(1, r.cols)
			msg := "UI recovered from a rendering panic. Check logs."
			if r.statusFlash == "" {
				r.statusFlash = "Recovered UI panic"
			}
			view = tea.NewView(r.theme.Fail.Width(width).Render(trimForWidth(msg, max(1, width-1))))
		}
	}()

	if r.cols < 1 {
		r.cols = 120
	}
	if r.rows < 1 {
		r.rows = 30
	}

	base := r.renderBase()
	if overlay := r.renderOverlay(); overlay != "" {
		base = composeOverlay(base, overlay, r.cols, r.rows)
	}
	v := tea.NewView(base)
	v.AltScreen = true
	return v
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

func (r *Root) SetTab(tab Tab) {
	r.apply(func(m *Root) {
		m.tab = tab
		m.wordCursor = -1
		m.wordOpen = false
		m.detailOpen = false
	})
}

func (r *Root) SetRegions(regions []RegionRow) {
	r.apply(func(m *Root) {
		m.regions = append([]RegionRow(nil), regions...)
		if m.regionIndex >= len(m.regions) {
			m.regionIndex = max(0, len(m.regions)-1)
		}
	})
}

func (r *Root) SetProgress(state ProgressState) {
	r.apply(func(m *Root) {
		m.progressState = state
	})
}

func (r *Root) SetStudy(state StudyState) {
	r.apply(func(m *Root) {
		prevMode := m.study.Mode
		prevFront := m.study.Flashcard.Front.Plain()
		prevFlipped := m.study.Flashcard.Flipped
		prevQuiz := m.study.Quiz.Prompt.Plain()
		prevCR := m.study.CR.Prompt.Plain()
		m.study = state

		if state.Mode != prevMode {
			m.quizCursor = 0
			m.wordCursor = -1
			m.wordOpen = false
			m.detailOpen = false
		}
		if state.Mode == string(modeFlashcard) {
			if state.Flashcard.Front.Plain() != prevFront {
				m.wordCursor = -1
				m.flipPos = 0
				m.flipVel = 0
			} else if state.Flashcard.Flipped != prevFlipped {
				// The visible face changed, so the word list did too.
				m.wordCursor = -1
			}
		}
		if state.Mode == string(modeQuiz) && state.Quiz.Prompt.Plain() != prevQuiz {
			m.quizCursor = 0
			m.wordCursor = -1
		}
		if state.Mode == string(modeCR) {
			if state.CR.Prompt.Plain() != prevCR {
				m.wordCursor = -1
			}
			if state.CR.Locked {
				m.input.Blur()
			} else if !m.input.Focused() {
				m.input.Focus()
			}
			if state.CR.Attempt == "" && !state.CR.Locked && state.CR.Feedback == "" {
				m.input.SetValue("")
			}
		}
	})
}

func (r *Root) SetSettings(values map[string]string) {
	r.apply(func(m *Root) {
		m.settings = map[string]string{}
		for k, v := range values {
			m.settings[k] = v
		}
	})
}

func (r *Root) SetTipVisible(visible bool) {
	r.apply(func(m *Root) {
		m.tipVisible = visible
	})
}

func (r *Root) SetSpeaking(speaking bool) {
	r.apply(func(m *Root) {
		m.speaking = speaking
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
	})
}

func (r *Root) RequestDraw() {
	r.mu.Lock()
	p := r.program
	running := r.running
	r.mu.Unlock()
	if !running || p == nil {
		return
	}
	if !r.drawPending.CompareAndSwap(false, true) {
		return
	}
	time.AfterFunc(16*time.Millisecond, func() {
		r.mu.Lock()
		p := r.program
		running := r.running
		r.mu.Unlock()
		if !running || p == nil {
			r.drawPending.Store(false)
			return
		}
		p.Send(drawMsg{})
	})
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

func (r *Root) dispatchController(fn func(Controller)) {
	if fn == nil || r.ctrl == nil {
		return
	}
	ctrl := r.ctrl
	go fn(ctrl)
}

// Mode names mirrored from the study logic so the view stays
// dependency-light.
type modeName string

const (
	modeFlashcard modeName = "flashcard"
	modeQuiz      modeName = "quiz"
	modeCR        modeName = "call-response"
)

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	r.recordInputEvent(fmt.Sprintf("key:%v mod:%v text:%q", msg.Code, msg.Mod, msg.Text))

	if key.Matches(msg, r.keymap.Quit) {
		r.dispatchController(func(c Controller) { c.OnQuit() })
		return r, nil
	}

	if r.overlayActive() {
		return r.handleOverlayKey(msg)
	}

	switch msg.Code {
	case tea.KeyF1:
		r.dispatchController(func(c Controller) { c.OnSelectTab(TabMap) })
		return r, nil
	case tea.KeyF2:
		r.dispatchController(func(c Controller) { c.OnSelectTab(TabGame) })
		return r, nil
	case tea.KeyF3:
		r.dispatchController(func(c Controller) { c.OnSelectTab(TabProgress) })
		return r, nil
	case tea.KeyF9:
		r.openSettings()
		return r, nil
	}

	switch r.tab {
	case TabMap:
		return r.handleMapKey(msg)
	case TabGame:
		return r.handleGameKey(msg)
	default:
		return r, nil
	}
}

func (r *Root) handleMapKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.Code {
	case tea.KeyUp:
		r.regionIndex = wrapIndex(r.regionIndex-1, len(r.regions))
	case tea.KeyDown:
		r.regionIndex = wrapIndex(r.regionIndex+1, len(r.regions))
	case tea.KeyEnter:
		if r.regionIndex >= 0 && r.regionIndex < len(r.regions) {
			regionKey := r.regions[r.regionIndex].Key
			r.dispatchController(func(c Controller) { c.OnSelectRegion(regionKey) })
		}
	}
	return r, nil
}

func (r *Root) handleGameKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.Code {
	case tea.KeyF5:
		r.dispatchController(func(c Controller) { c.OnSwitchMode(string(modeFlashcard)) })
		return r, nil
	case tea.KeyF6:
		r.dispatchController(func(c Controller) { c.OnSwitchMode(string(modeQuiz)) })
		return r, nil
	case tea.KeyF7:
		r.dispatchController(func(c Controller) { c.OnSwitchMode(string(modeCR)) })
		return r, nil
	}

	switch modeName(r.study.Mode) {
	case modeQuiz:
		return r.handleQuizKey(msg)
	case modeCR:
		return r.handleCRKey(msg)
	default:
		return r.handleFlashcardKey(msg)
	}
}

func (r *Root) handleFlashcardKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	fc := r.study.Flashcard
	if fc.Complete {
		if msg.Mod == 0 && (msg.Code == 'r' || msg.Code == 'R') {
			r.dispatchController(func(c Controller) { c.OnRestartMode() })
		}
		return r, nil
	}

	face := fc.Front
	if fc.Flipped {
		face = fc.Back
	}

	switch msg.Code {
	case ' ':
		r.dispatchController(func(c Controller) { c.OnFlipCard() })
		return r, r.animateIfNeeded()
	case tea.KeyTab:
		r.cycleWordCursor(face)
		return r, nil
	case tea.KeyEnter:
		if span, ok := r.selectedWord(face); ok {
			r.openWordPopup(span)
			return r, nil
		}
		r.dispatchController(func(c Controller) { c.OnFlipCard() })
		return r, r.animateIfNeeded()
	case tea.KeyRight:
		r.dispatchController(func(c Controller) { c.OnNextCard() })
		return r, nil
	case tea.KeyLeft:
		r.dispatchController(func(c Controller) { c.OnPrevCard() })
		return r, nil
	}

	if msg.Mod != 0 {
		return r, nil
	}
	switch msg.Code {
	case 'n':
		r.dispatchController(func(c Controller) { c.OnNextCard() })
	case 'p':
		r.dispatchController(func(c Controller) { c.OnPrevCard() })
	case 'l':
		r.dispatchController(func(c Controller) { c.OnMarkLearned() })
	case 'r':
		r.dispatchController(func(c Controller) { c.OnRestartMode() })
	case 's':
		text, lang := fc.Front.Plain(), "es"
		if fc.Flipped {
			text, lang = fc.Back.Plain(), "en"
		}
		r.dispatchController(func(c Controller) { c.OnSpeak(text, lang) })
	case 'g':
		if strings.TrimSpace(fc.Grammar) != "" || strings.TrimSpace(fc.Context) != "" || len(fc.Breakdown) > 0 {
			r.detailOpen = true
		}
	case '1':
		r.dispatchController(func(c Controller) { c.OnSwitchMode(string(modeFlashcard)) })
	case '2':
		r.dispatchController(func(c Controller) { c.OnSwitchMode(string(modeQuiz)) })
	case '3':
		r.dispatchController(func(c Controller) { c.OnSwitchMode(string(modeCR)) })
	}
	return r, nil
}

func (r *Root) handleQuizKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	q := r.study.Quiz
	if q.Complete {
		if msg.Mod == 0 && (msg.Code == 'r' || msg.Code == 'R') {
			r.dispatchController(func(c Controller) { c.OnRestartMode() })
		}
		return r, nil
	}

	answered := q.ChosenIndex >= 0
	switch msg.Code {
	case tea.KeyUp:
		if !answered {
			r.quizCursor = wrapIndex(r.quizCursor-1, len(q.Options))
		}
		return r, nil
	case tea.KeyDown:
		if !answered {
			r.quizCursor = wrapIndex(r.quizCursor+1, len(q.Options))
		}
		return r, nil
	case tea.KeyTab:
		r.cycleWordCursor(q.Prompt)
		return r, nil
	case tea.KeyEnter:
		if span, ok := r.selectedWord(q.Prompt); ok {
			r.openWordPopup(span)
			return r, nil
		}
		if !answered {
			choice := r.quizCursor
			r.dispatchController(func(c Controller) { c.OnChooseQuizOption(choice) })
		} else {
			r.dispatchController(func(c Controller) { c.OnNextCard() })
		}
		return r, nil
	}

	if msg.Mod != 0 {
		return r, nil
	}
	switch msg.Code {
	case 's':
		text := q.Prompt.Plain()
		r.dispatchController(func(c Controller) { c.OnSpeak(text, "es") })
	case 'r':
		r.dispatchController(func(c Controller) { c.OnRestartMode() })
	case '1':
		r.dispatchController(func(c Controller) { c.OnSwitchMode(string(modeFlashcard)) })
	case '2':
		r.dispatchController(func(c Controller) { c.OnSwitchMode(string(modeQuiz)) })
	case '3':
		r.dispatchController(func(c Controller) { c.OnSwitchMode(string(modeCR)) })
	}
	return r, nil
}

func (r *Root) handleCRKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	cr := r.study.CR
	if cr.Complete {
		if msg.Mod == 0 && (msg.Code == 'r' || msg.Code == 'R') {
			r.dispatchController(func(c Controller) { c.OnRestartMode() })
		}
		return r, nil
	}

	if cr.Locked {
		switch {
		case msg.Code == tea.KeyEnter:
			r.input.SetValue("")
			r.dispatchController(func(c Controller) { c.OnContinueCR() })
		case msg.Mod == 0 && (msg.Code == 'c' || msg.Code == 'C'):
			r.input.SetValue("")
			r.dispatchController(func(c Controller) { c.OnClearCRAnswer() })
		}
		return r, nil
	}

	switch msg.Code {
	case tea.KeyTab:
		r.cycleWordCursor(cr.Prompt)
		return r, nil
	case tea.KeyEnter:
		if span, ok := r.selectedWord(cr.Prompt); ok {
			r.openWordPopup(span)
			return r, nil
		}
		answer := r.input.Value()
		if strings.TrimSpace(answer) == "" {
			return r, nil
		}
		r.dispatchController(func(c Controller) { c.OnSubmitCRAnswer(answer) })
		return r, nil
	case tea.KeyEsc:
		r.input.SetValue("")
		return r, nil
	}

	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd
}

func (r *Root) handleOverlayKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch r.topOverlay() {
	case "settings":
		return r.handleSettingsKey(msg)
	case "word":
		switch {
		case msg.Code == tea.KeyEsc || msg.Code == tea.KeyEscape || msg.Code == tea.KeyEnter:
			r.wordOpen = false
		case msg.Mod == 0 && (msg.Code == 'q' || msg.Code == 'Q'):
			r.wordOpen = false
		case msg.Mod == 0 && (msg.Code == 's' || msg.Code == 'S'):
			word := r.wordText
			r.dispatchController(func(c Controller) { c.OnSpeak(word, "es") })
		}
		return r, nil
	case "detail":
		if msg.Code == tea.KeyEsc || msg.Code == tea.KeyEscape || msg.Code == tea.KeyEnter ||
			(msg.Mod == 0 && (msg.Code == 'q' || msg.Code == 'g')) {
			r.detailOpen = false
		}
		return r, nil
	case "tip":
		r.tipVisible = false
		r.dispatchController(func(c Controller) { c.OnDismissTip() })
		return r, nil
	}
	return r, nil
}

// Setting rows shown in the settings overlay, in display order.
type settingRow struct {
	key   string
	label string
	kind  string // bool or float
	min   float64
	max   float64
	step  float64
}

var settingRows = []settingRow{
	{key: "ttsAutoPlay", label: "Audio automático (español)", kind: "bool"},
	{key: "ttsAutoPlayEnglish", label: "Audio automático (inglés)", kind: "bool"},
	{key: "ttsVolume", label: "Volumen", kind: "float", min: 0, max: 1, step: 0.1},
	{key: "ttsRate", label: "Velocidad de voz", kind: "float", min: 0.5, max: 2, step: 0.1},
	{key: "animationsEnabled", label: "Animaciones", kind: "bool"},
	{key: "flashcardFlipSpeed", label: "Velocidad de flip (s)", kind: "float", min: 0.3, max: 2, step: 0.1},
	{key: "showProgressBars", label: "Barras de progreso", kind: "bool"},
	{key: "showXP", label: "Mostrar XP", kind: "bool"},
}

func (r *Root) openSettings() {
	r.settingsDraft = map[string]string{}
	for k, v := range r.settings {
		r.settingsDraft[k] = v
	}
	r.settingsIndex = 0
	r.settingsOpen = true
}

func (r *Root) handleSettingsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.Code {
	case tea.KeyEsc, tea.KeyF9:
		r.settingsOpen = false
		return r, nil
	case tea.KeyUp:
		r.settingsIndex = wrapIndex(r.settingsIndex-1, len(settingRows))
		return r, nil
	case tea.KeyDown, tea.KeyTab:
		r.settingsIndex = wrapIndex(r.settingsIndex+1, len(settingRows))
		return r, nil
	case tea.KeyEnter:
		draft := map[string]string{}
		for k, v := range r.settingsDraft {
			draft[k] = v
		}
		r.settingsOpen = false
		r.statusFlash = "Ajustes guardados"
		r.dispatchController(func(c Controller) { c.OnSaveSettings(draft) })
		return r, nil
	case ' ':
		r.toggleSettingRow(0)
		return r, nil
	case tea.KeyLeft:
		r.toggleSettingRow(-1)
		return r, nil
	case tea.KeyRight:
		r.toggleSettingRow(1)
		return r, nil
	}
	if msg.Mod == 0 && (msg.Code == 'd' || msg.Code == 'D') {
		r.settingsOpen = false
		r.statusFlash = "Ajustes restaurados"
		r.dispatchController(func(c Controller) { c.OnResetSettings() })
	}
	return r, nil
}

func (r *Root) toggleSettingRow(dir int) {
	if r.settingsIndex < 0 || r.settingsIndex >= len(settingRows) {
		return
	}
	row := settingRows[r.settingsIndex]
	cur := r.settingsDraft[row.key]
	switch row.kind {
	case "bool":
		if cur == "true" {
			r.settingsDraft[row.key] = "false"
		} else {
			r.settingsDraft[row.key] = "true"
		}
	case "float":
		if dir == 0 {
			return
		}
		v := parseFloatOr(cur, row.min)
		v += float64(dir) * row.step
		if v < row.min {
			v = row.min
		}
		if v > row.max {
			v = row.max
		}
		r.settingsDraft[row.key] = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
	}
}

func (r *Root) cycleWordCursor(text annotate.Annotated) {
	words := text.Words()
	if len(words) == 0 {
		r.wordCursor = -1
		return
	}
	r.wordCursor++
	if r.wordCursor >= len(words) {
		r.wordCursor = -1
	}
}

func (r *Root) selectedWord(text annotate.Annotated) (annotate.Span, bool) {
	words := text.Words()
	if r.wordCursor < 0 || r.wordCursor >= len(words) {
		return annotate.Span{}, false
	}
	return words[r.wordCursor], true
}

func (r *Root) openWordPopup(span annotate.Span) {
	r.wordText = span.Text
	r.wordExplain = span.Explanation
	r.wordOpen = true
	word, explain := span.Text, span.Explanation
	r.dispatchController(func(c Controller) { c.OnWordSelected(word, explain) })
}

func (r *Root) topOverlay() string {
	if r.settingsOpen {
		return "settings"
	}
	if r.wordOpen {
		return "word"
	}
	if r.detailOpen {
		return "detail"
	}
	if r.tipVisible && r.tab == TabGame && modeName(r.study.Mode) == modeFlashcard {
		return "tip"
	}
	return ""
}

func (r *Root) overlayActive() bool {
	return r.topOverlay() != ""
}

func (r *Root) renderBase() string {
	w, h := r.cols, r.rows
	mode := DetermineLayoutMode(w, h)
	r.layout = mode

	if mode == LayoutTooSmall {
		msg := []string{
			"Terminal demasiado pequeña",
			fmt.Sprintf("Actual: %dx%d", w, h),
			"Mínimo: 70x20",
			"Cambia el tamaño para continuar.",
		}
		panel := r.drawPanel("Resize", msg, min(50, w), min(10, h))
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, panel)
	}

	header := r.headerText()
	status := r.statusText()
	bodyH := max(3, h-2)

	var body string
	switch r.tab {
	case TabGame:
		body = r.renderGame(w, bodyH)
	case TabProgress:
		body = r.renderProgress(w, bodyH)
	default:
		body = r.renderMap(w, bodyH)
	}
	return header + "\n" + body + "\n" + status
}

func (r *Root) headerText() string {
	title := "AltLang · Aprende español"
	tabs := []string{"F1 Mapa", "F2 Estudiar", "F3 Progreso"}
	for i := range tabs {
		if Tab(i) == r.tab {
			tabs[i] = "[" + tabs[i] + "]"
		}
	}
	right := ""
	if r.progressState.ShowXP {
		right = fmt.Sprintf("Nivel %d · %d XP", r.progressState.Level, r.progressState.XP)
	}
	line := title + "   " + strings.Join(tabs, "  ")
	gap := r.cols - lipgloss.Width(line) - lipgloss.Width(right) - 2
	if gap > 0 {
		line += strings.Repeat(" ", gap) + right
	}
	return r.theme.Header.Width(max(1, r.cols)).Render(trimForWidth(line, max(1, r.cols-2)))
}

func (r *Root) statusText() string {
	left := r.help.View(r.keymap)
	if r.statusFlash != "" {
		left = r.statusFlash + "  " + left
	}
	if r.speaking {
		left = r.speakSpin.View() + " " + left
	}
	return r.theme.Status.Width(max(1, r.cols)).Render(trimForWidth(left, max(1, r.cols-2)))
}

func (r *Root) renderMap(w, h int) string {
	lines := make([]string, 0, len(r.regions)*2)
	lastCategory := ""
	for i, region := range r.regions {
		if region.Category != lastCategory {
			if lastCategory != "" {
				lines = append(lines, "")
			}
			lines = append(lines, categoryHeading(region.Category))
			lastCategory = region.Category
		}
		prefix := "  "
		if i == r.regionIndex {
			prefix = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%s %s  (%d/%d)",
			prefix, region.Emoji, region.Name, region.LearnedCount, region.TotalCards))
	}
	if len(lines) == 0 {
		lines = []string{"No hay regiones cargadas."}
	}
	left := r.drawPanel("Mapa", lines, min(46, max(30, w/2)), max(8, h))

	detail := r.mapDetailText()
	right := r.drawPanel("Región", strings.Split(strings.TrimSuffix(detail, "\n"), "\n"),
		max(24, w-lipgloss.Width(left)), max(8, h))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func categoryHeading(category string) string {
	emoji := map[string]string{
		"Fundamentos":  "🌟",
		"Situaciones":  "🎯",
		"Conversación": "💬",
		"Gramática":    "📚",
	}[category]
	if emoji == "" {
		return category
	}
	return emoji + " " + category
}

func (r *Root) mapDetailText() string {
	if r.regionIndex < 0 || r.regionIndex >= len(r.regions) {
		return "Selecciona una región con ↑/↓ y entra con Enter."
	}
	region := r.regions[r.regionIndex]
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", region.Emoji, region.Name)
	fmt.Fprintf(&b, "Categoría: %s\n", region.Category)
	fmt.Fprintf(&b, "Tarjetas: %d\n", region.TotalCards)
	fmt.Fprintf(&b, "Aprendidas: %d\n\n", region.LearnedCount)
	b.WriteString("Enter · empezar a estudiar")
	return b.String()
}

func (r *Root) renderGame(w, h int) string {
	modeTabs := r.modeTabsLine()
	var body string
	switch modeName(r.study.Mode) {
	case modeQuiz:
		body = r.renderQuiz(w)
	case modeCR:
		body = r.renderCR(w)
	default:
		body = r.renderFlashcard(w)
	}
	content := modeTabs + "\n\n" + body
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, content)
}

func (r *Root) modeTabsLine() string {
	labels := []struct {
		mode  modeName
		label string
	}{
		{modeFlashcard, "F5 Flashcards"},
		{modeQuiz, "F6 Quiz"},
		{modeCR, "F7 Llamada y respuesta"},
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if modeName(r.study.Mode) == l.mode || (r.study.Mode == "" && l.mode == modeFlashcard) {
			parts[i] = r.theme.Accent.Render("[" + l.label + "]")
		} else {
			parts[i] = r.theme.Muted.Render(" " + l.label + " ")
		}
	}
	region := strings.TrimSpace(r.study.RegionEmoji + " " + r.study.RegionName)
	line := strings.Join(parts, " ")
	if region != "" {
		line = region + "   " + line
	}
	return line
}

func (r *Root) cardWidth(w int) int {
	return min(64, max(36, w-24))
}

func (r *Root) renderFlashcard(w int) string {
	fc := r.study.Flashcard
	cardW := r.cardWidth(w)

	if fc.Total == 0 {
		return r.theme.Muted.Render("No hay flashcards disponibles.")
	}
	if fc.Complete {
		body := r.theme.Pass.Render("¡Completado!") + "\n\n" +
			r.theme.Muted.Render("r · Empezar de nuevo")
		return r.cardBox(cardW, body)
	}

	var face string
	showFront := r.flipPos < 0.5
	if r.motionLevel == "off" {
		showFront = !fc.Flipped
	}
	if showFront {
		face = r.renderAnnotated(fc.Front)
		if fc.Context != "" {
			face += "\n\n" + r.theme.Muted.Render(trimForWidth(fc.Context, cardW-6))
		}
	} else {
		face = r.renderAnnotated(fc.Back)
		if fc.Grammar != "" {
			face += "\n\n" + r.theme.Muted.Render("g · nota de gramática")
		}
	}

	// Mid-flip the card narrows, like a plaque turning on its axis.
	animW := cardW
	if r.motionLevel != "off" {
		scale := abs(1 - 2*r.flipPos)
		animW = max(12, int(float64(cardW)*maxFloat(scale, 0.15)))
	}

	status := fmt.Sprintf("%d / %d", fc.Index+1, fc.Total)
	if fc.Learned {
		status += "  " + r.theme.Pass.Render("✓ aprendida")
	}
	footer := r.theme.Muted.Render("espacio · voltear   ←/→ · navegar   l · aprendida   s · escuchar")

	return r.cardBox(animW, face) + "\n" + status + "\n" + footer
}

func (r *Root) renderQuiz(w int) string {
	q := r.study.Quiz
	cardW := r.cardWidth(w)

	if q.Total == 0 {
		return r.theme.Muted.Render("No hay flashcards disponibles.")
	}
	if q.Complete {
		body := r.theme.Pass.Render("¡Quiz completado!") + "\n" +
			fmt.Sprintf("Puntuación: %d / %d", q.Score, q.Total) + "\n\n" +
			r.theme.Muted.Render("r · Intentar de nuevo")
		return r.cardBox(cardW, body)
	}

	var b strings.Builder
	b.WriteString(r.renderAnnotated(q.Prompt))
	b.WriteString("\n\n")
	answered := q.ChosenIndex >= 0
	for i, option := range q.Options {
		prefix := "  "
		if !answered && i == r.quizCursor {
			prefix = "> "
		}
		line := prefix + option
		switch {
		case answered && i == q.CorrectIndex:
			line = r.theme.Pass.Render(prefix + "✓ " + option)
		case answered && i == q.ChosenIndex && i != q.CorrectIndex:
			line = r.theme.Fail.Render(prefix + "✗ " + option)
		case !answered && i == r.quizCursor:
			line = r.theme.Accent.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if q.Feedback != "" {
		b.WriteString("\n")
		if q.FeedbackGood {
			b.WriteString(r.theme.Pass.Render(q.Feedback))
		} else {
			b.WriteString(r.theme.Fail.Render(q.Feedback))
		}
	}

	status := fmt.Sprintf("%d / %d   Puntuación: %d", min(q.Index+1, q.Total), q.Total, q.Score)
	footer := r.theme.Muted.Render("↑/↓ · elegir   enter · responder   tab · palabra")
	return r.cardBox(cardW, strings.TrimSuffix(b.String(), "\n")) + "\n" + status + "\n" + footer
}

func (r *Root) renderCR(w int) string {
	cr := r.study.CR
	cardW := r.cardWidth(w)

	if cr.Total == 0 {
		return r.theme.Muted.Render("No hay flashcards disponibles.")
	}
	if cr.Complete {
		body := r.theme.Pass.Render("¡Completado!") + "\n\n" +
			r.theme.Muted.Render("r · Empezar de nuevo")
		return r.cardBox(cardW, body)
	}

	var b strings.Builder
	b.WriteString(r.renderAnnotated(cr.Prompt))
	b.WriteString("\n\n")
	r.input.SetWidth(max(20, cardW-8))
	b.WriteString(r.input.View())
	b.WriteString("\n")

	if cr.Feedback != "" {
		b.WriteString("\n")
		if cr.FeedbackGood {
			b.WriteString(r.theme.Pass.Render(cr.Feedback))
		} else {
			b.WriteString(r.theme.Fail.Render(cr.Feedback))
		}
		b.WriteString("\n")
	}
	if cr.CorrectAnswer != "" {
		label := "Respuesta correcta:"
		if cr.FeedbackGood {
			label = "Respuesta ideal:"
		}
		fmt.Fprintf(&b, "%s %s\n", r.theme.Muted.Render(label), cr.CorrectAnswer)
	}
	if cr.Attempt != "" {
		if cr.Locked {
			fmt.Fprintf(&b, "%s %s (similitud: %d%%)\n",
				r.theme.Muted.Render("Tu respuesta:"), cr.Attempt, cr.Similarity)
		} else {
			fmt.Fprintf(&b, "%s %s\n", r.theme.Muted.Render("Tu respuesta:"), cr.Attempt)
		}
	}
	if cr.Locked {
		b.WriteString("\n")
		b.WriteString(r.theme.Muted.Render("c · Intentar de nuevo   enter · Continuar →"))
	}

	status := fmt.Sprintf("%d / %d", min(cr.Index+1, cr.Total), cr.Total)
	footer := r.theme.Muted.Render("enter · comprobar   esc · borrar")
	return r.cardBox(cardW, strings.TrimSuffix(b.String(), "\n")) + "\n" + status + "\n" + footer
}

func (r *Root) renderProgress(w, h int) string {
	p := r.progressState
	var b strings.Builder

	if p.ShowXP {
		fmt.Fprintf(&b, "Nivel %d\n", p.Level)
		if p.ShowBars {
			bar := r.xpBar
			bar.SetWidth(min(40, max(16, w/3)))
			b.WriteString(bar.ViewAs(float64(p.LevelProgress) / 100.0))
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d XP total · %d/100 para el siguiente nivel\n\n", p.XP, p.LevelProgress)
	}

	b.WriteString(r.theme.PanelTitle.Render("Regiones"))
	b.WriteString("\n")
	for _, region := range p.Regions {
		fmt.Fprintf(&b, "%s %-24s %d/%d",
			region.Emoji, trimForWidth(region.Name, 24), region.LearnedCount, region.TotalCards)
		if p.ShowBars && region.TotalCards > 0 {
			bar := r.xpBar
			bar.SetWidth(20)
			b.WriteString("  " + bar.ViewAs(float64(region.LearnedCount)/float64(region.TotalCards)))
		}
		b.WriteString("\n")
	}

	content := strings.TrimSuffix(b.String(), "\n")
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, content)
}

// renderAnnotated draws annotated text, underlining tappable words and
// highlighting the one under the word cursor.
func (r *Root) renderAnnotated(text annotate.Annotated) string {
	var b strings.Builder
	wordIdx := 0
	for _, span := range text {
		if !span.Interactive {
			b.WriteString(span.Text)
			continue
		}
		if wordIdx == r.wordCursor {
			b.WriteString(r.theme.WordActive.Render(span.Text))
		} else {
			b.WriteString(r.theme.Word.Render(span.Text))
		}
		wordIdx++
	}
	return b.String()
}

func (r *Root) cardBox(width int, content string) string {
	return r.theme.Overlay.Width(max(12, width)).Render(content)
}

func (r *Root) renderOverlay() string {
	switch r.topOverlay() {
	case "settings":
		return r.drawPanel("Ajustes", r.settingsLines(), min(56, r.cols-4), min(len(settingRows)+6, r.rows-2))
	case "word":
		lines := []string{
			r.wordText,
			"",
		}
		lines = append(lines, splitLines(wrapText(r.wordExplain, 40))...)
		lines = append(lines, "", "s · escuchar   esc · cerrar")
		return r.drawPanel("Palabra", lines, min(48, r.cols-4), min(len(lines)+2, r.rows-2))
	case "detail":
		text := r.detailText()
		lines := splitLines(text)
		return r.drawPanel("Notas", lines, min(64, r.cols-4), min(len(lines)+2, r.rows-2))
	case "tip":
		lines := []string{
			"Consejo: pulsa espacio para voltear la",
			"tarjeta y tab para explorar las palabras",
			"marcadas.",
			"",
			"Pulsa cualquier tecla para continuar.",
		}
		return r.drawPanel("Flashcards", lines, min(48, r.cols-4), min(9, r.rows-2))
	}
	return ""
}

func (r *Root) settingsLines() []string {
	lines := make([]string, 0, len(settingRows)+3)
	for i, row := range settingRows {
		prefix := "  "
		if i == r.settingsIndex {
			prefix = "> "
		}
		value := r.settingsDraft[row.key]
		display := value
		if row.kind == "bool" {
			if value == "true" {
				display = "[x]"
			} else {
				display = "[ ]"
			}
		}
		lines = append(lines, fmt.Sprintf("%s%-28s %s", prefix, row.label, display))
	}
	lines = append(lines, "", "enter · guardar   d · restaurar   esc · cancelar")
	return lines
}

func (r *Root) detailText() string {
	fc := r.study.Flashcard
	var parts []string
	if strings.TrimSpace(fc.Grammar) != "" {
		parts = append(parts, "**Gramática**\n\n"+fc.Grammar)
	}
	if strings.TrimSpace(fc.Context) != "" {
		parts = append(parts, "**Contexto**\n\n"+fc.Context)
	}
	if len(fc.Breakdown) > 0 {
		keys := make([]string, 0, len(fc.Breakdown))
		for k := range fc.Breakdown {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var d strings.Builder
		d.WriteString("**Desglose**\n")
		for _, k := range keys {
			fmt.Fprintf(&d, "\n- %s: %s", k, fc.Breakdown[k])
		}
		parts = append(parts, d.String())
	}
	text := strings.Join(parts, "\n\n")
	if r.markdown != nil {
		if rendered, err := r.markdown.Render(text); err == nil {
			return strings.TrimSpace(rendered)
		}
	}
	return text
}

func (r *Root) drawPanel(title string, lines []string, width, height int) string {
	width = max(4, width)
	height = max(3, height)
	innerW := width - 2
	innerH := height - 2

	h := "─"
	v := "│"
	tl := "┌"
	tr := "┐"
	bl := "└"
	br := "┘"
	if r.ascii {
		h = "-"
		v = "|"
		tl, tr, bl, br = "+", "+", "+", "+"
	}

	top := tl + strings.Repeat(h, innerW) + tr
	if title != "" && innerW > 2 {
		t := " " + title + " "
		runes := []rune(top)
		start := 1
		for i, ch := range []rune(t) {
			pos := start + i
			if pos >= len(runes)-1 {
				break
			}
			runes[pos] = ch
		}
		top = string(runes)
	}

	out := make([]string, 0, height)
	out = append(out, r.theme.PanelBorder.Render(top))
	for row := 0; row < innerH; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		line = padRune(line, innerW)
		out = append(out, r.theme.PanelBorder.Render(v)+r.theme.PanelBody.Render(line)+r.theme.PanelBorder.Render(v))
	}
	out = append(out, r.theme.PanelBorder.Render(bl+strings.Repeat(h, innerW)+br))
	return strings.Join(out, "\n")
}

func (r *Root) animateIfNeeded() tea.Cmd {
	target := 0.0
	if r.study.Flashcard.Flipped {
		target = 1.0
	}
	if r.shouldAnimate(target) {
		return animateTickCmd()
	}
	return nil
}

func (r *Root) shouldAnimate(target float64) bool {
	if r.motionLevel == "off" {
		return false
	}
	if target > 0 {
		return r.flipPos < 0.999 || abs(r.flipVel) > 0.001
	}
	return r.flipPos > 0.001 || abs(r.flipVel) > 0.001
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func animateTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return animateMsg(t) })
}

func spinnerTickCmd(model spinner.Model) tea.Cmd {
	return func() tea.Msg {
		return model.Tick()
	}
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		i = n - 1
	}
	if i >= n {
		i = 0
	}
	return i
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func parseFloatOr(s string, fallback float64) float64 {
	var v float64
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%g", &v); err != nil {
		return fallback
	}
	return v
}

func padRune(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(s, "\t", "    "))
	if len(r) > width {
		r = r[:width]
	}
	if len(r) < width {
		r = append(r, []rune(strings.Repeat(" ", width-len(r)))...)
	}
	return string(r)
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		wl := len([]rune(word))
		if lineLen > 0 && lineLen+1+wl > width {
			b.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += wl
	}
	return b.String()
}

func composeOverlay(base, overlay string, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return base
	}
	base = ansi.Strip(base)
	overlay = ansi.Strip(overlay)
	baseLines := strings.Split(base, "\n")
	if len(baseLines) < rows {
		pad := make([]string, rows-len(baseLines))
		baseLines = append(baseLines, pad...)
	}
	for i := 0; i < rows; i++ {
		baseLines[i] = padRune(baseLines[i], cols)
	}

	overlayLines := strings.Split(strings.TrimRight(overlay, "\n"), "\n")
	if len(overlayLines) == 0 {
		return strings.Join(baseLines[:rows], "\n")
	}
	ow := 1
	for _, line := range overlayLines {
		lw := len([]rune(line))
		if lw > ow {
			ow = lw
		}
	}
	if ow > cols {
		ow = cols
	}
	oh := len(overlayLines)
	if oh > rows {
		oh = rows
	}
	startRow := (rows - oh) / 2
	startCol := (cols - ow) / 2
	if startCol < 0 {
		startCol = 0
	}

	for i := 0; i < oh; i++ {
		row := startRow + i
		if row < 0 || row >= rows {
			continue
		}
		dst := []rune(baseLines[row])
		src := []rune(overlayLines[i])
		if len(src) > ow {
			src = src[:ow]
		}
		for j := 0; j < ow && startCol+j < len(dst); j++ {
			dst[startCol+j] = ' '
		}
		for j := 0; j < len(src) && startCol+j < len(dst); j++ {
			dst[startCol+j] = src[j]
		}
		baseLines[row] = string(dst)
	}
	return strings.Join(baseLines[:rows], "\n")
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(ansi.Strip(s), "\n", " "))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func normalizeStyleVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "cozy_clean", "retro_terminal", "modern_arcade":
		return strings.TrimSpace(v)
	default:
		return "cozy_clean"
	}
}

func normalizeMotionLevel(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "reduced", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}

func (r *Root) recordInputEvent(event string) {
	r.lastInputEvent = trimForWidth(strings.TrimSpace(event), 160)
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
	}

	message := fmt.Sprintf("%v", recovered)
	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered",
		"where", where,
		"panic", message,
		"messageType", msgType,
		"tab", r.tab,
		"layout", r.layout,
		"cols", r.cols,
		"rows", r.rows,
		"overlay", r.topOverlay(),
		"last_input", r.lastInputEvent,
		"stack", string(debug.Stack()),
	)
}

var _ tea.Model = (*Root)(nil)
var _ View = (*Root)(nil)
