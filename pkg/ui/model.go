package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"instagram_content_ai/pkg/content"
	"instagram_content_ai/pkg/ui/components/header"
	"instagram_content_ai/pkg/ui/components/result"
	"instagram_content_ai/pkg/ui/styles"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// User-facing messages.
const (
	EmptyTopicWarning = "Please enter something in the text box."
	GeneratingText    = "Generating caption and hashtags..."
	SuccessBanner     = "Here's your AI-generated Instagram content:"

	topicLabel    = "Enter your idea or topic:"
	imageLabel    = "Optional: image to inspire the content (jpg, jpeg, png)"
	buttonLabel   = "Generate Content"
	captionTitle  = "📸 Caption:"
	hashtagsTitle = "🔥 Hashtags:"

	defaultWidth = 80
	topicHeight  = 6
	resultLines  = 5
	minFormWidth = 30
	maxFormWidth = 100
)

// Generator produces a caption and hashtags for a request.
type Generator interface {
	Generate(ctx context.Context, req content.Request) (content.Result, error)
}

// Copier puts text on the clipboard.
type Copier interface {
	Copy(text string) error
}

type focusArea int

const (
	focusTopic focusArea = iota
	focusImage
	focusGenerate
	focusCaption
	focusHashtags
)

// generateDoneMsg carries the outcome of one trigger.
type generateDoneMsg struct {
	result content.Result
	err    error
}

// copyDoneMsg reports a clipboard copy.
type copyDoneMsg struct {
	label string
	err   error
}

// Model is the Bubble Tea form: topic, optional image, trigger and results.
type Model struct {
	ctx       context.Context
	generator Generator
	copier    Copier
	loadImage func(path string) (*content.Image, error)

	topic     textarea.Model
	imagePath textinput.Model
	spinner   spinner.Model
	caption   *result.ResultPanel
	hashtags  *result.ResultPanel

	focus      focusArea
	generating bool
	hasResult  bool

	image        *content.Image
	checkedPath  string
	imageWarning string
	warning      string
	errMsg       string
	status       string
	statusErr    bool

	width  int
	height int
}

// NewModel creates the form. ctx bounds every generation request.
func NewModel(ctx context.Context, generator Generator, copier Copier) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	topic := textarea.New()
	topic.Placeholder = "a rainy day in Tokyo"
	topic.ShowLineNumbers = false
	// Topics go to the model verbatim, so length is never capped.
	topic.CharLimit = 0
	topic.SetHeight(topicHeight)

	imagePath := textinput.New()
	imagePath.Placeholder = "/path/to/photo.jpg"

	m := Model{
		ctx:       ctx,
		generator: generator,
		copier:    copier,
		loadImage: content.LoadImage,
		topic:     topic,
		imagePath: imagePath,
		spinner:   spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styles.TitleStyle)),
		caption:   result.NewResultPanel(captionTitle, "c"),
		hashtags:  result.NewResultPanel(hashtagsTitle, "h"),
		focus:     focusTopic,
		width:     defaultWidth,
	}
	m.topic.Focus()
	m.resize()
	return m
}

// Init starts the cursor blink of the focused field.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case generateDoneMsg:
		return m.finishGenerate(msg), nil

	case copyDoneMsg:
		if msg.err != nil {
			slog.Warn("copy_failed", "target", msg.label, "error", msg.err)
			m.status = "Failed to copy " + strings.ToLower(msg.label)
			m.statusErr = true
		} else {
			m.status = msg.label + " copied!"
			m.statusErr = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+g":
		return m.trigger()
	case "tab":
		return m.moveFocus(1)
	case "shift+tab":
		return m.moveFocus(-1)
	}

	// Input is blocked while a request is in flight.
	if m.generating {
		return m, nil
	}

	switch m.focus {
	case focusImage:
		if msg.String() == "enter" {
			m.checkImage()
			return m.moveFocus(1)
		}
	case focusGenerate:
		switch msg.String() {
		case "enter", "space":
			return m.trigger()
		case "esc", "q":
			return m, tea.Quit
		}
		return m, nil
	case focusCaption, focusHashtags:
		switch msg.String() {
		case "c":
			return m, m.copyCmd("Caption", m.caption.Content())
		case "h":
			return m, m.copyCmd("Hashtags", m.hashtags.Content())
		case "esc", "q":
			return m, tea.Quit
		}
		m.focusedPanel().Update(msg)
		return m, nil
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused text widget.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.generating {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusTopic:
		m.topic, cmd = m.topic.Update(msg)
		if m.warning != "" && strings.TrimSpace(m.topic.Value()) != "" {
			m.warning = ""
		}
	case focusImage:
		m.imagePath, cmd = m.imagePath.Update(msg)
	}
	return m, cmd
}

func (m Model) focusOrder() []focusArea {
	order := []focusArea{focusTopic, focusImage, focusGenerate}
	if m.hasResult {
		order = append(order, focusCaption, focusHashtags)
	}
	return order
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	order := m.focusOrder()
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	cmd := m.setFocus(order[(idx+delta+len(order))%len(order)])
	return m, cmd
}

func (m *Model) setFocus(next focusArea) tea.Cmd {
	if m.focus == focusImage && next != focusImage {
		m.checkImage()
	}

	m.topic.Blur()
	m.imagePath.Blur()
	m.caption.Blur()
	m.hashtags.Blur()
	m.focus = next

	switch next {
	case focusTopic:
		return m.topic.Focus()
	case focusImage:
		return m.imagePath.Focus()
	case focusCaption:
		m.caption.Focus()
	case focusHashtags:
		m.hashtags.Focus()
	}
	return nil
}

func (m *Model) focusedPanel() *result.ResultPanel {
	if m.focus == focusHashtags {
		return m.hashtags
	}
	return m.caption
}

// checkImage validates the image path field. A bad image is dropped with a
// warning and never blocks the topic flow.
func (m *Model) checkImage() {
	path := strings.TrimSpace(m.imagePath.Value())
	if path == m.checkedPath {
		return
	}
	m.checkedPath = path
	if path == "" {
		m.image = nil
		m.imageWarning = ""
		return
	}

	img, err := m.loadImage(path)
	if err != nil {
		slog.Warn("image_rejected", "error", err)
		m.image = nil
		m.imageWarning = err.Error()
		return
	}
	slog.Debug("image_accepted", "name", img.Name, "format", img.Format)
	m.image = img
	m.imageWarning = ""
}

// trigger starts a generation unless one is already running or the topic is blank.
func (m Model) trigger() (tea.Model, tea.Cmd) {
	if m.generating {
		return m, nil
	}

	m.status = ""
	m.errMsg = ""
	m.checkImage()

	req := content.Request{Topic: m.topic.Value(), Image: m.image}
	if err := content.ValidateTopic(req.Topic); err != nil {
		m.warning = EmptyTopicWarning
		return m, nil
	}
	m.warning = ""

	// The previous result is discarded on every new trigger.
	m.hasResult = false
	m.caption.Clear()
	m.hashtags.Clear()
	if m.focus == focusCaption || m.focus == focusHashtags {
		m.setFocus(focusGenerate)
	}

	m.generating = true
	return m, tea.Batch(m.spinner.Tick, m.generateCmd(req))
}

func (m Model) generateCmd(req content.Request) tea.Cmd {
	ctx := m.ctx
	generator := m.generator
	return func() tea.Msg {
		res, err := generator.Generate(ctx, req)
		return generateDoneMsg{result: res, err: err}
	}
}

func (m Model) finishGenerate(msg generateDoneMsg) Model {
	m.generating = false
	if msg.err != nil {
		if errors.Is(msg.err, content.ErrEmptyTopic) {
			m.warning = EmptyTopicWarning
			return m
		}
		m.errMsg = "Error: " + msg.err.Error()
		return m
	}

	m.hasResult = true
	m.caption.SetContent(msg.result.Caption)
	m.hashtags.SetContent(msg.result.Hashtags)
	return m
}

func (m Model) copyCmd(label, text string) tea.Cmd {
	copier := m.copier
	return func() tea.Msg {
		if copier == nil {
			return copyDoneMsg{label: label, err: errors.New("clipboard unavailable")}
		}
		return copyDoneMsg{label: label, err: copier.Copy(text)}
	}
}

func (m *Model) formWidth() int {
	w := m.width - 2
	if w > maxFormWidth {
		w = maxFormWidth
	}
	if w < minFormWidth {
		w = minFormWidth
	}
	return w
}

func (m *Model) resize() {
	w := m.formWidth()
	m.topic.SetWidth(w - 2)
	m.imagePath.SetWidth(w - 4)
	m.caption.SetSize(w, resultLines)
	m.hashtags.SetSize(w, resultLines)
}

// View renders the form
func (m Model) View() tea.View {
	w := m.formWidth()
	var sections []string

	sections = append(sections, header.View(w+2), "")

	sections = append(sections, m.label(imageLabel, m.focus == focusImage))
	sections = append(sections, m.imagePath.View())
	switch {
	case m.imageWarning != "":
		sections = append(sections, styles.WarningStyle.Render("⚠ "+m.imageWarning))
	case m.image != nil:
		sections = append(sections, styles.TextMutedStyle.Render("🖼  "+m.image.Describe()))
	}
	sections = append(sections, "")

	sections = append(sections, m.label(topicLabel, m.focus == focusTopic))
	sections = append(sections, m.topic.View(), "")

	button := styles.ButtonStyle
	if m.focus == focusGenerate {
		button = styles.ButtonFocusedStyle
	}
	sections = append(sections, button.Render(buttonLabel))

	switch {
	case m.generating:
		sections = append(sections, m.spinner.View()+" "+styles.TextMutedStyle.Render(GeneratingText))
	case m.warning != "":
		sections = append(sections, styles.WarningStyle.Render("⚠ "+m.warning))
	case m.errMsg != "":
		sections = append(sections, styles.ErrorStyle.Render(m.errMsg))
	}

	if m.hasResult {
		sections = append(sections, "", styles.SuccessStyle.Render("✅ "+SuccessBanner))
		sections = append(sections, m.caption.View(), m.hashtags.View())
	}

	if m.status != "" {
		style := styles.SuccessStyle
		prefix := "✅ "
		if m.statusErr {
			style = styles.ErrorStyle
			prefix = "❌ "
		}
		sections = append(sections, style.Render(prefix+m.status))
	}

	sections = append(sections, styles.FooterStyle.Render("Tab Next • Ctrl+G Generate • Ctrl+C Quit"))

	v := tea.NewView(lipgloss.JoinVertical(lipgloss.Left, sections...))
	v.AltScreen = true
	return v
}

func (m Model) label(text string, focused bool) string {
	if focused {
		return styles.TitleStyle.Render("› " + text)
	}
	return styles.LabelStyle.Render("  " + text)
}

// Accessors used by the CLI and tests.

// Generating reports whether a request is in flight.
func (m Model) Generating() bool { return m.generating }

// Result returns the last displayed result, if any.
func (m Model) Result() (content.Result, bool) {
	if !m.hasResult {
		return content.Result{}, false
	}
	return content.Result{Caption: m.caption.Content(), Hashtags: m.hashtags.Content()}, true
}
