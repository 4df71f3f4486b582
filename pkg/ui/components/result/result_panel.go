package result

import (
	"strings"

	"instagram_content_ai/pkg/ui/components/utils"
	"instagram_content_ai/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
)

const (
	minVisibleLines = 3
	// border + horizontal padding
	frameWidth = 4
)

// ResultPanel displays one generated text read-only, wrapped to its width.
type ResultPanel struct {
	title    string
	copyKey  string
	content  string
	focused  bool
	width    int
	visible  int
	scrollY  int
	lines    []string
	wrappedW int
}

// NewResultPanel creates a panel titled title whose footer advertises copyKey.
func NewResultPanel(title, copyKey string) *ResultPanel {
	return &ResultPanel{
		title:   title,
		copyKey: copyKey,
		visible: minVisibleLines,
	}
}

// SetContent replaces the panel text and scrolls back to the top.
func (rp *ResultPanel) SetContent(content string) {
	rp.content = content
	rp.scrollY = 0
	rp.rewrap()
}

// Content returns the text exactly as set.
func (rp *ResultPanel) Content() string {
	return rp.content
}

// Clear drops the current text.
func (rp *ResultPanel) Clear() {
	rp.SetContent("")
}

// SetSize sets the outer width and the number of visible text lines.
func (rp *ResultPanel) SetSize(width, visibleLines int) {
	rp.width = width
	if visibleLines < minVisibleLines {
		visibleLines = minVisibleLines
	}
	rp.visible = visibleLines
	rp.rewrap()
	rp.clampScroll()
}

func (rp *ResultPanel) Focus()        { rp.focused = true }
func (rp *ResultPanel) Blur()         { rp.focused = false }
func (rp *ResultPanel) Focused() bool { return rp.focused }

// Lines returns the wrapped lines.
func (rp *ResultPanel) Lines() []string {
	return rp.lines
}

// ScrollY returns the index of the first visible line.
func (rp *ResultPanel) ScrollY() int {
	return rp.scrollY
}

func (rp *ResultPanel) contentWidth() int {
	w := rp.width - frameWidth
	if w < 1 {
		w = 1
	}
	return w
}

func (rp *ResultPanel) rewrap() {
	rp.wrappedW = rp.contentWidth()
	rp.lines = utils.WrapLines(rp.content, rp.wrappedW)
}

func (rp *ResultPanel) maxScroll() int {
	m := len(rp.lines) - rp.visible
	if m < 0 {
		return 0
	}
	return m
}

func (rp *ResultPanel) clampScroll() {
	if rp.scrollY > rp.maxScroll() {
		rp.scrollY = rp.maxScroll()
	}
	if rp.scrollY < 0 {
		rp.scrollY = 0
	}
}

// Update handles scrolling keys. The text itself is never edited.
func (rp *ResultPanel) Update(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		rp.scrollY--
	case "down", "j":
		rp.scrollY++
	case "pgup":
		rp.scrollY -= rp.visible
	case "pgdown":
		rp.scrollY += rp.visible
	case "home":
		rp.scrollY = 0
	case "end":
		rp.scrollY = rp.maxScroll()
	}
	rp.clampScroll()
	return nil
}

// View renders the panel
func (rp *ResultPanel) View() string {
	contentWidth := rp.contentWidth()

	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render(utils.TruncateToWidth(rp.title, contentWidth)))
	sb.WriteString("\n")

	end := rp.scrollY + rp.visible
	if end > len(rp.lines) {
		end = len(rp.lines)
	}
	shown := 0
	for i := rp.scrollY; i < end; i++ {
		sb.WriteString(styles.TextStyle.Render(utils.PadStyled(rp.lines[i], contentWidth)))
		sb.WriteString("\n")
		shown++
	}
	for ; shown < rp.visible; shown++ {
		sb.WriteString("\n")
	}

	var footer []string
	if len(rp.lines) > rp.visible {
		footer = append(footer, "↑↓ Scroll")
	}
	footer = append(footer, rp.copyKey+" Copy")
	sb.WriteString(styles.FooterStyle.Render(strings.Join(footer, " • ")))

	box := styles.BoxStyleMuted
	if rp.focused {
		box = styles.BoxStyle
	}
	return box.Width(rp.width).Render(sb.String())
}
