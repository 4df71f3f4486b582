package header

import (
	"fmt"
	"strings"

	"instagram_content_ai/pkg/ui/components/utils"
	"instagram_content_ai/pkg/ui/styles"
	"instagram_content_ai/pkg/version"

	"github.com/mattn/go-runewidth"
)

// Title is the heading shown above the form.
const Title = "📸 Instagram Content AI Generator"

var shortcuts = []struct{ key, desc string }{
	{"Tab", "Next field"},
	{"Ctrl+G", "Generate content"},
	{"c / h", "Copy caption / hashtags"},
	{"Ctrl+C", "Quit"},
}

// View returns the header box sized to width.
func View(width int) string {
	boxWidth := width - 2
	if boxWidth > 60 {
		boxWidth = 60
	}
	if boxWidth < 20 {
		boxWidth = 20
	}

	makeLine := func(content string, visualWidth int) string {
		pad := boxWidth - visualWidth
		if pad < 0 {
			pad = 0
		}
		return styles.HeaderBorderStyle.Render("│") + content + strings.Repeat(" ", pad) + styles.HeaderBorderStyle.Render("│")
	}

	var lines []string
	lines = append(lines, styles.HeaderBorderStyle.Render("╭"+strings.Repeat("─", boxWidth)+"╮"))

	title := utils.TruncateToWidth(Title, boxWidth-2)
	titleWidth := runewidth.StringWidth(title)
	titlePad := (boxWidth - titleWidth) / 2
	lines = append(lines, makeLine(strings.Repeat(" ", titlePad)+styles.HeaderTitleStyle.Render(title), titlePad+titleWidth))

	var hints []string
	hintsWidth := 0
	for _, s := range shortcuts {
		hint := fmt.Sprintf("%s %s", s.key, s.desc)
		w := runewidth.StringWidth(hint) + 3
		if hintsWidth+w > boxWidth-2 {
			break
		}
		hints = append(hints, styles.HeaderKeyStyle.Render(s.key)+" "+styles.TextMutedStyle.Render(s.desc))
		hintsWidth += w
	}
	if len(hints) > 0 {
		lines = append(lines, makeLine("  "+strings.Join(hints, " • "), hintsWidth-3+2))
	}

	versionText := utils.TruncateToWidth(version.Name+" "+version.Summary(), boxWidth-4)
	versionWidth := runewidth.StringWidth(versionText)
	versionPad := (boxWidth - versionWidth) / 2
	lines = append(lines, makeLine(strings.Repeat(" ", versionPad)+styles.HeaderVersionStyle.Render(versionText), versionPad+versionWidth))

	lines = append(lines, styles.HeaderBorderStyle.Render("╰"+strings.Repeat("─", boxWidth)+"╯"))
	return strings.Join(lines, "\n")
}
