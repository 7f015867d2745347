package tui

import (
	"strings"

	"github.com/theirongolddev/valuate/internal/advisor"
	"github.com/theirongolddev/valuate/internal/tui/components"
	"github.com/theirongolddev/valuate/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxExchanges = 20

type exchange struct {
	question string
	answer   string
}

// advisorState tracks the advisor tab: the question input and past replies,
// newest first.
type advisorState struct {
	input   textinput.Model
	typing  bool
	history []exchange
}

func newAdvisorState() advisorState {
	ti := textinput.New()
	ti.Placeholder = "How can I raise my valuation?"
	ti.CharLimit = 280
	ti.Width = 60
	return advisorState{input: ti}
}

func (s *advisorState) push(question, answer string) {
	s.history = append([]exchange{{question: question, answer: answer}}, s.history...)
	if len(s.history) > maxExchanges {
		s.history = s.history[:maxExchanges]
	}
}

func (a App) advisorStartTyping() (tea.Model, tea.Cmd) {
	a.advisor.typing = true
	a.advisor.input.Reset()
	cmd := a.advisor.input.Focus()
	return a, cmd
}

func (a App) updateAdvisorInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		q := strings.TrimSpace(a.advisor.input.Value())
		if reply, ok := advisor.Ask(q); ok {
			a.advisor.push(q, reply)
		}
		a.advisor.typing = false
		a.advisor.input.Blur()
		a.advisor.input.Reset()
		return a, nil
	case "esc":
		a.advisor.typing = false
		a.advisor.input.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.advisor.input, cmd = a.advisor.input.Update(msg)
	return a, cmd
}

func (a App) renderAdvisorTab(cw int) string {
	t := theme.Active

	introStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	questionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	answerStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)

	var ask strings.Builder
	ask.WriteString(introStyle.Width(innerW).Render(advisor.Intro))
	ask.WriteString("\n\n")
	if a.advisor.typing {
		ask.WriteString(a.advisor.input.View())
		ask.WriteString("\n\n")
		ask.WriteString(hintStyle.Render("[Enter] ask  [Esc] cancel"))
	} else {
		ask.WriteString(hintStyle.Render("[/] ask a question  [b] boost my valuation"))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("AI Startup Advisor", ask.String(), cw))
	b.WriteString("\n")

	var hist strings.Builder
	if len(a.advisor.history) == 0 {
		hist.WriteString(hintStyle.Render("No questions yet."))
	}
	for i, ex := range a.advisor.history {
		if i > 0 {
			hist.WriteString("\n\n")
		}
		hist.WriteString(questionStyle.Width(innerW).Render("› " + ex.question))
		hist.WriteString("\n")
		hist.WriteString(answerStyle.Width(innerW).Render("  " + ex.answer))
	}
	b.WriteString(components.ContentCard("Conversation", hist.String(), cw))
	return b.String()
}
