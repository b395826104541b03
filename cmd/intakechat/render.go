package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/m04kA/realty-intake-service/internal/chatbot"
	"github.com/m04kA/realty-intake-service/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("4")).
			Padding(0, 1)
	botStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true)
	optionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).PaddingLeft(2)
	formStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// renderMessage реплика бота с вариантами ответа под ней
func renderMessage(m chatbot.Message) string {
	if m.Sender == domain.SenderUser {
		return userStyle.Render("You: " + m.Text)
	}

	var b strings.Builder
	b.WriteString(botStyle.Render(botName + ": " + m.Text))
	for i, o := range m.Options {
		b.WriteString("\n")
		b.WriteString(optionStyle.Render(fmt.Sprintf("%d. %s", i+1, o)))
	}
	return b.String()
}

func renderNotice(n chatbot.Notify) string {
	if n.Level == chatbot.NotifyError {
		return errorStyle.Render(n.Text)
	}
	return successStyle.Render(n.Text)
}
