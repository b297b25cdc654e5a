package bot

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"devtracker/internal/model"
	"devtracker/internal/service"
)

const (
	cbCompletePrefix = "complete:"
	cbDeletePrefix   = "delete:"
)

const (
	btnConfirm    = "✅ Confirm"
	btnCancel     = "↩️ Cancel"
	iconDefault   = "🟢"
	iconDue       = "⏳"
	iconOverdue   = "⚠️"
	iconCompleted = "✔️"
)

var errUsage = errors.New("bad arguments")

// taskList renders the open daily tasks with one inline row per task.
func taskList(tasks []model.Task, now time.Time) (string, [][]tgbotapi.InlineKeyboardButton) {
	var builder strings.Builder
	builder.WriteString("📋 <b>Daily tasks</b>\n")

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, task := range tasks {
		builder.WriteString(formatTask(i+1, task, now))
		if task.Completed {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("✅ %d · %s", i+1, shortTitle(task.Title, 24)), cbCompletePrefix+task.ID),
			tgbotapi.NewInlineKeyboardButtonData("🗑", cbDeletePrefix+task.ID),
		))
	}
	if len(tasks) == 0 {
		builder.WriteString("Nothing here yet. Add one with /newtask.")
	}
	return strings.TrimSpace(builder.String()), rows
}

func formatTask(n int, task model.Task, now time.Time) string {
	icon := iconDefault
	due, hasDue := service.ParseCalendarDate(task.DueDate, now.Location())
	switch {
	case task.Completed:
		icon = iconCompleted
	case hasDue && now.After(due.Add(24*time.Hour)):
		icon = iconOverdue
	case hasDue && due.Sub(now) <= 48*time.Hour:
		icon = iconDue
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>%d.</b> %s\n", icon, n, escape(normalizeTitle(task.Title))))
	if hasDue {
		b.WriteString(fmt.Sprintf("   ⏰ Due %s\n", due.Format("2006-01-02")))
	}
	if task.Description != "" {
		b.WriteString(fmt.Sprintf("   📝 %s\n", escape(task.Description)))
	}
	return b.String()
}

func boardText(cards []model.ScrumCard) string {
	if len(cards) == 0 {
		return "The board is empty. Add a card with /card."
	}
	var b strings.Builder
	b.WriteString("🗂 <b>Board</b>\n")
	for _, status := range model.CardStatuses {
		b.WriteString(fmt.Sprintf("\n<b>%s</b>\n", columnTitle(status)))
		for i, card := range cards {
			if card.Status != status {
				continue
			}
			b.WriteString(fmt.Sprintf("%d. %s <i>(%s)</i>\n", i+1, escape(normalizeTitle(card.Title)), card.Priority))
		}
	}
	return strings.TrimSpace(b.String())
}

func skillsText(items []model.LearningItem) string {
	if len(items) == 0 {
		return "No skills tracked yet."
	}
	var b strings.Builder
	b.WriteString("📚 <b>Skills</b>\n")
	for i, item := range items {
		b.WriteString(fmt.Sprintf("%d. %s %s %d%%\n", i+1, escape(item.Skill), progressBar(item.Progress), item.Progress))
	}
	return strings.TrimSpace(b.String())
}

func progressBar(pct int) string {
	filled := pct / 10
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", 10-filled)
}

func columnTitle(status model.CardStatus) string {
	switch status {
	case model.CardTodo:
		return "To do"
	case model.CardInProgress:
		return "In progress"
	case model.CardDone:
		return "Done"
	default:
		return string(status)
	}
}

// parseIndex reads a 1-based list position.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q is not a list number", errUsage, arg)
	}
	return n, nil
}

// parseIndexAnd splits "<n> <rest>" command arguments.
func parseIndexAnd(args string) (int, string, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return 0, "", fmt.Errorf("%w: expected two arguments", errUsage)
	}
	n, err := parseIndex(fields[0])
	if err != nil {
		return 0, "", err
	}
	return n, fields[1], nil
}

func confirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConfirm),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func isConfirmInput(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	return text == strings.ToLower(btnConfirm) || text == "yes" || text == "confirm"
}

func shortTitle(title string, maxLen int) string {
	clean := normalizeTitle(strings.ReplaceAll(title, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func normalizeTitle(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	runes := []rune(value)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func escape(s string) string {
	return html.EscapeString(s)
}
