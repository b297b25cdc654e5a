package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"devtracker/internal/model"
	"devtracker/internal/service"
	"devtracker/internal/tracker"
)

type confirmationAction int

const (
	actionComplete confirmationAction = iota
	actionDelete
)

type confirmationRequest struct {
	taskID string
	action confirmationAction
}

// Bot serves the owner chat on top of the tracker services. Mutation
// confirmations arrive through the Sender acting as the store's Notifier,
// so handlers only reply for listings, usage hints and failures.
type Bot struct {
	*Sender
	tasks  *service.TaskService
	board  *service.BoardService
	digest *service.DigestService

	confirmations map[int64]confirmationRequest
	mu            sync.Mutex
}

func New(sender *Sender, tasks *service.TaskService, board *service.BoardService, digest *service.DigestService) *Bot {
	return &Bot{
		Sender:        sender,
		tasks:         tasks,
		board:         board,
		digest:        digest,
		confirmations: make(map[int64]confirmationRequest),
	}
}

// Start polls updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(update.CallbackQuery); err != nil {
				b.log.Warn("handle callback", zap.Error(err))
			}
		case update.Message != nil:
			if !b.fromOwner(update.Message.Chat) {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				b.log.Warn("handle message", zap.Error(err))
			}
		}
	}
	return nil
}

func (b *Bot) fromOwner(chat *tgbotapi.Chat) bool {
	return chat != nil && chat.IsPrivate() && chat.ID == b.chatID
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.IsCommand() {
		b.clearConfirmation(msg.Chat.ID)
		b.log.Debug("command", zap.String("command", msg.Command()), zap.String("args", msg.CommandArguments()))
		return b.handleCommand(ctx, msg)
	}
	if pending, ok := b.getConfirmation(msg.Chat.ID); ok {
		return b.handleConfirmationResponse(ctx, msg, pending)
	}
	return b.sendText(msg.Chat.ID, "I did not get that. Send /help for the list of commands.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		return b.sendText(chatID, helpText)
	case "digest":
		return b.sendText(chatID, b.digest.Daily(time.Now()))
	case "tasks":
		return b.sendTaskList(chatID)
	case "newtask":
		return b.createTask(ctx, chatID, model.SectionDaily, args)
	case "plan":
		return b.createTask(ctx, chatID, model.SectionLongTerm, args)
	case "done", "delete":
		n, err := parseIndex(args)
		if err != nil {
			return b.sendText(chatID, fmt.Sprintf("Usage: /%s 2", msg.Command()))
		}
		task, err := b.tasks.TaskAt(model.SectionDaily, n)
		if err != nil {
			return b.sendText(chatID, "No task with that number. See /tasks.")
		}
		action := actionComplete
		if msg.Command() == "delete" {
			action = actionDelete
		}
		return b.askConfirmation(chatID, task, action)
	case "board":
		return b.sendText(chatID, boardText(b.board.Cards()))
	case "card":
		if _, err := b.board.AddCard(ctx, args, model.PriorityMedium); err != nil {
			return b.replyError(chatID, err, "Usage: /card Write release notes")
		}
		return nil
	case "move":
		n, raw, err := parseIndexAnd(args)
		if err != nil {
			return b.sendText(chatID, "Usage: /move 2 inProgress")
		}
		status, err := service.ParseCardStatus(raw)
		if err != nil {
			return b.sendText(chatID, "Columns are todo, inProgress and done.")
		}
		if _, err := b.board.MoveCard(ctx, n, status); err != nil {
			return b.replyError(chatID, err, "No card with that number. See /board.")
		}
		return nil
	case "skills":
		return b.sendText(chatID, skillsText(b.board.Skills()))
	case "progress":
		n, raw, err := parseIndexAnd(args)
		if err != nil {
			return b.sendText(chatID, "Usage: /progress 1 60")
		}
		pct, err := strconv.Atoi(raw)
		if err != nil {
			return b.sendText(chatID, "Progress is a number from 0 to 100.")
		}
		if _, err := b.board.SetSkillProgress(ctx, n, pct); err != nil {
			return b.replyError(chatID, err, "No skill with that number. See /skills.")
		}
		return nil
	default:
		return b.sendText(chatID, "Unknown command. Send /help for the list of commands.")
	}
}

const helpText = `<b>devtracker</b>

/digest - today's summary
/tasks - daily tasks with complete and delete buttons
/newtask &lt;title&gt; - add a daily task
/plan &lt;title&gt; - add a long-term plan
/done &lt;n&gt; - complete daily task n
/delete &lt;n&gt; - delete daily task n
/board - scrum board
/card &lt;title&gt; - add a card to To do
/move &lt;n&gt; &lt;todo|inProgress|done&gt; - move card n
/skills - learning progress
/progress &lt;n&gt; &lt;pct&gt; - set progress of skill n`

func (b *Bot) createTask(ctx context.Context, chatID int64, section model.Section, title string) error {
	_, err := b.tasks.CreateTask(ctx, section, tracker.TaskInput{Title: title})
	if err != nil {
		return b.replyError(chatID, err, "Give the task a title: /newtask Review PRs")
	}
	return nil
}

// replyError turns user mistakes into usage hints and reports anything else.
func (b *Bot) replyError(chatID int64, err error, usage string) error {
	switch {
	case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrNoSuchItem):
		return b.sendText(chatID, usage)
	case errors.Is(err, service.ErrProgressRange):
		return b.sendText(chatID, "Progress is a number from 0 to 100.")
	default:
		b.log.Warn("tracker update failed", zap.Error(err))
		return b.sendText(chatID, fmt.Sprintf("Could not save: %s", escape(err.Error())))
	}
}

func (b *Bot) sendTaskList(chatID int64) error {
	text, rows := taskList(b.tasks.List(model.SectionDaily), time.Now())
	if len(rows) == 0 {
		return b.sendText(chatID, text)
	}
	return b.sendWithReplyMarkup(chatID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.Message == nil || !b.fromOwner(cb.Message.Chat) {
		return nil
	}
	b.ack(cb.ID)

	chatID := cb.Message.Chat.ID
	var (
		id     string
		action confirmationAction
	)
	switch {
	case strings.HasPrefix(cb.Data, cbCompletePrefix):
		id, action = strings.TrimPrefix(cb.Data, cbCompletePrefix), actionComplete
	case strings.HasPrefix(cb.Data, cbDeletePrefix):
		id, action = strings.TrimPrefix(cb.Data, cbDeletePrefix), actionDelete
	default:
		return nil
	}

	task, ok := b.findTask(id)
	if !ok {
		return b.sendText(chatID, "Task not found.")
	}
	return b.askConfirmation(chatID, task, action)
}

func (b *Bot) askConfirmation(chatID int64, task model.Task, action confirmationAction) error {
	var text string
	switch action {
	case actionComplete:
		if task.Completed {
			return b.sendText(chatID, "That task is already done.")
		}
		text = fmt.Sprintf("Mark «%s» as done?", escape(normalizeTitle(task.Title)))
	case actionDelete:
		text = fmt.Sprintf("Delete «%s»?", escape(normalizeTitle(task.Title)))
	}
	b.setConfirmation(chatID, confirmationRequest{taskID: task.ID, action: action})
	return b.sendWithReplyMarkup(chatID, text, confirmKeyboard())
}

func (b *Bot) handleConfirmationResponse(ctx context.Context, msg *tgbotapi.Message, req confirmationRequest) error {
	chatID := msg.Chat.ID
	b.clearConfirmation(chatID)

	if !isConfirmInput(msg.Text) {
		return b.sendTextWithRemove(chatID, "Cancelled.")
	}
	if _, ok := b.findTask(req.taskID); !ok {
		return b.sendTextWithRemove(chatID, "Task not found or already deleted.")
	}

	var err error
	switch req.action {
	case actionComplete:
		err = b.tasks.CompleteTask(ctx, model.SectionDaily, req.taskID)
	case actionDelete:
		err = b.tasks.DeleteTask(ctx, model.SectionDaily, req.taskID)
	}
	if err != nil {
		b.log.Warn("apply confirmation", zap.Error(err))
		return b.sendTextWithRemove(chatID, fmt.Sprintf("Could not save: %s", escape(err.Error())))
	}
	if err := b.sendTextWithRemove(chatID, "👍"); err != nil {
		return err
	}
	return b.sendTaskList(chatID)
}

func (b *Bot) findTask(id string) (model.Task, bool) {
	for _, task := range b.tasks.List(model.SectionDaily) {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}

func (b *Bot) getConfirmation(chatID int64) (confirmationRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	req, ok := b.confirmations[chatID]
	return req, ok
}

func (b *Bot) setConfirmation(chatID int64, req confirmationRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.confirmations[chatID] = req
}

func (b *Bot) clearConfirmation(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.confirmations, chatID)
}
