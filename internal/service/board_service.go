package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devtracker/internal/model"
	"devtracker/internal/tracker"
)

var (
	ErrInvalidStatus = errors.New("unknown board column")
	ErrProgressRange = errors.New("progress must be between 0 and 100")
)

// BoardService covers the scrum board and skill progress flows.
type BoardService struct {
	store *tracker.Store
}

func NewBoardService(store *tracker.Store) *BoardService {
	return &BoardService{store: store}
}

// ParseCardStatus accepts the column names case-insensitively, with
// "in-progress" and "doing" as aliases.
func ParseCardStatus(raw string) (model.CardStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "todo", "to-do":
		return model.CardTodo, nil
	case "inprogress", "in-progress", "doing":
		return model.CardInProgress, nil
	case "done":
		return model.CardDone, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

func ParsePriority(raw string) model.Priority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return model.PriorityHigh
	case "medium":
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

func (s *BoardService) Cards() []model.ScrumCard {
	return s.store.Snapshot().ScrumBoard
}

func (s *BoardService) AddCard(ctx context.Context, title string, priority model.Priority) (model.ScrumCard, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.ScrumCard{}, ErrTitleRequired
	}
	return s.store.AddScrumCard(ctx, tracker.ScrumCardInput{
		Title:    title,
		Status:   model.CardTodo,
		Priority: priority,
	})
}

// MoveCard moves the card at 1-based position n to status.
func (s *BoardService) MoveCard(ctx context.Context, n int, status model.CardStatus) (model.ScrumCard, error) {
	cards := s.Cards()
	if n < 1 || n > len(cards) {
		return model.ScrumCard{}, fmt.Errorf("%w: %d", ErrNoSuchItem, n)
	}
	card := cards[n-1]
	if err := s.store.UpdateScrumCardStatus(ctx, card.ID, status); err != nil {
		return model.ScrumCard{}, err
	}
	card.Status = status
	return card, nil
}

func (s *BoardService) Skills() []model.LearningItem {
	return s.store.Snapshot().Learning
}

func (s *BoardService) AddSkill(ctx context.Context, skill string) (model.LearningItem, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return model.LearningItem{}, ErrTitleRequired
	}
	return s.store.AddLearningItem(ctx, tracker.LearningItemInput{Skill: skill})
}

// SetSkillProgress validates the percentage before handing it to the store,
// which does not clamp.
func (s *BoardService) SetSkillProgress(ctx context.Context, n, progress int) (model.LearningItem, error) {
	if progress < 0 || progress > 100 {
		return model.LearningItem{}, fmt.Errorf("%w: %d", ErrProgressRange, progress)
	}
	skills := s.Skills()
	if n < 1 || n > len(skills) {
		return model.LearningItem{}, fmt.Errorf("%w: %d", ErrNoSuchItem, n)
	}
	item := skills[n-1]
	if err := s.store.UpdateLearningItem(ctx, item.ID, tracker.LearningItemPatch{Progress: &progress}); err != nil {
		return model.LearningItem{}, err
	}
	item.Progress = progress
	return item, nil
}
