package tracker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"devtracker/internal/model"
)

// Op is the kind of a committed mutation.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpReset  Op = "reset"
)

// Collection names the list a mutation touched. Child lists are qualified
// with their parent collection.
type Collection string

const (
	CollLearning          Collection = "learning"
	CollLearningResources Collection = "learning.resources"
	CollLearningNotes     Collection = "learning.notes"
	CollDailyTasks        Collection = Collection(model.SectionDaily)
	CollLongTermPlans     Collection = Collection(model.SectionLongTerm)
	CollProjects          Collection = "projects"
	CollProjectTasks      Collection = "projects.tasks"
	CollProjectResources  Collection = "projects.resources"
	CollInternshipTodos   Collection = "internship.todos"
	CollInternshipUpdates Collection = "internship.updates"
	CollContent           Collection = "contentCreation"
	CollGym               Collection = "gymLife"
	CollScrum             Collection = "scrumBoard"
	CollMeetings          Collection = "meetings"
	CollActionItems       Collection = "meetings.actionItems"
	CollAll               Collection = "*"
)

// Change is delivered to listeners once per committed mutation.
type Change struct {
	Op         Op
	Collection Collection
	ID         string
	// ParentID is set for child-list mutations.
	ParentID string
	Snapshot *model.Tracker
}

// Listener observes committed changes. It runs while the store holds its
// write lock and must not call mutating store methods.
type Listener func(Change)

// Notice is the user-facing confirmation for a successful mutation.
type Notice struct {
	Op         Op
	Collection Collection
	ID         string
	Title      string
}

func (n Notice) String() string {
	verb := map[Op]string{OpAdd: "added", OpUpdate: "updated", OpDelete: "deleted", OpReset: "reset"}[n.Op]
	if n.Title == "" {
		return fmt.Sprintf("%s %s", collectionLabel(n.Collection), verb)
	}
	return fmt.Sprintf("%s %s: %s", collectionLabel(n.Collection), verb, n.Title)
}

// Notifier delivers confirmations. It is called exactly once per committed
// mutation and never for no-ops or failed writes.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice)

func (f NotifierFunc) Notify(ctx context.Context, n Notice) { f(ctx, n) }

// LogNotifier writes confirmations to a zap logger.
type LogNotifier struct {
	Log *zap.Logger
}

func (l LogNotifier) Notify(_ context.Context, n Notice) {
	l.Log.Info(n.String(),
		zap.String("op", string(n.Op)),
		zap.String("collection", string(n.Collection)),
		zap.String("id", n.ID),
	)
}

func collectionLabel(c Collection) string {
	switch c {
	case CollLearning:
		return "Skill"
	case CollLearningResources, CollProjectResources:
		return "Resource"
	case CollLearningNotes:
		return "Note"
	case CollDailyTasks:
		return "Daily task"
	case CollLongTermPlans:
		return "Long-term plan"
	case CollProjects:
		return "Project"
	case CollProjectTasks:
		return "Project task"
	case CollInternshipTodos:
		return "Internship task"
	case CollInternshipUpdates:
		return "Internship update"
	case CollContent:
		return "Content idea"
	case CollGym:
		return "Gym entry"
	case CollScrum:
		return "Card"
	case CollMeetings:
		return "Meeting"
	case CollActionItems:
		return "Action item"
	default:
		return "Tracker"
	}
}
