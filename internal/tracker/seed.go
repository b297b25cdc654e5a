package tracker

import (
	"time"

	"devtracker/internal/model"
)

// Seed builds the example aggregate used on first start and whenever stored
// data cannot be used.
func Seed(now time.Time, newID func() string) *model.Tracker {
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(time.RFC3339)
	}
	tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")
	duration := 45

	return &model.Tracker{
		Learning: []model.LearningItem{
			{
				ID:       newID(),
				Skill:    "React",
				Progress: 75,
				Resources: []model.Resource{{
					ID:          newID(),
					Title:       "React Official Documentation",
					URL:         "https://reactjs.org/docs/getting-started.html",
					Description: "The official documentation for React.",
					CreatedAt:   now,
				}},
				Notes:     []model.Note{{ID: newID(), Content: "Practicing React Hooks", CreatedAt: now}},
				CreatedAt: now,
				UpdatedAt: now,
			},
			{
				ID:       newID(),
				Skill:    "TypeScript",
				Progress: 30,
				Resources: []model.Resource{{
					ID:          newID(),
					Title:       "TypeScript Handbook",
					URL:         "https://www.typescriptlang.org/docs/handbook/intro.html",
					Description: "Essential guide to TypeScript.",
					CreatedAt:   now,
				}},
				Notes:     []model.Note{{ID: newID(), Content: "Understanding Type Definitions", CreatedAt: now}},
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		DailyTasks: []model.Task{{
			ID:          newID(),
			Title:       "Code Review",
			Description: "Review pull requests from team members",
			DueDate:     day(0),
			CreatedAt:   now,
		}},
		LongTermPlans: []model.Task{{
			ID:          newID(),
			Title:       "Learn Next.js",
			Description: "Deep dive into Next.js framework",
			DueDate:     day(30),
			CreatedAt:   now,
		}},
		Projects: []model.Project{{
			ID:          newID(),
			Title:       "Portfolio Site",
			Description: "Personal site showcasing side projects",
			Status:      model.ProjectInProgress,
			Tasks: []model.Task{
				{ID: newID(), Title: "Design landing page", Completed: true, CreatedAt: now},
				{ID: newID(), Title: "Deploy to hosting", CreatedAt: now},
			},
			Resources: []model.Resource{},
			Progress:  50,
			CreatedAt: now,
		}},
		Internship: model.Internship{
			Todos: []model.Task{{ID: newID(), Title: "Prepare weekly report", CreatedAt: now}},
			Updates: []model.InternshipUpdate{{
				ID:          newID(),
				Title:       "Onboarding finished",
				Description: "Set up the development environment and met the team",
				Date:        day(0),
				Tags:        []string{"onboarding"},
			}},
		},
		ContentCreation: []model.ContentIdea{{
			ID:        newID(),
			Title:     "What I learned this month",
			Platform:  "Blog",
			Status:    model.ContentIdeaStatus,
			CreatedAt: now,
		}},
		GymLife: []model.GymEntry{{
			ID:        newID(),
			Activity:  "Running",
			Workout:   "Running",
			Type:      model.GymEntryTypeOther,
			Duration:  &duration,
			Date:      day(0),
			CreatedAt: now,
			UpdatedAt: now,
		}},
		ScrumBoard: []model.ScrumCard{{
			ID:        newID(),
			Title:     "Set up CI pipeline",
			Status:    model.CardTodo,
			Priority:  model.PriorityMedium,
			CreatedAt: now,
		}},
		Meetings: []model.Meeting{{
			ID:          newID(),
			Title:       "Sprint planning",
			Date:        tomorrow,
			StartTime:   "10:00",
			EndTime:     "11:00",
			Attendees:   []string{"Team"},
			Preparation: []string{"Review backlog"},
			ActionItems: []model.ActionItem{{ID: newID(), Task: "Share sprint goals", DueDate: tomorrow}},
			CreatedAt:   now,
		}},
	}
}
