package workspace

import "github.com/manav03panchal/boost/internal/model"

// DefaultHabits returns the starter habits installed into an empty store.
func DefaultHabits() []model.Habit {
	return []model.Habit{
		model.NewHabit("Code Daily", "For at least 1 hour", "bg-red-500"),
		model.NewHabit("Practice L33tcode", "60 minutes daily", "bg-blue-500"),
		model.NewHabit("Workout", "At least twice per week", "bg-green-500"),
	}
}

// DefaultTickets returns the starter work board, dated day.
func DefaultTickets(day model.DayKey) []model.WorkTicket {
	ticket := func(code, title, desc string, status model.TicketStatus, prio model.Priority, tag, assignee string, points int) model.WorkTicket {
		return model.WorkTicket{
			ID:          model.NewID(),
			TicketID:    code,
			Title:       title,
			Description: desc,
			Status:      status,
			Priority:    prio,
			Tag:         tag,
			Assignee:    assignee,
			Date:        day,
			StoryPoints: points,
		}
	}
	return []model.WorkTicket{
		ticket("PROJ-101", "Design System Update", "Standardize primary colors across UI", model.StatusInProgress, model.PriorityHigh, "Design", "JD", 5),
		ticket("PROJ-102", "API Integration", "Connect Gemini Service to Frontend", model.StatusReview, model.PriorityHigh, "Backend", "MK", 8),
		ticket("PROJ-103", "Update Documentation", "Write readme for the new module", model.StatusTodo, model.PriorityLow, "Docs", "JD", 2),
		ticket("PROJ-104", "Weekly Standup", "Prepare slides for meeting", model.StatusDone, model.PriorityMedium, "Meeting", "JD", 1),
	}
}

// DefaultTasks returns the starter task list, dated day.
func DefaultTasks(day model.DayKey) []model.Task {
	task := func(title string, minutes int, done bool, prio model.Priority) model.Task {
		t := model.NewTask(title, minutes, prio, day)
		t.Completed = done
		return t
	}
	return []model.Task{
		task("Run sample app on simulator", 30, true, model.PriorityHigh),
		task("Create a test account and log in", 15, false, model.PriorityMedium),
		task("Try adding and completing one task", 20, true, model.PriorityLow),
		task("Connect iPhone via USB & test", 25, false, model.PriorityHigh),
		task("Install Xcode from App Store", 45, false, model.PriorityMedium),
	}
}
