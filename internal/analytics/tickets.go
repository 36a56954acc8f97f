package analytics

import (
	"github.com/manav03panchal/boost/internal/model"
)

// StatusCount is one slice of the ticket distribution chart.
type StatusCount struct {
	Name   string             `json:"name" yaml:"name"`
	Status model.TicketStatus `json:"-" yaml:"-"`
	Value  int                `json:"value" yaml:"value"`
	Color  string             `json:"color" yaml:"color"`
}

// statusOrder is the chart order with stable colours.
var statusOrder = []struct {
	status model.TicketStatus
	color  string
}{
	{model.StatusDone, "#10b981"},
	{model.StatusInProgress, "#3b82f6"},
	{model.StatusReview, "#a855f7"},
	{model.StatusTodo, "#64748b"},
}

// TicketStats counts tickets per status in the order done, in-progress,
// review, todo. Tickets with an unknown status are ignored.
func TicketStats(tickets []model.WorkTicket) []StatusCount {
	counts := make(map[model.TicketStatus]int, len(statusOrder))
	for _, t := range tickets {
		counts[t.Status]++
	}
	out := make([]StatusCount, 0, len(statusOrder))
	for _, s := range statusOrder {
		out = append(out, StatusCount{
			Name:   s.status.Label(),
			Status: s.status,
			Value:  counts[s.status],
			Color:  s.color,
		})
	}
	return out
}

// TicketTotal sums a distribution.
func TicketTotal(stats []StatusCount) int {
	total := 0
	for _, s := range stats {
		total += s.Value
	}
	return total
}

// StoryPointsDone sums the story points of finished tickets.
func StoryPointsDone(tickets []model.WorkTicket) int {
	total := 0
	for _, t := range tickets {
		if t.Status == model.StatusDone {
			total += t.StoryPoints
		}
	}
	return total
}
