package workspace

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/model"
	"github.com/manav03panchal/boost/internal/validate"
)

// TicketInput carries the user-editable fields of a ticket.
type TicketInput struct {
	Title       string
	Description string
	Priority    model.Priority
	Tag         string
	Assignee    string
	StoryPoints int
	Date        model.DayKey
}

// AddTicket creates a ticket in the todo column with the next free code.
func (w *Workspace) AddTicket(in TicketInput) (model.WorkTicket, error) {
	title, err := FormatTitle(in.Title)
	if err != nil {
		return model.WorkTicket{}, err
	}

	ticket := model.WorkTicket{
		ID:          model.NewID(),
		TicketID:    model.NextTicketCode(TicketPrefix, w.tickets),
		Title:       title,
		Description: validate.SanitizeNote(in.Description),
		Status:      model.StatusTodo,
		Priority:    in.Priority,
		Tag:         strings.TrimSpace(in.Tag),
		Assignee:    validate.SanitizeAssignee(in.Assignee),
		Date:        in.Date,
		StoryPoints: in.StoryPoints,
	}
	if ticket.Priority == "" {
		ticket.Priority = model.PriorityMedium
	}
	if ticket.Tag == "" {
		ticket.Tag = DefaultTicketTag
	}
	if ticket.Assignee == "" {
		ticket.Assignee = DefaultTicketAssignee
	}
	if ticket.Date == "" {
		ticket.Date = w.Today()
	}
	if ticket.StoryPoints == 0 {
		ticket.StoryPoints = DefaultStoryPoints
	}
	if err := validate.Struct(ticket); err != nil {
		return model.WorkTicket{}, err
	}

	tickets := append(slices.Clone(w.tickets), ticket)
	if err := w.store.SaveTickets(tickets); err != nil {
		return model.WorkTicket{}, err
	}
	w.tickets = tickets
	return ticket, nil
}

// FindTicket resolves ref, either a board code such as "PROJ-101" or an id,
// to a ticket index.
func (w *Workspace) FindTicket(ref string) (int, error) {
	code := strings.TrimSpace(ref)
	for i, t := range w.tickets {
		if strings.EqualFold(t.TicketID, code) {
			return i, nil
		}
	}

	i, err := matchIndex(len(w.tickets), func(i int) string { return w.tickets[i].ID }, ref)
	if err != nil {
		return -1, err
	}
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", errors.ErrTicketNotFound, ref)
	}
	return i, nil
}

// UpdateTicket applies fn to a copy of the ticket, validates the result and
// saves it. The ticket's identity fields cannot be changed by fn.
func (w *Workspace) UpdateTicket(ref string, fn func(*model.WorkTicket)) (model.WorkTicket, error) {
	i, err := w.FindTicket(ref)
	if err != nil {
		return model.WorkTicket{}, err
	}

	tickets := slices.Clone(w.tickets)
	updated := tickets[i]
	updated.Subtasks = slices.Clone(updated.Subtasks)
	fn(&updated)
	updated.ID = tickets[i].ID
	updated.TicketID = tickets[i].TicketID

	if err := validate.Struct(updated); err != nil {
		return model.WorkTicket{}, err
	}

	tickets[i] = updated
	if err := w.store.SaveTickets(tickets); err != nil {
		return model.WorkTicket{}, err
	}
	w.tickets = tickets
	return updated, nil
}

// MoveTicket puts a ticket in another column. Any column may follow any other.
func (w *Workspace) MoveTicket(ref string, status model.TicketStatus) (model.WorkTicket, error) {
	if !status.Valid() {
		return model.WorkTicket{}, errors.NewUserErrorWithField("status", string(status),
			errors.ErrInvalidStatus.Error(), errors.Suggestions[errors.ErrInvalidStatus])
	}
	return w.UpdateTicket(ref, func(t *model.WorkTicket) {
		t.Status = status
	})
}

// DeleteTicket removes a ticket from the board.
func (w *Workspace) DeleteTicket(ref string) (model.WorkTicket, error) {
	i, err := w.FindTicket(ref)
	if err != nil {
		return model.WorkTicket{}, err
	}

	removed := w.tickets[i]
	tickets := slices.Delete(slices.Clone(w.tickets), i, i+1)
	if err := w.store.SaveTickets(tickets); err != nil {
		return model.WorkTicket{}, err
	}
	w.tickets = tickets
	return removed, nil
}

// AddSubtask appends a checklist item to a ticket.
func (w *Workspace) AddSubtask(ref, title string) (model.Subtask, error) {
	title, err := FormatTitle(title)
	if err != nil {
		return model.Subtask{}, err
	}

	sub := model.Subtask{ID: model.NewID(), Title: title}
	if _, err := w.UpdateTicket(ref, func(t *model.WorkTicket) {
		t.Subtasks = append(t.Subtasks, sub)
	}); err != nil {
		return model.Subtask{}, err
	}
	return sub, nil
}

// ToggleSubtask flips a checklist item. subRef is a subtask id, a suffix of
// one, or its 1-based position in the checklist.
func (w *Workspace) ToggleSubtask(ref, subRef string) (model.Subtask, error) {
	i, err := w.FindTicket(ref)
	if err != nil {
		return model.Subtask{}, err
	}

	subs := w.tickets[i].Subtasks
	j := -1
	if pos, err := strconv.Atoi(strings.TrimSpace(subRef)); err == nil && pos >= 1 && pos <= len(subs) {
		j = pos - 1
	}
	if j < 0 {
		j, err = matchIndex(len(subs), func(k int) string { return subs[k].ID }, subRef)
		if err != nil {
			return model.Subtask{}, err
		}
	}
	if j < 0 {
		return model.Subtask{}, fmt.Errorf("%w: %s", errors.ErrSubtaskNotFound, subRef)
	}

	var toggled model.Subtask
	if _, err := w.UpdateTicket(ref, func(t *model.WorkTicket) {
		t.Subtasks[j].Completed = !t.Subtasks[j].Completed
		toggled = t.Subtasks[j]
	}); err != nil {
		return model.Subtask{}, err
	}
	return toggled, nil
}

// TicketsOn returns the tickets dated day.
func (w *Workspace) TicketsOn(day model.DayKey) []model.WorkTicket {
	var out []model.WorkTicket
	for _, t := range w.tickets {
		if t.Date == day {
			out = append(out, t)
		}
	}
	return out
}

// Column returns the tickets in status, in board order.
func Column(tickets []model.WorkTicket, status model.TicketStatus) []model.WorkTicket {
	var out []model.WorkTicket
	for _, t := range tickets {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}
