package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"nexus/internal/models"
	"nexus/internal/repository"
	"nexus/internal/validation"
)

// CreateMeetingInput carries the agenda form.
type CreateMeetingInput struct {
	Title    string `json:"title"`
	Location string `json:"location"`
}

// CreateMeeting prepends a meeting scoped to the author's department, dated today.
func (s *State) CreateMeeting(ctx context.Context, author models.User, in CreateMeetingInput) (models.Meeting, error) {
	title, err := validation.NormalizeMeetingTitle(in.Title)
	if err != nil {
		return models.Meeting{}, models.NewValidationError(err.Error())
	}
	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = models.DefaultMeetingLocation
	}

	s.mu.Lock()
	meeting := models.Meeting{
		ID:       s.ids.Next(),
		Dept:     author.Department,
		Title:    title,
		Date:     s.today(),
		Location: location,
	}
	meetings := prepend(s.meetings, meeting)
	if err := s.store.Save(ctx, repository.KeyMeetings, meetings); err != nil {
		s.mu.Unlock()
		return models.Meeting{}, fmt.Errorf("create meeting: %w", err)
	}
	s.meetings = meetings
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionMeetings, Action: "create", ID: meeting.ID})
	return meeting, nil
}

// DeleteMeeting removes the meeting with id.
func (s *State) DeleteMeeting(ctx context.Context, id string) error {
	s.mu.Lock()
	if !slices.ContainsFunc(s.meetings, func(m models.Meeting) bool { return m.ID == id }) {
		s.mu.Unlock()
		return fmt.Errorf("delete meeting %s: %w", id, ErrMeetingNotFound)
	}
	meetings := slices.DeleteFunc(slices.Clone(s.meetings), func(m models.Meeting) bool { return m.ID == id })
	if err := s.store.Save(ctx, repository.KeyMeetings, meetings); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("delete meeting %s: %w", id, err)
	}
	s.meetings = meetings
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionMeetings, Action: "delete", ID: id})
	return nil
}

// MeetingsForDepartment lists the meetings of dept in stored order.
func (s *State) MeetingsForDepartment(dept models.Department) []models.Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Meeting{}
	for _, m := range s.meetings {
		if m.Dept == dept {
			out = append(out, m)
		}
	}
	return out
}
