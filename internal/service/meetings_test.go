package service

import (
	"context"
	"testing"

	"nexus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMeeting_Defaults(t *testing.T) {
	s, _ := newTestState(t)
	author := models.User{ID: "1", Department: models.DeptMidia}

	m, err := s.CreateMeeting(context.Background(), author, CreateMeetingInput{Title: " Reunião "})
	require.NoError(t, err)

	assert.Equal(t, models.DeptMidia, m.Dept)
	assert.Equal(t, "Reunião", m.Title)
	assert.Equal(t, "01/06/2025", m.Date)
	assert.Equal(t, models.DefaultMeetingLocation, m.Location)
}

func TestMeetingsForDepartment_MostRecentFirst(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestState(t)
	youth := models.User{ID: "1", Department: models.DeptJuventude}
	media := models.User{ID: "2", Department: models.DeptMidia}

	a, err := s.CreateMeeting(ctx, youth, CreateMeetingInput{Title: "A"})
	require.NoError(t, err)
	_, err = s.CreateMeeting(ctx, media, CreateMeetingInput{Title: "Mídia"})
	require.NoError(t, err)
	b, err := s.CreateMeeting(ctx, youth, CreateMeetingInput{Title: "B"})
	require.NoError(t, err)

	got := s.MeetingsForDepartment(models.DeptJuventude)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)

	assert.Empty(t, s.MeetingsForDepartment(models.DeptFinancas))
}

func TestDeleteMeeting(t *testing.T) {
	ctx := context.Background()
	s, store := newTestState(t)
	author := models.User{ID: "1", Department: models.DeptJuventude}

	keep, err := s.CreateMeeting(ctx, author, CreateMeetingInput{Title: "keep"})
	require.NoError(t, err)
	drop, err := s.CreateMeeting(ctx, author, CreateMeetingInput{Title: "drop"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteMeeting(ctx, drop.ID))
	assert.ErrorIs(t, s.DeleteMeeting(ctx, drop.ID), ErrMeetingNotFound)

	meetings := s.Meetings()
	require.Len(t, meetings, 1)
	assert.Equal(t, keep.ID, meetings[0].ID)
	assertPersisted(t, s, store)
}
