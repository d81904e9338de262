package service

import (
	"context"
	"errors"
	"testing"

	"nexus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChild(t *testing.T) {
	s, store := newTestState(t)

	c, err := s.CreateChild(context.Background(), CreateChildInput{Name: "Miguel", Age: 7, ClassLevel: models.ClassJunior})
	require.NoError(t, err)

	assert.Equal(t, models.ChildActive, c.Status)
	assert.Equal(t, "01/06/2025", c.JoinedAt)
	assert.Equal(t, []models.Child{c}, s.Children())
	assertPersisted(t, s, store)
}

func TestCreateChild_Validation(t *testing.T) {
	s, _ := newTestState(t)

	_, err := s.CreateChild(context.Background(), CreateChildInput{Name: "Davi", Age: 13, ClassLevel: models.ClassSenior})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Empty(t, s.Children())
}

func TestDeleteChild_RemovesOnlyThatRecord(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestState(t)

	a, err := s.CreateChild(ctx, CreateChildInput{Name: "A", Age: 4, ClassLevel: models.ClassJardim})
	require.NoError(t, err)
	b, err := s.CreateChild(ctx, CreateChildInput{Name: "B", Age: 9, ClassLevel: models.ClassJunior})
	require.NoError(t, err)

	require.NoError(t, s.DeleteChild(ctx, a.ID))
	assert.Equal(t, []models.Child{b}, s.Children())
	assert.ErrorIs(t, s.DeleteChild(ctx, "missing"), ErrChildNotFound)
}
