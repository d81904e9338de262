package service

import (
	"errors"
	"testing"

	"nexus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigate(t *testing.T) {
	kids := &models.User{ID: "1", Department: models.DeptIgrejaInfantil}
	youth := &models.User{ID: "2", Department: models.DeptJuventude}

	tests := []struct {
		name    string
		user    *models.User
		view    models.View
		wantErr error
	}{
		{name: "feed for anyone", user: youth, view: models.ViewFeed},
		{name: "children for igreja infantil", user: kids, view: models.ViewChildren},
		{name: "children refused elsewhere", user: youth, view: models.ViewChildren, wantErr: ErrViewUnavailable},
		{name: "children refused without user", user: nil, view: models.ViewChildren, wantErr: ErrViewUnavailable},
		{name: "settings without user", user: nil, view: models.ViewSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestState(t)
			err := s.Navigate(tt.user, tt.view)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, models.ViewHome, s.CurrentView())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.view, s.CurrentView())
		})
	}
}

func TestNavigate_UnknownView(t *testing.T) {
	s, _ := newTestState(t)
	err := s.Navigate(nil, "reports")

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.ViewHome, s.CurrentView())
}
