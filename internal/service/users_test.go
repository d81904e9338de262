package service

import (
	"context"
	"errors"
	"testing"

	"nexus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   RegisterInput
	}{
		{name: "empty name", in: RegisterInput{Username: "ana1", Department: models.DeptJuventude}},
		{name: "empty username", in: RegisterInput{Name: "Ana", Department: models.DeptJuventude}},
		{name: "username with space", in: RegisterInput{Name: "Ana", Username: "ana 1", Department: models.DeptJuventude}},
		{name: "unknown department", in: RegisterInput{Name: "Ana", Username: "ana1", Department: "Coral"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestState(t)
			_, err := s.Register(context.Background(), tt.in)

			var appErr *models.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			assert.Empty(t, s.Users())
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s, store := newTestState(t)
	first := register(t, s, "Ana", "ana1", models.DeptJuventude)

	_, err := s.Register(context.Background(), RegisterInput{Name: "Outra Ana", Username: "  ana1 ", Department: models.DeptMidia})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	assert.Len(t, s.Users(), 1)
	assert.Equal(t, first, *s.CurrentUser())
	assertPersisted(t, s, store)
}

func TestRegister_UsernameComparedAfterNFC(t *testing.T) {
	s, _ := newTestState(t)
	register(t, s, "José", "jos\u00e9", models.DeptTecnica)

	_, err := s.Register(context.Background(), RegisterInput{Name: "José", Username: "jose\u0301", Department: models.DeptTecnica})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_IDsAreUnique(t *testing.T) {
	s, _ := newTestState(t)
	a := register(t, s, "Ana", "ana1", models.DeptJuventude)
	b := register(t, s, "Bruno", "bruno", models.DeptJuventude)

	assert.Equal(t, "1748768400000", a.ID)
	assert.Equal(t, "1748768400001", b.ID)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s, store := newTestState(t)
	ana := register(t, s, "Ana", "ana1", models.DeptJuventude)
	register(t, s, "Bruno", "bruno", models.DeptMidia)

	got, err := s.Login(ctx, "ana1")
	require.NoError(t, err)
	assert.Equal(t, ana, got)
	assert.Equal(t, ana, *s.CurrentUser())
	assertPersisted(t, s, store)
}

func TestLogin_UnknownUsernameCreatesNoSession(t *testing.T) {
	ctx := context.Background()
	s, store := newTestState(t)

	_, err := s.Login(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, s.CurrentUser())
	assertPersisted(t, s, store)
}

func TestLogout_ClearsPersistedSession(t *testing.T) {
	ctx := context.Background()
	s, store := newTestState(t)
	register(t, s, "Ana", "ana1", models.DeptIgrejaInfantil)
	require.NoError(t, s.Navigate(s.CurrentUser(), models.ViewChildren))

	require.NoError(t, s.Logout(ctx))
	assert.Nil(t, s.CurrentUser())
	assert.Equal(t, models.ViewHome, s.CurrentView())

	reloaded := NewState(store, WithClock(fixedClock))
	reloaded.Load(ctx)
	assert.Nil(t, reloaded.CurrentUser())
	assert.Len(t, reloaded.Users(), 1)
}

func TestCurrentUserIsAValueCopy(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestState(t)
	register(t, s, "Ana", "ana1", models.DeptJuventude)

	doc := s.Export()
	doc.Users[0].Name = "Ana Maria"
	require.NoError(t, s.Import(ctx, doc))

	assert.Equal(t, "Ana Maria", s.Users()[0].Name)
	assert.Equal(t, "Ana", s.CurrentUser().Name, "current user is not re-synchronized")
}
