package service

import (
	"context"
	"fmt"
	"slices"

	"nexus/internal/models"
	"nexus/internal/repository"
	"nexus/internal/validation"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name       string            `json:"name"`
	Username   string            `json:"username"`
	Department models.Department `json:"department"`
}

// Register appends a new Servo and makes it the current user.
func (s *State) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	name, err := validation.NormalizeName(in.Name)
	if err != nil {
		return models.User{}, models.NewValidationError(err.Error())
	}
	username, err := validation.NormalizeUsername(in.Username)
	if err != nil {
		return models.User{}, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateDepartment(in.Department); err != nil {
		return models.User{}, models.NewValidationError(err.Error())
	}

	s.mu.Lock()
	if slices.ContainsFunc(s.users, func(u models.User) bool { return u.Username == username }) {
		s.mu.Unlock()
		return models.User{}, fmt.Errorf("register %s: %w", username, ErrUsernameTaken)
	}

	user := models.User{
		ID:         s.ids.Next(),
		Name:       name,
		Username:   username,
		Department: in.Department,
		Role:       models.RoleServo,
		JoinedAt:   s.now(),
	}
	users := append(slices.Clone(s.users), user)

	if err := s.store.Save(ctx, repository.KeyUsers, users); err != nil {
		s.mu.Unlock()
		return models.User{}, fmt.Errorf("register %s: %w", username, err)
	}
	current := user
	if err := s.store.Save(ctx, repository.KeyCurrentUser, &current); err != nil {
		// the user record is durable; commit it without a session
		s.users = users
		s.mu.Unlock()
		s.notify(Change{Collection: CollectionUsers, Action: "register", ID: user.ID})
		return models.User{}, fmt.Errorf("register %s: %w", username, err)
	}
	s.users = users
	s.current = &current
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionUsers, Action: "register", ID: user.ID})
	return user, nil
}

// Login sets the current user to a copy of the user with this username.
func (s *State) Login(ctx context.Context, username string) (models.User, error) {
	normalized, err := validation.NormalizeUsername(username)
	if err != nil {
		return models.User{}, models.NewValidationError(err.Error())
	}

	s.mu.Lock()
	idx := slices.IndexFunc(s.users, func(u models.User) bool { return u.Username == normalized })
	if idx < 0 {
		s.mu.Unlock()
		return models.User{}, fmt.Errorf("login %s: %w", normalized, ErrUserNotFound)
	}
	current := s.users[idx]
	if err := s.store.Save(ctx, repository.KeyCurrentUser, &current); err != nil {
		s.mu.Unlock()
		return models.User{}, fmt.Errorf("login %s: %w", normalized, err)
	}
	s.current = &current
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionCurrentUser, Action: "login", ID: current.ID})
	return current, nil
}

// Logout clears the current user in memory and in the store.
func (s *State) Logout(ctx context.Context) error {
	s.mu.Lock()
	if err := s.store.Save(ctx, repository.KeyCurrentUser, nil); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("logout: %w", err)
	}
	s.current = nil
	s.view = models.ViewHome
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionCurrentUser, Action: "logout"})
	return nil
}
