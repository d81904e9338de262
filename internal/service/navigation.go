package service

import (
	"fmt"

	"nexus/internal/models"
)

// CurrentView returns the active view.
func (s *State) CurrentView() models.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Navigate switches the active view for user. Views the user is not offered
// (the children registry outside Igreja Infantil) are refused.
func (s *State) Navigate(user *models.User, view models.View) error {
	if !view.Valid() {
		return models.NewValidationError(fmt.Sprintf("unknown view %q", view))
	}
	if !models.ViewAvailable(user, view) {
		return fmt.Errorf("navigate %s: %w", view, ErrViewUnavailable)
	}

	s.mu.Lock()
	s.view = view
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionView, Action: "navigate", ID: string(view)})
	return nil
}
