package service

import (
	"context"
	"fmt"
	"slices"

	"nexus/internal/models"
	"nexus/internal/repository"
	"nexus/internal/validation"
)

// CreateChildInput carries the registry form.
type CreateChildInput struct {
	Name       string            `json:"name"`
	Age        int               `json:"age"`
	ClassLevel models.ClassLevel `json:"classLevel"`
}

// CreateChild prepends an active child joined today.
func (s *State) CreateChild(ctx context.Context, in CreateChildInput) (models.Child, error) {
	name, err := validation.ValidateChild(in.Name, in.Age, in.ClassLevel)
	if err != nil {
		return models.Child{}, models.NewValidationError(err.Error())
	}

	s.mu.Lock()
	child := models.Child{
		ID:         s.ids.Next(),
		Name:       name,
		Age:        in.Age,
		ClassLevel: in.ClassLevel,
		JoinedAt:   s.today(),
		Status:     models.ChildActive,
	}
	children := prepend(s.children, child)
	if err := s.store.Save(ctx, repository.KeyChildren, children); err != nil {
		s.mu.Unlock()
		return models.Child{}, fmt.Errorf("create child: %w", err)
	}
	s.children = children
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionChildren, Action: "create", ID: child.ID})
	return child, nil
}

// DeleteChild removes the child with id.
func (s *State) DeleteChild(ctx context.Context, id string) error {
	s.mu.Lock()
	if !slices.ContainsFunc(s.children, func(c models.Child) bool { return c.ID == id }) {
		s.mu.Unlock()
		return fmt.Errorf("delete child %s: %w", id, ErrChildNotFound)
	}
	children := slices.DeleteFunc(slices.Clone(s.children), func(c models.Child) bool { return c.ID == id })
	if err := s.store.Save(ctx, repository.KeyChildren, children); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("delete child %s: %w", id, err)
	}
	s.children = children
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionChildren, Action: "delete", ID: id})
	return nil
}
