package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"nexus/internal/models"
	"nexus/internal/repository"
	"nexus/internal/validation"
)

// Export returns the backup document of the four collections.
func (s *State) Export() models.ExportDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.ExportDocument{
		Users:    slices.Clone(s.users),
		Posts:    slices.Clone(s.posts),
		Children: slices.Clone(s.children),
		Meetings: slices.Clone(s.meetings),
	}
}

// Import replaces the four collections with doc. Usernames are stored in
// canonical form. The current user is kept while the document still contains
// it and cleared otherwise. If a save fails the keys already written are
// restored and memory is unchanged.
func (s *State) Import(ctx context.Context, doc models.ExportDocument) error {
	doc, err := normalizeDocument(doc)
	if err != nil {
		return err
	}

	next := map[string]any{
		repository.KeyUsers:    doc.Users,
		repository.KeyPosts:    doc.Posts,
		repository.KeyChildren: doc.Children,
		repository.KeyMeetings: doc.Meetings,
	}
	keys := []string{repository.KeyUsers, repository.KeyPosts, repository.KeyChildren, repository.KeyMeetings}

	s.mu.Lock()
	prev := map[string]any{
		repository.KeyUsers:    s.users,
		repository.KeyPosts:    s.posts,
		repository.KeyChildren: s.children,
		repository.KeyMeetings: s.meetings,
	}

	dropCurrent := s.current != nil &&
		!slices.ContainsFunc(doc.Users, func(u models.User) bool { return u.ID == s.current.ID })
	if dropCurrent {
		next[repository.KeyCurrentUser] = nil
		prev[repository.KeyCurrentUser] = s.current
		keys = append(keys, repository.KeyCurrentUser)
	}

	var written []string
	for _, key := range keys {
		if err := s.store.Save(ctx, key, next[key]); err != nil {
			for _, done := range written {
				if rbErr := s.store.Save(ctx, done, prev[done]); rbErr != nil {
					s.logger.ErrorContext(ctx, "import rollback failed",
						slog.String("key", done), slog.String("error", rbErr.Error()))
				}
			}
			s.mu.Unlock()
			return fmt.Errorf("import: %w", err)
		}
		written = append(written, key)
	}

	s.users = doc.Users
	s.posts = doc.Posts
	s.children = doc.Children
	s.meetings = doc.Meetings
	if dropCurrent {
		s.current = nil
		s.view = models.ViewHome
	}
	s.observeIDs()
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionAll, Action: "import"})
	return nil
}

// normalizeDocument checks doc against the rules the actions enforce and
// returns a copy with canonical usernames and non-nil collections.
func normalizeDocument(doc models.ExportDocument) (models.ExportDocument, error) {
	out := models.ExportDocument{
		Users:    slices.Clone(orEmpty(doc.Users)),
		Posts:    orEmpty(doc.Posts),
		Children: orEmpty(doc.Children),
		Meetings: orEmpty(doc.Meetings),
	}

	seen := make(map[string]struct{}, len(out.Users))
	for i, u := range out.Users {
		if u.ID == "" {
			return out, models.NewValidationError("every user needs an id")
		}
		username, err := validation.NormalizeUsername(u.Username)
		if err != nil {
			return out, models.NewValidationError(fmt.Sprintf("user %s: %s", u.ID, err))
		}
		if _, dup := seen[username]; dup {
			return out, models.NewValidationError(fmt.Sprintf("duplicate username %q", username))
		}
		seen[username] = struct{}{}
		if !u.Department.Valid() {
			return out, models.NewValidationError(fmt.Sprintf("user %s has unknown department %q", u.ID, u.Department))
		}
		if !u.Role.Valid() {
			return out, models.NewValidationError(fmt.Sprintf("user %s has unknown role %q", u.ID, u.Role))
		}
		out.Users[i].Username = username
	}
	for _, p := range out.Posts {
		if p.ID == "" {
			return out, models.NewValidationError("every post needs an id")
		}
		if p.Likes < 0 {
			return out, models.NewValidationError(fmt.Sprintf("post %s has negative likes", p.ID))
		}
		if !p.AuthorDept.Valid() {
			return out, models.NewValidationError(fmt.Sprintf("post %s has unknown department %q", p.ID, p.AuthorDept))
		}
	}
	for _, m := range out.Meetings {
		if m.ID == "" {
			return out, models.NewValidationError("every meeting needs an id")
		}
		if !m.Dept.Valid() {
			return out, models.NewValidationError(fmt.Sprintf("meeting %s has unknown department %q", m.ID, m.Dept))
		}
	}
	for _, c := range out.Children {
		if c.ID == "" {
			return out, models.NewValidationError("every child needs an id")
		}
		if !c.ClassLevel.Valid() {
			return out, models.NewValidationError(fmt.Sprintf("child %s has unknown class level %q", c.ID, c.ClassLevel))
		}
		if !c.Status.Valid() {
			return out, models.NewValidationError(fmt.Sprintf("child %s has unknown status %q", c.ID, c.Status))
		}
	}
	return out, nil
}

// Wipe removes every persisted record and empties memory.
func (s *State) Wipe(ctx context.Context) error {
	s.mu.Lock()
	if err := s.store.Clear(ctx); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("wipe: %w", err)
	}
	s.users = []models.User{}
	s.posts = []models.Post{}
	s.meetings = []models.Meeting{}
	s.children = []models.Child{}
	s.current = nil
	s.view = models.ViewHome
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionAll, Action: "wipe"})
	return nil
}
