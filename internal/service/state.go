// Package service holds the domain state: in-memory collections mutated by
// typed actions and written through to the persisted store.
package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"nexus/internal/models"
	"nexus/internal/repository"
)

// DisplayDateLayout formats the date strings stored on meetings and children.
const DisplayDateLayout = "02/01/2006"

// Persister is the slice of the persisted store the state needs.
type Persister interface {
	Load(ctx context.Context, key string, dest any)
	Save(ctx context.Context, key string, value any) error
	Clear(ctx context.Context) error
}

// Collection names a persisted collection in change events.
type Collection string

const (
	CollectionUsers       Collection = "users"
	CollectionPosts       Collection = "posts"
	CollectionMeetings    Collection = "meetings"
	CollectionChildren    Collection = "children"
	CollectionCurrentUser Collection = "current_user"
	CollectionView        Collection = "view"
	CollectionAll         Collection = "all"
)

// Change describes one committed mutation.
type Change struct {
	Collection Collection `json:"collection"`
	Action     string     `json:"action"`
	ID         string     `json:"id,omitempty"`
}

// Snapshot is a consistent copy of the whole state.
type Snapshot struct {
	Users       []models.User    `json:"users"`
	Posts       []models.Post    `json:"posts"`
	Meetings    []models.Meeting `json:"meetings"`
	Children    []models.Child   `json:"children"`
	CurrentUser *models.User     `json:"currentUser"`
	View        models.View      `json:"view"`
}

// State is the single source of truth for the application data.
// Every action computes the next collection, saves it, and only then commits
// it to memory, so a failed save leaves the state untouched.
type State struct {
	mu       sync.RWMutex
	store    Persister
	ids      *IDGenerator
	now      func() time.Time
	logger   *slog.Logger
	users    []models.User
	posts    []models.Post
	meetings []models.Meeting
	children []models.Child
	current  *models.User
	view     models.View

	obsMu     sync.RWMutex
	observers []func(Change)
}

// Option configures a State.
type Option func(*State)

// WithClock replaces time.Now for timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		s.now = now
	}
}

// WithLogger sets the logger for action failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *State) {
		s.logger = l
	}
}

// NewState returns an empty state over store. Call Load to restore persisted data.
func NewState(store Persister, opts ...Option) *State {
	s := &State{
		store:    store,
		now:      time.Now,
		logger:   slog.Default(),
		users:    []models.User{},
		posts:    []models.Post{},
		meetings: []models.Meeting{},
		children: []models.Child{},
		view:     models.ViewHome,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ids = NewIDGenerator(s.now)
	return s
}

type records struct {
	users    []models.User
	posts    []models.Post
	meetings []models.Meeting
	children []models.Child
	current  *models.User
}

func (s *State) read(ctx context.Context) records {
	var r records
	s.store.Load(ctx, repository.KeyUsers, &r.users)
	s.store.Load(ctx, repository.KeyPosts, &r.posts)
	s.store.Load(ctx, repository.KeyChildren, &r.children)
	s.store.Load(ctx, repository.KeyMeetings, &r.meetings)
	s.store.Load(ctx, repository.KeyCurrentUser, &r.current)
	return r
}

// apply must be called with mu held.
func (s *State) apply(r records) {
	s.users = orEmpty(r.users)
	s.posts = orEmpty(r.posts)
	s.meetings = orEmpty(r.meetings)
	s.children = orEmpty(r.children)
	s.current = r.current
	s.observeIDs()
}

// Load restores all five records from the store. Missing or unreadable
// records come back empty.
func (s *State) Load(ctx context.Context) {
	r := s.read(ctx)

	s.mu.Lock()
	s.apply(r)
	s.view = models.ViewHome
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "state restored",
		slog.Int("users", len(r.users)),
		slog.Int("posts", len(r.posts)),
		slog.Int("meetings", len(r.meetings)),
		slog.Int("children", len(r.children)),
		slog.Bool("session", r.current != nil),
	)
}

// Reload re-reads the store after another process changed it. The current
// view is kept unless the reloaded session may no longer open it. Observers
// are not notified.
func (s *State) Reload(ctx context.Context) {
	r := s.read(ctx)

	s.mu.Lock()
	s.apply(r)
	if !models.ViewAvailable(s.current, s.view) {
		s.view = models.ViewHome
	}
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "state reloaded", slog.Int("users", len(r.users)))
}

// observeIDs must be called with mu held.
func (s *State) observeIDs() {
	for _, u := range s.users {
		s.ids.Observe(u.ID)
	}
	for _, p := range s.posts {
		s.ids.Observe(p.ID)
	}
	for _, m := range s.meetings {
		s.ids.Observe(m.ID)
	}
	for _, c := range s.children {
		s.ids.Observe(c.ID)
	}
}

// Subscribe registers fn to run after every committed action.
func (s *State) Subscribe(fn func(Change)) {
	s.obsMu.Lock()
	s.observers = append(s.observers, fn)
	s.obsMu.Unlock()
}

func (s *State) notify(ch Change) {
	s.obsMu.RLock()
	observers := slices.Clone(s.observers)
	s.obsMu.RUnlock()
	for _, fn := range observers {
		fn(ch)
	}
}

// Users returns the registered users in registration order.
func (s *State) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

// Posts returns the feed, most recent first.
func (s *State) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.posts)
}

// Meetings returns every meeting, most recent first.
func (s *State) Meetings() []models.Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.meetings)
}

// Children returns the children registry, most recent first.
func (s *State) Children() []models.Child {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.children)
}

// CurrentUser returns a copy of the active user, or nil.
func (s *State) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.current)
}

// UserByID looks up a registered user.
func (s *State) UserByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// Snapshot returns a copy of the whole state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Users:       slices.Clone(s.users),
		Posts:       slices.Clone(s.posts),
		Meetings:    slices.Clone(s.meetings),
		Children:    slices.Clone(s.children),
		CurrentUser: cloneUser(s.current),
		View:        s.view,
	}
}

func (s *State) today() string {
	return s.now().Format(DisplayDateLayout)
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// prepend returns a new slice with v in front of in.
func prepend[T any](in []T, v T) []T {
	out := make([]T, 0, len(in)+1)
	out = append(out, v)
	return append(out, in...)
}
