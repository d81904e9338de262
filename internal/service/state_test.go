package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"nexus/internal/models"
	"nexus/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestState(t *testing.T) (*State, *repository.Store) {
	t.Helper()
	store := repository.NewStore(repository.NewMemoryKV())
	return NewState(store, WithClock(fixedClock)), store
}

// persisterStub is a stub for Persister.
type persisterStub struct {
	loadFn  func(context.Context, string, any)
	saveFn  func(context.Context, string, any) error
	clearFn func(context.Context) error
}

func (p *persisterStub) Load(ctx context.Context, key string, dest any) { p.loadFn(ctx, key, dest) }
func (p *persisterStub) Save(ctx context.Context, key string, value any) error {
	return p.saveFn(ctx, key, value)
}
func (p *persisterStub) Clear(ctx context.Context) error { return p.clearFn(ctx) }

func failingPersister(err error) *persisterStub {
	return &persisterStub{
		loadFn:  func(context.Context, string, any) {},
		saveFn:  func(context.Context, string, any) error { return err },
		clearFn: func(context.Context) error { return err },
	}
}

func register(t *testing.T, s *State, name, username string, dept models.Department) models.User {
	t.Helper()
	u, err := s.Register(context.Background(), RegisterInput{Name: name, Username: username, Department: dept})
	require.NoError(t, err)
	return u
}

// assertPersisted checks that a fresh State over store sees exactly what s holds.
func assertPersisted(t *testing.T, s *State, store *repository.Store) {
	t.Helper()
	reloaded := NewState(store, WithClock(fixedClock))
	reloaded.Load(context.Background())

	want := s.Snapshot()
	got := reloaded.Snapshot()
	assert.Equal(t, want.Users, got.Users)
	assert.Equal(t, want.Posts, got.Posts)
	assert.Equal(t, want.Meetings, got.Meetings)
	assert.Equal(t, want.Children, got.Children)
	assert.Equal(t, want.CurrentUser, got.CurrentUser)
}

func TestNewState_Empty(t *testing.T) {
	s, _ := newTestState(t)
	s.Load(context.Background())

	snap := s.Snapshot()
	assert.Empty(t, snap.Users)
	assert.NotNil(t, snap.Users)
	assert.Nil(t, snap.CurrentUser)
	assert.Equal(t, models.ViewHome, snap.View)
}

func TestState_RegisterScenario(t *testing.T) {
	ctx := context.Background()
	s, store := newTestState(t)

	ana := register(t, s, "Ana", "ana1", models.DeptJuventude)
	assert.Equal(t, models.RoleServo, ana.Role)
	assert.Equal(t, testNow, ana.JoinedAt)

	// reload: the current user is restored from the store
	reloaded := NewState(store, WithClock(fixedClock))
	reloaded.Load(ctx)
	require.NotNil(t, reloaded.CurrentUser())
	assert.Equal(t, ana, *reloaded.CurrentUser())

	post, err := reloaded.CreatePost(ctx, *reloaded.CurrentUser(), "Graça e paz")
	require.NoError(t, err)
	posts := reloaded.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, 0, posts[0].Likes)
	assert.Equal(t, "Ana", posts[0].AuthorName)
	assert.Equal(t, models.DeptJuventude, posts[0].AuthorDept)

	_, err = reloaded.LikePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Posts()[0].Likes)

	assertPersisted(t, reloaded, store)
}

func TestState_RoundTripAfterMixedSequence(t *testing.T) {
	ctx := context.Background()
	s, store := newTestState(t)

	ana := register(t, s, "Ana", "ana1", models.DeptIgrejaInfantil)
	register(t, s, "Bruno", "bruno", models.DeptMidia)

	m1, err := s.CreateMeeting(ctx, ana, CreateMeetingInput{Title: "Planeamento"})
	require.NoError(t, err)
	_, err = s.CreateMeeting(ctx, ana, CreateMeetingInput{Title: "Ensaio", Location: "Sala 3"})
	require.NoError(t, err)
	c1, err := s.CreateChild(ctx, CreateChildInput{Name: "Miguel", Age: 7, ClassLevel: models.ClassJunior})
	require.NoError(t, err)
	_, err = s.CreateChild(ctx, CreateChildInput{Name: "Rute", Age: 3, ClassLevel: models.ClassJardim})
	require.NoError(t, err)
	_, err = s.CreatePost(ctx, ana, "Bom dia")
	require.NoError(t, err)

	require.NoError(t, s.DeleteMeeting(ctx, m1.ID))
	require.NoError(t, s.DeleteChild(ctx, c1.ID))

	assert.Len(t, s.Meetings(), 1)
	assert.Len(t, s.Children(), 1)
	assertPersisted(t, s, store)
}

func TestState_SaveFailureLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("quota exceeded")
	s := NewState(failingPersister(boom), WithClock(fixedClock))

	_, err := s.Register(ctx, RegisterInput{Name: "Ana", Username: "ana1", Department: models.DeptJuventude})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Users())
	assert.Nil(t, s.CurrentUser())

	_, err = s.CreatePost(ctx, models.User{ID: "1"}, "Olá")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Posts())

	_, err = s.CreateMeeting(ctx, models.User{ID: "1", Department: models.DeptMidia}, CreateMeetingInput{Title: "x"})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Meetings())

	_, err = s.CreateChild(ctx, CreateChildInput{Name: "Rute", Age: 3, ClassLevel: models.ClassJardim})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Children())

	assert.ErrorIs(t, s.Wipe(ctx), boom)
}

func TestState_ObserversReceiveChanges(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestState(t)

	var got []Change
	s.Subscribe(func(ch Change) { got = append(got, ch) })

	ana := register(t, s, "Ana", "ana1", models.DeptJuventude)
	post, err := s.CreatePost(ctx, ana, "Olá")
	require.NoError(t, err)
	_, err = s.LikePost(ctx, post.ID)
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	// failed actions notify nothing
	_, err = s.LikePost(ctx, "missing")
	require.Error(t, err)

	assert.Equal(t, []Change{
		{Collection: CollectionUsers, Action: "register", ID: ana.ID},
		{Collection: CollectionPosts, Action: "create", ID: post.ID},
		{Collection: CollectionPosts, Action: "like", ID: post.ID},
		{Collection: CollectionCurrentUser, Action: "logout"},
	}, got)
}

func TestState_LoadToleratesCorruptRecords(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, repository.KeyUsers, `[{"id":"1","username":"ana1"}]`))
	require.NoError(t, kv.Set(ctx, repository.KeyPosts, `garbage`))

	s := NewState(repository.NewStore(kv), WithClock(fixedClock))
	s.Load(ctx)

	assert.Len(t, s.Users(), 1)
	assert.Empty(t, s.Posts())
	assert.NotNil(t, s.Posts())
}

func TestState_ReadsReturnCopies(t *testing.T) {
	s, _ := newTestState(t)
	register(t, s, "Ana", "ana1", models.DeptJuventude)

	users := s.Users()
	users[0].Name = "changed"
	assert.Equal(t, "Ana", s.Users()[0].Name)

	cur := s.CurrentUser()
	cur.Name = "changed"
	assert.Equal(t, "Ana", s.CurrentUser().Name)
}

func TestReload_PicksUpOtherWriterAndKeepsView(t *testing.T) {
	ctx := context.Background()
	writer, store := newTestState(t)
	reader := NewState(store, WithClock(fixedClock))
	reader.Load(ctx)

	ana := register(t, writer, "Ana", "ana1", models.DeptJuventude)
	reader.Reload(ctx)
	require.Len(t, reader.Users(), 1)
	require.NoError(t, reader.Navigate(reader.CurrentUser(), models.ViewFeed))

	var changes []Change
	reader.Subscribe(func(ch Change) { changes = append(changes, ch) })

	_, err := writer.CreatePost(ctx, ana, "Graça e paz")
	require.NoError(t, err)
	reader.Reload(ctx)

	assert.Len(t, reader.Posts(), 1)
	assert.Equal(t, models.ViewFeed, reader.CurrentView())
	assert.Empty(t, changes, "reload does not notify observers")
}
