// Package seed builds demo data for development stores. The generated
// document goes through the same import path as a user backup.
package seed

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"nexus/internal/models"
	"nexus/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// Options sizes the generated data set.
type Options struct {
	Users    int
	Posts    int
	Meetings int
	Children int
	// MaxDays bounds how far back post timestamps are spread.
	MaxDays int
	// Seed makes generation reproducible when non-zero.
	Seed int64
}

// DefaultOptions is what nexusctl seed uses without flags.
var DefaultOptions = Options{Users: 12, Posts: 40, Meetings: 10, Children: 15, MaxDays: 14}

var meetingTopics = []string{
	"Ensaio geral", "Reunião de planejamento", "Escala do mês", "Culto de jovens",
	"Treinamento de voluntários", "Retiro espiritual", "Vigília", "Ação social",
}

var postOpeners = []string{
	"Graça e paz, família!", "Glória a Deus!", "Bom dia, servos!", "Paz do Senhor!",
}

// Factory generates domain records with gofakeit.
type Factory struct {
	faker *gofakeit.Faker
	ids   *service.IDGenerator
	now   func() time.Time
}

// NewFactory creates a Factory. A zero seed draws a random one.
func NewFactory(seed int64, now func() time.Time) *Factory {
	if now == nil {
		now = time.Now
	}
	return &Factory{
		faker: gofakeit.New(seed),
		ids:   service.NewIDGenerator(now),
		now:   now,
	}
}

// User builds a member of a random department.
func (f *Factory) User() models.User {
	first := f.faker.FirstName()
	last := f.faker.LastName()
	depts := models.AllDepartments()
	return models.User{
		ID:         f.ids.Next(),
		Name:       first + " " + last,
		Username:   strings.ToLower(strings.ReplaceAll(first, " ", "")) + fmt.Sprint(f.faker.Number(10, 999)),
		Department: depts[f.faker.Number(0, len(depts)-1)],
		Role:       []models.Role{models.RoleServo, models.RoleServo, models.RoleLider, models.RoleAdmin}[f.faker.Number(0, 3)],
		JoinedAt:   f.now().Add(-time.Duration(f.faker.Number(1, 365)) * 24 * time.Hour),
	}
}

// Post builds a post by author within the last maxDays days.
func (f *Factory) Post(author models.User, maxDays int) models.Post {
	if maxDays <= 0 {
		maxDays = 7
	}
	back := time.Duration(f.faker.Number(0, maxDays*24*60-1)) * time.Minute
	return models.Post{
		ID:         f.ids.Next(),
		AuthorID:   author.ID,
		AuthorName: author.Name,
		AuthorDept: author.Department,
		Content:    f.faker.RandomString(postOpeners) + " " + f.faker.Sentence(12),
		Timestamp:  f.now().Add(-back),
		Likes:      f.faker.Number(0, 30),
	}
}

// Meeting builds an agenda item for dept dated within the next month.
func (f *Factory) Meeting(dept models.Department) models.Meeting {
	date := f.now().AddDate(0, 0, f.faker.Number(0, 30))
	return models.Meeting{
		ID:       f.ids.Next(),
		Dept:     dept,
		Title:    f.faker.RandomString(meetingTopics),
		Date:     date.Format(service.DisplayDateLayout),
		Location: models.DefaultMeetingLocation,
	}
}

// Child builds a registry entry whose class matches the age.
func (f *Factory) Child() models.Child {
	age := f.faker.Number(2, 12)
	status := models.ChildActive
	if f.faker.Number(0, 9) == 0 {
		status = models.ChildInactive
	}
	return models.Child{
		ID:         f.ids.Next(),
		Name:       f.faker.FirstName() + " " + f.faker.LastName(),
		Age:        age,
		ClassLevel: ClassForAge(age),
		JoinedAt:   f.now().AddDate(0, -f.faker.Number(0, 24), 0).Format(service.DisplayDateLayout),
		Status:     status,
	}
}

// ClassForAge maps an age onto the children's-ministry class.
func ClassForAge(age int) models.ClassLevel {
	switch {
	case age <= 5:
		return models.ClassJardim
	case age <= 8:
		return models.ClassJunior
	default:
		return models.ClassSenior
	}
}

// Document generates a complete backup document sized by opts. Usernames are
// unique and every collection is ordered the way the state keeps it.
func (f *Factory) Document(opts Options) models.ExportDocument {
	doc := models.ExportDocument{
		Users:    make([]models.User, 0, opts.Users),
		Posts:    make([]models.Post, 0, opts.Posts),
		Meetings: make([]models.Meeting, 0, opts.Meetings),
		Children: make([]models.Child, 0, opts.Children),
	}

	taken := make(map[string]struct{}, opts.Users)
	for len(doc.Users) < opts.Users {
		u := f.User()
		if _, dup := taken[u.Username]; dup {
			continue
		}
		taken[u.Username] = struct{}{}
		doc.Users = append(doc.Users, u)
	}

	if len(doc.Users) > 0 {
		for range opts.Posts {
			author := doc.Users[f.faker.Number(0, len(doc.Users)-1)]
			doc.Posts = append(doc.Posts, f.Post(author, opts.MaxDays))
		}
		for range opts.Meetings {
			dept := doc.Users[f.faker.Number(0, len(doc.Users)-1)].Department
			doc.Meetings = append(doc.Meetings, f.Meeting(dept))
		}
	}
	for range opts.Children {
		doc.Children = append(doc.Children, f.Child())
	}

	// newest first, matching prepend-on-create
	slices.SortStableFunc(doc.Posts, func(a, b models.Post) int { return b.Timestamp.Compare(a.Timestamp) })
	slices.Reverse(doc.Meetings)
	slices.Reverse(doc.Children)
	return doc
}
