package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"nexus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generatorStub is a stub for Generator.
type generatorStub struct {
	generateFn func(context.Context, Request) (string, error)
	requests   []Request
}

func (g *generatorStub) Generate(ctx context.Context, req Request) (string, error) {
	g.requests = append(g.requests, req)
	return g.generateFn(ctx, req)
}

func replying(text string, err error) *generatorStub {
	return &generatorStub{generateFn: func(context.Context, Request) (string, error) { return text, err }}
}

func history(n int) []models.ChatMessage {
	out := make([]models.ChatMessage, n)
	for i := range out {
		role := models.ChatRoleUser
		if i%2 == 1 {
			role = models.ChatRoleModel
		}
		out[i] = models.ChatMessage{ID: fmt.Sprint(i), Role: role, Text: fmt.Sprintf("msg %d", i), Timestamp: time.Unix(int64(i), 0)}
	}
	return out
}

func TestWindow(t *testing.T) {
	assert.Len(t, Window(history(3)), 3)
	assert.Len(t, Window(history(HistoryWindow)), HistoryWindow)

	w := Window(history(15))
	require.Len(t, w, HistoryWindow)
	assert.Equal(t, "msg 5", w[0].Text)
	assert.Equal(t, "msg 14", w[9].Text)
}

func TestChat_SendsOnlyMostRecentTurns(t *testing.T) {
	gen := replying("Paz do Senhor!", nil)
	c := NewClient(gen)

	reply, err := c.Chat(context.Background(), history(15), "Quando é o culto?")
	require.NoError(t, err)
	assert.Equal(t, "Paz do Senhor!", reply)

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Equal(t, SystemContext, req.System)
	assert.Nil(t, req.Schema)
	require.Len(t, req.Turns, HistoryWindow+1)
	assert.Equal(t, Turn{Role: models.ChatRoleModel, Text: "msg 5"}, req.Turns[0])
	assert.Equal(t, Turn{Role: models.ChatRoleUser, Text: "Quando é o culto?"}, req.Turns[HistoryWindow])
}

func TestChat_ReturnsGeneratorError(t *testing.T) {
	boom := errors.New("503 overloaded")
	c := NewClient(replying("", boom))

	_, err := c.Chat(context.Background(), nil, "Olá")
	assert.ErrorIs(t, err, boom)
}

func TestSummarize(t *testing.T) {
	children := []models.Child{{ID: "a", Name: "Miguel"}, {ID: "b", Name: "Rute"}}
	records := []models.AttendanceRecord{
		{ChildID: "a", Present: true},
		{ChildID: "b", Present: true},
		{ChildID: "a", Present: false},
		{ChildID: "a", Present: true},
	}

	assert.Equal(t, []AttendanceSummary{
		{Name: "Miguel", TotalSundays: 3, PresenceCount: 2, LastStatus: true},
		{Name: "Rute", TotalSundays: 1, PresenceCount: 1, LastStatus: true},
	}, Summarize(children, records))

	none := Summarize([]models.Child{{ID: "c", Name: "Davi"}}, records)
	assert.Equal(t, []AttendanceSummary{{Name: "Davi"}}, none)
}

const validReport = `{"insights":[{"target":"Miguel","riskLevel":"baixo","analysis":"presença estável","action":"manter"}],"generalTrend":"positiva"}`

func TestInsights(t *testing.T) {
	gen := replying(validReport, nil)
	c := NewClient(gen)

	report := c.Insights(context.Background(),
		[]models.Child{{ID: "a", Name: "Miguel"}},
		[]models.AttendanceRecord{{ChildID: "a", Present: true}},
	)
	require.NotNil(t, report)
	assert.Equal(t, "positiva", report.GeneralTrend)
	assert.Equal(t, []models.AttendanceInsight{{Target: "Miguel", RiskLevel: "baixo", Analysis: "presença estável", Action: "manter"}}, report.Insights)

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.True(t, strings.HasSuffix(req.System, " Foco específico em engajamento infantil."))
	assert.NotNil(t, req.Schema)
	assert.Equal(t, []string{"insights", "generalTrend"}, req.Schema.Required)
	require.Len(t, req.Turns, 1)
	assert.Equal(t,
		`Analise os seguintes dados de frequência de crianças no MIR e forneça insights preditivos: [{"name":"Miguel","totalSundays":1,"presenceCount":1,"lastStatus":true}]`,
		req.Turns[0].Text)
}

func TestInsights_NilOnFailure(t *testing.T) {
	tests := []struct {
		name string
		gen  *generatorStub
	}{
		{name: "network error", gen: replying("", errors.New("dial tcp: timeout"))},
		{name: "empty text", gen: replying("", nil)},
		{name: "not json", gen: replying("desculpe", nil)},
		{name: "missing trend", gen: replying(`{"insights":[]}`, nil)},
		{name: "missing insight field", gen: replying(`{"insights":[{"target":"x"}],"generalTrend":"y"}`, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.gen)
			assert.Nil(t, c.Insights(context.Background(), nil, nil))
			assert.Len(t, tt.gen.requests, 1, "no retry")
		})
	}
}

func TestParseReport_EmptyInsightsAllowed(t *testing.T) {
	report, err := ParseReport(`{"insights":[],"generalTrend":"sem dados"}`)
	require.NoError(t, err)
	assert.Empty(t, report.Insights)
	assert.Equal(t, "sem dados", report.GeneralTrend)
}

func TestNewGenerator_WithoutKeyFailsEveryCall(t *testing.T) {
	gen, err := NewGenerator(context.Background(), "", "")
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	reply, err := NewSessions(NewClient(gen), nil).Send(context.Background(), "1", "Olá")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply.Text)
}
