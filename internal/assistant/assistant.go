// Package assistant wraps the hosted language model: bounded-window chat and
// structured attendance insights.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nexus/internal/models"
	"nexus/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// Client issues chat and insight requests through a Generator.
type Client struct {
	gen Generator
}

// NewClient wraps gen.
func NewClient(gen Generator) *Client {
	return &Client{gen: gen}
}

// Window returns the most recent HistoryWindow messages of history.
func Window(history []models.ChatMessage) []models.ChatMessage {
	if len(history) <= HistoryWindow {
		return history
	}
	return history[len(history)-HistoryWindow:]
}

// Chat sends the windowed history plus message and returns the model's reply.
// Errors are returned untouched; substituting FallbackReply is up to the caller.
func (c *Client) Chat(ctx context.Context, history []models.ChatMessage, message string) (reply string, err error) {
	window := Window(history)
	turns := make([]Turn, 0, len(window)+1)
	for _, m := range window {
		turns = append(turns, Turn{Role: m.Role, Text: m.Text})
	}
	turns = append(turns, Turn{Role: models.ChatRoleUser, Text: message})

	ctx, span := observability.StartSpan(ctx, "assistant.chat", attribute.Int("assistant.turns", len(turns)))
	start := time.Now()
	observability.LogAsyncOperationStart(ctx, "assistant.chat", map[string]interface{}{"turns": len(turns)})
	defer func() {
		observability.EndSpan(span, err)
		if err != nil {
			observability.AssistantRequests.WithLabelValues("chat", "error").Inc()
			observability.LogAsyncOperationError(ctx, "assistant.chat", err, nil)
			return
		}
		observability.AssistantRequests.WithLabelValues("chat", "ok").Inc()
		observability.LogAsyncOperationEnd(ctx, "assistant.chat", map[string]interface{}{
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}()

	return c.gen.Generate(ctx, Request{System: SystemContext, Turns: turns})
}

// AttendanceSummary is the per-child digest sent to the model.
type AttendanceSummary struct {
	Name          string `json:"name"`
	TotalSundays  int    `json:"totalSundays"`
	PresenceCount int    `json:"presenceCount"`
	LastStatus    bool   `json:"lastStatus"`
}

// Summarize digests records per child, in children order. LastStatus is the
// presence flag of the child's last record, false when there are none.
func Summarize(children []models.Child, records []models.AttendanceRecord) []AttendanceSummary {
	out := make([]AttendanceSummary, 0, len(children))
	for _, child := range children {
		s := AttendanceSummary{Name: child.Name}
		for _, r := range records {
			if r.ChildID != child.ID {
				continue
			}
			s.TotalSundays++
			if r.Present {
				s.PresenceCount++
			}
			s.LastStatus = r.Present
		}
		out = append(out, s)
	}
	return out
}

// Insights asks the model for an attendance report. It returns nil on any
// network or parse failure.
func (c *Client) Insights(ctx context.Context, children []models.Child, records []models.AttendanceRecord) *models.AttendanceReport {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Summarize(children, records)); err != nil {
		observability.LogAsyncOperationError(ctx, "assistant.insights", err, nil)
		return nil
	}
	prompt := insightsPromptPrefix + string(bytes.TrimRight(buf.Bytes(), "\n"))

	ctx, span := observability.StartSpan(ctx, "assistant.insights", attribute.Int("assistant.children", len(children)))
	text, err := c.gen.Generate(ctx, Request{
		System: SystemContext + insightsFocus,
		Turns:  []Turn{{Role: models.ChatRoleUser, Text: prompt}},
		Schema: insightSchema(),
	})
	var report *models.AttendanceReport
	if err == nil {
		report, err = ParseReport(text)
	}
	observability.EndSpan(span, err)

	if err != nil {
		observability.AssistantRequests.WithLabelValues("insights", "error").Inc()
		observability.LogAsyncOperationError(ctx, "assistant.insights", err, nil)
		return nil
	}
	observability.AssistantRequests.WithLabelValues("insights", "ok").Inc()
	return report
}

var errEmptyReport = errors.New("empty insights response")

// ParseReport decodes a model response, requiring every schema field.
func ParseReport(text string) (*models.AttendanceReport, error) {
	if text == "" {
		return nil, errEmptyReport
	}

	var raw struct {
		Insights *[]struct {
			Target    *string `json:"target"`
			RiskLevel *string `json:"riskLevel"`
			Analysis  *string `json:"analysis"`
			Action    *string `json:"action"`
		} `json:"insights"`
		GeneralTrend *string `json:"generalTrend"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("decode insights: %w", err)
	}
	if raw.Insights == nil || raw.GeneralTrend == nil {
		return nil, errors.New("insights response missing required fields")
	}

	report := &models.AttendanceReport{
		Insights:     make([]models.AttendanceInsight, 0, len(*raw.Insights)),
		GeneralTrend: *raw.GeneralTrend,
	}
	for i, in := range *raw.Insights {
		if in.Target == nil || in.RiskLevel == nil || in.Analysis == nil || in.Action == nil {
			return nil, fmt.Errorf("insight %d missing required fields", i)
		}
		report.Insights = append(report.Insights, models.AttendanceInsight{
			Target:    *in.Target,
			RiskLevel: *in.RiskLevel,
			Analysis:  *in.Analysis,
			Action:    *in.Action,
		})
	}
	return report, nil
}
