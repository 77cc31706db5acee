package runner

import (
	"github.com/surveyflow/surveyflow"
	"github.com/surveyflow/surveyflow/pkg/domain"
)

// Labeler resolves display references to text.
type Labeler interface {
	Label(ref string) string
}

// Choice is one selectable answer with its resolved text.
type Choice struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Prompt is a question ready to show: every reference is already resolved.
type Prompt struct {
	QuestionID string           `json:"question_id"`
	Kind       domain.Kind      `json:"kind"`
	Text       string           `json:"text"`
	Required   bool             `json:"required"`
	Multiple   bool             `json:"multiple,omitempty"`
	MultiLine  bool             `json:"multi_line,omitempty"`
	InputType  domain.InputType `json:"input_type,omitempty"`
	Choices    []Choice         `json:"choices,omitempty"`
	// MaxDurationSec and MaxCount are capture hints for media questions.
	MaxDurationSec int `json:"max_duration_sec,omitempty"`
	MaxCount       int `json:"max_count,omitempty"`
}

// NewPrompt resolves q against labels.
func NewPrompt(q domain.Question, labels Labeler) Prompt {
	p := Prompt{
		QuestionID:     q.ID,
		Kind:           q.Kind,
		Text:           labels.Label(q.Title),
		Required:       q.Required,
		Multiple:       q.Kind == domain.KindMultiQueue,
		MultiLine:      q.Kind == domain.KindFree && !q.SingleLine,
		InputType:      q.InputType,
		MaxDurationSec: q.MaxDurationSec,
		MaxCount:       q.MaxCount,
	}
	switch {
	case q.Kind == domain.KindYesNo:
		p.Choices = []Choice{
			{Key: q.Yes(), Label: yesNoLabel(labels, q.YesLabel, q.Yes(), "Yes")},
			{Key: q.No(), Label: yesNoLabel(labels, q.NoLabel, q.No(), "No")},
		}
	case q.Kind.HasOptions():
		for _, opt := range q.Options {
			p.Choices = append(p.Choices, Choice{Key: opt.Key, Label: labels.Label(labelOr(opt.Label, opt.Key))})
		}
	}
	return p
}

// yesNoLabel resolves the display text of a yes/no choice. An explicit label
// wins, then a catalog entry for the key, then the plain English word.
func yesNoLabel(labels Labeler, explicit, key, word string) string {
	if explicit != "" {
		return labels.Label(explicit)
	}
	if text := labels.Label(key); text != key {
		return text
	}
	return word
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}

// EventType tells handlers what an Event carries.
type EventType string

const (
	EventQuestion EventType = "question"
	EventError    EventType = "error"
	EventSummary  EventType = "summary"
	EventDone     EventType = "done"
)

// SummaryLine is one answered (or skipped) question in a summary.
type SummaryLine struct {
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
	Answer     string `json:"answer"`
	Answered   bool   `json:"answered"`
	Valid      bool   `json:"valid"`
}

// Event is one message from the runner to the respondent.
type Event struct {
	Type      EventType     `json:"type"`
	SessionID string        `json:"session_id,omitempty"`
	Prompt    *Prompt       `json:"prompt,omitempty"`
	Message   string        `json:"message,omitempty"`
	Summary   []SummaryLine `json:"summary,omitempty"`
	Complete  bool          `json:"complete,omitempty"`
}

// NewSummary resolves summary items against labels.
func NewSummary(items []surveyflow.SummaryItem, labels Labeler) []SummaryLine {
	out := make([]SummaryLine, 0, len(items))
	for _, it := range items {
		out = append(out, SummaryLine{
			QuestionID: it.Question.ID,
			Text:       labels.Label(it.Question.Title),
			Answer:     it.Answer,
			Answered:   it.Answered,
			Valid:      it.Valid,
		})
	}
	return out
}
