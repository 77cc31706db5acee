package dsl

import "github.com/surveyflow/surveyflow/pkg/domain"

// QuestionBuilder provides a fluent API for configuring a question.
// Methods that do not apply to the question's kind are recorded anyway and
// ignored by the engine; the validator reports the obvious mismatches.
type QuestionBuilder struct {
	q       domain.Question
	builder *Builder
}

// Optional marks the question as not required.
func (qb *QuestionBuilder) Optional() *QuestionBuilder {
	qb.q.Required = false
	return qb
}

// Next sets the static successor.
func (qb *QuestionBuilder) Next(id string) *QuestionBuilder {
	qb.q.NextID = id
	return qb
}

// Option appends one option.
func (qb *QuestionBuilder) Option(key, label string) *QuestionBuilder {
	qb.q.Options = append(qb.q.Options, domain.Option{Key: key, Label: label})
	return qb
}

// Options appends options whose label reference equals the key.
func (qb *QuestionBuilder) Options(keys ...string) *QuestionBuilder {
	for _, k := range keys {
		qb.Option(k, k)
	}
	return qb
}

// Branch routes a single-branch key to its successor.
func (qb *QuestionBuilder) Branch(key, next string) *QuestionBuilder {
	if qb.q.NextIDByKey == nil {
		qb.q.NextIDByKey = make(map[string]string)
	}
	qb.q.NextIDByKey[key] = next
	return qb
}

// Yes sets the successor for the yes answer.
func (qb *QuestionBuilder) Yes(next string) *QuestionBuilder {
	qb.q.NextIDIfYes = next
	return qb
}

// No sets the successor for the no answer.
func (qb *QuestionBuilder) No(next string) *QuestionBuilder {
	qb.q.NextIDIfNo = next
	return qb
}

// Keys overrides the stored yes/no answer keys.
func (qb *QuestionBuilder) Keys(yes, no string) *QuestionBuilder {
	qb.q.YesKey = yes
	qb.q.NoKey = no
	return qb
}

// ChoiceLabels sets the yes/no display references.
func (qb *QuestionBuilder) ChoiceLabels(yes, no string) *QuestionBuilder {
	qb.q.YesLabel = yes
	qb.q.NoLabel = no
	return qb
}

// Subflow maps a multi-select key to the entry question of its sub-flow.
func (qb *QuestionBuilder) Subflow(key, start string) *QuestionBuilder {
	if qb.q.SubflowStartIDByKey == nil {
		qb.q.SubflowStartIDByKey = make(map[string]string)
	}
	qb.q.SubflowStartIDByKey[key] = start
	return qb
}

// Priority sets the order in which selected sub-flows are enqueued.
func (qb *QuestionBuilder) Priority(keys ...string) *QuestionBuilder {
	qb.q.Priority = append([]string{}, keys...)
	return qb
}

// Fallback sets the successor used when nothing is selected.
func (qb *QuestionBuilder) Fallback(id string) *QuestionBuilder {
	qb.q.FallbackNextID = id
	return qb
}

// MaxDuration sets the recording limit in seconds.
func (qb *QuestionBuilder) MaxDuration(sec int) *QuestionBuilder {
	qb.q.MaxDurationSec = sec
	return qb
}

// MaxCount sets the number of photos allowed.
func (qb *QuestionBuilder) MaxCount(n int) *QuestionBuilder {
	qb.q.MaxCount = n
	return qb
}

// MultiLine allows line breaks in a free text answer.
func (qb *QuestionBuilder) MultiLine() *QuestionBuilder {
	qb.q.SingleLine = false
	return qb
}

// InputType sets the keyboard hint of a free text question.
func (qb *QuestionBuilder) InputType(t domain.InputType) *QuestionBuilder {
	qb.q.InputType = t
	return qb
}

// Text registers display text for the question title.
func (qb *QuestionBuilder) Text(text string) *QuestionBuilder {
	qb.builder.Label(qb.q.Title, text)
	return qb
}

// Question returns a copy of what has been configured so far.
func (qb *QuestionBuilder) Question() domain.Question {
	return qb.q
}
