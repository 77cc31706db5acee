package domain

import (
	"slices"
	"strings"
)

// Kind identifies the variant of a Question.
type Kind string

const (
	// KindFree is an open text answer.
	KindFree Kind = "free"
	// KindSingle is a one-of-N selection without branching.
	KindSingle Kind = "single"
	// KindYesNo is a fixed two-way choice, each side with its own successor.
	KindYesNo Kind = "yes_no"
	// KindSingleBranch is a one-of-N selection where each key maps to its own successor.
	KindSingleBranch Kind = "single_branch"
	// KindMultiQueue is a multi-select whose keys may enqueue sub-flows.
	KindMultiQueue Kind = "multi_queue"
	// KindVoice, KindVideo and KindCamera carry an opaque capture reference as the answer.
	KindVoice  Kind = "voice"
	KindVideo  Kind = "video"
	KindCamera Kind = "camera"
)

// Kinds lists every supported Kind in declaration order.
var Kinds = []Kind{
	KindFree, KindSingle, KindYesNo, KindSingleBranch,
	KindMultiQueue, KindVoice, KindVideo, KindCamera,
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return slices.Contains(Kinds, k)
}

// IsMedia reports whether answers of this kind come from a capture layer.
func (k Kind) IsMedia() bool {
	return k == KindVoice || k == KindVideo || k == KindCamera
}

// HasOptions reports whether the kind is choice based.
func (k Kind) HasOptions() bool {
	return k == KindSingle || k == KindSingleBranch || k == KindMultiQueue
}

// KeyedAnswer reports whether answers of this kind are option keys rather
// than respondent text.
func (k Kind) KeyedAnswer() bool {
	return k.HasOptions() || k == KindYesNo
}

// InputType is a rendering hint for free text questions.
type InputType string

const (
	InputText    InputType = "text"
	InputNumber  InputType = "number"
	InputDecimal InputType = "decimal"
	InputEmail   InputType = "email"
	InputPhone   InputType = "phone"
)

// Default answer keys for yes/no questions.
const (
	DefaultYesKey = "yes"
	DefaultNoKey  = "no"
)

// Option is one selectable entry of a choice based question.
type Option struct {
	// Key is stable and locale independent. It is what gets stored as the answer.
	Key string `json:"key" yaml:"key" mapstructure:"key"`
	// Label is an opaque display reference (e.g. a localization key).
	Label string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
}

// Question is a single node of the survey graph.
//
// It is a tagged union: Kind selects which of the payload sections below are
// meaningful. Empty strings stand for absent successor ids.
type Question struct {
	ID       string `json:"id" yaml:"id"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Required bool   `json:"required" yaml:"required"`
	NextID   string `json:"next_id,omitempty" yaml:"next_id,omitempty"`

	// Free
	SingleLine bool      `json:"single_line,omitempty" yaml:"single_line,omitempty"`
	InputType  InputType `json:"input_type,omitempty" yaml:"input_type,omitempty"`

	// Single, SingleBranch, MultiQueue
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`

	// YesNo
	YesKey      string `json:"yes_key,omitempty" yaml:"yes_key,omitempty"`
	NoKey       string `json:"no_key,omitempty" yaml:"no_key,omitempty"`
	YesLabel    string `json:"yes_label,omitempty" yaml:"yes_label,omitempty"`
	NoLabel     string `json:"no_label,omitempty" yaml:"no_label,omitempty"`
	NextIDIfYes string `json:"next_id_if_yes,omitempty" yaml:"next_id_if_yes,omitempty"`
	NextIDIfNo  string `json:"next_id_if_no,omitempty" yaml:"next_id_if_no,omitempty"`

	// SingleBranch
	NextIDByKey map[string]string `json:"next_id_by_key,omitempty" yaml:"next_id_by_key,omitempty"`

	// MultiQueue
	SubflowStartIDByKey map[string]string `json:"subflow_start_id_by_key,omitempty" yaml:"subflow_start_id_by_key,omitempty"`
	Priority            []string          `json:"priority,omitempty" yaml:"priority,omitempty"`
	FallbackNextID      string            `json:"fallback_next_id,omitempty" yaml:"fallback_next_id,omitempty"`

	// Voice, Video, Camera. Not enforced by the engine.
	MaxDurationSec int `json:"max_duration_sec,omitempty" yaml:"max_duration_sec,omitempty"`
	MaxCount       int `json:"max_count,omitempty" yaml:"max_count,omitempty"`
}

// IsValid reports whether answer satisfies the question.
// Optional questions accept anything.
func (q Question) IsValid(answer string) bool {
	if !q.Required {
		return true
	}
	switch q.Kind {
	case KindSingle, KindSingleBranch:
		return q.HasOption(answer)
	case KindYesNo:
		return answer == q.Yes() || answer == q.No()
	default:
		return !IsBlank(answer)
	}
}

// Yes returns the effective yes key.
func (q Question) Yes() string {
	if q.YesKey == "" {
		return DefaultYesKey
	}
	return q.YesKey
}

// No returns the effective no key.
func (q Question) No() string {
	if q.NoKey == "" {
		return DefaultNoKey
	}
	return q.NoKey
}

// HasOption reports whether key is one of the question's option keys.
func (q Question) HasOption(key string) bool {
	for _, opt := range q.Options {
		if opt.Key == key {
			return true
		}
	}
	return false
}

// OptionKeys returns the option keys in declaration order.
func (q Question) OptionKeys() []string {
	keys := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		keys = append(keys, opt.Key)
	}
	return keys
}

// EvaluationOrder returns the order in which multi-select keys enqueue their
// sub-flows: Priority when given, otherwise the options order.
func (q Question) EvaluationOrder() []string {
	if q.Priority != nil {
		return q.Priority
	}
	return q.OptionKeys()
}

// References returns every successor id the question names statically,
// in a deterministic order and without duplicates.
func (q Question) References() []string {
	var refs []string
	seen := make(map[string]bool)
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		refs = append(refs, id)
	}

	switch q.Kind {
	case KindYesNo:
		add(q.NextIDIfYes)
		add(q.NextIDIfNo)
	case KindSingleBranch:
		for _, key := range q.BranchKeys() {
			add(q.NextIDByKey[key])
		}
	case KindMultiQueue:
		for _, key := range q.SubflowKeys() {
			add(q.SubflowStartIDByKey[key])
		}
		add(q.FallbackNextID)
	}
	add(q.NextID)
	return refs
}

// BranchKeys returns the keys of NextIDByKey, option order first, then the
// remaining keys sorted.
func (q Question) BranchKeys() []string {
	return orderedMapKeys(q.OptionKeys(), q.NextIDByKey)
}

// SubflowKeys returns the keys of SubflowStartIDByKey in evaluation order.
func (q Question) SubflowKeys() []string {
	return orderedMapKeys(q.EvaluationOrder(), q.SubflowStartIDByKey)
}

func orderedMapKeys(order []string, m map[string]string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
