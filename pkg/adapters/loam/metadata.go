package loam

// QuestionMetadata is the frontmatter of one question document.
// It uses "mapstructure" tags to match the YAML/JSON keys used in survey files.
type QuestionMetadata struct {
	ID    string `json:"id" mapstructure:"id"`
	Kind  string `json:"kind" mapstructure:"kind"`
	Title string `json:"title" mapstructure:"title"`
	// Start marks the entry question. Without it, the document named "start" is used.
	Start bool `json:"start" mapstructure:"start"`
	// Required defaults to true when omitted.
	Required *bool  `json:"required" mapstructure:"required"`
	NextID   string `json:"next_id" mapstructure:"next_id"`

	SingleLine *bool  `json:"single_line" mapstructure:"single_line"`
	InputType  string `json:"input_type" mapstructure:"input_type"`

	// Options accepts plain keys ("corn") or objects ({key: corn, label: opt.corn}).
	Options []any `json:"options" mapstructure:"options"`

	YesKey      string `json:"yes_key" mapstructure:"yes_key"`
	NoKey       string `json:"no_key" mapstructure:"no_key"`
	YesLabel    string `json:"yes_label" mapstructure:"yes_label"`
	NoLabel     string `json:"no_label" mapstructure:"no_label"`
	NextIDIfYes string `json:"next_id_if_yes" mapstructure:"next_id_if_yes"`
	NextIDIfNo  string `json:"next_id_if_no" mapstructure:"next_id_if_no"`

	NextIDByKey         map[string]string `json:"next_id_by_key" mapstructure:"next_id_by_key"`
	SubflowStartIDByKey map[string]string `json:"subflow_start_id_by_key" mapstructure:"subflow_start_id_by_key"`
	Priority            []string          `json:"priority" mapstructure:"priority"`
	FallbackNextID      string            `json:"fallback_next_id" mapstructure:"fallback_next_id"`

	// Numbers arrive as json.Number in strict mode, so they are decoded by hand.
	MaxDurationSec any `json:"max_duration_sec" mapstructure:"max_duration_sec"`
	MaxCount       any `json:"max_count" mapstructure:"max_count"`

	// Labels adds display text for references used by this question.
	Labels map[string]string `json:"labels" mapstructure:"labels"`
}
