package samples

import (
	"fmt"
	"sort"

	"github.com/surveyflow/surveyflow/pkg/domain"
	"github.com/surveyflow/surveyflow/pkg/dsl"
)

// Names of the built-in graphs.
const (
	NameCrop          = "crop"
	NameAllComponents = "all-components"
	NameCamera        = "camera"
	NameVideo         = "video"
	NameVoice         = "voice"
)

var registry = map[string]func() *domain.Graph{
	NameCrop:          CropSurvey,
	NameAllComponents: AllComponents,
	NameCamera:        CameraTest,
	NameVideo:         VideoTest,
	NameVoice:         VoiceTest,
}

// Names returns the registered sample names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName returns a fresh copy of the named sample graph.
func ByName(name string) (*domain.Graph, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown sample %q (available: %v)", name, Names())
	}
	return build(), nil
}

// CropSurvey asks about the main crop, branches into a short per-crop
// sub-survey, then queues one follow-up per secondary crop.
func CropSurvey() *domain.Graph {
	b := dsl.New("q_start")

	b.YesNo("q_start", "q_start_title").
		ChoiceLabels("yes", "no").
		Yes("q_crop").
		No("q_job")

	b.SingleBranch("q_crop", "q_crop_title").
		Option("maize", "opt_maize").
		Option("rice", "opt_rice").
		Option("wheat", "opt_wheat").
		Option("other", "opt_other").
		Branch("maize", "flow_maize_1").
		Branch("rice", "flow_rice_1").
		Branch("wheat", "flow_wheat_1").
		Branch("other", "q_other_crop")

	// Maize
	b.Free("flow_maize_1", "q_maize_area").InputType(domain.InputNumber).Next("flow_maize_2")
	b.Free("flow_maize_2", "q_maize_variety").Next("q_voice_reason")

	// Rice
	b.Free("flow_rice_1", "q_rice_area").InputType(domain.InputNumber).Next("flow_rice_2")
	b.Free("flow_rice_2", "q_rice_irrigation").Next("q_secondary")

	b.Free("flow_wheat_1", "q_wheat_area").InputType(domain.InputNumber).Next("q_secondary")
	b.Free("q_other_crop", "q_other_crop").Next("q_secondary")

	b.MultiQueue("q_secondary", "q_secondary_title").
		Option("legume", "opt_legume").
		Option("veg", "opt_veg").
		Option("fruit", "opt_fruit").
		Subflow("legume", "flow_legume_1").
		Subflow("veg", "flow_veg_1").
		Subflow("fruit", "flow_fruit_1").
		Priority("legume", "veg", "fruit").
		Fallback("q_job").
		Next("q_job")

	// Sub-flows end on their own; the queue carries the respondent onward.
	b.Free("flow_legume_1", "q_legume_area").InputType(domain.InputNumber)
	b.Free("flow_veg_1", "q_veg_area").InputType(domain.InputNumber)
	b.Free("flow_fruit_1", "q_fruit_count").InputType(domain.InputNumber)

	b.Free("q_job", "q_job_title").Next("q_country")
	b.Free("q_country", "q_country_title")

	b.Voice("q_voice_reason", "q_voice_reason_title").
		Optional().
		MaxDuration(30).
		Next("q_secondary")

	return b.MustBuild()
}

// AllComponents visits every question kind at least once on the "a" path.
func AllComponents() *domain.Graph {
	b := dsl.New("q_yes_no")

	b.YesNo("q_yes_no", "q_yes_no_title").
		ChoiceLabels("yes", "no").
		Yes("q_single").
		No("q_single")

	b.Single("q_single", "q_single_title").
		Option("a", "opt_a").Option("b", "opt_b").Option("c", "opt_c").
		Next("q_single_branch")

	b.SingleBranch("q_single_branch", "q_single_branch_title").
		Option("a", "opt_a").Option("b", "opt_b").Option("c", "opt_c").
		Branch("a", "q_free").
		Branch("b", "q_camera").
		Branch("c", "q_camera")

	b.Free("q_free", "q_free_title").MultiLine().Next("q_multi_queue")

	b.MultiQueue("q_multi_queue", "q_multi_queue_title").
		Option("a", "opt_a").Option("b", "opt_b").Option("c", "opt_c").
		Subflow("a", "sub_flow_a").
		Subflow("b", "sub_flow_b").
		Subflow("c", "sub_flow_c").
		Priority("a", "b", "c").
		Fallback("q_voice").
		Next("q_voice")

	b.Free("sub_flow_a", "q_sub_a").Next("q_voice")
	b.Free("sub_flow_b", "q_sub_b").Next("q_voice")
	b.Free("sub_flow_c", "q_sub_c").Next("q_voice")

	b.Voice("q_voice", "q_voice_title").Optional().MaxDuration(15).Next("q_video")
	b.Video("q_video", "q_video_title").Optional().MaxDuration(20).Next("q_camera")
	b.Camera("q_camera", "q_camera_title").Optional().MaxCount(1).Next("q_thanks")
	b.Free("q_thanks", "q_thanks_title").Optional()

	return b.MustBuild()
}

// CameraTest is three optional photo questions in a row.
func CameraTest() *domain.Graph {
	b := dsl.New("q_photo_reason")
	b.Camera("q_photo_reason", "q_photo_reason_title").Optional().MaxCount(1).Next("q_photo_family")
	b.Camera("q_photo_family", "q_photo_family_title").Optional().MaxCount(1).Next("q_photo_local")
	b.Camera("q_photo_local", "q_photo_local_title").Optional().MaxCount(1)
	return b.MustBuild()
}

// VideoTest is three optional video questions with different limits.
func VideoTest() *domain.Graph {
	b := dsl.New("q_video_reason")
	b.Video("q_video_reason", "q_video_reason_title").Optional().MaxDuration(30).Next("q_video_family")
	b.Video("q_video_family", "q_video_family_title").Optional().MaxDuration(20).Next("q_video_local")
	b.Video("q_video_local", "q_video_local_title").Optional().MaxDuration(25)
	return b.MustBuild()
}

// VoiceTest is three optional voice questions with different limits.
func VoiceTest() *domain.Graph {
	b := dsl.New("q_voice_reason")
	b.Voice("q_voice_reason", "q_voice_reason_title").Optional().MaxDuration(30).Next("q_voice_family")
	b.Voice("q_voice_family", "q_voice_family_title").Optional().MaxDuration(20).Next("q_voice_local")
	b.Voice("q_voice_local", "q_voice_local_title").Optional().MaxDuration(25)
	return b.MustBuild()
}
