package samples

// Labels is the English display text for every reference used by the samples.
func Labels() map[string]string {
	out := make(map[string]string, len(english))
	for k, v := range english {
		out[k] = v
	}
	return out
}

var english = map[string]string{
	"yes": "Yes",
	"no":  "No",

	"q_start_title":     "Do you grow crops?",
	"q_crop_title":      "What is your main crop?",
	"opt_maize":         "Maize",
	"opt_rice":          "Rice",
	"opt_wheat":         "Wheat",
	"opt_other":         "Other",
	"q_maize_area":      "How many hectares of maize do you plant?",
	"q_maize_variety":   "Which maize variety do you use?",
	"q_rice_area":       "How many hectares of rice do you plant?",
	"q_rice_irrigation": "How are your rice fields irrigated?",
	"q_wheat_area":      "How many hectares of wheat do you plant?",
	"q_other_crop":      "Which crop do you grow?",
	"q_secondary_title": "Which secondary crops do you also grow?",
	"opt_legume":        "Legumes",
	"opt_veg":           "Vegetables",
	"opt_fruit":         "Fruit",
	"q_legume_area":     "How many hectares of legumes?",
	"q_veg_area":        "How many hectares of vegetables?",
	"q_fruit_count":     "How many fruit trees?",
	"q_job_title":       "What is your occupation?",
	"q_country_title":   "Which country do you live in?",

	"q_voice_reason_title": "Tell us in your own words why you chose this crop.",
	"q_voice_family_title": "Describe your family's role on the farm.",
	"q_voice_local_title":  "Describe farming in your area.",

	"q_video_reason_title": "Record a short video of your field.",
	"q_video_family_title": "Record a short video of your household.",
	"q_video_local_title":  "Record a short video of your village.",

	"q_photo_reason_title": "Take a photo of your main crop.",
	"q_photo_family_title": "Take a photo of your family.",
	"q_photo_local_title":  "Take a photo of your surroundings.",

	"q_yes_no_title":        "Yes or no?",
	"q_single_title":        "Pick one option.",
	"q_single_branch_title": "Pick one option to choose the next step.",
	"opt_a":                 "Option A",
	"opt_b":                 "Option B",
	"opt_c":                 "Option C",
	"q_free_title":          "Write anything you like.",
	"q_multi_queue_title":   "Pick any number of options.",
	"q_sub_a":               "Follow-up for A",
	"q_sub_b":               "Follow-up for B",
	"q_sub_c":               "Follow-up for C",
	"q_voice_title":         "Record a voice note.",
	"q_video_title":         "Record a video.",
	"q_camera_title":        "Take a photo.",
	"q_thanks_title":        "Thank you! Anything else to add?",
}
