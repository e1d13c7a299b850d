package wizard

// DefaultQuestions returns the question sequence for `skel new`.
// libraryDefault and graphicsDefault come from the persisted defaults
// and pre-fill the URL prompts.
func DefaultQuestions(libraryDefault, graphicsDefault string) []Question {
	return []Question{
		{
			ID:          "project_name",
			Type:        QuestionTypeInput,
			Title:       "Project name",
			Description: "Name of the project directory and starter files",
			Required:    true,
		},
		{
			ID:    "language",
			Type:  QuestionTypeSelect,
			Title: "Language",
			Options: []Option{
				{Label: "C", Value: "c", Desc: "starter .c/.h files, built with cc"},
				{Label: "C++", Value: "cpp", Desc: "starter .cpp/.hpp files, built with c++"},
			},
			Default: "c",
		},
		{
			ID:    "link_mode",
			Type:  QuestionTypeSelect,
			Title: "Header include mode",
			Options: []Option{
				{Label: "Absolute", Value: "absolute", Desc: "include via ../includes/"},
				{Label: "Relative", Value: "relative", Desc: "bare file name plus -Iincludes"},
			},
			Default: "absolute",
		},
		{
			ID:          "library_url",
			Type:        QuestionTypeInput,
			Title:       "Utility library repository",
			Description: "URL vendored into libft/ (leave empty to skip)",
			Default:     libraryDefault,
		},
		{
			ID:    "graphics",
			Type:  QuestionTypeSelect,
			Title: "Graphics library",
			Options: []Option{
				{Label: "No", Value: "false"},
				{Label: "Yes", Value: "true", Desc: "vendored into minilibx/, adds -lmlx"},
			},
			Default: "false",
		},
		{
			ID:          "graphics_url",
			Type:        QuestionTypeInput,
			Title:       "Graphics library repository",
			Description: "URL vendored into minilibx/",
			Default:     graphicsDefault,
			Condition: func(r *Result) bool {
				return r.Graphics
			},
		},
		{
			ID:          "remote_url",
			Type:        QuestionTypeInput,
			Title:       "Git remote",
			Description: "Remote URL registered as origin (leave empty to skip git setup)",
		},
	}
}
