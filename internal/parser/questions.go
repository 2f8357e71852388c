package parser

import "github.com/buildagent/multibuild/internal/domain"

// dimensionSuggestions offers example answers appropriate to the build
// type, including the still-unknown case.
var dimensionSuggestions = map[domain.BuildType][]string{
	domain.BuildPizzaOven:  {"1m x 1m x 0.5m", "1.2m x 1.2m x 0.6m", "0.8m x 0.8m x 0.4m"},
	domain.BuildWall:       {"3m x 2m x 0.2m", "5m x 1.5m x 0.15m", "2m x 1m x 0.1m"},
	domain.BuildGardenWall: {"2m x 1m x 0.2m", "4m x 1.2m x 0.15m", "1.5m x 0.8m x 0.1m"},
	domain.BuildFirePit:    {"1m diameter x 0.3m high", "1.2m diameter x 0.4m high", "0.8m diameter x 0.25m high"},
	domain.BuildFoundation: {"3m x 3m x 0.3m", "4m x 2m x 0.4m", "2m x 2m x 0.25m"},
	domain.BuildStructure:  {"2m x 2m x 2m", "3m x 2m x 2.5m", "1.5m x 1.5m x 2m"},
}

// ClarifyingQuestions returns up to two questions needed to complete the
// request, highest priority first: missing dimensions, then an ambiguous
// build type, then the optional experience and budget questions.
func ClarifyingQuestions(req domain.ParsedRequest) []domain.Question {
	var questions []domain.Question

	if !req.Dimensions.Any() {
		suggestions, ok := dimensionSuggestions[req.BuildType]
		if !ok {
			suggestions = []string{"Please specify your dimensions"}
		}
		questions = append(questions, domain.Question{
			Type:        domain.QuestionDimensions,
			Text:        `What are the dimensions you need? Please specify length, width, and height in meters (e.g., "2m x 1.5m x 0.8m").`,
			Required:    true,
			Suggestions: suggestions,
		})
	}

	if req.Confidence < 0.7 && req.BuildType == domain.BuildUnknown {
		questions = append(questions, domain.Question{
			Type:        domain.QuestionClarification,
			Text:        "I want to make sure I understand correctly. Can you describe what you want to build in more detail?",
			Required:    true,
			Suggestions: []string{"Garden wall", "Pizza oven", "Fire pit", "Foundation", "Retaining wall"},
		})
	}

	if req.Experience == "" {
		questions = append(questions, domain.Question{
			Type:        domain.QuestionExperience,
			Text:        "What's your experience level with construction projects?",
			Required:    false,
			Suggestions: []string{"Beginner - First time building", "Intermediate - Some experience", "Expert - Very experienced"},
		})
	}

	if req.Budget == 0 && req.Confidence > 0.6 {
		questions = append(questions, domain.Question{
			Type:        domain.QuestionBudget,
			Text:        "Do you have a budget range in mind for this project?",
			Required:    false,
			Suggestions: []string{"Under €500", "€500-€1000", "€1000-€2000", "Over €2000"},
		})
	}

	// Cap at 2 questions so the user is never overwhelmed.
	if len(questions) > 2 {
		questions = questions[:2]
	}
	return questions
}

// HasRequiredQuestions reports whether any of the questions is mandatory
// before planning can proceed.
func HasRequiredQuestions(questions []domain.Question) bool {
	for _, q := range questions {
		if q.Required {
			return true
		}
	}
	return false
}
