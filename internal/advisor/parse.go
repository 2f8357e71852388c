package advisor

import (
	"regexp"
	"strings"
)

// Advisory is the structured view over free-text model output.
type Advisory struct {
	Summary      string   `json:"summary"`
	Alternatives []string `json:"alternatives,omitempty"`
	Tips         []string `json:"tips,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
	Complexity   string   `json:"complexity,omitempty"`
	Source       string   `json:"source"` // "ai" or "fallback"
}

var (
	sectionPattern    = regexp.MustCompile(`(?im)^\s*(?:#+\s*|\*\*)?(alternatives?|tips?|(?:safety\s+)?warnings?|safety)\b`)
	bulletPattern     = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)
	complexityPattern = regexp.MustCompile(`(?i)complexity(?:\s+rating)?\s*[:=]?\s*(\d+(?:\.\d+)?\s*/\s*10|\w+)`)
)

// ParseAdvisoryText extracts bullet-style sections from free model text.
// It is purely heuristic and never fails: unmatched sections come back
// empty and the raw first paragraph becomes the summary.
func ParseAdvisoryText(text string) Advisory {
	adv := Advisory{Source: "ai"}
	if strings.TrimSpace(text) == "" {
		return adv
	}

	if m := complexityPattern.FindStringSubmatch(text); m != nil {
		adv.Complexity = strings.TrimSpace(m[1])
	}

	current := ""
	for _, line := range strings.Split(text, "\n") {
		if m := sectionPattern.FindStringSubmatch(line); m != nil {
			current = normalizeSection(m[1])
			continue
		}
		bullet := bulletPattern.FindStringSubmatch(line)
		if bullet == nil {
			continue
		}
		entry := strings.TrimSpace(bullet[1])
		switch current {
		case "alternatives":
			adv.Alternatives = append(adv.Alternatives, entry)
		case "tips":
			adv.Tips = append(adv.Tips, entry)
		case "warnings":
			adv.Warnings = append(adv.Warnings, entry)
		}
	}

	adv.Summary = firstParagraph(text)
	return adv
}

func normalizeSection(header string) string {
	h := strings.ToLower(header)
	switch {
	case strings.HasPrefix(h, "alternative"):
		return "alternatives"
	case strings.HasPrefix(h, "tip"):
		return "tips"
	default:
		return "warnings"
	}
}

// firstParagraph returns the leading non-bullet, non-header prose block.
func firstParagraph(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(lines) > 0 {
				break
			}
			continue
		}
		if bulletPattern.MatchString(line) || sectionPattern.MatchString(line) {
			break
		}
		lines = append(lines, trimmed)
	}
	return strings.Join(lines, " ")
}
