package quickcalc

import (
	"regexp"
	"strconv"
	"strings"
)

var areaPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:qm|quadratmeter|m²|sqm)`)

type tierKeywords struct {
	tier  Tier
	words []string
}

// Keyword order mirrors how users phrase it: the budget words are the most
// common and win when a message mixes tiers.
var tierMatchers = []tierKeywords{
	{TierGuenstig, []string{"günstig", "guenstig", "budget", "billig"}},
	{TierSchnell, []string{"schnell", "express", "fix"}},
	{TierPremium, []string{"premium", "luxus", "hochwertig"}},
}

// ExtractRequirements pulls the floor area and quality tier out of a free-text
// message like "1.2 qm Pizzaofen premium". Fields the message does not mention
// stay at their zero value so the caller can apply defaults.
func ExtractRequirements(text string) Requirements {
	var req Requirements
	lower := strings.ToLower(text)

	if m := areaPattern.FindStringSubmatch(text); m != nil {
		raw := strings.ReplaceAll(m[1], ",", ".")
		if area, err := strconv.ParseFloat(raw, 64); err == nil {
			req.AreaSqm = area
		}
	}

	for _, tm := range tierMatchers {
		for _, w := range tm.words {
			if strings.Contains(lower, w) {
				req.Quality = tm.tier
				return req
			}
		}
	}
	return req
}
