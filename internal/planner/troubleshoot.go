package planner

import "github.com/buildagent/multibuild/internal/domain"

var commonIssues = []domain.TroubleshootingEntry{
	{
		Issue:      "Mortar cracking while drying",
		Symptoms:   "Hairline cracks appear in joints within days of laying",
		Solution:   "Rake out the cracked mortar and repoint with a fresh, slightly wetter mix",
		Prevention: "Do not work in direct sun and keep fresh joints damp for the first day",
	},
	{
		Issue:      "Courses drifting out of level",
		Symptoms:   "The wall leans or the bed joints vary in thickness",
		Solution:   "Remove the affected bricks before the mortar sets and relay against a string line",
		Prevention: "Check level and plumb every two to three courses, not just at the end",
	},
	{
		Issue:      "Mortar not bonding",
		Symptoms:   "Bricks can be lifted off after the mortar has stiffened",
		Solution:   "Remove, clean the surfaces and relay; dampen very dry bricks before laying",
		Prevention: "Dry bricks pull water out of mortar too fast; wet them in hot weather",
	},
}

var issuesByType = map[domain.BuildType][]domain.TroubleshootingEntry{
	domain.BuildPizzaOven: {
		{
			Issue:      "Dome cracks on first firing",
			Symptoms:   "Visible cracks across the dome after lighting the first full fire",
			Solution:   "Fill minor cracks with refractory mortar; structural cracks need the affected section rebuilt",
			Prevention: "Cure slowly with a series of small fires over at least a week before full heat",
		},
		{
			Issue:      "Oven not holding temperature",
			Symptoms:   "The oven cools quickly after the fire dies down",
			Solution:   "Add an insulation layer over the dome and check for gaps at the base",
			Prevention: "Do not skip the ceramic blanket layer; it carries most of the heat retention",
		},
	},
	domain.BuildFirePit: {
		{
			Issue:      "Standing water in the pit",
			Symptoms:   "Water pools in the firebox after rain",
			Solution:   "Drill drainage holes through the base or add a gravel drainage layer",
			Prevention: "Build on a gravel base and slope the surround away from the pit",
		},
	},
	domain.BuildGardenWall: {
		{
			Issue:      "Wall bulging after rain",
			Symptoms:   "The retaining face bows outward following wet weather",
			Solution:   "Rebuild the affected section with proper drainage gravel behind it",
			Prevention: "Backfill with free-draining gravel and include weep holes every metre",
		},
	},
	domain.BuildFoundation: {
		{
			Issue:      "Concrete surface dusting",
			Symptoms:   "The cured slab surface rubs off as powder",
			Solution:   "Apply a concrete surface hardener; severe cases need a topping layer",
			Prevention: "Do not add extra water to the mix and protect the pour from rain",
		},
	},
}

const beginnerSuffix = " If the problem persists, consider consulting a professional."

// troubleshootingFor returns the common issues plus build-specific ones.
// For beginners every solution carries an extra pointer toward
// professional help.
func troubleshootingFor(b domain.BuildType, exp domain.Experience) []domain.TroubleshootingEntry {
	out := append([]domain.TroubleshootingEntry(nil), commonIssues...)
	out = append(out, issuesByType[b]...)
	if exp == domain.ExperienceBeginner {
		for i := range out {
			out[i].Solution += beginnerSuffix
		}
	}
	return out
}
