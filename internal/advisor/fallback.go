package advisor

import (
	"fmt"

	"github.com/buildagent/multibuild/internal/domain"
)

// fallbackAnalysis returns static advisory content for a project when
// the adapter is disabled or failed.
func fallbackAnalysis(pc ProjectContext) Advisory {
	adv := Advisory{
		Source:     "fallback",
		Complexity: "5/10",
		Tips: []string{
			"Lay out the first course dry before committing to mortar",
			"Keep mortar joints at a consistent 10mm thickness",
			"Work in moderate weather; avoid frost and direct summer heat",
		},
		Warnings: []string{
			"Wear safety glasses and gloves for all cutting and mixing work",
		},
	}

	switch pc.Request.BuildType {
	case domain.BuildPizzaOven:
		adv.Summary = "A pizza oven is an ambitious but rewarding build. The dome is the hardest part; take your time with the brick angles and cure the oven slowly before the first full firing."
		adv.Complexity = "7/10"
		adv.Alternatives = []string{
			"A barrel-vault oven is easier to build than a dome and performs nearly as well",
			"Vermiculite insulation is a cheaper substitute for ceramic blanket",
		}
		adv.Warnings = append(adv.Warnings,
			"Only use refractory materials in heat-exposed layers; standard mortar will crack")
	case domain.BuildFirePit:
		adv.Summary = "A fire pit is a good first masonry project. Focus on a stable gravel base and proper drainage so the pit survives winter."
		adv.Complexity = "3/10"
		adv.Alternatives = []string{
			"A steel fire bowl insert extends the life of the brickwork",
		}
		adv.Warnings = append(adv.Warnings,
			"Check local regulations on open fires before building")
	case domain.BuildGardenWall:
		adv.Summary = "A garden wall stands or falls with its foundation and drainage. Get the concrete strip level and backfill with gravel, and the wall above will be straightforward."
		adv.Complexity = "4/10"
		adv.Alternatives = []string{
			"Concrete blocks are faster to lay than bricks for a wall that will be rendered",
		}
	case domain.BuildFoundation:
		adv.Summary = "Foundation work is mostly preparation. Excavate to solid ground, compact well and do not rush the concrete cure."
		adv.Complexity = "4/10"
	default:
		adv.Summary = fmt.Sprintf("A %s project is very achievable with careful preparation. Plan the foundation first, buy slightly more material than calculated and build in stages.", pc.Request.BuildType.Display())
	}

	if pc.Request.Experience == domain.ExperienceBeginner {
		adv.Tips = append(adv.Tips, "As a first project, consider having an experienced builder check your foundation work")
	}
	return adv
}

// fallbackAdvice returns a deterministic paragraph answering an
// open-ended question without model access. The lead-in distinguishes a
// keyless setup from a failing one.
func fallbackAdvice(pc ProjectContext, disabled bool) string {
	base := "I can't reach the AI advisory service right now, but based on your plan: "
	if disabled {
		base = "Based on your plan: "
	}
	if pc.Blueprint != nil {
		return base + fmt.Sprintf(
			"your %s is planned in %d phases at %s difficulty, with an estimated build time of %s. Follow the phases in order, check level and plumb often, and review the safety guidelines before each work session.",
			pc.Request.BuildType.Display(), len(pc.Blueprint.Phases), pc.Blueprint.Difficulty, pc.Blueprint.EstimatedTime)
	}
	return base + "describe your project with its dimensions and I can produce a full plan with materials, costs and build phases."
}
