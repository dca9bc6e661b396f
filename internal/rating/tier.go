package rating

import "strings"

// Tier classifies a tournament by its weight in rating updates
type Tier string

const (
	TierGrandSlam  Tier = "grand_slam"
	TierMasters    Tier = "masters"
	TierATP500     Tier = "atp500"
	TierATP250     Tier = "atp250"
	TierChallenger Tier = "challenger"
	TierTeamEvent  Tier = "team_event"
	TierOlympic    Tier = "olympic"
	TierUnknown    Tier = "unknown"
)

// tierKeywords holds the case-insensitive substring lists per tier, checked
// in priority order. A tournament matching no list is TierUnknown.
var tierKeywords = []struct {
	tier     Tier
	keywords []string
}{
	{TierGrandSlam, []string{"roland", "wimbledon", "us open", "australian"}},
	{TierMasters, []string{"rome", "madrid", "miami", "indian wells", "monte", "cincinnati", "canada", "paris", "shanghai"}},
	{TierATP500, []string{"barcelona", "basel", "hamburg", "dubai", "acapulco", "washington", "beijing", "tokyo", "vienna", "rotterdam"}},
	{TierATP250, []string{"marseille", "lyon", "metz", "sydney", "adelaide", "geneva", "munich", "stockholm", "astana", "doha"}},
	{TierOlympic, []string{"olympic"}},
	{TierTeamEvent, []string{"davis", "billie", "fed cup"}},
	{TierChallenger, []string{"challenger", "itf", "futures", "m25", "w60", "w100"}},
}

// kFactors maps each tier to the step size a single result moves a rating
var kFactors = map[Tier]float64{
	TierGrandSlam:  50,
	TierMasters:    40,
	TierATP500:     35,
	TierATP250:     30,
	TierChallenger: 25,
	TierTeamEvent:  30,
	TierOlympic:    30,
	TierUnknown:    30,
}

// DefaultKFactor applies to tiers without an explicit entry
const DefaultKFactor = 30.0

// ClassifyTournament maps a free-text tournament name to a tier. First
// matching tier in priority order wins.
func ClassifyTournament(name string) Tier {
	lowered := strings.ToLower(name)
	for _, group := range tierKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(lowered, keyword) {
				return group.tier
			}
		}
	}
	return TierUnknown
}

// KFactor returns the rating step size for a tier
func KFactor(tier Tier) float64 {
	if k, ok := kFactors[tier]; ok {
		return k
	}
	return DefaultKFactor
}

// KFactorForTournament is the composed lookup used by the updater
func KFactorForTournament(name string) float64 {
	return KFactor(ClassifyTournament(name))
}
