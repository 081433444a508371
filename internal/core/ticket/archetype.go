package ticket

import "math"

// ChooseArchetype runs the slate-level analysis of spec.md §4.6 and
// selects exactly one archetype.
func ChooseArchetype(fixtures []FixtureView) Archetype {
	if len(fixtures) == 0 {
		return ArchetypeBalanced
	}

	var homeProbSum float64
	var balancedCount, awayValueCount int
	for _, f := range fixtures {
		homeProbSum += f.PHome
		if math.Abs(f.LambdaHome-f.LambdaAway) <= 0.35 {
			balancedCount++
		}
		if f.MarketPAway > 0 && f.PAway-f.MarketPAway >= 0.05 {
			awayValueCount++
		}
	}
	n := float64(len(fixtures))
	avgHomeProb := homeProbSum / n
	balancedRate := float64(balancedCount) / n
	awayValueRate := float64(awayValueCount) / n

	switch {
	case avgHomeProb > 0.52:
		return ArchetypeFavoriteLock
	case balancedRate > 0.4:
		return ArchetypeDrawSelective
	case awayValueRate > 0.3:
		return ArchetypeAwayEdge
	default:
		return ArchetypeBalanced
	}
}

// VetoArchetype reports whether a candidate ticket violates its
// archetype's additional rules. A violation means the candidate must be
// discarded and retried (spec.md §4.6 step 10).
func VetoArchetype(archetype Archetype, fixtures []FixtureView, picks []Pick) bool {
	switch archetype {
	case ArchetypeFavoriteLock:
		return vetoFavoriteLock(fixtures, picks)
	case ArchetypeDrawSelective:
		return vetoDrawSelective(fixtures, picks)
	case ArchetypeAwayEdge:
		return vetoAwayEdge(fixtures, picks)
	default:
		// BALANCED is an intentional pass-through, same as the original's
		// "ticket generation algorithm doesn't respect constraints" note:
		// no archetype-specific veto is enforced for it.
		return false
	}
}

// vetoFavoriteLock implements the FAVORITE_LOCK rule: no draw pick on a
// fixture with draw odds > 3.20, no away pick on a fixture with away
// odds > 2.80, at most 1 draw and 1 away overall, and at least 60% of
// picks must be home favorites (model p_home > 0.55 standing in for
// the original's market-implied home probability).
func vetoFavoriteLock(fixtures []FixtureView, picks []Pick) bool {
	draws, aways, homeFavorites := 0, 0, 0
	for i, p := range picks {
		f := fixtures[i]
		switch p {
		case PickDraw:
			draws++
			if f.DrawOdds > 0 && f.DrawOdds > 3.20 {
				return true
			}
		case PickAway:
			aways++
			if f.AwayOdds > 0 && f.AwayOdds > 2.80 {
				return true
			}
		case PickHome:
			if f.PHome > favoritePickThreshold {
				homeFavorites++
			}
		}
	}
	if draws > 1 || aways > 1 {
		return true
	}
	if len(picks) > 0 && float64(homeFavorites)/float64(len(picks)) < 0.6 {
		return true
	}
	return false
}

// vetoAwayEdge implements the AWAY_EDGE rule: an away pick must carry
// at least 0.07 model-over-market edge, a draw pick must be on a
// fixture with draw odds <= 3.10, the ticket must carry 2-3 away picks,
// and at most 4 home favorites (model p_home > 0.55).
func vetoAwayEdge(fixtures []FixtureView, picks []Pick) bool {
	aways, homeFavorites := 0, 0
	for i, p := range picks {
		f := fixtures[i]
		switch p {
		case PickAway:
			aways++
			if f.MarketPAway > 0 && f.PAway-f.MarketPAway < 0.07 {
				return true
			}
		case PickDraw:
			if f.DrawOdds > 0 && f.DrawOdds > 3.10 {
				return true
			}
		case PickHome:
			if f.PHome > favoritePickThreshold {
				homeFavorites++
			}
		}
	}
	if aways < 2 || aways > 3 {
		return true
	}
	if homeFavorites > 4 {
		return true
	}
	return false
}

// vetoDrawSelective implements the DRAW_SELECTIVE rule: every draw pick
// must be on a fixture with |lambda_h - lambda_a| <= 0.30, Dixon-Coles
// active, and draw odds <= 3.40; the ticket must carry 2-3 draws total
// and at most 1 away pick.
func vetoDrawSelective(fixtures []FixtureView, picks []Pick) bool {
	draws, aways := 0, 0
	for i, p := range picks {
		switch p {
		case PickDraw:
			draws++
			f := fixtures[i]
			if math.Abs(f.LambdaHome-f.LambdaAway) > 0.30 {
				return true
			}
			if !f.DCActive {
				return true
			}
			if f.DrawOdds > 0 && f.DrawOdds > 3.40 {
				return true
			}
		case PickAway:
			aways++
		}
	}
	if draws < 2 || draws > 3 {
		return true
	}
	if aways > 1 {
		return true
	}
	return false
}
