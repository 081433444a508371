package ticket

import (
	"math/rand"

	"github.com/charleschow/football-outrights/internal/core/correlation"
)

// EVScorer is the policy function of spec.md §4.6 step 11: an
// injectable capability rather than a hardcoded formula, so the
// scoring rule can evolve without touching the repair loop.
type EVScorer interface {
	Score(picks []Pick, fixtures []FixtureView) (evScore float64, contradictions int)
}

// DefaultEVScorer rewards picks the model favors and penalizes picks
// far from the model's lean as contradictions.
type DefaultEVScorer struct {
	ContradictionProbFloor float64
}

func NewDefaultEVScorer() DefaultEVScorer {
	return DefaultEVScorer{ContradictionProbFloor: 0.15}
}

func (s DefaultEVScorer) Score(picks []Pick, fixtures []FixtureView) (float64, int) {
	var sum float64
	contradictions := 0
	for i, p := range picks {
		prob := fixtures[i].ProbFor(p)
		sum += prob
		if prob < s.ContradictionProbFloor {
			contradictions++
		}
	}
	if len(picks) == 0 {
		return 0, 0
	}
	return sum / float64(len(picks)), contradictions
}

// PolicyThresholds gates step 11's acceptance decision.
type PolicyThresholds struct {
	MinEVScore      float64
	MaxContradictions int
}

func DefaultPolicyThresholds() PolicyThresholds {
	return PolicyThresholds{MinEVScore: 0.30, MaxContradictions: 3}
}

// Generator runs C6: slate analysis, per-ticket repair loop, and
// portfolio selection.
type Generator struct {
	Roles      *RoleRegistry
	Scorer     EVScorer
	Policy     PolicyThresholds
	Rand       *rand.Rand
	AttemptMul int // attempts per requested ticket before giving up on a slot
}

// NewGenerator builds a Generator with the spec's default roles, a
// default EV scorer, default policy thresholds, and the given
// pseudo-random source (required for determinism: the same seed
// reproduces the same bundle).
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{
		Roles:      DefaultRoleRegistry(),
		Scorer:     NewDefaultEVScorer(),
		Policy:     DefaultPolicyThresholds(),
		Rand:       rng,
		AttemptMul: 3,
	}
}

// GenerateBundle implements the C6 contract.
func (g *Generator) GenerateBundle(fixtures []FixtureView, corr *correlation.Matrix, shocks []correlation.LateShock, roleNames []string, n int, leagueCode string) Bundle {
	archetype := ChooseArchetype(fixtures)

	var accepted []Ticket
	attemptBudget := g.AttemptMul * n
	if attemptBudget <= 0 {
		attemptBudget = n
	}

	for slot := 0; slot < n; slot++ {
		roleName := roleNames[slot%len(roleNames)]
		role, ok := g.Roles.Get(roleName)
		if !ok {
			continue
		}
		ticket, ok := g.attemptTicket(fixtures, corr, shocks, role, archetype, attemptBudget)
		if !ok {
			continue
		}
		accepted = append(accepted, ticket)
	}

	bundle := Bundle{
		Tickets:        accepted,
		RequestedCount: n,
		AcceptedCount:  len(accepted),
		Underpopulated: len(accepted) < n,
	}
	bundle.Coverage = coverage(accepted, len(fixtures))
	bundle.PortfolioDiagnostics = portfolioDiagnostics(accepted)
	if len(accepted) > n {
		bundle.Tickets = selectDiverseSubset(accepted, n)
		bundle.AcceptedCount = len(bundle.Tickets)
	}
	return bundle
}

// attemptTicket runs the repair loop up to budget times, returning the
// first candidate that clears the archetype veto and the EV/contradiction
// policy.
func (g *Generator) attemptTicket(fixtures []FixtureView, corr *correlation.Matrix, shocks []correlation.LateShock, role Role, archetype Archetype, budget int) (Ticket, bool) {
	for attempt := 0; attempt < budget; attempt++ {
		picks := seedFavorites(fixtures)
		if attempt > 0 && g.Rand != nil {
			perturb(picks, fixtures, g.Rand)
		}
		for _, lane := range repairLanes {
			lane(picks, fixtures, role, corr, shocks)
		}

		drawCount := countPicks(picks, PickDraw)
		favoriteCount := countFavorites(picks, fixtures)
		underdogCount := countUnderdogs(picks, fixtures)
		if !withinRoleBounds(role, drawCount, favoriteCount, underdogCount) {
			continue
		}

		if VetoArchetype(archetype, fixtures, picks) {
			continue
		}
		ev, contradictions := g.Scorer.Score(picks, fixtures)
		if ev < g.Policy.MinEVScore || contradictions > g.Policy.MaxContradictions {
			continue
		}

		return Ticket{
			Picks:         picks,
			Role:          role.Name,
			Archetype:     archetype,
			DrawCount:     drawCount,
			FavoriteCount: favoriteCount,
			UnderdogCount: underdogCount,
			EntropyNorm:   ticketEntropy(picks),
			EVScore:       ev,
			Accepted:      true,
		}, true
	}
	return Ticket{}, false
}

// withinRoleBounds re-validates a candidate after the repair lanes have
// all run: lanes 6-9 (hedgeShocks, breakCorrelations, adjustEntropy,
// favoriteHedgeGuarantee) run after the draw/favorite caps and can push
// the pick vector back out of the role's bounds, so the final candidate
// is checked once more before acceptance rather than trusted on the
// strength of the earlier caps alone.
func withinRoleBounds(role Role, drawCount, favoriteCount, underdogCount int) bool {
	if drawCount < role.MinDraws || drawCount > role.MaxDraws {
		return false
	}
	if favoriteCount > role.MaxFavorites {
		return false
	}
	if underdogCount < role.MinUnderdogs {
		return false
	}
	return true
}

// perturb nudges a seeded candidate away from a pure argmax vector so
// repeated attempts can explore different repairs, using the injected
// random source for determinism.
func perturb(picks []Pick, fixtures []FixtureView, rng *rand.Rand) {
	if len(picks) == 0 {
		return
	}
	idx := rng.Intn(len(picks))
	f := fixtures[idx]
	switch picks[idx] {
	case PickHome:
		if f.PAway >= f.PDraw {
			picks[idx] = PickAway
		} else {
			picks[idx] = PickDraw
		}
	case PickAway:
		if f.PHome >= f.PDraw {
			picks[idx] = PickHome
		} else {
			picks[idx] = PickDraw
		}
	default:
		if f.PHome >= f.PAway {
			picks[idx] = PickHome
		} else {
			picks[idx] = PickAway
		}
	}
}

func coverage(tickets []Ticket, slateSize int) []map[Pick]int {
	cov := make([]map[Pick]int, slateSize)
	for i := range cov {
		cov[i] = map[Pick]int{PickHome: 0, PickDraw: 0, PickAway: 0}
	}
	for _, t := range tickets {
		for i, p := range t.Picks {
			if i >= slateSize {
				break
			}
			cov[i][p]++
		}
	}
	return cov
}

func portfolioDiagnostics(tickets []Ticket) PortfolioDiagnostics {
	if len(tickets) < 2 {
		return PortfolioDiagnostics{}
	}
	var sum float64
	min := -1
	count := 0
	for i := 0; i < len(tickets); i++ {
		for j := i + 1; j < len(tickets); j++ {
			d := hamming(tickets[i].Picks, tickets[j].Picks)
			sum += float64(d)
			count++
			if min < 0 || d < min {
				min = d
			}
		}
	}
	if count == 0 {
		return PortfolioDiagnostics{}
	}
	return PortfolioDiagnostics{MeanPairwiseHamming: sum / float64(count), MinPairwiseHamming: min}
}

func hamming(a, b []Pick) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	d := 0
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

// selectDiverseSubset picks n tickets from candidates, greedily
// maximizing EV while penalizing pairwise overlap with already-chosen
// tickets (spec.md §4.6's diversity-weighted portfolio scorer).
func selectDiverseSubset(candidates []Ticket, n int) []Ticket {
	if n >= len(candidates) {
		return candidates
	}
	chosen := make([]Ticket, 0, n)
	remaining := make([]Ticket, len(candidates))
	copy(remaining, candidates)

	for len(chosen) < n && len(remaining) > 0 {
		bestIdx := 0
		bestScore := diversityScore(remaining[0], chosen)
		for i := 1; i < len(remaining); i++ {
			s := diversityScore(remaining[i], chosen)
			if s > bestScore {
				bestScore = s
				bestIdx = i
			}
		}
		chosen = append(chosen, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return chosen
}

func diversityScore(candidate Ticket, chosen []Ticket) float64 {
	if len(chosen) == 0 {
		return candidate.EVScore
	}
	var overlapPenalty float64
	for _, c := range chosen {
		n := len(candidate.Picks)
		if n == 0 {
			continue
		}
		similarity := float64(n-hamming(candidate.Picks, c.Picks)) / float64(n)
		overlapPenalty += similarity
	}
	return candidate.EVScore - overlapPenalty/float64(len(chosen))
}
