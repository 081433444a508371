package teamresolver

import (
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/charleschow/football-outrights/internal/telemetry"
)

// Team is the canonical identity the resolver hands back: spec.md §3's
// Team entity, restricted to the fields name resolution needs.
type Team struct {
	ID        string
	LeagueID  string
	Canonical string
}

// Resolver implements the "Team name resolver" collaborator from
// spec.md §6: resolve(raw_name, league_id?) -> canonical_team_or_null,
// suggest(raw_name) -> [top_k]. Concurrent identical lookups are
// deduplicated with singleflight, same as the teacher's market-fetch
// resolver did for its own cache-refresh calls.
type Resolver struct {
	mu        sync.RWMutex
	byLeague  map[string][]Team // league id -> known teams
	threshold float64
	sfGroup   singleflight.Group
}

// NewResolver builds a resolver over a known team roster. threshold is
// the minimum LCS-ratio similarity score (0..1) for Resolve to accept a
// fuzzy match instead of returning not-found.
func NewResolver(teams []Team, threshold float64) *Resolver {
	byLeague := make(map[string][]Team)
	for _, t := range teams {
		byLeague[t.LeagueID] = append(byLeague[t.LeagueID], t)
	}
	return &Resolver{byLeague: byLeague, threshold: threshold}
}

// Resolve canonicalizes raw and looks it up against the known roster for
// leagueID (or every league, if leagueID is empty). Returns (team, true)
// on an exact or above-threshold fuzzy match, (nil, false) otherwise.
func (r *Resolver) Resolve(raw, leagueID string) (*Team, bool) {
	key := leagueID + "\x00" + raw
	v, _, _ := r.sfGroup.Do(key, func() (any, error) {
		return r.resolve(raw, leagueID), nil
	})
	team, _ := v.(*Team)
	return team, team != nil
}

func (r *Resolver) resolve(raw, leagueID string) *Team {
	norm := Normalize(raw)

	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := r.candidatesFor(leagueID)

	var best *Team
	bestScore := 0.0
	for i := range candidates {
		c := &candidates[i]
		score := similarity(norm, Normalize(c.Canonical))
		if score > bestScore {
			bestScore = score
			best = c
		}
		if score == 1.0 {
			break
		}
	}

	if best == nil || bestScore < r.threshold {
		telemetry.Debugf("teamresolver: no match for %q (best score %.2f)", raw, bestScore)
		return nil
	}
	found := *best
	return &found
}

// Suggest returns up to topK canonical names ranked by similarity to raw,
// for operator-facing disambiguation UIs. It never filters by threshold.
func (r *Resolver) Suggest(raw string, topK int) []string {
	norm := Normalize(raw)

	r.mu.RLock()
	candidates := r.candidatesFor("")
	r.mu.RUnlock()

	type scored struct {
		name  string
		score float64
	}
	scoredList := make([]scored, 0, len(candidates))
	seen := make(map[string]bool)
	for _, c := range candidates {
		if seen[c.Canonical] {
			continue
		}
		seen[c.Canonical] = true
		scoredList = append(scoredList, scored{c.Canonical, similarity(norm, Normalize(c.Canonical))})
	}
	sort.Slice(scoredList, func(i, j int) bool { return scoredList[i].score > scoredList[j].score })

	if topK > len(scoredList) {
		topK = len(scoredList)
	}
	out := make([]string, topK)
	for i := 0; i < topK; i++ {
		out[i] = scoredList[i].name
	}
	return out
}

func (r *Resolver) candidatesFor(leagueID string) []Team {
	if leagueID != "" {
		return r.byLeague[leagueID]
	}
	var all []Team
	for _, ts := range r.byLeague {
		all = append(all, ts...)
	}
	return all
}

// similarity scores two normalized strings by the ratio of their longest
// common subsequence length to the longer string's length, per spec.md
// §6 ("score via ratio of longest common subsequence").
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	lcs := lcsLength(a, b)
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	return float64(lcs) / float64(longer)
}

func lcsLength(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
