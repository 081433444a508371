// Package report renders a Bundle and its per-fixture distributions for
// human-facing output (CLI stdout, a relayed log line), grounded on the
// divider/Fprintf rendering style used for live game state elsewhere in
// the codebase, adapted here from a streaming per-event print to a
// single end-of-run summary.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charleschow/football-outrights/internal/core/kernel"
	"github.com/charleschow/football-outrights/internal/core/ticket"
)

const (
	dividerHeavy = "========================================================================"
	dividerLight = "~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~"
)

// FixtureLine is one slate fixture's label plus its final distribution,
// used to print the per-fixture probability table. Bundle accepts the
// lines but prints ticket picks without fixture labels.
type FixtureLine struct {
	Label string // e.g. "Arsenal vs Chelsea"
	Dist  kernel.Distribution
}

// Distributions prints one line per fixture: home/draw/away
// probabilities, expected goals, and normalized entropy.
func Distributions(w io.Writer, fixtures []FixtureLine) {
	fmt.Fprintln(w, dividerHeavy)
	fmt.Fprintf(w, "%-32s %6s %6s %6s %8s %8s %8s\n", "Fixture", "P(1)", "P(X)", "P(2)", "xG Home", "xG Away", "Entropy")
	fmt.Fprintln(w, dividerLight)
	for _, f := range fixtures {
		fmt.Fprintf(w, "%-32s %5.1f%% %5.1f%% %5.1f%% %8.2f %8.2f %8.3f\n",
			truncate(f.Label, 32), f.Dist.PHome*100, f.Dist.PDraw*100, f.Dist.PAway*100,
			f.Dist.LamHome, f.Dist.LamAway, f.Dist.Entropy)
	}
	fmt.Fprintln(w, dividerHeavy)
}

// Bundle prints the tickets in a Bundle, one row per ticket, followed
// by portfolio diversity diagnostics. Coverage is not printed.
func Bundle(w io.Writer, fixtures []FixtureLine, bundle ticket.Bundle) {
	fmt.Fprintln(w, dividerHeavy)
	status := "complete"
	if bundle.Underpopulated {
		status = "UNDERPOPULATED"
	}
	fmt.Fprintf(w, "Bundle: %d/%d tickets (%s)\n", bundle.AcceptedCount, bundle.RequestedCount, status)
	fmt.Fprintln(w, dividerLight)

	for i, t := range bundle.Tickets {
		fmt.Fprintf(w, "  #%-3d role=%-2s archetype=%-16s draws=%d favs=%d dogs=%d entropy=%.2f ev=%.3f\n",
			i+1, t.Role, t.Archetype, t.DrawCount, t.FavoriteCount, t.UnderdogCount, t.EntropyNorm, t.EVScore)
		fmt.Fprintf(w, "       %s\n", picksLine(t.Picks))
	}

	fmt.Fprintln(w, dividerLight)
	fmt.Fprintf(w, "Portfolio diversity: mean pairwise Hamming=%.2f  min=%d\n",
		bundle.PortfolioDiagnostics.MeanPairwiseHamming, bundle.PortfolioDiagnostics.MinPairwiseHamming)
	fmt.Fprintln(w, dividerHeavy)
}

func picksLine(picks []ticket.Pick) string {
	var b strings.Builder
	for i, p := range picks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(p))
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
