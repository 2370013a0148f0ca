package gate

import (
	"fmt"

	"github.com/danielpatrickdp/homunculus/internal/signals"
)

// #region gate
// Gate decides whether a step proceeds or escapes. It carries the streak of
// consecutive over-threshold steps between evaluations.
type Gate struct {
	config GateConfig
	streak int
}

// NewGate creates a gate with the given configuration.
func NewGate(config GateConfig) *Gate {
	return &Gate{config: config}
}

// Streak is the current count of consecutive over-threshold steps.
func (g *Gate) Streak() int {
	return g.streak
}

// Evaluate updates the streak from the step's signals, then checks the
// perceptual-gap escape before the odor escape. At most one escape fires.
func (g *Gate) Evaluate(sig signals.Signals) GateDecision {
	if sig.Exceeded() {
		g.streak++
	} else {
		g.streak = 0
	}

	// 1. Persistent perceptual gap
	if g.streak >= g.config.EscapeDuration {
		streak := g.streak
		g.streak = 0
		reason := fmt.Sprintf("discrepancy %.4f above threshold %.4f for %d steps",
			sig.Discrepancy, sig.Threshold, streak)
		veto := VetoSignal{Type: VetoPerceptualGap, Reason: reason}
		return GateDecision{
			Action:      ActionEscape,
			Reason:      veto.Reason,
			Vetoed:      true,
			VetoSignals: []VetoSignal{veto},
			Streak:      g.streak,
		}
	}

	// 2. Aversive odor
	if sig.OlfactoryDiscomfort > g.config.OdorLimit {
		veto := VetoSignal{
			Type:   VetoOdor,
			Reason: fmt.Sprintf("olfactory discomfort %.4f exceeds %.4f", sig.OlfactoryDiscomfort, g.config.OdorLimit),
		}
		return GateDecision{
			Action:      ActionOlfactoryEscape,
			Reason:      veto.Reason,
			Vetoed:      true,
			VetoSignals: []VetoSignal{veto},
			Streak:      g.streak,
		}
	}

	return GateDecision{
		Action: ActionContinue,
		Reason: fmt.Sprintf("discrepancy %.4f, threshold %.4f", sig.Discrepancy, sig.Threshold),
		Streak: g.streak,
	}
}

// #endregion gate
