package cli

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/combat-tracker/internal/dice"
	"github.com/KirkDiggler/combat-tracker/internal/domain/combat"
	"github.com/KirkDiggler/combat-tracker/internal/services/tracker"
)

// ANSI escape codes for terminal output
const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiRed     = "\033[91m"
	ansiGreen   = "\033[92m"
	ansiYellow  = "\033[93m"
	ansiBlue    = "\033[94m"
	ansiMagenta = "\033[95m"
	ansiCyan    = "\033[96m"
)

// Renderer turns tracker outputs into colored terminal text. With noColor
// set it emits plain text, for dumb terminals and tests.
type Renderer struct {
	noColor bool
}

// NewRenderer creates a renderer
func NewRenderer(noColor bool) *Renderer {
	return &Renderer{noColor: noColor}
}

func (r *Renderer) paint(color, text string) string {
	if r.noColor {
		return text
	}
	return color + text + ansiReset
}

// Banner renders the startup banner
func (r *Renderer) Banner() string {
	var b strings.Builder
	line := strings.Repeat("=", 50)
	b.WriteString(line + "\n")
	b.WriteString("  " + r.paint(ansiBold, "Combat & Status Tracker") + "\n")
	b.WriteString(line + "\n")
	b.WriteString("Welcome! Use the commands below to manage combat status.")
	return b.String()
}

// Menu renders the command menu
func (r *Renderer) Menu() string {
	var b strings.Builder
	b.WriteString("\n--- Available Commands ---\n")
	b.WriteString(" AC: Add Creature  | RC: Remove Creature | HP: Modify HP (Dmg/Heal)\n")
	b.WriteString(" AE: Apply Effect  | RE: Remove Effect   | AR: Advance Round\n")
	b.WriteString(" S: Status Check   | DR: Dice Roll       | Q: Quit")
	return b.String()
}

// CreatureAdded renders the add-creature confirmation
func (r *Renderer) CreatureAdded(creature *combat.Creature) string {
	return fmt.Sprintf("[SETUP] Creature '%s' added with %d Max HP.",
		r.paint(ansiGreen, creature.Name), creature.MaxHP)
}

// CreatureRemoved renders the remove-creature confirmation
func (r *Renderer) CreatureRemoved(name string) string {
	return fmt.Sprintf("[CLEANUP] Creature '%s' removed from the encounter.",
		r.paint(ansiRed, name))
}

// EffectApplied renders the outcome of applying an effect
func (r *Renderer) EffectApplied(creatureName string, output *tracker.ApplyEffectOutput) string {
	name := r.paint(ansiCyan, output.Effect.Name)

	switch output.Outcome {
	case combat.OutcomeDurationReset:
		return fmt.Sprintf("[INFO] %s already has %s. Duration reset to %d.",
			creatureName, name, output.Effect.Duration)
	case combat.OutcomeNotesUpdated:
		return fmt.Sprintf("[INFO] %s's notes for %s updated.", creatureName, name)
	case combat.OutcomeAppliedNote:
		return fmt.Sprintf("[SUCCESS] %s (Notes/Items) added to %s.", name, creatureName)
	case combat.OutcomeAppliedPermanent:
		return fmt.Sprintf("[SUCCESS] %s applied permanently to %s.", name, creatureName)
	default:
		return fmt.Sprintf("[SUCCESS] %s applied for %d rounds to %s.",
			name, output.Effect.Duration, creatureName)
	}
}

// EffectRemoved renders the remove-effect confirmation
func (r *Renderer) EffectRemoved(creatureName, effectName string) string {
	return fmt.Sprintf("[SUCCESS] Removed '%s' from %s.",
		r.paint(ansiCyan, effectName), creatureName)
}

// HPChanged renders the result of damage or healing
func (r *Renderer) HPChanged(name string, isHeal bool, output *tracker.ModifyHPOutput) string {
	action := "Damaged"
	color := ansiRed
	if isHeal {
		action = "Healed"
		color = ansiGreen
	}

	change := output.Change
	if change < 0 {
		change = -change
	}

	return fmt.Sprintf("[HP] %s %s for %s. Current HP: %d / %d",
		name, action, r.paint(color, fmt.Sprintf("%d", change)),
		output.CurrentHP, output.MaxHP)
}

// RoundBanner renders the advance-round header
func (r *Renderer) RoundBanner(round int) string {
	var b strings.Builder
	line := strings.Repeat("=", 60)
	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("| ADVANCING TO ROUND %s (timed effects tick down)\n",
		r.paint(ansiBlue, fmt.Sprintf("%d", round))))
	b.WriteString(line)
	return b.String()
}

// Expiry renders the effects that wore off one creature this round
func (r *Renderer) Expiry(expiry tracker.CreatureExpiry) string {
	return fmt.Sprintf("[ROUND END] %s: %s effects have worn off.",
		expiry.CreatureName, r.paint(ansiYellow, strings.Join(expiry.Expired, ", ")))
}

// Snapshot renders the full encounter status
func (r *Renderer) Snapshot(snapshot *tracker.StatusSnapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("\n--- Current Status (Round %s) ---\n",
		r.paint(ansiBlue, fmt.Sprintf("%d", snapshot.Round))))

	if len(snapshot.Creatures) == 0 {
		b.WriteString("No creatures are currently being tracked.")
		return b.String()
	}

	for _, creature := range snapshot.Creatures {
		hpColor := ansiGreen
		switch creature.Status {
		case combat.StatusDefeated:
			hpColor = ansiRed
		case combat.StatusBloodied:
			hpColor = ansiYellow
		}

		b.WriteString(fmt.Sprintf("\n* %s (%s):\n",
			r.paint(ansiBold, creature.Name),
			r.paint(ansiMagenta, string(creature.Status))))
		b.WriteString(fmt.Sprintf("  HP: %s\n",
			r.paint(hpColor, fmt.Sprintf("%d/%d HP", creature.CurrentHP, creature.MaxHP))))

		if len(creature.Effects) == 0 {
			b.WriteString("  Active Status/Items: (Clear)\n")
			continue
		}

		b.WriteString("  Active Status/Items:\n")
		for _, effect := range creature.Effects {
			b.WriteString("    - " + r.paint(ansiCyan, effect) + "\n")
		}
	}

	b.WriteString(strings.Repeat("-", 37))
	return b.String()
}

// Roll renders a dice roll result
func (r *Renderer) Roll(formula string, result *dice.RollResult) string {
	parts := make([]string, len(result.Rolls))
	for i, roll := range result.Rolls {
		parts[i] = fmt.Sprintf("%d", roll)
	}

	modText := ""
	if result.Modifier != 0 {
		modText = fmt.Sprintf(" %+d", result.Modifier)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("\n--- Dice Roll: %s ---\n",
		r.paint(ansiBlue, strings.ToUpper(strings.TrimSpace(formula)))))
	b.WriteString(fmt.Sprintf("Rolls: (%s)%s = %s\n",
		strings.Join(parts, " + "), modText,
		r.paint(ansiGreen, fmt.Sprintf("%d", result.Total))))
	b.WriteString("-------------------------")
	return b.String()
}

// Error renders an error line
func (r *Renderer) Error(message string) string {
	return "[ERROR] " + message
}
