package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KirkDiggler/combat-tracker/internal/dice"
	trackererr "github.com/KirkDiggler/combat-tracker/internal/errors"
	"github.com/KirkDiggler/combat-tracker/internal/services/tracker"
)

// Handler runs the interactive command loop. It owns all numeric-range
// validation of user input; the service below it only reports coded
// outcomes.
type Handler struct {
	service  tracker.Service
	roller   dice.Roller
	renderer *Renderer
	in       *bufio.Scanner
	out      io.Writer
}

// HandlerConfig holds configuration for the handler
type HandlerConfig struct {
	Service tracker.Service // Required
	Roller  dice.Roller     // Required
	Input   io.Reader       // Required
	Output  io.Writer       // Required
	NoColor bool
}

// NewHandler creates a new CLI handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.Service == nil {
		panic("service is required")
	}
	if cfg.Roller == nil {
		panic("roller is required")
	}
	if cfg.Input == nil || cfg.Output == nil {
		panic("input and output are required")
	}

	return &Handler{
		service:  cfg.Service,
		roller:   cfg.Roller,
		renderer: NewRenderer(cfg.NoColor),
		in:       bufio.NewScanner(cfg.Input),
		out:      cfg.Output,
	}
}

// Run reads and dispatches commands until quit, EOF, or context
// cancellation. One command fully completes before the next is read.
func (h *Handler) Run(ctx context.Context) error {
	h.println(h.renderer.Banner())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		h.println(h.renderer.Menu())
		command, ok := h.prompt("Enter command (AC/RC/HP/AE/RE/AR/S/DR/Q): ")
		if !ok {
			return nil
		}

		switch strings.ToUpper(command) {
		case "Q":
			h.println("\nExiting tracker. Happy adventuring!")
			return nil
		case "AC":
			h.addCreature(ctx)
		case "RC":
			h.removeCreature(ctx)
		case "HP":
			h.modifyHP(ctx)
		case "AE":
			h.applyEffect(ctx)
		case "RE":
			h.removeEffect(ctx)
		case "AR":
			h.advanceRound(ctx)
		case "S":
			h.showStatus(ctx)
		case "DR":
			h.rollDice()
		case "":
			// Empty line, just re-show the menu
		default:
			h.printError(fmt.Sprintf("Unknown command: %s. Please use one of the listed commands.", command))
		}
	}
}

func (h *Handler) addCreature(ctx context.Context) {
	name, ok := h.prompt("Creature name to add: ")
	if !ok || name == "" {
		h.printError("Name cannot be empty.")
		return
	}

	maxHP, ok := h.promptPositiveInt(fmt.Sprintf("Max HP for %s: ", name))
	if !ok {
		h.printError("Max HP must be a positive whole number.")
		return
	}

	output, err := h.service.AddCreature(ctx, &tracker.AddCreatureInput{
		Name:  name,
		MaxHP: maxHP,
	})
	if err != nil {
		if trackererr.IsAlreadyExists(err) {
			h.println(fmt.Sprintf("[SETUP] Creature '%s' is already in the tracker.", name))
			return
		}
		h.printError(err.Error())
		return
	}

	if output.Creature != nil {
		h.println(h.renderer.CreatureAdded(output.Creature))
	}
}

func (h *Handler) removeCreature(ctx context.Context) {
	names, ok := h.listCreatures(ctx)
	if !ok {
		return
	}

	h.println("\nAvailable Creatures: " + strings.Join(names, ", "))
	name, ok := h.prompt("Creature name to REMOVE completely: ")
	if !ok {
		return
	}

	if err := h.service.RemoveCreature(ctx, name); err != nil {
		if trackererr.IsNotFound(err) {
			h.printError(fmt.Sprintf("Creature '%s' not found.", name))
			return
		}
		h.printError(err.Error())
		return
	}

	h.println(h.renderer.CreatureRemoved(name))
}

func (h *Handler) modifyHP(ctx context.Context) {
	names, ok := h.listCreatures(ctx)
	if !ok {
		return
	}

	h.println("\nAvailable Creatures: " + strings.Join(names, ", "))
	name, ok := h.prompt("Target creature name: ")
	if !ok {
		return
	}

	amount, ok := h.promptPositiveInt("Amount of Damage/Healing: ")
	if !ok {
		h.printError("Amount must be a positive whole number.")
		return
	}

	action, ok := h.prompt("Action (D for Damage, H for Heal): ")
	if !ok {
		return
	}

	var isHeal bool
	switch strings.ToUpper(action) {
	case "D":
		isHeal = false
	case "H":
		isHeal = true
	default:
		h.printError("Invalid action. Please use 'D' or 'H'.")
		return
	}

	output, err := h.service.ModifyHP(ctx, &tracker.ModifyHPInput{
		CreatureName: name,
		Amount:       amount,
		IsHeal:       isHeal,
	})
	if err != nil {
		if trackererr.IsNotFound(err) {
			h.printError(fmt.Sprintf("Creature '%s' not found.", name))
			return
		}
		h.printError(err.Error())
		return
	}

	h.println(h.renderer.HPChanged(name, isHeal, output))
}

func (h *Handler) applyEffect(ctx context.Context) {
	names, ok := h.listCreatures(ctx)
	if !ok {
		return
	}

	h.println("\nAvailable Creatures: " + strings.Join(names, ", "))
	name, ok := h.prompt("Target creature name: ")
	if !ok {
		return
	}

	effectName, ok := h.prompt("Effect/Item name: ")
	if !ok || effectName == "" {
		h.printError("Effect/Item name cannot be empty.")
		return
	}

	durationStr, ok := h.prompt("Duration in rounds (-1 for Permanent, 0 for Notes/Items, or a positive number): ")
	if !ok {
		return
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil || duration < -1 {
		h.printError("Duration must be a whole number (-1, 0, or positive).")
		return
	}

	description, ok := h.prompt("Description/Details (e.g., condition specifics, item quantity): ")
	if !ok {
		return
	}
	if description == "" {
		description = "N/A"
	}

	output, applyErr := h.service.ApplyEffect(ctx, &tracker.ApplyEffectInput{
		CreatureName: name,
		EffectName:   effectName,
		Duration:     duration,
		Description:  description,
	})
	if applyErr != nil {
		if trackererr.IsNotFound(applyErr) {
			h.printError(fmt.Sprintf("Creature '%s' not found.", name))
			return
		}
		h.printError(applyErr.Error())
		return
	}

	h.println(h.renderer.EffectApplied(name, output))
}

func (h *Handler) removeEffect(ctx context.Context) {
	names, ok := h.listCreatures(ctx)
	if !ok {
		return
	}

	h.println("\nAvailable Creatures: " + strings.Join(names, ", "))
	name, ok := h.prompt("Target creature name to remove effect/item from: ")
	if !ok {
		return
	}

	snapshot, err := h.service.GetStatusSnapshot(ctx)
	if err != nil {
		h.printError(err.Error())
		return
	}
	for _, creature := range snapshot.Creatures {
		if creature.Name == name {
			h.println(fmt.Sprintf("\nActive status/items on %s: %s",
				name, strings.Join(creature.Effects, "; ")))
		}
	}

	effectName, ok := h.prompt("Status/Item name to remove: ")
	if !ok {
		return
	}

	if err := h.service.RemoveEffect(ctx, &tracker.RemoveEffectInput{
		CreatureName: name,
		EffectName:   effectName,
	}); err != nil {
		h.printError(err.Error())
		return
	}

	h.println(h.renderer.EffectRemoved(name, effectName))
}

func (h *Handler) advanceRound(ctx context.Context) {
	output, err := h.service.AdvanceRound(ctx)
	if err != nil {
		h.printError(err.Error())
		return
	}

	h.println("")
	h.println(h.renderer.RoundBanner(output.Round))
	for _, expiry := range output.Expired {
		h.println(h.renderer.Expiry(expiry))
	}
	h.println(h.renderer.Snapshot(output.Snapshot))
}

func (h *Handler) showStatus(ctx context.Context) {
	snapshot, err := h.service.GetStatusSnapshot(ctx)
	if err != nil {
		h.printError(err.Error())
		return
	}

	h.println(h.renderer.Snapshot(snapshot))
}

func (h *Handler) rollDice() {
	formula, ok := h.prompt("Enter dice formula (e.g., 2d6+5): ")
	if !ok {
		return
	}
	if formula == "" {
		h.printError("Dice formula cannot be empty.")
		return
	}

	result, err := dice.RollString(h.roller, formula)
	if err != nil {
		h.printError(err.Error())
		return
	}

	h.println(h.renderer.Roll(formula, result))
}

// listCreatures returns the tracked creature names, reporting an error to
// the user when nothing is tracked yet
func (h *Handler) listCreatures(ctx context.Context) ([]string, bool) {
	snapshot, err := h.service.GetStatusSnapshot(ctx)
	if err != nil {
		h.printError(err.Error())
		return nil, false
	}

	if len(snapshot.Creatures) == 0 {
		h.printError("No creatures tracked yet. Use 'AC' first.")
		return nil, false
	}

	names := make([]string, 0, len(snapshot.Creatures))
	for _, creature := range snapshot.Creatures {
		names = append(names, creature.Name)
	}
	return names, true
}

// prompt writes the prompt and reads one trimmed line. The second return is
// false on EOF.
func (h *Handler) prompt(text string) (string, bool) {
	fmt.Fprint(h.out, text)
	if !h.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(h.in.Text()), true
}

func (h *Handler) promptPositiveInt(text string) (int, bool) {
	raw, ok := h.prompt(text)
	if !ok {
		return 0, false
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

func (h *Handler) println(text string) {
	fmt.Fprintln(h.out, text)
}

func (h *Handler) printError(message string) {
	h.println(h.renderer.Error(message))
}
