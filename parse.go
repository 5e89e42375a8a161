package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
)

const blueprintWord = "Blueprint"

// ParseBlueprints reads blueprints in the puzzle's prose format:
//
//	Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore.
//	Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.
//
// An entry starts at the word "Blueprint" and may wrap across lines. Only the
// seven integers of an entry are significant, in the order shown.
func ParseBlueprints(text string) ([]Blueprint, error) {
	var out []Blueprint
	chunks := strings.Split(text, blueprintWord)
	if lead := strings.TrimSpace(chunks[0]); lead != "" {
		return nil, fmt.Errorf("unexpected text before first blueprint: %q", lead)
	}
	for i, chunk := range chunks[1:] {
		bp, err := parseBlueprint(chunk)
		if err != nil {
			return nil, fmt.Errorf("blueprint entry %d: %w", i+1, err)
		}
		out = append(out, bp)
	}
	return out, nil
}

func parseBlueprint(chunk string) (Blueprint, error) {
	fields := strings.FieldsFunc(chunk, func(r rune) bool { return !unicode.IsDigit(r) })
	if len(fields) != 7 {
		return Blueprint{}, fmt.Errorf("want 7 numbers, got %d", len(fields))
	}
	var n [7]uint16
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 16)
		if err != nil {
			return Blueprint{}, fmt.Errorf("number %q: %w", f, err)
		}
		n[i] = uint16(v)
	}
	bp := Blueprint{ID: int(n[0])}
	bp.Costs[Ore] = Counts{Ore: n[1]}
	bp.Costs[Clay] = Counts{Ore: n[2]}
	bp.Costs[Obsidian] = Counts{Ore: n[3], Clay: n[4]}
	bp.Costs[Geode] = Counts{Ore: n[5], Obsidian: n[6]}
	if err := bp.Validate(); err != nil {
		return Blueprint{}, err
	}
	return bp, nil
}

// LoadBlueprintFile reads path as JSON when it looks like JSON and as prose
// otherwise.
func LoadBlueprintFile(path string) ([]Blueprint, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := string(b)
	if trimmed := strings.TrimSpace(s); strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return LoadBlueprintsJSON(s)
	}
	return ParseBlueprints(s)
}

// FindBlueprint returns the blueprint with the given ID, or nil if not found.
func FindBlueprint(blueprints []Blueprint, id int) *Blueprint {
	for i := range blueprints {
		if blueprints[i].ID == id {
			return &blueprints[i]
		}
	}
	return nil
}
