package main

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// LoadBlueprintsJSON reads blueprints from JSON, either a bare array or an
// object with a "blueprints" array:
//
//	{"blueprints": [{"id": 1,
//	  "ore": {"ore": 4}, "clay": {"ore": 2},
//	  "obsidian": {"ore": 3, "clay": 14}, "geode": {"ore": 2, "obsidian": 7}}]}
//
// Entries without an id are numbered by position starting at 1.
func LoadBlueprintsJSON(data string) ([]Blueprint, error) {
	if !gjson.Valid(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	root := gjson.Parse(data)
	list := root
	if root.IsObject() {
		list = root.Get("blueprints")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("no blueprints array")
	}

	var (
		out []Blueprint
		err error
	)
	list.ForEach(func(_, v gjson.Result) bool {
		var bp Blueprint
		bp, err = parseBlueprintJSON(v, len(out)+1)
		if err != nil {
			return false
		}
		out = append(out, bp)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func parseBlueprintJSON(v gjson.Result, pos int) (Blueprint, error) {
	bp := Blueprint{ID: pos}
	if id := v.Get("id"); id.Exists() {
		bp.ID = int(id.Int())
	}
	for unit := Kind(0); unit < NumKinds; unit++ {
		row := v.Get(unit.String())
		if !row.IsObject() {
			return Blueprint{}, fmt.Errorf("blueprint %d: missing %s cost", bp.ID, unit)
		}
		cost, err := readCounts(row)
		if err != nil {
			return Blueprint{}, fmt.Errorf("blueprint %d: %s cost: %w", bp.ID, unit, err)
		}
		bp.Costs[unit] = cost
	}
	if err := bp.Validate(); err != nil {
		return Blueprint{}, err
	}
	return bp, nil
}

func readCounts(row gjson.Result) (Counts, error) {
	var c Counts
	var err error
	row.ForEach(func(key, val gjson.Result) bool {
		k, ok := kindByName(key.String())
		if !ok {
			err = fmt.Errorf("unknown resource %q", key.String())
			return false
		}
		if val.Type != gjson.Number || val.Int() < 0 || val.Int() > 0xffff {
			err = fmt.Errorf("%s amount %s out of range", k, val.Raw)
			return false
		}
		c[k] = uint16(val.Int())
		return true
	})
	return c, err
}

func kindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}
