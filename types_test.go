package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBlueprint(id int, ore, clay, obsOre, obsClay, geoOre, geoObs uint16) Blueprint {
	var bp Blueprint
	bp.ID = id
	bp.Costs[Ore] = Counts{Ore: ore}
	bp.Costs[Clay] = Counts{Ore: clay}
	bp.Costs[Obsidian] = Counts{Ore: obsOre, Clay: obsClay}
	bp.Costs[Geode] = Counts{Ore: geoOre, Obsidian: geoObs}
	return bp
}

func exampleBlueprints() []Blueprint {
	return []Blueprint{
		makeBlueprint(1, 4, 2, 3, 14, 2, 7),
		makeBlueprint(2, 2, 3, 3, 8, 3, 12),
	}
}

func TestCountsAdd(t *testing.T) {
	stock := Counts{3, 1, 0, 2}
	rate := Counts{1, 2, 0, 1}
	assert.Equal(t, Counts{4, 3, 0, 3}, stock.Add(rate))
	assert.Equal(t, Counts{3, 1, 0, 2}, stock, "Add must not mutate the receiver")
}

func TestCountsAffordability(t *testing.T) {
	stock := Counts{Ore: 5, Clay: 14}
	cost := Counts{Ore: 3, Clay: 14}

	first := stock.CanAfford(cost)
	second := stock.CanAfford(cost)
	assert.True(t, first)
	assert.Equal(t, first, second)

	after := stock.Spend(cost)
	assert.Equal(t, Counts{Ore: 2}, after)
	assert.False(t, after.CanAfford(cost))
	assert.True(t, after.CanAfford(Counts{Ore: 2}))
	assert.False(t, after.CanAfford(Counts{Ore: 3}))
}

func TestCountsSpendPanicsOnOverdraft(t *testing.T) {
	assert.Panics(t, func() {
		Counts{Ore: 1}.Spend(Counts{Ore: 2})
	})
	assert.Panics(t, func() {
		Counts{Ore: 5}.Spend(Counts{Ore: 1, Obsidian: 1})
	})
}

func TestCountsInc(t *testing.T) {
	rate := Counts{Ore: 1}
	assert.Equal(t, Counts{1, 0, 0, 1}, rate.Inc(Geode))
	assert.Equal(t, Counts{Ore: 1}, rate)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "obsidian", Obsidian.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestBlueprintMaxRates(t *testing.T) {
	bps := exampleBlueprints()

	m := bps[0].MaxRates()
	assert.Equal(t, uint16(4), m[Ore])
	assert.Equal(t, uint16(14), m[Clay])
	assert.Equal(t, uint16(7), m[Obsidian])
	assert.Equal(t, uint16(math.MaxUint16), m[Geode])

	m = bps[1].MaxRates()
	assert.Equal(t, uint16(3), m[Ore])
	assert.Equal(t, uint16(8), m[Clay])
	assert.Equal(t, uint16(12), m[Obsidian])
}

func TestBlueprintValidate(t *testing.T) {
	good := makeBlueprint(1, 4, 2, 3, 14, 2, 7)
	require.NoError(t, good.Validate())

	empty := good
	empty.Costs[Clay] = Counts{}
	assert.ErrorContains(t, empty.Validate(), "clay unit has no cost")

	upward := good
	upward.Costs[Clay] = Counts{Ore: 1, Obsidian: 1}
	assert.ErrorContains(t, upward.Validate(), "clay unit costs obsidian")
}
