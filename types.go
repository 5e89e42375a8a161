package main

import (
	"fmt"
	"math"
)

// Kind identifies one of the four resource kinds, ordered by production
// dependency. Geode is the goal resource.
type Kind int

const (
	Ore Kind = iota
	Clay
	Obsidian
	Geode

	NumKinds = 4
	goal     = Geode
)

var kindNames = [NumKinds]string{"ore", "clay", "obsidian", "geode"}

func (k Kind) String() string {
	if k < 0 || int(k) >= NumKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Counts is one counter per resource kind. It is used both for stock
// (spendable resources) and for rate (active producing units).
type Counts [NumKinds]uint16

// Add returns c plus rate, elementwise.
func (c Counts) Add(rate Counts) Counts {
	for k := range c {
		c[k] += rate[k]
	}
	return c
}

// CanAfford reports whether every entry of c covers the matching entry of cost.
func (c Counts) CanAfford(cost Counts) bool {
	for k := range c {
		if c[k] < cost[k] {
			return false
		}
	}
	return true
}

// Spend returns c minus cost. Callers must check CanAfford first; a negative
// balance is a logic error and panics.
func (c Counts) Spend(cost Counts) Counts {
	for k := range c {
		if c[k] < cost[k] {
			panic(fmt.Sprintf("spend %v from %v: %s would go negative", cost, c, Kind(k)))
		}
		c[k] -= cost[k]
	}
	return c
}

// Inc returns a copy of c with one more unit of kind k.
func (c Counts) Inc(k Kind) Counts {
	c[k]++
	return c
}

// Blueprint is the immutable cost table of one scenario: Costs[k] is the
// price of one producing unit of kind k.
type Blueprint struct {
	ID    int
	Costs [NumKinds]Counts
}

// Validate checks that costs only reference kinds of equal or lower rank and
// that no row is empty.
func (b *Blueprint) Validate() error {
	for unit := Kind(0); unit < NumKinds; unit++ {
		cost := b.Costs[unit]
		if cost == (Counts{}) {
			return fmt.Errorf("blueprint %d: %s unit has no cost", b.ID, unit)
		}
		for k := unit + 1; k < NumKinds; k++ {
			if cost[k] != 0 {
				return fmt.Errorf("blueprint %d: %s unit costs %s", b.ID, unit, k)
			}
		}
	}
	return nil
}

// MaxRates returns the rate ceilings for a search. A non-goal kind is never
// worth producing faster than the largest amount of it any single build can
// consume, since only one unit is built per minute. The goal kind is uncapped.
func (b *Blueprint) MaxRates() Counts {
	var m Counts
	for k := Kind(0); k < goal; k++ {
		for unit := Kind(0); unit < NumKinds; unit++ {
			if c := b.Costs[unit][k]; c > m[k] {
				m[k] = c
			}
		}
	}
	m[goal] = math.MaxUint16
	return m
}
