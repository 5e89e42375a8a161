package main

import (
	"fmt"
	"time"
)

// MaxHorizon is the longest search the state key encoding supports. Rates
// never exceed MaxHorizon+1 and stock stays below 2^16 within it.
const MaxHorizon = 64

// ── Search options & results ────────────────────────────────────────

// SearchOptions toggles the pruning rules of a search. The zero value is the
// normal, fully pruned search; the switches exist to check results against
// less pruned variants.
type SearchOptions struct {
	NoBound    bool // never prune on the upper bound
	NoCache    bool // never skip visited states
	NoCeilings bool // allow any number of non-goal units
	NoGreedy   bool // explore every branch even when a goal unit is affordable

	// OnImprove, if set, is called each time the best value increases.
	OnImprove func(best int)
}

// SearchStats counts the work done by one search.
type SearchStats struct {
	Calls     int `json:"calls"`
	Pruned    int `json:"pruned"`
	CacheHits int `json:"cacheHits"`
	CacheSize int `json:"cacheSize"`
}

// SearchResult is the optimum of one blueprint over one horizon.
type SearchResult struct {
	Best    int
	Stats   SearchStats
	Elapsed time.Duration
}

// ── State key ───────────────────────────────────────────────────────

// stateKey packs (minute, stock, rate) into two words: four 16-bit stock
// counters, then four 8-bit rate counters and the minute.
type stateKey struct {
	stock uint64
	rest  uint64
}

func makeKey(minute int, stock, rate Counts) stateKey {
	var k stateKey
	for i := 0; i < NumKinds; i++ {
		k.stock |= uint64(stock[i]) << (16 * i)
		k.rest |= uint64(rate[i]&0xff) << (8 * i)
	}
	k.rest |= uint64(minute) << 32
	return k
}

// ── Searcher ────────────────────────────────────────────────────────

// searcher holds everything one branch-and-bound search mutates. A searcher
// is owned by a single goroutine.
type searcher struct {
	bp       *Blueprint
	horizon  int
	maxRates Counts
	opts     SearchOptions

	visited map[stateKey]struct{}
	best    int
	stats   SearchStats
}

func newSearcher(bp *Blueprint, horizon int, opts SearchOptions) *searcher {
	s := &searcher{
		bp:       bp,
		horizon:  horizon,
		maxRates: bp.MaxRates(),
		opts:     opts,
		visited:  make(map[stateKey]struct{}),
	}
	if opts.NoCeilings {
		for k := range s.maxRates {
			s.maxRates[k] = MaxHorizon + 1
		}
	}
	return s
}

func (s *searcher) improve(v int) {
	if v > s.best {
		s.best = v
		if s.opts.OnImprove != nil {
			s.opts.OnImprove(v)
		}
	}
}

// canBuild reports whether a unit of kind k is affordable from stock and
// still below its ceiling.
func (s *searcher) canBuild(k Kind, stock, rate Counts) bool {
	return stock.CanAfford(s.bp.Costs[k]) && rate[k] < s.maxRates[k]
}

func (s *searcher) explore(minute int, stock, rate Counts) {
	s.stats.Calls++

	if minute == s.horizon {
		s.improve(int(stock[goal]))
		return
	}

	if !s.opts.NoBound && upperBound(stock, rate, s.horizon-minute) <= s.best {
		s.stats.Pruned++
		return
	}

	key := makeKey(minute, stock, rate)
	if !s.opts.NoCache {
		if _, ok := s.visited[key]; ok {
			s.stats.CacheHits++
			return
		}
	}

	next := stock.Add(rate)

	if !s.opts.NoGreedy && s.canBuild(goal, stock, rate) {
		s.explore(minute+1, next.Spend(s.bp.Costs[goal]), rate.Inc(goal))
	} else {
		s.explore(minute+1, next, rate)
		for k := Kind(0); k < NumKinds; k++ {
			if k == goal && !s.opts.NoGreedy {
				continue
			}
			if s.canBuild(k, stock, rate) {
				s.explore(minute+1, next.Spend(s.bp.Costs[k]), rate.Inc(k))
			}
		}
	}

	if !s.opts.NoCache {
		s.visited[key] = struct{}{}
	}
}

// ── Entry points ────────────────────────────────────────────────────

// Search runs a branch-and-bound search for the most goal resource bp can
// produce in horizon minutes, starting with one ore unit and nothing in stock.
func Search(bp *Blueprint, horizon int, opts SearchOptions) SearchResult {
	if horizon < 0 || horizon > MaxHorizon {
		panic(fmt.Sprintf("horizon %d outside 0..%d", horizon, MaxHorizon))
	}
	start := time.Now()
	s := newSearcher(bp, horizon, opts)
	s.explore(0, Counts{}, Counts{Ore: 1})
	s.stats.CacheSize = len(s.visited)

	if Verbose {
		fmt.Fprintf(logw(), "[verbose/search] blueprint %d horizon=%d best=%d calls=%d pruned=%d hits=%d cache=%d\n",
			bp.ID, horizon, s.best, s.stats.Calls, s.stats.Pruned, s.stats.CacheHits, s.stats.CacheSize)
	}
	return SearchResult{Best: s.best, Stats: s.stats, Elapsed: time.Since(start)}
}

// MaxGoal returns the optimum of bp over horizon with all pruning enabled.
func MaxGoal(bp *Blueprint, horizon int) int {
	return Search(bp, horizon, SearchOptions{}).Best
}
