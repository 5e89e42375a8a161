package main

// gauss returns 0+1+...+n.
func gauss(n int) int {
	return n * (n + 1) / 2
}

// upperBound is an optimistic estimate of the goal stock reachable by the
// horizon from the given stock and rate with remaining minutes left. Current
// goal units yield rate*remaining; a goal unit built with j minutes left adds
// at most j-1 more, so building one every minute adds at most
// remaining*(remaining-1)/2, which gauss(remaining) dominates.
func upperBound(stock, rate Counts, remaining int) int {
	return int(stock[goal]) + int(rate[goal])*remaining + gauss(remaining)
}
