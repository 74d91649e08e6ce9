package network

import "github.com/katalvlaran/cargodist/movingavg"

// MinAverageLength is the minimum length of the moving averages of a link.
const MinAverageLength = 96

// LinkStat holds capacity and usage figures of a link. Both are moving
// averages that grow with every vehicle arriving at the destination and
// decay in regular intervals. Capacity of vehicles currently loading at the
// source is frozen and never decays away, so a link stays alive while
// vehicles wait for a full load.
type LinkStat struct {
	avg      movingavg.MovingAverage
	capacity int64 // raw moving average; use Capacity()
	frozen   int64 // capacity of currently loading vehicles
	usage    int64 // raw moving average; use Usage()
}

// NewLinkStat creates a link statistic with the given averaging length.
// Lengths below MinAverageLength are raised to it.
func NewLinkStat(length, capacity, frozen, usage int64) *LinkStat {
	if length < MinAverageLength {
		length = MinAverageLength
	}

	return &LinkStat{
		avg:      movingavg.MustNew(length),
		capacity: max(capacity, frozen),
		frozen:   frozen,
		usage:    usage,
	}
}

// Length returns the link's averaging length.
func (l *LinkStat) Length() int64 { return l.avg.Length() }

// Capacity returns the monthly capacity estimate.
func (l *LinkStat) Capacity() int64 { return l.avg.Monthly(l.capacity) }

// Usage returns the monthly usage estimate.
func (l *LinkStat) Usage() int64 { return l.avg.Monthly(l.usage) }

// Frozen returns the frozen capacity.
func (l *LinkStat) Frozen() int64 { return l.frozen }

// IsNull reports whether the raw capacity is zero. Capacity() may already
// report 0 while a small raw remainder is left.
func (l *LinkStat) IsNull() bool { return l.capacity == 0 }

// Clear resets all figures to zero.
func (l *LinkStat) Clear() {
	l.capacity = 0
	l.usage = 0
	l.frozen = 0
}

// Increase adds raw capacity and usage.
func (l *LinkStat) Increase(capacity, usage int64) {
	l.capacity += capacity
	l.usage += usage
}

// Decrease applies the moving average to usage and capacity.
// Capacity never decays below the frozen amount.
func (l *LinkStat) Decrease() {
	l.usage = l.avg.Decrease(l.usage)
	l.capacity = max(l.avg.Decrease(l.capacity), l.frozen)
}

// Freeze marks capacity of a loading vehicle as frozen.
func (l *LinkStat) Freeze(capacity int64) {
	l.frozen += capacity
	l.capacity = max(l.frozen, l.capacity)
}

// Unfreeze thaws some frozen capacity. Thawing more than is frozen thaws all.
func (l *LinkStat) Unfreeze(capacity int64) {
	l.frozen = max(l.frozen-capacity, 0)
}

// UnfreezeAll thaws all frozen capacity.
func (l *LinkStat) UnfreezeAll() { l.frozen = 0 }
