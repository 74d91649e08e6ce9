// Package movingavg implements the length-parameterised moving average used
// to smooth link capacity and usage counters.
//
// A counter is increased by the simulation whenever a vehicle arrives and is
// periodically shrunk with Decrease. Monthly converts the raw counter into a
// per-30-days figure, which is the only value the distribution engine reads.
package movingavg

import "errors"

// ErrZeroLength is returned by New when a moving average of length 0 is requested.
var ErrZeroLength = errors.New("movingavg: length must be positive")

// MovingAverage is a bounded exponential-style decay of a given length (in days).
type MovingAverage struct {
	length int64
}

// New returns a MovingAverage of the given length.
// Returns ErrZeroLength if length <= 0.
func New(length int64) (MovingAverage, error) {
	if length <= 0 {
		return MovingAverage{}, ErrZeroLength
	}

	return MovingAverage{length: length}, nil
}

// MustNew is like New but panics on an invalid length.
func MustNew(length int64) MovingAverage {
	m, err := New(length)
	if err != nil {
		panic(err.Error())
	}

	return m
}

// Length returns the averaging length.
func (m MovingAverage) Length() int64 { return m.length }

// Monthly scales value to its 30-day equivalent.
func (m MovingAverage) Monthly(value int64) int64 {
	return value * 30 / m.length
}

// Decrease applies one step of decay: value * length / (length + 1).
func (m MovingAverage) Decrease(value int64) int64 {
	return value * m.length / (m.length + 1)
}
