// stat.go: running-statistics accumulator with lossy compact encoding
//
// A Stat is an ordered sequence of numeric samples with summary
// accessors. For persistence it collapses into a compact 5-number
// summary (count, min, max, sum, last) and reconstructs a synthetic
// sample sequence on the way back, preserving count, min, max, last
// exactly and sum approximately.
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

import (
	"encoding/json"
	"math"
)

// statRoundEpsilon counters binary floating-point representation error
// before rounding summary values to 2 decimal places.
const statRoundEpsilon = 1e-9

// statForm discriminates the two internal representations of a Stat.
type statForm uint8

const (
	// formFull holds every appended sample.
	formFull statForm = iota

	// formCompact holds only the 5-number summary, as loaded from a
	// serialized store. Upgraded to formFull on the first Add.
	formCompact
)

// StatCompact is the lossy compact encoding of a Stat: the persisted
// form of the changed/used statistics of a Record. Min, Max and Sum
// are rounded to 2 decimal places; Last is kept unrounded.
type StatCompact struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Sum   float64 `json:"sum"`
	Last  float64 `json:"last"`
}

// Stat accumulates an ordered sequence of numeric samples.
// Insertion order is chronological; samples are append-only.
// The zero value is an empty Stat ready for use.
//
// Stat is not safe for concurrent use; the owning Store serializes
// access to it.
type Stat struct {
	form    statForm
	values  []float64
	summary StatCompact
}

// NewStat creates a Stat seeded with the given samples.
func NewStat(samples ...float64) *Stat {
	s := &Stat{}
	s.Add(samples...)
	return s
}

// FromCompact reconstructs a Stat from its compact encoding.
// The summary is held verbatim until the first Add, so a compact
// round trip reproduces the summary byte for byte. A summary with
// Count <= 0 yields a fresh empty Stat.
func FromCompact(c StatCompact) *Stat {
	if c.Count <= 0 {
		return &Stat{}
	}
	return &Stat{form: formCompact, summary: c}
}

// Add appends one or more samples. Values are not sanitized: NaN and
// infinities pass through unchanged. Adding to a compact-form Stat
// first expands the summary into a synthetic sample sequence.
func (s *Stat) Add(samples ...float64) {
	if len(samples) == 0 {
		return
	}
	s.expand()
	s.values = append(s.values, samples...)
}

// Count returns the number of samples, real or synthesized.
func (s *Stat) Count() int {
	if s.form == formCompact {
		return s.summary.Count
	}
	return len(s.values)
}

// Sum returns the sum of all samples.
func (s *Stat) Sum() float64 {
	if s.form == formCompact {
		return s.summary.Sum
	}
	var sum float64
	for _, v := range s.values {
		sum += v
	}
	return sum
}

// Min returns the smallest sample. Over an empty Stat the result is
// NaN; callers must guard with Count() > 0.
func (s *Stat) Min() float64 {
	if s.form == formCompact {
		return s.summary.Min
	}
	if len(s.values) == 0 {
		return math.NaN()
	}
	min := s.values[0]
	for _, v := range s.values[1:] {
		min = math.Min(min, v)
	}
	return min
}

// Max returns the largest sample. Over an empty Stat the result is
// NaN; callers must guard with Count() > 0.
func (s *Stat) Max() float64 {
	if s.form == formCompact {
		return s.summary.Max
	}
	if len(s.values) == 0 {
		return math.NaN()
	}
	max := s.values[0]
	for _, v := range s.values[1:] {
		max = math.Max(max, v)
	}
	return max
}

// Last returns the most recent sample, or 0 if the Stat is empty.
func (s *Stat) Last() float64 {
	return s.LastOr(0)
}

// LastOr returns the most recent sample, or fallback if the Stat is empty.
func (s *Stat) LastOr(fallback float64) float64 {
	if s.form == formCompact {
		return s.summary.Last
	}
	if len(s.values) == 0 {
		return fallback
	}
	return s.values[len(s.values)-1]
}

// Average returns Sum()/Count(), or NaN when the Stat is empty.
func (s *Stat) Average() float64 {
	count := s.Count()
	if count == 0 {
		return math.NaN()
	}
	return s.Sum() / float64(count)
}

// Values returns a copy of the sample sequence, synthesizing it from
// the summary when the Stat is in compact form. The Stat itself is not
// upgraded.
func (s *Stat) Values() []float64 {
	if s.form == formCompact {
		return s.summary.expand()
	}
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// ToCompact returns the compact encoding of the Stat. Min, Max and Sum
// are rounded to 2 decimal places (half away from zero, with epsilon
// correction); Last is kept unrounded. Calling ToCompact on a
// compact-form Stat returns the stored summary verbatim, so the
// operation is idempotent.
func (s *Stat) ToCompact() StatCompact {
	if s.form == formCompact {
		return s.summary
	}
	if len(s.values) == 0 {
		return StatCompact{}
	}
	return StatCompact{
		Count: len(s.values),
		Min:   round2(s.Min()),
		Max:   round2(s.Max()),
		Sum:   round2(s.Sum()),
		Last:  s.LastOr(0),
	}
}

// MarshalJSON encodes the Stat as its compact form.
func (s *Stat) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToCompact())
}

// UnmarshalJSON decodes a Stat from serialized JSON. An object carrying
// all of count, min, max and sum is treated as a compact encoding
// (last defaults to 0 when absent); anything else yields a fresh empty
// Stat rather than an error, so heterogeneous persisted documents
// round-trip.
func (s *Stat) UnmarshalJSON(data []byte) error {
	var probe struct {
		Count *int     `json:"count"`
		Min   *float64 `json:"min"`
		Max   *float64 `json:"max"`
		Sum   *float64 `json:"sum"`
		Last  *float64 `json:"last"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		*s = Stat{}
		return nil
	}
	if probe.Count == nil || probe.Min == nil || probe.Max == nil || probe.Sum == nil {
		*s = Stat{}
		return nil
	}
	c := StatCompact{
		Count: *probe.Count,
		Min:   *probe.Min,
		Max:   *probe.Max,
		Sum:   *probe.Sum,
	}
	if probe.Last != nil {
		c.Last = *probe.Last
	}
	*s = *FromCompact(c)
	return nil
}

// expand upgrades a compact-form Stat to full form by synthesizing its
// sample sequence. No-op on a full-form Stat.
func (s *Stat) expand() {
	if s.form != formCompact {
		return
	}
	s.values = s.summary.expand()
	s.summary = StatCompact{}
	s.form = formFull
}

// expand synthesizes a sample sequence of length Count that reproduces
// the summary: last is always the final element; min is retained
// verbatim only when strictly below last, max only when strictly above
// it; the remaining slots share the leftover sum evenly.
func (c StatCompact) expand() []float64 {
	if c.Count <= 0 {
		return nil
	}
	values := make([]float64, 0, c.Count)
	rest := c.Sum - c.Last
	n := c.Count - 1
	if n > 0 && c.Min < c.Last {
		values = append(values, c.Min)
		rest -= c.Min
		n--
	}
	if n > 0 && c.Max > c.Last {
		values = append(values, c.Max)
		rest -= c.Max
		n--
	}
	if n > 0 {
		fill := rest / float64(n)
		for i := 0; i < n; i++ {
			values = append(values, fill)
		}
	}
	return append(values, c.Last)
}

// round2 rounds v to 2 decimal places, half away from zero, nudging
// the input by a tiny epsilon first so values sitting just below a
// .xx5 boundary due to binary representation error round as intended.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	v += math.Copysign(statRoundEpsilon, v)
	return math.Round(v*100) / 100
}
