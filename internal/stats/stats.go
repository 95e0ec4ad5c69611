// Copyright (C) 2021 The hazelight authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package stats

import (
	"fmt"
)

// Basic statistics for a slice of pixel data. Min, max and mean are
// computed on first access and cached until Clear() is called.
type Stats struct {
	data     []float32

	min      float32
	max      float32
	mean     float32
	cached   bool
}

// Creates statistics for the given data slice. Does not copy the data;
// callers mutating it must call Clear() afterwards.
func NewStats(data []float32) *Stats {
	return &Stats{data: data}
}

// Invalidates cached values after the underlying data changed
func (s *Stats) Clear() {
	s.cached=false
}

func (s *Stats) Min() float32  { s.update(); return s.min  }
func (s *Stats) Max() float32  { s.update(); return s.max  }
func (s *Stats) Mean() float32 { s.update(); return s.mean }

func (s *Stats) update() {
	if s.cached { return }
	min, max:=s.data[0], s.data[0]
	sum:=float64(0)
	for _,d:=range s.data {
		if d<min { min=d }
		if d>max { max=d }
		sum+=float64(d)
	}
	s.min, s.max=min, max
	s.mean=float32(sum/float64(len(s.data)))
	s.cached=true
}

func (s *Stats) String() string {
	return fmt.Sprintf("min=%.4g mean=%.4g max=%.4g", s.Min(), s.Mean(), s.Max())
}
