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


package dehaze

import (
	"math"
	"github.com/hazelight/hazelight/internal/img"
	"github.com/hazelight/hazelight/internal/qsort"
	"gonum.org/v1/gonum/stat"
)

// Estimates the global atmospheric light color as the mean original color
// of the k brightest dark channel pixels, k=max(floor(pixels*topFraction),1).
// These are typically sky or distant background. When several pixels tie at
// the selection boundary, an arbitrary deterministic subset of the tied
// pixels completes the k; the mean remains statistically stable
func AtmosphericLight(f *img.Image, dark *img.Gray, topFraction float32) (img.RGB, error) {
	if topFraction<=0 || topFraction>1 {
		return img.RGB{}, invalidArgf("top fraction %f outside (0,1]", topFraction)
	}
	if f==nil || f.Width<1 || f.Height<1 {
		return img.RGB{}, invalidArgf("empty image")
	}
	if dark==nil || dark.Width!=f.Width || dark.Height!=f.Height {
		return img.RGB{}, invalidArgf("dark channel dimensions do not match image %s", f.DimensionsToString())
	}

	numPixels:=f.Pixels()
	k:=int(math.Floor(float64(numPixels)*float64(topFraction)))
	if k<1 { k=1 }

	// find the dark channel value of the kth brightest pixel
	scratch:=make([]float32, numPixels)
	copy(scratch, dark.Data)
	boundary:=qsort.QSelectLargestFloat32(scratch, k)

	// gather the colors of all pixels strictly above the boundary,
	// then fill up to exactly k from
	// the tied boundary pixels in scan order
	rs, gs, bs:=make([]float64, 0, k), make([]float64, 0, k), make([]float64, 0, k)
	r, g, b:=f.Channel(0), f.Channel(1), f.Channel(2)
	for _, above:=range []bool{true, false} {
		for i, d:=range dark.Data {
			if len(rs)==k { break }
			if (above && d>boundary) || (!above && d==boundary) {
				rs=append(rs, float64(r[i]))
				gs=append(gs, float64(g[i]))
				bs=append(bs, float64(b[i]))
			}
		}
	}

	return img.RGB{
		R: float32(stat.Mean(rs, nil)),
		G: float32(stat.Mean(gs, nil)),
		B: float32(stat.Mean(bs, nil)),
	}, nil
}
