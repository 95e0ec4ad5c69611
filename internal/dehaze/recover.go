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
	"github.com/hazelight/hazelight/internal/img"
)

// Recovers the scene radiance by inverting the haze formation model
// observed = scene*t + light*(1-t) per pixel and channel. Transmission
// values are floored at minTransmission before the division, independently
// of any clamp the transmission estimate already applied. Results are
// clamped to [0,1]; with very low transmission the pre-clamp values can be
// extreme, and the clamp saturates rather than wraps
func Recover(f *img.Image, trans *img.Gray, light img.RGB, minTransmission float32) (*img.Image, error) {
	if minTransmission<=0 || minTransmission>1 {
		return nil, invalidArgf("minimum transmission %f outside (0,1]", minTransmission)
	}
	if f==nil || f.Width<1 || f.Height<1 {
		return nil, invalidArgf("empty image")
	}
	if trans==nil || trans.Width!=f.Width || trans.Height!=f.Height {
		return nil, invalidArgf("transmission map dimensions do not match image %s", f.DimensionsToString())
	}

	res:=img.NewImageFromImage(f)
	l:=f.Pixels()
	parallelOver(l, func(lower, upper int) {
		for i:=lower; i<upper; i++ {
			t:=trans.Data[i]
			if t<minTransmission { t=minTransmission }
			invT:=1.0/t
			res.Data[i    ]=clamp01((f.Data[i    ]-light.R)*invT + light.R)
			res.Data[i+l  ]=clamp01((f.Data[i+l  ]-light.G)*invT + light.G)
			res.Data[i+2*l]=clamp01((f.Data[i+2*l]-light.B)*invT + light.B)
		}
	})
	return res, nil
}

func clamp01(v float32) float32 {
	if v<0 { return 0 }
	if v>1 { return 1 }
	return v
}
