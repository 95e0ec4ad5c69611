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

// Guards the channel-wise division when an atmospheric light component is near zero
const normalizeEpsilon=1e-6

// Estimates the per-pixel transmission: the fraction of scene radiance
// reaching the camera unscattered. Normalizes the image by the atmospheric
// light, takes the dark channel of the result, and maps it through
// 1 - omega*dark, clamped to [floor, 1]. Omega below 1 retains a trace of
// haze for a natural look
func Transmission(f *img.Image, light img.RGB, windowRadius int, omega, floor float32) (*img.Gray, error) {
	if omega<0 || omega>1 {
		return nil, invalidArgf("omega %f outside [0,1]", omega)
	}
	if floor<=0 || floor>1 {
		return nil, invalidArgf("transmission floor %f outside (0,1]", floor)
	}
	if f==nil || f.Width<1 || f.Height<1 {
		return nil, invalidArgf("empty image")
	}

	normalized:=img.NewImage(f.Width, f.Height, nil)
	l:=f.Pixels()
	invR:=1.0/(light.R+normalizeEpsilon)
	invG:=1.0/(light.G+normalizeEpsilon)
	invB:=1.0/(light.B+normalizeEpsilon)
	parallelOver(l, func(lower, upper int) {
		for i:=lower; i<upper; i++ {
			normalized.Data[i    ]=f.Data[i    ]*invR
			normalized.Data[i+l  ]=f.Data[i+l  ]*invG
			normalized.Data[i+2*l]=f.Data[i+2*l]*invB
		}
	})

	dark, err:=DarkChannel(normalized, windowRadius)
	if err!=nil { return nil, err }

	parallelOver(l, func(lower, upper int) {
		for i:=lower; i<upper; i++ {
			t:=1-omega*dark.Data[i]
			if t<floor { t=floor }
			if t>1     { t=1     }
			dark.Data[i]=t
		}
	})
	dark.Stats.Clear()
	return dark, nil
}
