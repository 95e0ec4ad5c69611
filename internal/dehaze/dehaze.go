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


// Package dehaze removes atmospheric haze from a single image using the
// dark channel prior of He, Sun and Tang: hazy image patches are bright in
// all channels, haze-free outdoor patches contain at least one dark one.
// Four pure stages estimate a per-pixel transmission map and a global
// atmospheric light, then invert the haze formation model
// observed = scene*t + light*(1-t) to recover the scene radiance.
package dehaze

import (
	"github.com/hazelight/hazelight/internal/img"
)

// The outputs of a full dehazing run, including the intermediate maps
// for inspection
type Result struct {
	Recovered    *img.Image // the dehazed image
	Dark         *img.Gray  // dark channel of the input
	Transmission *img.Gray  // estimated transmission map
	Light        img.RGB    // estimated atmospheric light
}

// Runs the full four-stage pipeline on the given image: dark channel,
// atmospheric light, transmission estimate, radiance recovery.
// The input image is left unchanged
func Dehaze(f *img.Image, p Params) (*Result, error) {
	if err:=p.Valid(); err!=nil { return nil, err }

	dark, err:=DarkChannel(f, p.WindowRadius)
	if err!=nil { return nil, err }

	light, err:=AtmosphericLight(f, dark, p.TopFraction)
	if err!=nil { return nil, err }

	trans, err:=Transmission(f, light, p.WindowRadius, p.Omega, p.TransmissionFloor)
	if err!=nil { return nil, err }

	recovered, err:=Recover(f, trans, light, p.MinTransmission)
	if err!=nil { return nil, err }

	return &Result{
		Recovered   : recovered,
		Dark        : dark,
		Transmission: trans,
		Light       : light,
	}, nil
}
