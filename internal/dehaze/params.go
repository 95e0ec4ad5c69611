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
	"errors"
	"fmt"
)

// The error kind raised for out-of-range parameters, empty images and
// mismatched map dimensions. Detected at stage entry, never silently corrected
var ErrInvalidArgument=errors.New("invalid argument")

func invalidArgf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Tunable parameters of the haze model. These five values fully determine
// pipeline behavior; there are no other hidden constants
type Params struct {
	WindowRadius      int     `json:"windowRadius"`      // min filter radius, window side is 2*radius+1
	Omega             float32 `json:"omega"`             // haze retention factor in [0,1]; 1 removes all detected haze
	TransmissionFloor float32 `json:"transmissionFloor"` // lower clamp for the transmission estimate, in (0,1].
	                                                     // Lower floors dehaze more aggressively but amplify noise in thick haze
	TopFraction       float32 `json:"topFraction"`       // fraction of brightest dark channel pixels for the light estimate, in (0,1]
	MinTransmission   float32 `json:"minTransmission"`   // independent recovery floor guarding the division, in (0,1]
}

// The standard preset: a tight sky-pixel light estimate with a 15x15 window
func NewParams() Params {
	return Params{
		WindowRadius     : 7,
		Omega            : 0.95,
		TransmissionFloor: 0.1,
		TopFraction      : 0.001,
		MinTransmission  : 0.1,
	}
}

// The coarse preset: a small 5x5 window with a broad 20% light estimate
// and a deep transmission floor
func NewParamsCoarse() Params {
	return Params{
		WindowRadius     : 2,
		Omega            : 0.95,
		TransmissionFloor: 0.01,
		TopFraction      : 0.2,
		MinTransmission  : 0.1,
	}
}

// Returns the named parameter preset, or an error for unknown names
func NewParamsPreset(name string) (Params, error) {
	switch name {
	case "", "default":
		return NewParams(), nil
	case "coarse":
		return NewParamsCoarse(), nil
	}
	return Params{}, invalidArgf("unknown preset '%s'", name)
}

// Validates all parameters against their documented ranges
func (p Params) Valid() error {
	if p.WindowRadius<1 {
		return invalidArgf("window radius %d, must be at least 1", p.WindowRadius)
	}
	if p.Omega<0 || p.Omega>1 {
		return invalidArgf("omega %f outside [0,1]", p.Omega)
	}
	if p.TransmissionFloor<=0 || p.TransmissionFloor>1 {
		return invalidArgf("transmission floor %f outside (0,1]", p.TransmissionFloor)
	}
	if p.TopFraction<=0 || p.TopFraction>1 {
		return invalidArgf("top fraction %f outside (0,1]", p.TopFraction)
	}
	if p.MinTransmission<=0 || p.MinTransmission>1 {
		return invalidArgf("minimum transmission %f outside (0,1]", p.MinTransmission)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("window=%dx%d omega=%.2f tFloor=%.2g topFrac=%.3g tMin=%.2g",
		2*p.WindowRadius+1, 2*p.WindowRadius+1, p.Omega, p.TransmissionFloor, p.TopFraction, p.MinTransmission)
}
