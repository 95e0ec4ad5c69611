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


package haze

import (
	"encoding/json"
	"fmt"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/hazelight/hazelight/internal/dehaze"
	"github.com/hazelight/hazelight/internal/img"
	"github.com/hazelight/hazelight/internal/ops"
)

// Removes atmospheric haze from each input image with the dark channel
// prior. Optionally saves the intermediate dark channel and transmission
// maps for inspection. Takes n inputs, produces n outputs
type OpDehaze struct {
	ops.OpUnaryBase
	Params              dehaze.Params `json:"params"`
	DarkPattern         string        `json:"darkPattern"`         // save dark channel maps, e.g. dark%d.png; blank=off
	TransmissionPattern string        `json:"transmissionPattern"` // save transmission maps, e.g. trans%d.png; blank=off
}

func init() { ops.SetOperatorFactory(func() ops.Operator { return NewOpDehazeDefault() })} // register the operator for JSON decoding

func NewOpDehazeDefault() *OpDehaze { return NewOpDehaze(dehaze.NewParams(), "", "") }

func NewOpDehaze(params dehaze.Params, darkPattern, transmissionPattern string) *OpDehaze {
	op:=OpDehaze{
		OpUnaryBase        : ops.OpUnaryBase{OpBase: ops.OpBase{Type: "dehaze", Active: true}},
		Params             : params,
		DarkPattern        : darkPattern,
		TransmissionPattern: transmissionPattern,
	}
	op.OpUnaryBase.Apply=op.Apply // assign class method to superclass abstract method
	return &op
}

// Unmarshal the type from JSON with default values for missing entries
func (op *OpDehaze) UnmarshalJSON(data []byte) error {
	type defaults OpDehaze
	def:=defaults( *NewOpDehazeDefault() )
	err:=json.Unmarshal(data, &def)
	if err!=nil { return err }
	*op=OpDehaze(def)
	op.OpUnaryBase.Apply=op.Apply // make method receiver point to op, not def
	return nil
}

func (op *OpDehaze) Apply(f *img.Image, c *ops.Context) (result *img.Image, err error) {
	if !op.Active { return f, nil }
	fmt.Fprintf(c.Log, "%d: Dehazing %s image with %v\n", f.ID, f.DimensionsToString(), op.Params)

	res, err:=dehaze.Dehaze(f, op.Params)
	if err!=nil { return nil, err }

	fmt.Fprintf(c.Log, "%d: Atmospheric light %v %s, transmission %v\n",
	            f.ID, res.Light, lightToHex(res.Light), res.Transmission.Stats)

	if op.DarkPattern!="" {
		fileName:=ops.ExpandFilePattern(op.DarkPattern, f.ID)
		fmt.Fprintf(c.Log, "%d: Writing %s pixel dark channel map to %s\n", f.ID, res.Dark.DimensionsToString(), fileName)
		if err:=res.Dark.WriteFile(fileName, 95); err!=nil { return nil, err }
	}
	if op.TransmissionPattern!="" {
		fileName:=ops.ExpandFilePattern(op.TransmissionPattern, f.ID)
		fmt.Fprintf(c.Log, "%d: Writing %s pixel transmission map to %s\n", f.ID, res.Transmission.DimensionsToString(), fileName)
		if err:=res.Transmission.WriteFile(fileName, 95); err!=nil { return nil, err }
	}
	return res.Recovered, nil
}

// Formats an atmospheric light estimate as an sRGB hex string for log output
func lightToHex(light img.RGB) string {
	return colorful.Color{R: float64(light.R), G: float64(light.G), B: float64(light.B)}.Clamped().Hex()
}

// Computes the dark channel of each input image and saves it as a grayscale
// image. Passes the input through unchanged. Takes n inputs, produces n outputs
type OpDarkChannel struct {
	ops.OpUnaryBase
	WindowRadius int    `json:"windowRadius"`
	FilePattern  string `json:"filePattern"`
}

func init() { ops.SetOperatorFactory(func() ops.Operator { return NewOpDarkChannelDefault() })} // register the operator for JSON decoding

func NewOpDarkChannelDefault() *OpDarkChannel { return NewOpDarkChannel(dehaze.NewParams().WindowRadius, "") }

func NewOpDarkChannel(windowRadius int, filePattern string) *OpDarkChannel {
	op:=OpDarkChannel{
		OpUnaryBase : ops.OpUnaryBase{OpBase: ops.OpBase{Type: "darkChannel", Active: filePattern!=""}},
		WindowRadius: windowRadius,
		FilePattern : filePattern,
	}
	op.OpUnaryBase.Apply=op.Apply // assign class method to superclass abstract method
	return &op
}

// Unmarshal the type from JSON with default values for missing entries
func (op *OpDarkChannel) UnmarshalJSON(data []byte) error {
	type defaults OpDarkChannel
	def:=defaults( *NewOpDarkChannelDefault() )
	err:=json.Unmarshal(data, &def)
	if err!=nil { return err }
	*op=OpDarkChannel(def)
	op.OpUnaryBase.Apply=op.Apply // make method receiver point to op, not def
	return nil
}

func (op *OpDarkChannel) Apply(f *img.Image, c *ops.Context) (result *img.Image, err error) {
	if !op.Active || op.FilePattern=="" { return f, nil }

	dark, err:=dehaze.DarkChannel(f, op.WindowRadius)
	if err!=nil { return nil, err }

	fileName:=ops.ExpandFilePattern(op.FilePattern, f.ID)
	fmt.Fprintf(c.Log, "%d: Writing %s pixel dark channel map with %v to %s\n",
	            f.ID, dark.DimensionsToString(), dark.Stats, fileName)
	if err:=dark.WriteFile(fileName, 95); err!=nil { return nil, err }
	return f, nil
}

// Estimates the transmission map of each input image and saves it as a
// grayscale image. Passes the input through unchanged. Takes n inputs,
// produces n outputs
type OpTransmission struct {
	ops.OpUnaryBase
	WindowRadius      int     `json:"windowRadius"`
	Omega             float32 `json:"omega"`
	TransmissionFloor float32 `json:"transmissionFloor"`
	TopFraction       float32 `json:"topFraction"`
	FilePattern       string  `json:"filePattern"`
}

func init() { ops.SetOperatorFactory(func() ops.Operator { return NewOpTransmissionDefault() })} // register the operator for JSON decoding

func NewOpTransmissionDefault() *OpTransmission {
	p:=dehaze.NewParams()
	return NewOpTransmission(p, "")
}

func NewOpTransmission(p dehaze.Params, filePattern string) *OpTransmission {
	op:=OpTransmission{
		OpUnaryBase      : ops.OpUnaryBase{OpBase: ops.OpBase{Type: "transmission", Active: filePattern!=""}},
		WindowRadius     : p.WindowRadius,
		Omega            : p.Omega,
		TransmissionFloor: p.TransmissionFloor,
		TopFraction      : p.TopFraction,
		FilePattern      : filePattern,
	}
	op.OpUnaryBase.Apply=op.Apply // assign class method to superclass abstract method
	return &op
}

// Unmarshal the type from JSON with default values for missing entries
func (op *OpTransmission) UnmarshalJSON(data []byte) error {
	type defaults OpTransmission
	def:=defaults( *NewOpTransmissionDefault() )
	err:=json.Unmarshal(data, &def)
	if err!=nil { return err }
	*op=OpTransmission(def)
	op.OpUnaryBase.Apply=op.Apply // make method receiver point to op, not def
	return nil
}

func (op *OpTransmission) Apply(f *img.Image, c *ops.Context) (result *img.Image, err error) {
	if !op.Active || op.FilePattern=="" { return f, nil }

	dark, err:=dehaze.DarkChannel(f, op.WindowRadius)
	if err!=nil { return nil, err }
	light, err:=dehaze.AtmosphericLight(f, dark, op.TopFraction)
	if err!=nil { return nil, err }
	trans, err:=dehaze.Transmission(f, light, op.WindowRadius, op.Omega, op.TransmissionFloor)
	if err!=nil { return nil, err }

	fileName:=ops.ExpandFilePattern(op.FilePattern, f.ID)
	fmt.Fprintf(c.Log, "%d: Atmospheric light %v %s; writing %s pixel transmission map to %s\n",
	            f.ID, light, lightToHex(light), trans.DimensionsToString(), fileName)
	if err:=trans.WriteFile(fileName, 95); err!=nil { return nil, err }
	return f, nil
}
