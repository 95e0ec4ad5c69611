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


package img

import (
	"fmt"
	"github.com/hazelight/hazelight/internal/stats"
)

// An RGB color triplet, each channel normalized to [0,1]
type RGB struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
}

func (c RGB) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", c.R, c.G, c.B)
}

// A three-channel color image. Pixel data is stored as planar float32
// normalized to [0,1]: the full red plane first, then green, then blue,
// each plane Width*Height values in row-major order.
type Image struct {
	ID       int          // Sequential ID number, for log output. Counted upwards from 0
	FileName string       // Original file name, if any, for log output

	Width    int          // Image width in pixels
	Height   int          // Image height in pixels
	Data     []float32    // The image data, 3*Width*Height values

	Stats    *stats.Stats // Basic image statistics: min, mean, max
}

// Creates an image of the given dimensions. Data is not copied, allocated if nil
func NewImage(width, height int, data []float32) *Image {
	if data==nil {
		data=make([]float32, 3*width*height)
	}
	return &Image{
		Width : width,
		Height: height,
		Data  : data,
		Stats : stats.NewStats(data),
	}
}

// Creates an image with the same dimensions and metadata as the given
// image. A new data array is allocated
func NewImageFromImage(f *Image) *Image {
	res:=NewImage(f.Width, f.Height, nil)
	res.ID, res.FileName=f.ID, f.FileName
	return res
}

// Number of pixels in the image
func (f *Image) Pixels() int {
	return f.Width*f.Height
}

// Returns the plane for the given channel, 0=red, 1=green, 2=blue
func (f *Image) Channel(id int) []float32 {
	l:=f.Width*f.Height
	return f.Data[id*l:(id+1)*l]
}

func (f *Image) DimensionsToString() string {
	return fmt.Sprintf("%dx%d", f.Width, f.Height)
}

// A single-channel map with the same spatial layout as an Image,
// e.g. a dark channel or a transmission map
type Gray struct {
	Width    int          // Map width in pixels
	Height   int          // Map height in pixels
	Data     []float32    // The map data, Width*Height values

	Stats   *stats.Stats  // Basic statistics: min, mean, max
}

// Creates a single-channel map of the given dimensions. Data is not copied, allocated if nil
func NewGray(width, height int, data []float32) *Gray {
	if data==nil {
		data=make([]float32, width*height)
	}
	return &Gray{
		Width : width,
		Height: height,
		Data  : data,
		Stats : stats.NewStats(data),
	}
}

func (g *Gray) Pixels() int {
	return g.Width*g.Height
}

func (g *Gray) DimensionsToString() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}
