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
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Quantizes a [0,1] float value to 8 bits, saturating out-of-range
// and non-finite inputs instead of wrapping
func quantize(v float32) uint8 {
	if math.IsNaN(float64(v)) || v<=0 { return 0   }
	if v>=1                           { return 255 }
	return uint8(v*255+0.5)
}

// Converts the planar float image into an 8-bit Go standard library image
func (f *Image) ToGoImage() *image.RGBA {
	res:=image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	l:=f.Width*f.Height
	for y:=0; y<f.Height; y++ {
		offset:=y*f.Width
		for x:=0; x<f.Width; x++ {
			c:=color.RGBA{
				quantize(f.Data[offset+x    ]),
				quantize(f.Data[offset+x+l  ]),
				quantize(f.Data[offset+x+2*l]),
				255,
			}
			res.SetRGBA(x, y, c)
		}
	}
	return res
}

// Converts the single-channel map into an 8-bit grayscale Go standard library image
func (g *Gray) ToGoImage() *image.Gray {
	res:=image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y:=0; y<g.Height; y++ {
		offset:=y*g.Width
		for x:=0; x<g.Width; x++ {
			res.SetGray(x, y, color.Gray{quantize(g.Data[offset+x])})
		}
	}
	return res
}

// Writes the image to a file. The format is chosen from the file extension:
// .jpg/.jpeg, .png, .tif/.tiff and .bmp are supported
func (f *Image) WriteFile(fileName string, jpgQuality int) error {
	return writeGoImageFile(fileName, f.ToGoImage(), jpgQuality)
}

// Writes the single-channel map to a file as a grayscale image. The format
// is chosen from the file extension like Image.WriteFile
func (g *Gray) WriteFile(fileName string, jpgQuality int) error {
	return writeGoImageFile(fileName, g.ToGoImage(), jpgQuality)
}

func writeGoImageFile(fileName string, src image.Image, jpgQuality int) error {
	file, err:=os.Create(fileName)
	if err!=nil { return err }
	defer file.Close()

	writer:=bufio.NewWriter(file)
	defer writer.Flush()

	return encodeGoImage(writer, src, filepath.Ext(fileName), jpgQuality)
}

func encodeGoImage(w io.Writer, src image.Image, ext string, jpgQuality int) error {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, src, &jpeg.Options{Quality: jpgQuality})
	case ".png":
		return png.Encode(w, src)
	case ".tif", ".tiff":
		return tiff.Encode(w, src, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		return bmp.Encode(w, src)
	}
	return fmt.Errorf("unknown image format suffix %s", ext)
}
