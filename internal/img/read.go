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
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Reads an image from a file. Format is detected from the file contents;
// PNG, JPEG, GIF, TIFF and BMP are supported
func NewImageFromFile(fileName string, id int) (*Image, error) {
	file, err:=os.Open(fileName)
	if err!=nil { return nil, err }
	defer file.Close()

	f, err:=NewImageFromReader(bufio.NewReader(file))
	if err!=nil { return nil, err }
	f.ID, f.FileName=id, fileName
	return f, nil
}

// Reads an image from a reader. Format is detected from the stream contents
func NewImageFromReader(r io.Reader) (*Image, error) {
	src, _, err:=image.Decode(r)
	if err!=nil { return nil, err }
	return NewImageFromGoImage(src), nil
}

// Converts a Go standard library image into a planar float32 image in [0,1]
func NewImageFromGoImage(src image.Image) *Image {
	bounds:=src.Bounds()
	width, height:=bounds.Dx(), bounds.Dy()
	f:=NewImage(width, height, nil)
	l:=width*height

	for y:=0; y<height; y++ {
		offset:=y*width
		for x:=0; x<width; x++ {
			r, g, b, _:=src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			f.Data[offset+x    ]=float32(r)*(1.0/65535.0)
			f.Data[offset+x+l  ]=float32(g)*(1.0/65535.0)
			f.Data[offset+x+2*l]=float32(b)*(1.0/65535.0)
		}
	}
	return f
}
