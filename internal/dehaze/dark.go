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

// Computes the dark channel of the image: the per-pixel minimum across the
// three color channels, eroded with a square min filter of the given radius
// (window side 2*windowRadius+1). Windows reaching past the image border
// are clamped to the nearest valid pixel, which equals erosion over a
// replicate-padded image. Low values mark likely haze-free regions, high
// values haze or sky
func DarkChannel(f *img.Image, windowRadius int) (*img.Gray, error) {
	if windowRadius<1 {
		return nil, invalidArgf("window radius %d, must be at least 1", windowRadius)
	}
	if f==nil || f.Width<1 || f.Height<1 {
		return nil, invalidArgf("empty image")
	}
	return minFilter(channelMin(f), windowRadius), nil
}

// Per-pixel minimum of the three color channels
func channelMin(f *img.Image) *img.Gray {
	res:=img.NewGray(f.Width, f.Height, nil)
	r, g, b:=f.Channel(0), f.Channel(1), f.Channel(2)
	parallelOver(len(res.Data), func(lower, upper int) {
		for i:=lower; i<upper; i++ {
			m:=r[i]
			if g[i]<m { m=g[i] }
			if b[i]<m { m=b[i] }
			res.Data[i]=m
		}
	})
	return res
}

// Square min filter (morphological erosion) with replicate border semantics.
// Runs as two separable sliding-window passes in O(width*height), independent
// of the radius. Rows are processed in parallel, then columns
func minFilter(src *img.Gray, radius int) *img.Gray {
	width, height:=src.Width, src.Height
	tmp:=img.NewGray(width, height, nil)
	res:=img.NewGray(width, height, nil)

	parallelOver(height, func(lower, upper int) {
		wedge:=make([]int, 0, 2*radius+2)
		for y:=lower; y<upper; y++ {
			slidingMinLine(src.Data[y*width:(y+1)*width], tmp.Data[y*width:(y+1)*width], width, 1, radius, wedge)
		}
	})
	parallelOver(width, func(lower, upper int) {
		wedge:=make([]int, 0, 2*radius+2)
		for x:=lower; x<upper; x++ {
			slidingMinLine(tmp.Data[x:], res.Data[x:], height, width, radius, wedge)
		}
	})
	return res
}

// Sliding minimum over one line of data with the given stride. Output
// position j receives the minimum of positions [j-radius, j+radius],
// clamped to the valid range. Uses a monotonic wedge of candidate indices,
// O(n) for any radius. The wedge buffer is caller-provided scratch space
func slidingMinLine(src, dst []float32, n, stride, radius int, wedge []int) {
	wedge=wedge[:0]
	for i:=0; i<n+radius; i++ {
		if i<n {
			v:=src[i*stride]
			// drop candidates that can never be a window minimum again
			for len(wedge)>0 && src[wedge[len(wedge)-1]*stride]>=v {
				wedge=wedge[:len(wedge)-1]
			}
			wedge=append(wedge, i)
		}
		j:=i-radius
		if j>=0 {
			if wedge[0]<j-radius { wedge=wedge[1:] }  // expire the candidate left of the window
			dst[j*stride]=src[wedge[0]*stride]
		}
	}
}

// Reference min filter, direct from the definition: minimum over the
// clamped square window around each pixel. O(width*height*window area).
// Kept as the ground truth for testing the sliding-window variant
func minFilterNaive(src *img.Gray, radius int) *img.Gray {
	width, height:=src.Width, src.Height
	res:=img.NewGray(width, height, nil)
	for y:=0; y<height; y++ {
		for x:=0; x<width; x++ {
			m:=src.Data[y*width+x]
			for wy:=y-radius; wy<=y+radius; wy++ {
				cy:=wy
				if cy<0 { cy=0 }
				if cy>height-1 { cy=height-1 }
				for wx:=x-radius; wx<=x+radius; wx++ {
					cx:=wx
					if cx<0 { cx=0 }
					if cx>width-1 { cx=width-1 }
					if src.Data[cy*width+cx]<m { m=src.Data[cy*width+cx] }
				}
			}
			res.Data[y*width+x]=m
		}
	}
	return res
}
