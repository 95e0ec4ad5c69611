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
	"testing"
	"github.com/valyala/fastrand"
	"github.com/hazelight/hazelight/internal/img"
)

// Creates an image of given dimensions with random 8-bit quantized values
func randomImage(width, height int, rng *fastrand.RNG) *img.Image {
	f:=img.NewImage(width, height, nil)
	for i:=range f.Data {
		f.Data[i]=float32(rng.Uint32n(256))*(1.0/255.0)
	}
	return f
}

// Creates an image of given dimensions where every pixel has the given color
func uniformImage(width, height int, c img.RGB) *img.Image {
	f:=img.NewImage(width, height, nil)
	r, g, b:=f.Channel(0), f.Channel(1), f.Channel(2)
	for i:=range r {
		r[i], g[i], b[i]=c.R, c.G, c.B
	}
	return f
}

func TestDarkChannelMatchesNaiveReference(t *testing.T) {
	rng:=fastrand.RNG{}
	dims:=[][2]int{{1,1}, {7,5}, {16,16}, {33,9}}
	radii:=[]int{1, 2, 7, 40}

	for _,dim:=range dims {
		for _,radius:=range radii {
			f:=randomImage(dim[0], dim[1], &rng)
			fast, err:=DarkChannel(f, radius)
			if err!=nil { t.Fatalf("%dx%d radius %d: %s", dim[0], dim[1], radius, err.Error()) }
			naive:=minFilterNaive(channelMin(f), radius)
			for i:=range naive.Data {
				if fast.Data[i]!=naive.Data[i] {
					t.Fatalf("%dx%d radius %d: dark[%d]=%f; want %f", dim[0], dim[1], radius, i, fast.Data[i], naive.Data[i])
				}
			}
		}
	}
}

func TestDarkChannelNotAboveChannelMin(t *testing.T) {
	rng:=fastrand.RNG{}
	f:=randomImage(21, 13, &rng)
	cmin:=channelMin(f)
	dark, err:=DarkChannel(f, 3)
	if err!=nil { t.Fatal(err) }
	for i:=range dark.Data {
		if dark.Data[i]>cmin.Data[i] {
			t.Errorf("dark[%d]=%f above channel min %f", i, dark.Data[i], cmin.Data[i])
		}
	}
}

func TestDarkChannelMonotonicInRadius(t *testing.T) {
	rng:=fastrand.RNG{}
	f:=randomImage(19, 17, &rng)
	prev, err:=DarkChannel(f, 1)
	if err!=nil { t.Fatal(err) }
	for _,radius:=range []int{2, 3, 5, 9} {
		cur, err:=DarkChannel(f, radius)
		if err!=nil { t.Fatal(err) }
		for i:=range cur.Data {
			if cur.Data[i]>prev.Data[i] {
				t.Fatalf("radius %d: dark[%d]=%f above %f for smaller radius", radius, i, cur.Data[i], prev.Data[i])
			}
		}
		prev=cur
	}
}

func TestDarkChannelUniform(t *testing.T) {
	v:=float32(50.0/255.0)
	f:=uniformImage(4, 4, img.RGB{R: v, G: v, B: v})
	dark, err:=DarkChannel(f, 1)
	if err!=nil { t.Fatal(err) }
	for i:=range dark.Data {
		if dark.Data[i]!=v {
			t.Errorf("dark[%d]=%f; want %f", i, dark.Data[i], v)
		}
	}
}

// A radius at or beyond the image dimensions must yield the global minimum
// everywhere, via border replication
func TestDarkChannelRadiusBeyondImage(t *testing.T) {
	rng:=fastrand.RNG{}
	f:=randomImage(5, 4, &rng)
	cmin:=channelMin(f)
	min:=cmin.Data[0]
	for _,d:=range cmin.Data {
		if d<min { min=d }
	}

	for _,radius:=range []int{5, 17} {
		dark, err:=DarkChannel(f, radius)
		if err!=nil { t.Fatal(err) }
		for i:=range dark.Data {
			if dark.Data[i]!=min {
				t.Errorf("radius %d: dark[%d]=%f; want global min %f", radius, i, dark.Data[i], min)
			}
		}
	}
}

func TestDarkChannelInvalidArguments(t *testing.T) {
	rng:=fastrand.RNG{}
	f:=randomImage(4, 4, &rng)

	if _, err:=DarkChannel(f, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("radius 0: err=%v; want ErrInvalidArgument", err)
	}
	if _, err:=DarkChannel(nil, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil image: err=%v; want ErrInvalidArgument", err)
	}
	if _, err:=DarkChannel(img.NewImage(0, 0, []float32{}), 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty image: err=%v; want ErrInvalidArgument", err)
	}
}
