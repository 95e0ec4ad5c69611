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
	"math"
	"testing"
	"github.com/valyala/fastrand"
	"github.com/hazelight/hazelight/internal/img"
)

// A 2x2 image with one white and three black pixels, and a top fraction
// selecting only the white one: the estimate must be pure white
func TestAtmosphericLightSelectsBrightest(t *testing.T) {
	f:=img.NewImage(2, 2, []float32{
		1, 0, 0, 0, // red plane
		1, 0, 0, 0, // green plane
		1, 0, 0, 0, // blue plane
	})
	dark:=channelMin(f)

	light, err:=AtmosphericLight(f, dark, 0.25)
	if err!=nil { t.Fatal(err) }
	if light.R!=1 || light.G!=1 || light.B!=1 {
		t.Errorf("light=%v; want (1, 1, 1)", light)
	}
}

// With a top fraction of 1 every pixel is selected, so the estimate
// must equal the channel means
func TestAtmosphericLightFullFraction(t *testing.T) {
	rng:=fastrand.RNG{}
	f:=randomImage(9, 7, &rng)
	dark:=channelMin(f)

	light, err:=AtmosphericLight(f, dark, 1.0)
	if err!=nil { t.Fatal(err) }

	for c,got:=range []float32{light.R, light.G, light.B} {
		ch:=f.Channel(c)
		sum:=float64(0)
		for _,v:=range ch { sum+=float64(v) }
		want:=float32(sum/float64(len(ch)))
		if math.Abs(float64(got-want))>1e-6 {
			t.Errorf("channel %d: light=%f; want mean %f", c, got, want)
		}
	}
}

// Each component of the estimate must lie within the min and max of the
// corresponding channel across the whole image
func TestAtmosphericLightWithinChannelRange(t *testing.T) {
	rng:=fastrand.RNG{}
	for _,topFraction:=range []float32{0.001, 0.1, 0.5, 1.0} {
		f:=randomImage(31, 17, &rng)
		dark, err:=DarkChannel(f, 2)
		if err!=nil { t.Fatal(err) }

		light, err:=AtmosphericLight(f, dark, topFraction)
		if err!=nil { t.Fatal(err) }

		for c,got:=range []float32{light.R, light.G, light.B} {
			ch:=f.Channel(c)
			min, max:=ch[0], ch[0]
			for _,v:=range ch {
				if v<min { min=v }
				if v>max { max=v }
			}
			if got<min || got>max {
				t.Errorf("topFraction %f channel %d: light=%f outside [%f,%f]", topFraction, c, got, min, max)
			}
		}
	}
}

// Ties at the selection boundary must still produce a mean over exactly k pixels
func TestAtmosphericLightTiedBoundary(t *testing.T) {
	v:=float32(50.0/255.0)
	f:=uniformImage(4, 4, img.RGB{R: v, G: v, B: v})
	dark:=channelMin(f)

	light, err:=AtmosphericLight(f, dark, 0.5)
	if err!=nil { t.Fatal(err) }
	if light.R!=v || light.G!=v || light.B!=v {
		t.Errorf("light=%v; want uniform %f", light, v)
	}
}

func TestAtmosphericLightInvalidArguments(t *testing.T) {
	rng:=fastrand.RNG{}
	f:=randomImage(4, 4, &rng)
	dark:=channelMin(f)

	if _, err:=AtmosphericLight(f, dark, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("topFraction 0: err=%v; want ErrInvalidArgument", err)
	}
	if _, err:=AtmosphericLight(f, dark, 1.5); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("topFraction 1.5: err=%v; want ErrInvalidArgument", err)
	}
	other:=img.NewGray(3, 4, nil)
	if _, err:=AtmosphericLight(f, other, 0.1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("mismatched dark channel: err=%v; want ErrInvalidArgument", err)
	}
}
