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
	"io"
	"os"
	"path/filepath"
	"testing"
	"github.com/valyala/fastrand"
	"github.com/hazelight/hazelight/internal/dehaze"
	"github.com/hazelight/hazelight/internal/img"
	"github.com/hazelight/hazelight/internal/ops"
)

func randomImage(width, height int, rng *fastrand.RNG) *img.Image {
	f:=img.NewImage(width, height, nil)
	for i:=range f.Data {
		f.Data[i]=float32(rng.Uint32n(256))*(1.0/255.0)
	}
	return f
}

// A dehaze operator must round trip through JSON with its parameters intact,
// via the operator factory registry
func TestOpDehazeJSONRoundTrip(t *testing.T) {
	p:=dehaze.NewParamsCoarse()
	opSeq:=ops.NewOpSequence(
		NewOpDehaze(p, "dark%d.png", ""),
		ops.NewOpSave("out%d.jpg", 90),
	)

	m, err:=json.Marshal(opSeq)
	if err!=nil { t.Fatal(err) }

	back:=ops.NewOpSequenceDefault()
	if err:=json.Unmarshal(m, back); err!=nil { t.Fatal(err) }
	if len(back.Steps)!=2 { t.Fatalf("steps=%d; want 2", len(back.Steps)) }

	opDehaze, ok:=back.Steps[0].(*OpDehaze)
	if !ok { t.Fatalf("step 0 is %T; want *OpDehaze", back.Steps[0]) }
	if opDehaze.Params!=p { t.Errorf("params=%v; want %v", opDehaze.Params, p) }
	if opDehaze.DarkPattern!="dark%d.png" { t.Errorf("darkPattern=%s; want dark%%d.png", opDehaze.DarkPattern) }
	if opDehaze.OpUnaryBase.Apply==nil { t.Error("Apply not rebound after unmarshaling") }

	opSave, ok:=back.Steps[1].(*ops.OpSave)
	if !ok { t.Fatalf("step 1 is %T; want *ops.OpSave", back.Steps[1]) }
	if opSave.FilePattern!="out%d.jpg" || opSave.Quality!=90 {
		t.Errorf("save=%s quality %d; want out%%d.jpg quality 90", opSave.FilePattern, opSave.Quality)
	}
}

// Missing JSON entries must fall back to default values
func TestOpDehazeJSONDefaults(t *testing.T) {
	var op OpDehaze
	if err:=json.Unmarshal([]byte(`{"type":"dehaze","active":true}`), &op); err!=nil { t.Fatal(err) }
	if op.Params!=dehaze.NewParams() { t.Errorf("params=%v; want defaults", op.Params) }
	if op.OpUnaryBase.Apply==nil { t.Error("Apply not rebound after unmarshaling") }
}

// The dehaze operator must produce an output image of identical dimensions
// and write the requested intermediate maps
func TestOpDehazeApply(t *testing.T) {
	rng:=fastrand.RNG{}
	dir:=t.TempDir()
	darkPattern :=filepath.Join(dir, "dark%d.png")
	transPattern:=filepath.Join(dir, "trans%d.png")

	f:=randomImage(24, 18, &rng)
	f.ID=3
	op:=NewOpDehaze(dehaze.NewParamsCoarse(), darkPattern, transPattern)
	c:=ops.NewContext(io.Discard)

	res, err:=op.Apply(f, c)
	if err!=nil { t.Fatal(err) }
	if res.Width!=f.Width || res.Height!=f.Height {
		t.Errorf("result %s; want %s", res.DimensionsToString(), f.DimensionsToString())
	}

	for _,pattern:=range []string{darkPattern, transPattern} {
		fileName:=ops.ExpandFilePattern(pattern, f.ID)
		if _, err:=os.Stat(fileName); err!=nil {
			t.Errorf("intermediate map %s not written: %s", fileName, err.Error())
		}
	}
}

// Map exporting operators must pass their input through unchanged
func TestOpDarkChannelPassesThrough(t *testing.T) {
	rng:=fastrand.RNG{}
	fileName:=filepath.Join(t.TempDir(), "dark.png")

	f:=randomImage(11, 9, &rng)
	op:=NewOpDarkChannel(2, fileName)
	c:=ops.NewContext(io.Discard)

	res, err:=op.Apply(f, c)
	if err!=nil { t.Fatal(err) }
	if res!=f { t.Error("dark channel operator must return its input") }
	if _, err:=os.Stat(fileName); err!=nil {
		t.Errorf("map %s not written: %s", fileName, err.Error())
	}
}

func TestOpTransmissionPassesThrough(t *testing.T) {
	rng:=fastrand.RNG{}
	fileName:=filepath.Join(t.TempDir(), "trans.png")

	f:=randomImage(11, 9, &rng)
	op:=NewOpTransmission(dehaze.NewParamsCoarse(), fileName)
	c:=ops.NewContext(io.Discard)

	res, err:=op.Apply(f, c)
	if err!=nil { t.Fatal(err) }
	if res!=f { t.Error("transmission operator must return its input") }
	if _, err:=os.Stat(fileName); err!=nil {
		t.Errorf("map %s not written: %s", fileName, err.Error())
	}
}
