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


package ops

import (
	"io"
	"os"
	"testing"
	"github.com/hazelight/hazelight/internal/img"
)

func TestIsPathAllowed(t *testing.T) {
	cases:=[]struct{ path string; want bool }{
		{"image.png", true},
		{"subdir/image.png", true},
		{"/etc/passwd", false},
		{"../image.png", false},
		{"subdir/../../image.png", false},
	}
	for _,c:=range cases {
		if got:=isPathAllowed(c.path); got!=c.want {
			t.Errorf("isPathAllowed(%s)=%v; want %v", c.path, got, c.want)
		}
	}
}

func TestExpandFilePattern(t *testing.T) {
	if got:=ExpandFilePattern("out%d.jpg", 4); got!="out4.jpg" {
		t.Errorf("got %s; want out4.jpg", got)
	}
	if got:=ExpandFilePattern("out.jpg", 4); got!="out.jpg" {
		t.Errorf("got %s; want out.jpg", got)
	}
}

// Loading a glob of files through a sequence with a save step must
// materialize all images and write all outputs
func TestLoadSaveSequence(t *testing.T) {
	wd, err:=os.Getwd()
	if err!=nil { t.Fatal(err) }
	if err:=os.Chdir(t.TempDir()); err!=nil { t.Fatal(err) }
	defer os.Chdir(wd)

	// isPathAllowed restricts loads to the current directory tree
	for i:=0; i<3; i++ {
		f:=img.NewImage(6, 4, nil)
		for j:=range f.Data {
			f.Data[j]=float32((i+j)%256)*(1.0/255.0)
		}
		if err:=f.WriteFile(ExpandFilePattern("in%d.png", i), 95); err!=nil { t.Fatal(err) }
	}

	c:=NewContext(io.Discard)
	opSeq:=NewOpSequence(
		NewOpLoadMany([]string{"in*.png"}),
		NewOpSave("copy%d.png", 95),
	)
	promises, err:=opSeq.MakePromises(nil, c)
	if err!=nil { t.Fatal(err) }
	if len(promises)!=3 { t.Fatalf("promises=%d; want 3", len(promises)) }

	outs, err:=MaterializeAll(promises, c.MaxThreads)
	if err!=nil { t.Fatal(err) }
	if len(outs)!=3 { t.Fatalf("outputs=%d; want 3", len(outs)) }

	for i:=0; i<3; i++ {
		if _, err:=os.Stat(ExpandFilePattern("copy%d.png", i)); err!=nil {
			t.Errorf("output %d not written: %s", i, err.Error())
		}
	}
}

func TestOpLoadRejectsUnsafePaths(t *testing.T) {
	c:=NewContext(io.Discard)
	if _, err:=NewOpLoad(0, "/etc/passwd").MakePromises(nil, c); err==nil {
		t.Error("expected error for absolute path")
	}
	if _, err:=NewOpLoad(0, "../escape.png").MakePromises(nil, c); err==nil {
		t.Error("expected error for parent directory path")
	}
}
