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


package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"github.com/gin-gonic/gin"

	"github.com/hazelight/hazelight/internal/ops"
	"github.com/hazelight/hazelight/internal/ops/haze"
)

// Runs the REST server on the given address, e.g. ":8080"
func Serve(addr string) error {
	r := gin.Default()
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET ("/ping",   getPing)
			v1.POST("/dehaze", postDehaze)
		}
	}
	return r.Run(addr)
}

func getPing(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

func printArgs(logWriter io.Writer, prefix, suffix string, args interface{}) error {
	m,err:=json.MarshalIndent(args, "", "  ")
	if err!=nil { return err }
	fmt.Fprintf(logWriter, "%s%s%s", prefix, string(m), suffix)
	return nil
}

type postDehazeArgs struct {
	FilePatterns []string       `json:"filePatterns"`
	Dehaze       *haze.OpDehaze `json:"dehaze"`
	Save         *ops.OpSave    `json:"save"`
}

// Dehazes all images matching the given file patterns, streaming the
// processing log back as plain text
func postDehaze(c *gin.Context) {
	logWriter := c.Writer
	var args postDehazeArgs
	if err:=c.ShouldBind(&args); err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error() } )
		return
	}
	if args.Dehaze==nil { args.Dehaze=haze.NewOpDehazeDefault() }
	if args.Save==nil || args.Save.FilePattern=="" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing save file pattern"} )
		return
	}

	header := logWriter.Header()
	header.Set("Content-Type", "text/plain")
	logWriter.WriteHeader(http.StatusOK)

	if err:=printArgs(logWriter, "Arguments:\n", "\n", args); err!=nil {
		fmt.Fprintf(logWriter, "Error printing arguments: %s\n", err.Error())
		return
	}

	ctx:=ops.NewContext(logWriter)
	opLoad:=ops.NewOpLoadMany(args.FilePatterns)
	opSeq :=ops.NewOpSequence(opLoad, args.Dehaze, args.Save)

	promises, err:=opSeq.MakePromises(nil, ctx)
	if err!=nil {
		fmt.Fprintf(logWriter, "error: %s\n", err.Error())
		return
	}
	if _, err=ops.MaterializeAll(promises, ctx.MaxThreads); err!=nil {
		fmt.Fprintf(logWriter, "error: %s\n", err.Error())
	}
	logWriter.(http.Flusher).Flush()
}
