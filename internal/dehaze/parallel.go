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
	"runtime"
)

// Applies fn to batches of the index range [0,n). Uses thread parallelism
// across all available CPUs. Batches never overlap, so fn may write
// disjoint output slices without synchronization
func parallelOver(n int, fn func(lower, upper int)) {
	// split into 8*NumCPU() work packages, limit parallelism to NumCPUs()
	numBatches:=8*runtime.NumCPU()
	batchSize :=(n+numBatches-1)/(numBatches)
	if batchSize<1 { batchSize=1 }
	sem       :=make(chan bool, runtime.NumCPU())
	for lower:=0; lower<n; lower+=batchSize {
		upper:=lower+batchSize
		if upper>n { upper=n }

		sem <- true
		go func(lower, upper int) {
			fn(lower, upper)
			<-sem
		}(lower, upper)
	}

	for i:=0; i<cap(sem); i++ {  // wait for goroutines to finish
		sem <- true
	}
}
