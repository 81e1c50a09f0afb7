// Copyright 2025 The go-web3 Authors
// This file is part of the go-web3 library.
//
// The go-web3 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-web3 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-web3 library. If not, see <http://www.gnu.org/licenses/>.

package debug

import (
	"errors"
	"os"
	"runtime/pprof"
	"sync"

	"github.com/sunyihoo/go-web3/log"
)

var (
	profileMu   sync.Mutex
	profileFile *os.File
)

// startCPUProfile turns on CPU profiling, writing to the given file.
func startCPUProfile(file string) error {
	profileMu.Lock()
	defer profileMu.Unlock()
	if profileFile != nil {
		return errors.New("CPU profiling already in progress")
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return err
	}
	profileFile = f
	log.Info("CPU profiling started", "dump", file)
	return nil
}

// stopCPUProfile stops an ongoing CPU profile.
func stopCPUProfile() {
	profileMu.Lock()
	defer profileMu.Unlock()
	if profileFile == nil {
		return
	}
	pprof.StopCPUProfile()
	log.Info("Done writing CPU profile", "dump", profileFile.Name())
	profileFile.Close()
	profileFile = nil
}
