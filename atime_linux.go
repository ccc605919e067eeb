//go:build linux

package main

import (
	"os"
	"syscall"
	"time"
)

// atime reads the last-access timestamp off stat metadata, falling back to
// the modification time when the platform data is unavailable.
func atime(info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Atim.Sec, st.Atim.Nsec)
	}
	return info.ModTime()
}
