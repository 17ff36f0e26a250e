//go:build darwin

package storage

import (
	"golang.org/x/sys/unix"

	"github.com/chartkit/chartscan/pkg/chartscan/types"
)

// Every Mac that can run a current macOS ships flash storage, so local
// Apple filesystems are reported solid-state. Network and pseudo
// filesystems are skipped entirely; anything else is an unmapped kind.
var (
	solidStateFS = map[string]struct{}{"apfs": {}, "hfs": {}}
	skippedFS    = map[string]struct{}{
		"smbfs": {}, "nfs": {}, "afpfs": {}, "webdav": {}, "cifs": {},
		"devfs": {}, "autofs": {}, "mtmfs": {}, "nullfs": {},
	}
)

// listMounts enumerates mounted volumes with getfsstat(2).
func listMounts() ([]Mount, error) {
	n, err := unix.Getfsstat(nil, unix.MNT_NOWAIT)
	if err != nil {
		return nil, err
	}
	stats := make([]unix.Statfs_t, n)
	if _, err := unix.Getfsstat(stats, unix.MNT_NOWAIT); err != nil {
		return nil, err
	}

	var mounts []Mount
	for i := range stats {
		fsType := unix.ByteSliceToString(stats[i].Fstypename[:])
		if _, skip := skippedFS[fsType]; skip {
			continue
		}
		class := types.Other(0)
		if _, ok := solidStateFS[fsType]; ok {
			class = types.SolidState
		}
		mounts = append(mounts, Mount{
			Point:  unix.ByteSliceToString(stats[i].Mntonname[:]),
			Device: unix.ByteSliceToString(stats[i].Mntfromname[:]),
			Class:  class,
		})
	}
	return mounts, nil
}
