//go:build linux

package storage

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chartkit/chartscan/pkg/chartscan/types"
)

// sysfs locations consulted for the rotational flag. Vars so tests can
// point them at a fixture tree.
var (
	mountsPath    = "/proc/self/mounts"
	sysBlockClass = "/sys/class/block"
)

// listMounts parses the kernel mount table and keeps block-device
// backed mounts, classifying each by its disk's rotational flag.
func listMounts() ([]Mount, error) {
	f, err := os.Open(mountsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var mounts []Mount
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		device, point := fields[0], fields[1]
		if !strings.HasPrefix(device, "/dev/") {
			continue
		}
		mounts = append(mounts, Mount{
			Point:  unescapeMountPoint(point),
			Device: device,
			Class:  classifyDevice(device),
		})
	}
	return mounts, sc.Err()
}

// classifyDevice maps a block device to a storage class via the
// rotational flag of its parent disk in sysfs.
func classifyDevice(device string) types.StorageClass {
	name := filepath.Base(device)

	// Partitions resolve to a directory nested under their disk.
	sys, err := filepath.EvalSymlinks(filepath.Join(sysBlockClass, name))
	if err != nil {
		return types.Undetermined
	}
	if _, err := os.Stat(filepath.Join(sys, "partition")); err == nil {
		sys = filepath.Dir(sys)
	}

	raw, err := os.ReadFile(filepath.Join(sys, "queue", "rotational"))
	if err != nil {
		return types.Undetermined
	}
	flag, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return types.Undetermined
	}
	switch flag {
	case 0:
		return types.SolidState
	case 1:
		return types.Rotational
	default:
		return types.Other(flag)
	}
}

// unescapeMountPoint decodes the octal escapes /proc/self/mounts uses
// for spaces, tabs, newlines and backslashes in mount point paths.
func unescapeMountPoint(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) {
			if n, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
