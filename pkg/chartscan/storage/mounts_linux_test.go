//go:build linux

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chartkit/chartscan/pkg/chartscan/types"
)

// fakeSysfs builds a minimal /sys/class/block layout: a disk with a
// rotational flag and one partition nested under it, plus the symlink
// farm the real sysfs exposes.
func fakeSysfs(t *testing.T, disk, partition, rotational string) string {
	t.Helper()
	root := t.TempDir()

	diskDir := filepath.Join(root, "devices", "pci0", "block", disk)
	if err := os.MkdirAll(filepath.Join(diskDir, "queue"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(diskDir, "queue", "rotational"), []byte(rotational+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	partDir := filepath.Join(diskDir, partition)
	if err := os.MkdirAll(partDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(partDir, "partition"), []byte("1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	classDir := filepath.Join(root, "class", "block")
	if err := os.MkdirAll(classDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(diskDir, filepath.Join(classDir, disk)); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(partDir, filepath.Join(classDir, partition)); err != nil {
		t.Fatal(err)
	}

	return root
}

func withSysfs(t *testing.T, root string) {
	t.Helper()
	orig := sysBlockClass
	sysBlockClass = filepath.Join(root, "class", "block")
	t.Cleanup(func() { sysBlockClass = orig })
}

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		name       string
		rotational string
		device     string
		want       types.StorageClass
	}{
		{name: "ssd partition", rotational: "0", device: "/dev/sda1", want: types.SolidState},
		{name: "hdd partition", rotational: "1", device: "/dev/sda1", want: types.Rotational},
		{name: "ssd whole disk", rotational: "0", device: "/dev/sda", want: types.SolidState},
		{name: "unmapped vendor flag", rotational: "3", device: "/dev/sda1", want: types.Other(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withSysfs(t, fakeSysfs(t, "sda", "sda1", tt.rotational))
			if got := classifyDevice(tt.device); got != tt.want {
				t.Errorf("classifyDevice(%q) = %v, want %v", tt.device, got, tt.want)
			}
		})
	}
}

func TestClassifyDeviceUnknownIsUndetermined(t *testing.T) {
	withSysfs(t, fakeSysfs(t, "sda", "sda1", "0"))
	if got := classifyDevice("/dev/sdz9"); got != types.Undetermined {
		t.Errorf("classifyDevice on unknown device = %v, want Undetermined", got)
	}
}

func TestListMountsParsesTable(t *testing.T) {
	sys := fakeSysfs(t, "sda", "sda1", "0")
	withSysfs(t, sys)

	table := "/dev/sda1 / ext4 rw 0 0\n" +
		"proc /proc proc rw 0 0\n" +
		"tmpfs /tmp tmpfs rw 0 0\n" +
		"/dev/sda1 /mnt/chart\\040library ext4 rw 0 0\n"
	mountsFile := filepath.Join(t.TempDir(), "mounts")
	if err := os.WriteFile(mountsFile, []byte(table), 0o644); err != nil {
		t.Fatal(err)
	}

	orig := mountsPath
	mountsPath = mountsFile
	t.Cleanup(func() { mountsPath = orig })

	mounts, err := listMounts()
	if err != nil {
		t.Fatalf("listMounts() error = %v", err)
	}

	// proc and tmpfs entries are not block-device backed and are
	// filtered out.
	if len(mounts) != 2 {
		t.Fatalf("listMounts() returned %d mounts, want 2", len(mounts))
	}
	if mounts[0].Point != "/" || mounts[0].Class != types.SolidState {
		t.Errorf("unexpected first mount: %+v", mounts[0])
	}
	if mounts[1].Point != "/mnt/chart library" {
		t.Errorf("octal escape not decoded: %q", mounts[1].Point)
	}
}

func TestUnescapeMountPoint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/plain", want: "/plain"},
		{in: `/with\040space`, want: "/with space"},
		{in: `/tab\011here`, want: "/tab\there"},
		{in: `/trailing\\`, want: `/trailing\\`},
	}

	for _, tt := range tests {
		if got := unescapeMountPoint(tt.in); got != tt.want {
			t.Errorf("unescapeMountPoint(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
