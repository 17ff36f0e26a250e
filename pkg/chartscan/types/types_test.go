package types

import (
	"crypto/sha256"
	"testing"
)

func TestMatchesTarget(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		// Recognized extensions, lowercase
		{name: "bms", path: "song.bms", want: true},
		{name: "bme", path: "song.bme", want: true},
		{name: "bml", path: "song.bml", want: true},
		{name: "pms", path: "song.pms", want: true},
		{name: "bmson", path: "chart.bmson", want: true},

		// Case-insensitive matching
		{name: "uppercase bms", path: "song.BMS", want: true},
		{name: "mixed case", path: "song.Bms", want: true},
		{name: "uppercase bmson", path: "chart.BMSON", want: true},

		// Full paths
		{name: "nested path", path: "/library/pack/song.bms", want: true},

		// Non-matching
		{name: "similar extension", path: "song.bmsx", want: false},
		{name: "no extension", path: "song", want: false},
		{name: "text file", path: "readme.txt", want: false},
		{name: "empty string", path: "", want: false},
		{name: "trailing dot", path: "song.", want: false},
		{name: "extension only prefix", path: "song.bm", want: false},
		{name: "dotfile named like extension", path: ".bms", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesTarget(tt.path); got != tt.want {
				t.Errorf("MatchesTarget(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestStorageClassPermits(t *testing.T) {
	tests := []struct {
		name  string
		class StorageClass
		want  int
	}{
		{name: "solid-state", class: SolidState, want: SolidStatePermits},
		{name: "rotational", class: Rotational, want: FallbackPermits},
		{name: "other", class: Other(7), want: FallbackPermits},
		{name: "undetermined", class: Undetermined, want: FallbackPermits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.class.Permits(); got != tt.want {
				t.Errorf("Permits() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStorageClassString(t *testing.T) {
	tests := []struct {
		class StorageClass
		want  string
	}{
		{class: SolidState, want: "solid-state"},
		{class: Rotational, want: "rotational"},
		{class: Other(42), want: "other"},
		{class: Undetermined, want: "undetermined"},
	}

	for _, tt := range tests {
		if got := tt.class.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestOtherCarriesVendorCode(t *testing.T) {
	c := Other(13)
	if c.Kind != KindOther {
		t.Errorf("Kind = %v, want KindOther", c.Kind)
	}
	if c.Code != 13 {
		t.Errorf("Code = %d, want 13", c.Code)
	}
}

func TestFileRecordFingerprint(t *testing.T) {
	content := []byte("#PLAYER 1\n#TITLE test\n")
	rec := FileRecord{
		AbsolutePath: "/lib/song.bms",
		RelativePath: "song.bms",
		Content:      content,
		SHA256:       sha256.Sum256(content),
	}

	// Recomputing the fingerprint from the record's own buffer must
	// reproduce the stored value.
	recomputed := sha256.Sum256(rec.Content)
	if rec.SHA256 != recomputed {
		t.Error("stored fingerprint does not match recomputed fingerprint")
	}

	if len(rec.Fingerprint()) != 64 {
		t.Errorf("Fingerprint() length = %d, want 64 hex chars", len(rec.Fingerprint()))
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindPathError, "path"},
		{KindListingError, "listing"},
		{KindReadError, "read"},
		{KindHashError, "hash"},
		{ErrorKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
