package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartkit/chartscan/pkg/chartscan/types"
)

func TestJSONFormatterBasicOutput(t *testing.T) {
	formatter := &JSONFormatter{}
	var buf bytes.Buffer

	result := &Result{
		Records: []Record{
			{RelativePath: "pack/b.bms", AbsolutePath: "/lib/pack/b.bms", Size: 2048, SizeHuman: "2.0 KiB", Fingerprint: "beef"},
			{RelativePath: "a.bmson", AbsolutePath: "/lib/a.bmson", Size: 512, SizeHuman: "512 B", Fingerprint: "cafe"},
		},
		Root:       "/lib",
		Storage:    "solid-state",
		DirsListed: 3,
		Duration:   2 * time.Second,
	}

	err := formatter.Format(&buf, result)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))

	assert.Contains(t, parsed, "records")
	assert.Contains(t, parsed, "stats")
	assert.Contains(t, parsed, "meta")

	records := parsed["records"].([]interface{})
	require.Len(t, records, 2)

	// Records are sorted by relative path.
	first := records[0].(map[string]interface{})
	assert.Equal(t, "a.bmson", first["relative_path"])
	assert.Equal(t, float64(512), first["size"])

	stats := parsed["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total_files"])
	assert.Equal(t, float64(2560), stats["total_size"])
	assert.Equal(t, float64(3), stats["dirs_listed"])

	meta := parsed["meta"].(map[string]interface{})
	assert.Equal(t, "/lib", meta["root"])
	assert.Equal(t, "solid-state", meta["storage"])
	assert.Equal(t, false, meta["cancelled"])
}

func TestJSONFormatterEmptyResult(t *testing.T) {
	formatter := &JSONFormatter{}
	var buf bytes.Buffer

	err := formatter.Format(&buf, &Result{Root: "/empty", Storage: "rotational"})
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))

	stats := parsed["stats"].(map[string]interface{})
	assert.Equal(t, float64(0), stats["total_files"])
}

func TestJSONFormatterSkippedItems(t *testing.T) {
	formatter := &JSONFormatter{}
	var buf bytes.Buffer

	result := &Result{
		Root:    "/lib",
		Storage: "rotational",
		Skipped: []types.ScanError{
			{Kind: types.KindListingError, Path: "/lib/locked", Error: "permission denied"},
		},
	}

	err := formatter.Format(&buf, result)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))

	meta := parsed["meta"].(map[string]interface{})
	warnings := meta["warnings"].([]interface{})
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "listing")
	assert.Contains(t, warnings[0], "/lib/locked")

	stats := parsed["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["skipped"])
}
