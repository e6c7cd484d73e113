package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")

	dev := Info{Version: "dev", CommitHash: "0123456789abcdef", BuildTime: "now"}
	assert.Equal(t, "phi dev (commit 0123456789abcdef, built now)", dev.String())
	assert.Equal(t, "0123456", dev.Short())

	tagged := Info{Version: "v0.3.0", CommitHash: "abc", BuildTime: "now", Modified: true}
	assert.Equal(t, "phi v0.3.0 (commit abc-dirty, built now)", tagged.String())
	assert.Equal(t, "abc", tagged.Short())
}

func TestInfo_FillFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/teranos/phi", Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "fedcba9876543210"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "false"},
		},
	}

	info := Info{Version: "dev", CommitHash: "dev", BuildTime: "unknown"}
	info.fill(bi)
	assert.Equal(t, "v0.4.1", info.Version)
	assert.Equal(t, "fedcba9876543210", info.CommitHash)
	assert.Equal(t, "2026-10-01T12:00:00Z", info.BuildTime)
	assert.False(t, info.Modified)

	// ldflags values win
	injected := Info{Version: "v1.0.0", CommitHash: "abc1234", BuildTime: "yesterday"}
	injected.fill(bi)
	assert.Equal(t, "v1.0.0", injected.Version)
	assert.Equal(t, "abc1234", injected.CommitHash)
	assert.Equal(t, "yesterday", injected.BuildTime)

	devel := Info{Version: "dev"}
	devel.fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	assert.Equal(t, "dev", devel.Version)
}
