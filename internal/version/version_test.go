package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuildInfo(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	SetBuildInfo(v, commit, date)
	t.Cleanup(func() { SetBuildInfo(origVersion, origCommit, origDate) })
}

func TestGetBaseVersion(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0", "0.1.0"},
		{"1.2.3-beta.1", "1.2.3"},
		{"0.1.0+42.abc1234", "0.1.0"},
		{"not-a-version", "not-a-version"},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			withBuildInfo(t, tt.version, "unknown", "unknown")
			assert.Equal(t, tt.want, GetBaseVersion())
		})
	}
}

func TestGetInfo(t *testing.T) {
	withBuildInfo(t, "0.3.1", "abcdef1234567", "2025-01-01")

	info, err := GetInfo()
	require.NoError(t, err)
	assert.Equal(t, "0.3.1", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, uint64(3), info.SemVer.Minor())

	withBuildInfo(t, "bogus", "unknown", "unknown")
	_, err = GetInfo()
	assert.Error(t, err)
}

func TestGetFormattedVersion(t *testing.T) {
	withBuildInfo(t, "0.1.0", "abcdef1234567", "2025-01-01")
	assert.Equal(t, "arthurchat v0.1.0, commit abcdef1, built 2025-01-01", GetFormattedVersion())

	withBuildInfo(t, "0.1.0", "unknown", "unknown")
	assert.Equal(t, "arthurchat v0.1.0", GetFormattedVersion())
}

func TestUserAgent(t *testing.T) {
	withBuildInfo(t, "0.2.0-rc.1", "unknown", "unknown")
	assert.Equal(t, "arthurchat/0.2.0 ("+runtime.GOOS+"; "+runtime.GOARCH+")", UserAgent())
	assert.True(t, IsPrerelease())
}
