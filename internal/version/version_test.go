package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuildInfo(t *testing.T, version, commit, date string) {
	t.Helper()
	oldVersion, oldCommit, oldDate := Version, GitCommit, BuildDate
	SetBuildInfo(version, commit, date)
	t.Cleanup(func() { SetBuildInfo(oldVersion, oldCommit, oldDate) })
}

func TestDefaultVersionIsValid(t *testing.T) {
	require.NoError(t, ValidateVersion())
	assert.Equal(t, Version, GetVersion())
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		date     string
		expected string
	}{
		{"development build", "0.1.0", "unknown", "unknown", "lineshell v0.1.0"},
		{"release build", "1.2.3", "a455fa8c0ffee", "2025-01-02", "lineshell v1.2.3, commit a455fa8, built 2025-01-02"},
		{"short commit", "1.2.3", "abc", "", "lineshell v1.2.3, commit abc"},
		{"invalid version", "not-a-version", "unknown", "unknown", "lineshell vnot-a-version (invalid version)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, tt.version, tt.commit, tt.date)
			assert.Equal(t, tt.expected, String())
		})
	}
}

func TestGetInfo(t *testing.T) {
	withBuildInfo(t, "1.4.0-rc.1+42.abc1234", "abc1234", "2025-03-04")

	info, err := GetInfo()
	require.NoError(t, err)
	assert.Equal(t, "1.4.0-rc.1+42.abc1234", info.Version)
	assert.Equal(t, "rc.1", info.SemVer.Prerelease())
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
	assert.Equal(t, "1.4.0", GetBaseVersion())

	detailed := Detailed()
	assert.Contains(t, detailed, "Build Metadata: 42.abc1234")
	assert.Contains(t, detailed, "Git Commit: abc1234")
	assert.False(t, IsDevelopment())
}

func TestInvalidVersion(t *testing.T) {
	withBuildInfo(t, "banana", "unknown", "unknown")

	_, err := GetInfo()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid semantic version")
	assert.Error(t, ValidateVersion())
	assert.Equal(t, "banana", GetBaseVersion())
	assert.True(t, IsDevelopment())
}
