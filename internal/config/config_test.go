package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datahub.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
team_name: team1
base_url: http://hub.example.com/
episode_name: EPISODE7
robot_name: robby
auth_required: true
auth_info:
  user: robot
  pass: secret
`)

	profile, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "team1", profile.TeamName)
	assert.Equal(t, "http://hub.example.com/", profile.BaseURL)
	assert.Equal(t, "robby", profile.RobotName)
	assert.True(t, profile.AuthRequired)
	require.NotNil(t, profile.AuthInfo)
	assert.Equal(t, "robot", profile.AuthInfo.User)
}

func TestLoadProfile_DefaultsApply(t *testing.T) {
	path := writeProfile(t, "team_name: team1\n")

	profile, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "team1", profile.TeamName)
	assert.Equal(t, "http://localhost:5000/", profile.BaseURL)
	assert.Equal(t, "EPISODE7", profile.EpisodeName)
	assert.Equal(t, "youbot", profile.RobotName)
	assert.False(t, profile.AuthRequired)
}

func TestLoadProfile_MissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_BaseURLNeedsSlash(t *testing.T) {
	profile := DefaultProfile()
	profile.BaseURL = "http://localhost:5000"
	assert.Error(t, profile.Validate())
}

func TestValidate_AuthInfoRequired(t *testing.T) {
	profile := DefaultProfile()
	profile.AuthRequired = true
	assert.Error(t, profile.Validate())

	profile.AuthInfo = &AuthInfo{User: "robot"}
	assert.Error(t, profile.Validate())

	profile.AuthInfo.Pass = "secret"
	assert.NoError(t, profile.Validate())
}
