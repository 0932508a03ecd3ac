// Package config loads the client connection profile.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AuthInfo is an HTTP Basic credential pair.
type AuthInfo struct {
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
}

// Profile holds everything a client needs to talk to a hub. It is supplied
// once at construction and never changes for the client's lifetime.
type Profile struct {
	TeamName     string    `yaml:"team_name"`
	BaseURL      string    `yaml:"base_url"`
	EpisodeName  string    `yaml:"episode_name"`
	RobotName    string    `yaml:"robot_name"`
	AuthRequired bool      `yaml:"auth_required"`
	AuthInfo     *AuthInfo `yaml:"auth_info"`
}

// DefaultProfile returns the profile used when no config file is given.
func DefaultProfile() *Profile {
	return &Profile{
		TeamName:    "b-it-bots",
		BaseURL:     "http://localhost:5000/",
		EpisodeName: "EPISODE7",
		RobotName:   "youbot",
	}
}

// LoadProfile reads a connection profile from a YAML file. Fields absent
// from the file keep their defaults.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	profile := DefaultProfile()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return profile, nil
}

// Validate checks the profile's internal consistency.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.TeamName) == "" {
		return fmt.Errorf("team_name is required")
	}
	if strings.TrimSpace(p.BaseURL) == "" {
		return fmt.Errorf("base_url is required")
	}
	if !strings.HasSuffix(p.BaseURL, "/") {
		return fmt.Errorf("base_url must end with a slash")
	}
	if strings.TrimSpace(p.RobotName) == "" {
		return fmt.Errorf("robot_name is required")
	}
	if p.AuthRequired {
		if p.AuthInfo == nil || p.AuthInfo.User == "" || p.AuthInfo.Pass == "" {
			return fmt.Errorf("auth_required is set but auth_info is incomplete")
		}
	}
	return nil
}
