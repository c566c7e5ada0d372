package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// State is what storectl remembers between invocations.
type State struct {
	Server  string `yaml:"server"`
	Session string `yaml:"session,omitempty"`
	CSRF    string `yaml:"csrf,omitempty"`
	Email   string `yaml:"email,omitempty"`
}

// DefaultStatePath returns ~/.gymsup/session.yaml.
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".gymsup", "session.yaml"), nil
}

// LoadState reads the state file. A missing file yields an empty state.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse state %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the state file with owner-only permissions; it holds a live
// session cookie.
func (s *State) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
