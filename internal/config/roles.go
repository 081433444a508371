package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RoleSpec is the on-disk form of a single role's constraint bundle
// (spec.md §4.6). Loaded the same way risk limits were: a flat YAML
// file, unmarshalled directly into typed Go structs.
type RoleSpec struct {
	MinDraws      int      `yaml:"min_draws"`
	MaxDraws      int      `yaml:"max_draws"`
	MaxFavorites  int      `yaml:"max_favorites"`
	MinUnderdogs  int      `yaml:"min_underdogs"`
	EntropyBand   [2]float64 `yaml:"entropy_band"`
	HedgeShocks   bool     `yaml:"hedge_shocks"`
}

// RoleSet maps role letter ("A".."G") to its spec.
type RoleSet map[string]RoleSpec

// DefaultRoleSet returns the seven roles named in spec.md §4.6, with
// F and G the shock-hedging roles.
func DefaultRoleSet() RoleSet {
	return RoleSet{
		"A": {MinDraws: 0, MaxDraws: 1, MaxFavorites: 13, MinUnderdogs: 0, EntropyBand: [2]float64{0.55, 0.80}},
		"B": {MinDraws: 1, MaxDraws: 2, MaxFavorites: 10, MinUnderdogs: 1, EntropyBand: [2]float64{0.55, 0.85}},
		"C": {MinDraws: 2, MaxDraws: 4, MaxFavorites: 9, MinUnderdogs: 2, EntropyBand: [2]float64{0.60, 0.90}},
		"D": {MinDraws: 3, MaxDraws: 5, MaxFavorites: 8, MinUnderdogs: 2, EntropyBand: [2]float64{0.65, 0.95}},
		"E": {MinDraws: 1, MaxDraws: 3, MaxFavorites: 11, MinUnderdogs: 3, EntropyBand: [2]float64{0.60, 0.90}},
		"F": {MinDraws: 1, MaxDraws: 3, MaxFavorites: 10, MinUnderdogs: 2, EntropyBand: [2]float64{0.60, 0.90}, HedgeShocks: true},
		"G": {MinDraws: 2, MaxDraws: 4, MaxFavorites: 9, MinUnderdogs: 3, EntropyBand: [2]float64{0.65, 0.95}, HedgeShocks: true},
	}
}

// LoadRoleSet reads a role configuration file, falling back to
// DefaultRoleSet when path is empty.
func LoadRoleSet(path string) (RoleSet, error) {
	if path == "" {
		return DefaultRoleSet(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read role set: %w", err)
	}

	var rs RoleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse role set: %w", err)
	}
	return rs, nil
}
