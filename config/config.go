// Package config loads allocation profiles: named target allocations with an
// optional static quote table. A profile is input for building domain values;
// all domain validation still happens at construction time.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Target is one (security, weight) pair of a profile, in file order.
type Target struct {
	SecurityID string
	Weight     decimal.Decimal
}

// Profile is a named target allocation plus an optional static price table.
type Profile struct {
	Name    string
	Targets []Target
	Prices  map[string]decimal.Decimal
}

type targetTmp struct {
	Security string `yaml:"security"`
	Weight   string `yaml:"weight"`
}

type profileTmp struct {
	Name    string            `yaml:"name"`
	Targets []targetTmp       `yaml:"targets"`
	Prices  map[string]string `yaml:"prices,omitempty"`
}

// Load reads allocation profiles from a yaml file.
func Load(path string) ([]Profile, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(f)
}

// Parse decodes allocation profiles from yaml. Weights and prices are kept as
// strings in the file and parsed into decimals, so values like "33.33" arrive
// exact rather than as binary floats.
func Parse(data []byte) ([]Profile, error) {
	var tmp []profileTmp
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(tmp))
	for _, p := range tmp {
		if p.Name == "" {
			return nil, fmt.Errorf("profile without 'name' param in yaml config")
		}

		profile := Profile{Name: p.Name}
		for _, target := range p.Targets {
			if target.Security == "" {
				return nil, fmt.Errorf("incorrect 'security' param in profile %q: must not be empty", p.Name)
			}
			w, err := decimal.NewFromString(target.Weight)
			if err != nil {
				return nil, fmt.Errorf("incorrect 'weight' param for security %q in profile %q (must be a decimal), error: %w", target.Security, p.Name, err)
			}
			profile.Targets = append(profile.Targets, Target{SecurityID: target.Security, Weight: w})
		}

		if len(p.Prices) > 0 {
			profile.Prices = make(map[string]decimal.Decimal, len(p.Prices))
			for id, quote := range p.Prices {
				price, err := decimal.NewFromString(quote)
				if err != nil {
					return nil, fmt.Errorf("incorrect 'prices' param for security %q in profile %q (must be a decimal), error: %w", id, p.Name, err)
				}
				profile.Prices[id] = price
			}
		}

		profiles = append(profiles, profile)
	}
	return profiles, nil
}
