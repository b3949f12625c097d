package domain

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yourtionguo/codegraf/internal/model"
)

// Config is the on-disk shape of the domain configuration file (spec
// §6): a flat list of named domains, each with an optional description
// and a set of glob patterns/explicit packages that claim membership.
type Config struct {
	Domains []ConfiguredDomain `json:"domains"`
}

type ConfiguredDomain struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Patterns    []string `json:"patterns,omitempty"`
	Packages    []string `json:"packages,omitempty"`
}

// LoadConfig reads and parses the domain configuration file. A missing
// path is not an error — callers fall back to pure positional inference
// — but a present, malformed file is.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("domain: reading config %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("domain: parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) toModelDomains() []model.Domain {
	out := make([]model.Domain, len(c.Domains))
	for i, d := range c.Domains {
		out[i] = model.Domain{
			Name:        d.Name,
			Description: d.Description,
			Patterns:    d.Patterns,
			Packages:    d.Packages,
		}
	}
	return out
}
