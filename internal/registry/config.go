package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of the client registry.
type fileConfig struct {
	Clients []Client `yaml:"clients"`
}

// LoadFile reads a YAML client registry and builds the snapshot.
//
//	clients:
//	  - client_id: local
//	    redirect_uris:
//	      - https://rp.example/callback
func LoadFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file %q: %w", path, err)
	}
	return Load(raw)
}

// Load parses YAML registry content.
func Load(raw []byte) (*Registry, error) {
	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal client registry: %w", err)
	}
	return New(cfg.Clients)
}
