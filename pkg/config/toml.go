package config

import (
	"bytes"
	"context"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&TOMLParser{})
}

// 🔧 TOMLParser implements the Parser interface for TOML files
type TOMLParser struct{}

func (p *TOMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".toml")
}

func (p *TOMLParser) Parse(ctx context.Context, data []byte, env EnvLookup) (*FileConfig, error) {
	var cfg FileConfig
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing TOML: %w", err)
	}
	return &cfg, nil
}
