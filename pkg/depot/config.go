package depot

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// LoadConfig resolves a store configuration from path. A path ending in
// ".db" is a direct file-backed sqlite store; anything else is read as a
// YAML connection descriptor declaring an engine from the supported set.
// Malformed descriptors are rejected (ErrInvalidConfig) before the store
// is touched.
func LoadConfig(path string) (types.Config, error) {
	if filepath.Ext(path) == ".db" {
		cfg := types.Config{Engine: types.EngineSQLite, Path: path}
		return cfg, cfg.Validate()
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return types.Config{}, fmt.Errorf("%w: %v", types.ErrInvalidConfig, err)
	}
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("%w: %v", types.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	// A relative sqlite path in a descriptor is taken relative to the
	// descriptor's directory.
	if cfg.Engine == types.EngineSQLite && !filepath.IsAbs(cfg.Path) {
		cfg.Path = filepath.Join(filepath.Dir(path), cfg.Path)
	}
	return cfg, nil
}
