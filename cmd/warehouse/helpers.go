// Shared helpers for warehouse CLI commands.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/warehouse/internal/logging"
	"github.com/mesh-intelligence/warehouse/pkg/depot"
	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// openDepot loads the store descriptor and builds a connected depot. The
// caller must defer d.Close().
func openDepot() (*depot.Depot, error) {
	d, err := depot.Open(configPath, logging.New("warehouse"))
	if err != nil {
		return nil, fmt.Errorf("open depot: %w", err)
	}
	return d, nil
}

// parseIdentity parses a 32-bit identity argument.
func parseIdentity(arg string) (int32, error) {
	id, err := strconv.ParseInt(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid identity %q: %w", arg, err)
	}
	return int32(id), nil
}

// metaFromYAML loads a ModelMeta from a YAML file of field: value pairs.
func metaFromYAML(path string) (*types.ModelMeta, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read meta %s: %w", path, err)
	}
	return types.NewModelMeta(v.AllSettings())
}

// applyMetaPairs sets key=value pairs onto meta, parsing values as
// literals (int, float, bool) with a string fallback.
func applyMetaPairs(meta *types.ModelMeta, pairs []string) error {
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid meta pair %q (want key=value)", pair)
		}
		if err := meta.Set(key, parseScalar(raw)); err != nil {
			return err
		}
	}
	return nil
}

// parseScalar typecasts a flag value: int, float, bool, else string.
func parseScalar(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
