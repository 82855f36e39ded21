package types

// Supported store engine names. The set is closed: a descriptor naming
// anything else is rejected before the store is touched.
const (
	EngineMemory   = "memory"
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
)

// knownEngines lists the engines Validate accepts.
var knownEngines = map[string]bool{
	EngineMemory:   true,
	EngineSQLite:   true,
	EnginePostgres: true,
}

// Config selects and parameterizes the store's backing engine. It comes
// either from a direct file-backed store path (sqlite) or from an indirect
// connection descriptor.
type Config struct {
	Engine string `mapstructure:"engine" yaml:"engine"`
	Path   string `mapstructure:"path" yaml:"path"`
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
}

// Validate checks that the Config is well-formed. It returns a sentinel
// from this package on failure; all of them match ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Engine == "" {
		return ErrEngineEmpty
	}
	if !knownEngines[c.Engine] {
		return ErrEngineUnknown
	}
	if c.Engine == EngineSQLite && c.Path == "" {
		return ErrPathEmpty
	}
	if c.Engine == EnginePostgres && c.DSN == "" {
		return ErrDSNEmpty
	}
	return nil
}
