package archive

// Config holds archive initialization parameters. An empty Path disables
// archiving altogether.
type Config struct {
	Path string `json:"path,omitempty"` // FileStore root directory
}

// DefaultConfig returns the archive defaults: disabled.
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Path != "" {
		c.Path = source.Path
	}
}

// NewStore builds a Store from configuration. A disabled config yields a nil
// Store and no error, so callers gate archiving on the returned value.
func NewStore(cfg *Config) (Store, error) {
	if cfg.Path == "" {
		return nil, nil
	}
	return NewFileStore(cfg.Path), nil
}
