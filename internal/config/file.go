package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// decodeFile overlays a TOML file onto c. Keys absent from the file keep their current value.
func decodeFile(filename string, c *Configuration) error {
	meta, err := toml.DecodeFile(filename, c)
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys in config file %s: %v", filename, undecoded)
	}
	return nil
}
