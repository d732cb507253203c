package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// LoadTomlFile opens and decodes a toml file into the destination
func LoadTomlFile(dest interface{}, relativePath string) error {
	path, err := filepath.Abs(relativePath)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return toml.NewDecoder(f).Decode(dest)
}
