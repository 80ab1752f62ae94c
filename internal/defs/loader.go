// internal/defs/loader.go
package defs

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaultTables []byte

// Library holds all building definitions, keyed by type. Populated once by
// Load before the simulation starts.
var Library map[BuildingType]BuildingDefinition

// Load populates the Library. The embedded defaults always apply; an
// optional YAML file at path and GRIDKEEP_-prefixed environment variables
// override them. A table that fails validation rejects the whole load.
func Load(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultTables)); err != nil {
		return fmt.Errorf("failed to read embedded building tables: %w", err)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return fmt.Errorf("failed to merge building tables from %s: %w", path, err)
		}
	}
	v.SetEnvPrefix("GRIDKEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var tables struct {
		Buildings []BuildingDefinition `mapstructure:"buildings"`
	}
	if err := v.Unmarshal(&tables); err != nil {
		return fmt.Errorf("failed to unmarshal building tables: %w", err)
	}
	if len(tables.Buildings) == 0 {
		return fmt.Errorf("building tables are empty")
	}

	validate := validator.New()
	library := make(map[BuildingType]BuildingDefinition, len(tables.Buildings))
	for _, def := range tables.Buildings {
		if err := validate.Struct(def); err != nil {
			return fmt.Errorf("invalid definition for %q: %w", def.Type, err)
		}
		if _, dup := library[def.Type]; dup {
			return fmt.Errorf("duplicate definition for %q", def.Type)
		}
		library[def.Type] = def
	}

	Library = library
	return nil
}

// MustLoad is Load for tests and tools that cannot proceed without tables.
func MustLoad(path string) {
	if err := Load(path); err != nil {
		panic(err)
	}
}
