package sayconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/say2/cmds"
	"github.com/reusee/say2/configs"
	"github.com/reusee/say2/logs"
)

//go:embed schema.cue
var schema string

var configFlags = cmds.Collect[string]("-config", "load this config file before the discovered ones")

// ConfigPaths lists config files, earlier ones take precedence.
type ConfigPaths []string

func (Module) ConfigPaths() ConfigPaths {
	paths := append(ConfigPaths(nil), *configFlags...)

	filenames := []string{
		"say2.cue",
		".say2.cue",
	}

	// working directory
	workingDir, err := os.Getwd()
	if err == nil {
		for _, filename := range filenames {
			path := filepath.Join(workingDir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	// user config dir
	configDir, err := os.UserConfigDir()
	if err == nil {
		for _, filename := range filenames {
			path := filepath.Join(configDir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	// system wide dir
	for _, filename := range filenames {
		path := filepath.Join("/etc", filename)
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}

	return paths
}

func (Module) ConfigsLoader(
	paths ConfigPaths,
	logger logs.Logger,
) configs.Loader {
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", []string(paths),
		)
	}
	return configs.NewLoader(paths, schema)
}
