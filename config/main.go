package config

import (
	"flag"

	"github.com/safing/portrand/modules"
)

var (
	module *modules.Module

	configFileFlag string
)

func init() {
	module = modules.Register("config", nil, start, nil)

	flag.StringVar(&configFileFlag, "config", "", "load config values from the given JSON or YAML file")
}

func start() error {
	return loadConfig(configFileFlag)
}
