// Package config is responsible for setting the program config from
// the config file and command-line arguments
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

// Version is the current program version.
const Version = "v1.0.0"

var once sync.Once

var (
	configDir      = "timekeeper"
	configFileName = "config.yml"
	dbFileName     = "timekeeper.db"
	logFileName    = "timekeeper.log"
	dbFilePath     string
	configFilePath string
	logFilePath    string
)

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func LogFilePath() string {
	return logFilePath
}

func InitializePaths() {
	env := strings.TrimSpace(os.Getenv("TIMEKEEPER_ENV"))
	if env != "" {
		configFileName = fmt.Sprintf("config_%s.yml", env)
		dbFileName = fmt.Sprintf("timekeeper_%s.db", env)
		logFileName = fmt.Sprintf("timekeeper_%s.log", env)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}
