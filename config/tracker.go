package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

var trackerCfg = &TrackerConfig{}

var errInitFailed = errors.New(
	"unable to initialise timekeeper settings from the configuration file",
)

const (
	defaultWeekStart        = "monday"
	defaultSaveIntervalMins = 5
)

const (
	configWeekStart        = "week_start"
	configNotify           = "notify"
	configDeactivateCmd    = "deactivate_cmd"
	configDarkTheme        = "dark_theme"
	configSaveIntervalMins = "save_interval_mins"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// TrackerConfig represents the program configuration derived from the
// config file and command-line arguments.
type TrackerConfig struct {
	Stderr        io.Writer `json:"-"`
	Stdout        io.Writer `json:"-"`
	PathToConfig  string    `json:"path_to_config"`
	PathToDB      string    `json:"path_to_db"`
	DeactivateCmd string    `json:"deactivate_cmd"`
	WeekStart     time.Weekday
	SaveInterval  time.Duration
	Notify        bool `json:"notify"`
	DarkTheme     bool `json:"dark_theme"`
}

// trackerDefaults sets the program's default configuration values.
func trackerDefaults() {
	viper.SetDefault(configWeekStart, defaultWeekStart)
	viper.SetDefault(configNotify, true)
	viper.SetDefault(configDeactivateCmd, "")
	viper.SetDefault(configDarkTheme, true)
	viper.SetDefault(configSaveIntervalMins, defaultSaveIntervalMins)
}

// initTrackerConfig initialises the application configuration. If the
// config file does not exist, one is created with the default values.
func initTrackerConfig() error {
	viper.SetConfigName(strings.TrimSuffix(configFileName, ".yml"))
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Dir(configFilePath))

	trackerCfg.PathToConfig = configFilePath

	trackerDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return viper.WriteConfigAs(configFilePath)
		}

		return err
	}

	return nil
}

func setTrackerConfig(ctx *cli.Context) {
	trackerCfg.Stderr = os.Stderr
	trackerCfg.Stdout = os.Stdout
	trackerCfg.PathToDB = dbFilePath

	day, ok := weekdays[strings.ToLower(viper.GetString(configWeekStart))]
	if !ok {
		day = time.Monday
	}

	trackerCfg.WeekStart = day
	trackerCfg.Notify = viper.GetBool(configNotify)
	trackerCfg.DeactivateCmd = viper.GetString(configDeactivateCmd)
	trackerCfg.SaveInterval = time.Duration(
		viper.GetInt(configSaveIntervalMins),
	) * time.Minute

	if viper.IsSet(configDarkTheme) {
		trackerCfg.DarkTheme = viper.GetBool(configDarkTheme)
	} else {
		trackerCfg.DarkTheme = true
	}

	// set from command-line arguments
	if ctx.Bool("disable-notification") {
		trackerCfg.Notify = false
	}

	if ctx.String("deactivate-cmd") != "" {
		trackerCfg.DeactivateCmd = ctx.String("deactivate-cmd")
	}
}

// Tracker initializes and returns the tracker configuration. The
// initialization is done just once no matter how many times it is
// called.
func Tracker(ctx *cli.Context) *TrackerConfig {
	once.Do(func() {
		err := initTrackerConfig()
		if err != nil {
			pterm.Error.Printfln("%s: %s", errInitFailed.Error(), err.Error())
			os.Exit(1)
		}

		setTrackerConfig(ctx)
	})

	return trackerCfg
}
