package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/xrprofiles/internal/app"
	"github.com/vk/xrprofiles/internal/hclconf"
	"github.com/vk/xrprofiles/internal/profile"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("xrprofiles", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
xrprofiles - A validator, builder, and preview server for XR input profiles.

Usage:
  xrprofiles [options] [PROFILES_PATH]

Arguments:
  PROFILES_PATH
    Path to a directory of registry profile documents. Asset override
    documents live next to them as <name>.overrides.json siblings.

Options:
`)
		flagSet.PrintDefaults()
	}

	profilesFlag := flagSet.String("profiles", "", "Path to the profiles directory.")
	pFlag := flagSet.String("p", "", "Path to the profiles directory (shorthand).")
	configFlag := flagSet.String("config", "", "Path to an optional HCL configuration file.")
	portFlag := flagSet.Int("port", 0, "Port for the profile preview server. 0 disables serving.")
	remoteFlag := flagSet.String("remote", "", "Base URL of a hosted profile registry to load from.")
	handednessFlag := flagSet.String("handedness", "", "Default handedness for reports. Options: 'none', 'left', 'right', 'left-right', 'left-right-none'.")
	stateFlag := flagSet.String("state", "", "Path to the selection state file. Empty keeps selection in memory.")
	watchFlag := flagSet.Bool("watch", false, "Rebuild and notify viewers when profile documents change.")
	validateFlag := flagSet.Bool("validate", false, "Validate and report the profile set, then exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *profilesFlag != "" {
		path = *profilesFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Profiles path determined.", "path", path)

	cfg := app.Config{
		ProfilesPath:      path,
		RemoteRegistry:    *remoteFlag,
		Port:              *portFlag,
		Watch:             *watchFlag,
		ValidateOnly:      *validateFlag,
		DefaultHandedness: *handednessFlag,
		StatePath:         *stateFlag,
		LogFormat:         strings.ToLower(*logFormatFlag),
		LogLevel:          strings.ToLower(*logLevelFlag),
	}

	if *configFlag != "" {
		file, err := hclconf.Load(context.Background(), *configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		applyFile(&cfg, file, flagSet)
	}

	if cfg.ProfilesPath == "" && cfg.RemoteRegistry == "" {
		slog.Debug("No profile source provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if cfg.DefaultHandedness != "" && !profile.Handedness(cfg.DefaultHandedness).Valid() {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid handedness %q", cfg.DefaultHandedness)}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// applyFile folds the configuration file into cfg. Flags the user passed
// explicitly keep their values; everything else falls back to the file.
func applyFile(cfg *app.Config, file *hclconf.File, flagSet *flag.FlagSet) {
	set := map[string]bool{}
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if cfg.ProfilesPath == "" && file.ProfilesPath != "" {
		cfg.ProfilesPath = file.ProfilesPath
	}
	if !set["remote"] && file.RemoteRegistry != "" {
		cfg.RemoteRegistry = file.RemoteRegistry
	}
	if !set["port"] && file.Port != 0 {
		cfg.Port = file.Port
	}
	if !set["watch"] && file.Watch != nil {
		cfg.Watch = *file.Watch
	}
	if !set["handedness"] && file.DefaultHandedness != "" {
		cfg.DefaultHandedness = file.DefaultHandedness
	}
	if !set["state"] && file.StatePath != "" {
		cfg.StatePath = file.StatePath
	}
	if !set["log-format"] && file.LogFormat != "" {
		cfg.LogFormat = strings.ToLower(file.LogFormat)
	}
	if !set["log-level"] && file.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(file.LogLevel)
	}
}
