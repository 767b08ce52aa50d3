// Package cli parses the netgrid command line, overlaying flags on an
// optional TOML run-configuration file.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/netgridgo/internal/app"
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

// Parse processes command-line arguments. It returns a populated app
// Config, a boolean indicating the program should exit cleanly, or an
// ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("netgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
netgrid - forward execution of declarative layered networks.

Usage:
  netgrid [options] [MODEL_PATH]

Arguments:
  MODEL_PATH
    Path to a single .hcl description file or a directory of them.

Options:
`)
		flagSet.PrintDefaults()
	}

	modelFlag := flagSet.String("model", "", "Path to the network description file or directory.")
	mFlag := flagSet.String("m", "", "Path to the network description file or directory (shorthand).")
	weightsFlag := flagSet.String("weights", "", "Path to a trained-parameter snapshot to load.")
	saveFlag := flagSet.String("save", "", "Write the net's parameter snapshot to this path after the run.")
	configFlag := flagSet.String("config", "", "Path to a TOML run-configuration file.")
	phaseFlag := flagSet.String("phase", "", "Execution phase, overriding the description's state block.")
	stagesFlag := flagSet.String("stages", "", "Comma-separated stage labels for the execution state.")
	levelFlag := flagSet.Int("level", 0, "Execution level for the state filter.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	traceFlag := flagSet.Bool("trace", false, "Emit per-layer profiling scopes.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	cfg := app.Config{
		LogFormat: "text",
		LogLevel:  "info",
	}
	if *configFlag != "" {
		fileCfg, err := loadRunConfig(*configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg = *fileCfg
	}

	// Flags set explicitly on the command line win over the file.
	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["model"] {
		cfg.ModelPath = *modelFlag
	} else if set["m"] {
		cfg.ModelPath = *mFlag
	} else if flagSet.NArg() > 0 {
		cfg.ModelPath = flagSet.Arg(0)
	}
	if set["weights"] {
		cfg.WeightsPath = *weightsFlag
	}
	if set["save"] {
		cfg.SavePath = *saveFlag
	}
	if set["phase"] {
		cfg.Phase = *phaseFlag
	}
	if set["stages"] {
		cfg.Stages = splitStages(*stagesFlag)
	}
	if set["level"] {
		cfg.Level = *levelFlag
	}
	if set["log-format"] || cfg.LogFormat == "" {
		cfg.LogFormat = *logFormatFlag
	}
	if set["log-level"] || cfg.LogLevel == "" {
		cfg.LogLevel = *logLevelFlag
	}
	if set["trace"] {
		cfg.Trace = *traceFlag
	}

	if cfg.ModelPath == "" {
		slog.Debug("No model path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(cfg.LogFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	cfg.LogFormat = logFormat

	logLevel := strings.ToLower(cfg.LogLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	cfg.LogLevel = logLevel

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return validated, false, nil
}

func splitStages(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	stages := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			stages = append(stages, p)
		}
	}
	return stages
}
