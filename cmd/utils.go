package cmd

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "FORWARDHOOK_"

var replacer = strings.NewReplacer(".", "_", "-", "_")

type argType interface {
	string | bool | int | time.Duration
}

type boundEnvVar[T argType] struct {
	Name, Description string
	// Env overrides the FORWARDHOOK_<NAME> environment variable.
	Env string
	// Short is the one-letter flag alias.
	Short string
	// Count makes an int flag count its occurrences, as in -vv.
	Count  bool
	Hidden bool
}

// boundFlags lists every flag registered through bindEnvMap. The flags write
// into the config globals, so their values are captured before the
// configuration file is loaded and re-applied afterwards.
var boundFlags []*pflag.Flag

func (cfg boundEnvVar[T]) envName() string {
	if cfg.Env != "" {
		return cfg.Env
	}
	return envPrefix + strings.ToUpper(replacer.Replace(cfg.Name))
}

func bindEnvMap[T argType](cmd *cobra.Command, m map[*T]boundEnvVar[T]) {
	flags := cmd.PersistentFlags()
	for v, cfg := range m {
		desc := fmt.Sprintf("[%s] %s", cfg.envName(), cfg.Description)

		switch vt := any(v).(type) {
		case *string:
			flags.StringVarP(vt, cfg.Name, cfg.Short, *vt, desc)
		case *bool:
			flags.BoolVarP(vt, cfg.Name, cfg.Short, *vt, desc)
		case *int:
			if cfg.Count {
				def := *vt
				flags.CountVarP(vt, cfg.Name, cfg.Short, desc)
				_ = flags.Lookup(cfg.Name).Value.Set(strconv.Itoa(def))
			} else {
				flags.IntVarP(vt, cfg.Name, cfg.Short, *vt, desc)
			}
		case *time.Duration:
			flags.DurationVarP(vt, cfg.Name, cfg.Short, *vt, desc)
		default:
			log.Panicf("command-args parsing error: unhandled default case for type %T", vt)
		}

		flag := flags.Lookup(cfg.Name)
		_ = viper.BindPFlag(cfg.Name, flag)
		_ = viper.BindEnv(cfg.Name, cfg.envName())
		boundFlags = append(boundFlags, flag)

		if cfg.Hidden {
			_ = flags.MarkHidden(cfg.Name)
		}
	}
}

// captureOverrides returns the values given on the command line or in the
// environment, keyed by flag name. Command-line values win.
func captureOverrides() map[string]string {
	overrides := make(map[string]string)
	for _, flag := range boundFlags {
		switch {
		case flag.Changed:
			overrides[flag.Name] = flag.Value.String()
		case viper.IsSet(flag.Name):
			overrides[flag.Name] = viper.GetString(flag.Name)
		}
	}
	return overrides
}

// applyOverrides writes captured values back into the bound variables.
func applyOverrides(overrides map[string]string) error {
	for _, flag := range boundFlags {
		value, found := overrides[flag.Name]
		if !found {
			continue
		}
		if err := flag.Value.Set(value); err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", value, flag.Name, err)
		}
	}
	return nil
}
