package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/viant/sqlite-vecset/internal/config"
)

// cli holds state shared by the command tree.
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	out     io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), out: out}
	root := &cobra.Command{
		Use:           "vecsh",
		Short:         "SQL shell for vecset vectors",
		Long:          `vecsh opens a SQLite database with the vector_* functions, the vector_elements and vector_admin virtual tables registered, and runs SQL against it.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.initConfig()
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&c.cfgFile, "config", "c", "",
		"config file (YAML)")
	root.PersistentFlags().Bool("debug", false,
		"enable per-call diagnostics")
	root.PersistentFlags().String("set-kind", "",
		"set implementation: auto, bitmap or sorted")
	root.PersistentFlags().String("dsn", "",
		"SQLite data source (default :memory:)")

	// Bind flags to viper
	_ = c.v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	_ = c.v.BindPFlag("set_kind", root.PersistentFlags().Lookup("set-kind"))
	_ = c.v.BindPFlag("dsn", root.PersistentFlags().Lookup("dsn"))

	root.AddCommand(newExecCmd(c), newRunCmd(c), newConfigCmd())
	return root
}

func (c *cli) initConfig() error {
	defaults := config.Defaults()
	c.v.SetDefault("debug", defaults.Debug)
	c.v.SetDefault("set_kind", defaults.SetKind)
	c.v.SetDefault("seed", defaults.Seed)
	c.v.SetDefault("dsn", defaults.DSN)
	c.v.SetDefault("metrics", defaults.Metrics)
	c.v.SetDefault("log.level", defaults.Log.Level)
	c.v.SetDefault("log.format", defaults.Log.Format)

	c.v.SetEnvPrefix("VECSH")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()

	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	} else if _, err := os.Stat(".vecsh.yaml"); err == nil {
		c.v.SetConfigFile(".vecsh.yaml")
		if err := c.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if err := c.v.Unmarshal(&c.cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
