package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anyproto/swig-sanity/app"
	"github.com/anyproto/swig-sanity/app/filelog"
	"github.com/anyproto/swig-sanity/app/logger"
	"github.com/anyproto/swig-sanity/config"
	"github.com/anyproto/swig-sanity/fixture"
	"github.com/anyproto/swig-sanity/metric"
)

var log = logger.NewNamed("main")

var (
	flagConfigFile string
	flagOutputDir  string
	flagLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "swigsanity",
	Short:         "Generate and check swig golden fixtures",
	Version:       app.VersionDescription(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write every fixture to the output directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, s fixture.Service) error {
			m, err := s.Generate(ctx)
			if err != nil {
				return err
			}
			for _, e := range m.Fixtures {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", e.File, e.Size, e.Blake3)
			}
			return nil
		})
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Rebuild every fixture and compare it with the stored file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, s fixture.Service) error {
			if err := s.Verify(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "fixtures are up to date")
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the fixtures in generation order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, s fixture.Service) error {
			for _, b := range s.Builders() {
				fmt.Fprintln(cmd.OutOrStdout(), b.Name)
			}
			return nil
		})
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Decode a fixture file and print it as yaml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		out, err := inspect(data)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", args[0], err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfigFile, "config", "c", "etc/swigsanity.yml", "path to config file, defaults are used when it is absent")
	rootCmd.PersistentFlags().StringVarP(&flagOutputDir, "out", "o", "", "fixture output directory, overrides the config")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", `named log levels, e.g. "swig.*=DEBUG;*=WARN"`)
	rootCmd.AddCommand(generateCmd, verifyCmd, listCmd, inspectCmd)
}

func loadConfig() (*config.Config, error) {
	conf, err := config.NewFromFile(flagConfigFile)
	if err != nil {
		return nil, err
	}
	if flagOutputDir != "" {
		conf.Fixture.OutputDir = flagOutputDir
	}
	if flagLogLevel != "" {
		conf.Log.Levels = append(logger.LevelsFromStr(flagLogLevel), conf.Log.Levels...)
	}
	if err = conf.Log.ApplyGlobal(); err != nil {
		return nil, err
	}
	return conf, nil
}

func bootstrap(a *app.App, conf *config.Config) fixture.Service {
	s := fixture.New()
	a.Register(conf).
		Register(metric.New())
	if conf.Fixture.Journal {
		a.Register(filelog.New(conf.Fixture.OutputDir))
	}
	a.Register(s)
	return s
}

// withService starts the app, runs f and closes the app whatever f returned
func withService(ctx context.Context, f func(ctx context.Context, s fixture.Service) error) (err error) {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	a := new(app.App)
	s := bootstrap(a, conf)
	if err = a.Start(ctx); err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if cerr := a.Close(closeCtx); cerr != nil {
			log.Error("close error", zap.Error(cerr))
			if err == nil {
				err = cerr
			}
		}
	}()
	return f(ctx, s)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error("swigsanity failed", zap.Error(err))
		stop()
		os.Exit(1)
	}
}
