package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdcore "github.com/projecteru2/corral/cmd/core"
	cmdothers "github.com/projecteru2/corral/cmd/others"
	cmdvm "github.com/projecteru2/corral/cmd/vm"
	"github.com/projecteru2/corral/config"
)

var (
	cfgFile string
	conf    *config.Config
)

var rootCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corral",
		Short: "Corral - VirtualBox fleet control",
		Long: `Corral resolves a set of VMs by name fragment, wildcard, running state
or file list, and dispatches a lifecycle command to each match via VBoxManage.

TARGET is one of:
  a file path     each non-empty line is matched as a name fragment
  '*'             every VM in the inventory
  running         every currently running VM
  a fragment      VMs whose name contains the fragment (case-sensitive)`,
		// main.go owns error printing; a failed dispatch summary is not a
		// usage problem.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(commandContext(cmd))
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	cmd.PersistentFlags().String("root-dir", "", "root data directory")
	cmd.PersistentFlags().String("run-dir", "", "runtime directory")
	cmd.PersistentFlags().String("log-dir", "", "log directory")
	cmd.PersistentFlags().String("vboxmanage", "", "VBoxManage binary name or path")
	cmd.PersistentFlags().Int("timeout", 0, "per-invocation timeout in seconds (0 = no limit)")

	_ = viper.BindPFlag("root_dir", cmd.PersistentFlags().Lookup("root-dir"))
	_ = viper.BindPFlag("run_dir", cmd.PersistentFlags().Lookup("run-dir"))
	_ = viper.BindPFlag("log_dir", cmd.PersistentFlags().Lookup("log-dir"))
	_ = viper.BindPFlag("vboxmanage", cmd.PersistentFlags().Lookup("vboxmanage"))
	_ = viper.BindPFlag("timeout_seconds", cmd.PersistentFlags().Lookup("timeout"))

	viper.SetEnvPrefix("CORRAL")
	viper.AutomaticEnv()

	confProvider := func() *config.Config { return conf }

	for _, c := range cmdvm.Commands(cmdvm.Handler{BaseHandler: cmdcore.BaseHandler{ConfProvider: confProvider}}) {
		cmd.AddCommand(c)
	}
	for _, c := range cmdothers.Commands(cmdothers.Handler{}) {
		cmd.AddCommand(c)
	}

	return cmd
}()

func initConfig(ctx context.Context) error {
	conf = config.DefaultConfig()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	_ = viper.ReadInConfig() // optional; missing file is OK

	if err := viper.Unmarshal(conf); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	conf.Normalize()

	if conf.Log.Filename == "" {
		conf.Log.Filename = conf.LogFile()
	}
	return log.SetupLog(ctx, &conf.Log, "")
}

// commandContext returns the command context, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func newCommandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Execute is the main entry point called from main.go.
func Execute() error {
	ctx, cancel := newCommandContext()
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}
