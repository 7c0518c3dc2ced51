package main

import (
	"fmt"
	"os"

	"github.com/bitfsorg/libbtctx-go/amount"
	"github.com/bitfsorg/libbtctx-go/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the configuration after flags and environment are applied",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			c := a.cfg
			fmt.Printf("datadir   %s\n", c.DataDir)
			fmt.Printf("network   %s\n", c.Network)
			fmt.Printf("rpc       %s (user %q)\n", c.RPCConfig().URL, c.User)
			fmt.Printf("timeout   %s\n", c.Timeout)
			fmt.Printf("txfee     %s BTC\n", amount.FormatBTC(c.TxFee))
			fmt.Printf("feepolicy %s\n", c.FeePolicy)
			fmt.Printf("loglevel  %s\n", c.LogLevel)
			fmt.Printf("logfile   %s\n", c.LogFile)
		},
	})

	var force bool
	write := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to <datadir>/config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigPath(a.cfg.DataDir)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists, use --force to overwrite", path)
			}
			if err := config.SaveConfig(path, a.cfg); err != nil {
				return err
			}
			color.Green("Wrote %s", path)
			return nil
		},
	}
	write.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(write)

	return cmd
}
