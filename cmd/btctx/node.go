package main

import (
	"fmt"
	"strconv"

	"github.com/bitfsorg/libbtctx-go/amount"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newFundCmd(a *app) *cobra.Command {
	var mine bool

	cmd := &cobra.Command{
		Use:   "fund ADDRESS AMOUNT",
		Short: "Send BTC from the node wallet to an address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sat, err := amount.ParseBTC(args[1])
			if err != nil {
				return err
			}
			txid, err := a.helper.FundAddress(cmd.Context(), args[0], amount.ToBTC(sat), mine)
			if err != nil {
				return err
			}
			color.Green("Funded %s with %s BTC in %s", args[0], amount.FormatBTC(sat), txid)
			return nil
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "Mine a block to confirm the funding")
	return cmd
}

func newMineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mine [BLOCKS]",
		Short: "Mine blocks to a fresh node address (regtest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("blocks %q: %w", args[0], err)
				}
				blocks = n
			}
			hashes, err := a.helper.Mine(cmd.Context(), blocks)
			if err != nil {
				return err
			}
			color.Green("Mined %d blocks", len(hashes))
			for _, h := range hashes {
				fmt.Println(h)
			}
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "import ADDRESS",
		Short: "Watch an address in the node wallet so its outputs can be listed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.helper.ImportAddress(cmd.Context(), args[0], label); err != nil {
				return err
			}
			color.Green("Imported %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Wallet label for the address")
	return cmd
}
