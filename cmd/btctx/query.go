package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bitfsorg/libbtctx-go/amount"
	"github.com/bitfsorg/libbtctx-go/tx"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance ADDRESS",
		Short: "Sum the unspent outputs of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bal, err := a.helper.GetAddressBalance(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sat, err := amount.ToSatoshis(bal)
			if err != nil {
				return err
			}
			fmt.Printf("%s BTC\n", amount.FormatBTC(sat))
			return nil
		},
	}
}

func newUtxosCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "utxos ADDRESS",
		Short: "List the unspent outputs of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			utxos, err := a.helper.GetUtxos(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(utxos)
			}
			if len(utxos) == 0 {
				fmt.Printf("No unspent outputs for %s\n", args[0])
				return nil
			}
			for i, u := range utxos {
				fmt.Printf("%d. %s:%d  %s BTC  (%d conf)\n", i+1, u.TxID, u.Vout,
					amount.FormatBTC(u.Amount), u.Confirmations)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status TXID",
		Short: "Show the confirmation status of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.helper.GetTxStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !st.Confirmed {
				color.Yellow("Unconfirmed")
				return nil
			}
			color.Green("Confirmed (%d confirmations)", st.Confirmations)
			fmt.Printf("Block: %s\n", st.BlockHash)
			return nil
		},
	}
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect TXID",
		Short: "Decode a transaction and show where its outputs pay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.helper.GetTransaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Txid: %s\n", msg.TxHash())
			fmt.Printf("Inputs: %d\n", len(msg.TxIn))
			for i, in := range msg.TxIn {
				fmt.Printf("  %d. %s\n", i, in.PreviousOutPoint)
			}
			fmt.Printf("Outputs: %d\n", len(msg.TxOut))
			for i, out := range msg.TxOut {
				value := amount.FormatBTC(btcutil.Amount(out.Value))
				if addr, ok := a.helper.GetOutputAddress(out.PkScript); ok {
					fmt.Printf("  %d. %s BTC -> %s\n", i, value, addr)
					continue
				}
				if data, ok := tx.EmbeddedData(out.PkScript); ok {
					fmt.Printf("  %d. %s BTC data %s\n", i, value, hex.EncodeToString(data))
					continue
				}
				fmt.Printf("  %d. %s BTC script %s\n", i, value, hex.EncodeToString(out.PkScript))
			}
			return nil
		},
	}
}

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode ADDRESS",
		Short: "Print the hash160 carried by a base58 address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.helper.DecodeBase58Address(args[0])
			if err != nil {
				return err
			}
			fmt.Println(h)
			return nil
		},
	}
}

func newFeeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fee",
		Short: "Print the fixed fee per transfer",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s BTC (%s)\n", amount.FormatBTC(a.cfg.TxFee), a.cfg.FeePolicy)
		},
	}
}
