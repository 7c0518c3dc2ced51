package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bitfsorg/libbtctx-go/amount"
	"github.com/bitfsorg/libbtctx-go/helper"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newTransferCmd(a *app) *cobra.Command {
	var (
		from     string
		to       []string
		dataText []string
		dataHex  []string
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Pay one or more recipients from a stored identity",
		Example: `  btctx transfer --from alice --to mxd5o5xQc6Qvo956mHGkVX9ZvAfoNNh9Ec=1.5
  btctx transfer --from vault --to ADDR1=0.1 --to ADDR2=0.2 --data "invoice 42"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputs, err := parseRecipients(to)
			if err != nil {
				return err
			}
			payloads, err := parsePayloads(dataText, dataHex)
			if err != nil {
				return err
			}
			sender, err := a.loadSender(from)
			if err != nil {
				return err
			}

			txid, err := a.helper.TransferBTC(cmd.Context(), sender, outputs, payloads...)
			if err != nil {
				return err
			}
			color.Green("Broadcast %s", txid)
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "Name of the stored identity paying")
	cmd.Flags().StringArrayVar(&to, "to", nil, "Recipient as ADDRESS=AMOUNT_BTC (repeatable)")
	cmd.Flags().StringArrayVar(&dataText, "data", nil, "Text to embed in a data output (repeatable)")
	cmd.Flags().StringArrayVar(&dataHex, "data-hex", nil, "Hex bytes to embed in a data output (repeatable)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// parseRecipients parses ADDRESS=AMOUNT pairs. Amounts are parsed exactly
// so that anything finer than a satoshi is rejected instead of rounded.
func parseRecipients(specs []string) ([]helper.RecipientOutput, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one --to recipient is required")
	}
	outputs := make([]helper.RecipientOutput, len(specs))
	for i, spec := range specs {
		addr, amt, ok := strings.Cut(spec, "=")
		addr = strings.TrimSpace(addr)
		if !ok || addr == "" {
			return nil, fmt.Errorf("recipient %q: want ADDRESS=AMOUNT", spec)
		}
		sat, err := amount.ParseBTC(strings.TrimSpace(amt))
		if err != nil {
			return nil, fmt.Errorf("recipient %q: %w", spec, err)
		}
		outputs[i] = helper.RecipientOutput{RecipientAddress: addr, AmountBTC: amount.ToBTC(sat)}
	}
	return outputs, nil
}

// parsePayloads returns the text payloads followed by the hex ones.
func parsePayloads(text, hexes []string) ([][]byte, error) {
	var payloads [][]byte
	for _, t := range text {
		payloads = append(payloads, []byte(t))
	}
	for _, h := range hexes {
		b, err := hex.DecodeString(h)
		if err != nil {
			return nil, fmt.Errorf("data-hex %q: %w", h, err)
		}
		payloads = append(payloads, b)
	}
	return payloads, nil
}
