package main

import (
	"fmt"

	"github.com/bitfsorg/libbtctx-go/network"
	"github.com/bitfsorg/libbtctx-go/wallet"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newAddressCmd(a *app) *cobra.Command {
	var addrType, save string

	cmd := &cobra.Command{
		Use:   "address",
		Short: "Create a single-key address in the node wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.helper.GenerateAddress(cmd.Context(), network.AddressType(addrType))
			if err != nil {
				return err
			}
			if err := a.saveSender(save, info); err != nil {
				return err
			}
			printIdentity(info)
			if save != "" {
				color.Green("Saved as %q", save)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addrType, "type", "t", string(network.AddressLegacy), "Address type: legacy, p2sh-segwit, bech32")
	cmd.Flags().StringVarP(&save, "save", "s", "", "Seal the identity into the store under this name")
	return cmd
}

func newMultisigCmd(a *app) *cobra.Command {
	var addrType, save string
	var signers, required int

	cmd := &cobra.Command{
		Use:   "multisig",
		Short: "Create an n-of-m multisig address from fresh node keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.helper.GenerateMultisigAddress(cmd.Context(), signers, required, network.AddressType(addrType))
			if err != nil {
				return err
			}
			if err := a.saveSender(save, info); err != nil {
				return err
			}
			printIdentity(info)
			if save != "" {
				color.Green("Saved as %q", save)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&signers, "signers", "m", wallet.DefaultSignerSize, "Number of member keys")
	cmd.Flags().IntVarP(&required, "required", "n", wallet.DefaultRequiredSigners, "Signatures required to spend")
	cmd.Flags().StringVarP(&addrType, "type", "t", string(network.AddressLegacy), "Address type: legacy, p2sh-segwit, bech32")
	cmd.Flags().StringVarP(&save, "save", "s", "", "Seal the identity into the store under this name")
	return cmd
}

func newIdentityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Manage sealed identities",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored identity names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *wallet.IdentityStore) error {
				names, err := store.List()
				if err != nil {
					return err
				}
				if len(names) == 0 {
					fmt.Println("No identities stored")
					return nil
				}
				for _, name := range names {
					fmt.Println(name)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show NAME",
		Short: "Decrypt and print a stored identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sender, err := a.loadSender(args[0])
			if err != nil {
				return err
			}
			printIdentity(sender)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete NAME",
		Short: "Remove a stored identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *wallet.IdentityStore) error {
				if err := store.Delete(args[0]); err != nil {
					return err
				}
				color.Green("Deleted %q", args[0])
				return nil
			})
		},
	})

	return cmd
}

func printIdentity(id wallet.Sender) {
	bold := color.New(color.Bold).SprintFunc()
	switch s := id.(type) {
	case *wallet.AddressInfo:
		fmt.Printf("%s %s\n", bold("Address:"), s.Address)
		fmt.Printf("%s %s\n", bold("Private key:"), s.PrivateKey)
	case *wallet.MultisigAddressInfo:
		fmt.Printf("%s %s (%d of %d)\n", bold("Multisig address:"), s.Address,
			s.Info.RequiredSigners, len(s.Info.Members))
		fmt.Printf("%s %s\n", bold("Redeem script:"), s.Info.RedeemScript)
		for i, m := range s.Info.Members {
			fmt.Printf("  %d. %s %s\n", i+1, m.Address, m.PrivateKey)
		}
	}
}
