package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bitfsorg/libbtctx-go/amount"
	"github.com/bitfsorg/libbtctx-go/config"
	"github.com/bitfsorg/libbtctx-go/helper"
	"github.com/bitfsorg/libbtctx-go/network"
	"github.com/bitfsorg/libbtctx-go/tx"
	"github.com/bitfsorg/libbtctx-go/wallet"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "BTCTX"

// app carries the state shared by every subcommand. It is filled in by the
// root command's PersistentPreRunE.
type app struct {
	v      *viper.Viper
	cfg    config.Config
	helper *helper.Helper
}

func newRootCmd() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *app) {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "btctx",
		Short:         "Build, sign and broadcast BTC transfers through a node",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.String("datadir", config.DefaultDataDir(), "Directory holding the config file and identity store")
	flags.String("config", "", "Config file (default <datadir>/config)")
	flags.String("network", "", "Network: "+strings.Join(wallet.NetworkNames(), ", "))
	flags.String("rpchost", "", "Node RPC host")
	flags.Int("rpcport", 0, "Node RPC port")
	flags.String("rpcuser", "", "Node RPC user")
	flags.String("rpcpassword", "", "Node RPC password")
	flags.String("rpc-url", "", "Node RPC URL, overrides rpchost and rpcport")
	flags.Duration("timeout", 0, "Timeout of each RPC call")
	flags.String("txfee", "", "Fixed fee per transfer in BTC")
	flags.String("feepolicy", "", "What to do when change cannot cover the fee: passthrough or strict")
	flags.String("loglevel", "", "Log level: trace, debug, info, warn, error, critical, off")
	flags.String("logfile", "", "Also write logs to this file, rotated at 10 MiB")
	flags.String("password", "", "Password sealing stored identities")

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindPFlags(flags)

	root.AddCommand(
		newAddressCmd(a),
		newMultisigCmd(a),
		newIdentityCmd(a),
		newTransferCmd(a),
		newBalanceCmd(a),
		newUtxosCmd(a),
		newFundCmd(a),
		newMineCmd(a),
		newImportCmd(a),
		newStatusCmd(a),
		newInspectCmd(a),
		newDecodeCmd(a),
		newFeeCmd(a),
		newConfigCmd(a),
	)
	return root, a
}

// setup layers the configuration: defaults, then the config file, then
// BTCTX_* environment variables, then flags. It then starts logging and
// creates the helper.
func (a *app) setup() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}
	a.cfg = cfg

	setLogLevels(cfg.LogLevel)
	if cfg.LogFile != "" {
		if err := initLogRotator(cfg.LogFile); err != nil {
			return err
		}
	}

	rpc, err := resolveRPC(cfg, a.v.GetString("rpc-url"))
	if err != nil {
		return err
	}
	params, err := wallet.GetNetwork(cfg.Network)
	if err != nil {
		return err
	}
	policy, err := tx.ParseFeePolicy(cfg.FeePolicy)
	if err != nil {
		return err
	}

	log.Debugf("Using %s node at %s", cfg.Network, rpc.URL)
	a.helper = helper.NewWithNode(network.NewRPCClient(*rpc), helper.Options{
		TxFee:     cfg.TxFee,
		FeePolicy: policy,
		Params:    params,
	})
	return nil
}

func (a *app) loadConfig() (config.Config, error) {
	dataDir := a.v.GetString("datadir")
	path := a.v.GetString("config")
	if path == "" {
		path = config.ConfigPath(dataDir)
	}

	cfg, err := config.LoadConfig(path)
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		// Running without a config file is fine unless one was named.
		if a.v.IsSet("config") {
			return cfg, err
		}
	case err != nil:
		return cfg, err
	}
	if a.v.IsSet("datadir") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	return cfg, applyOverrides(&cfg, a.v)
}

// applyOverrides copies every key set by flag or environment onto cfg.
func applyOverrides(cfg *config.Config, v *viper.Viper) error {
	if v.IsSet("network") {
		cfg.Network = v.GetString("network")
	}
	if v.IsSet("rpchost") {
		cfg.Host = v.GetString("rpchost")
	}
	if v.IsSet("rpcport") {
		cfg.Port = v.GetInt("rpcport")
	}
	if v.IsSet("rpcuser") {
		cfg.User = v.GetString("rpcuser")
	}
	if v.IsSet("rpcpassword") {
		cfg.Password = v.GetString("rpcpassword")
	}
	if v.IsSet("timeout") {
		cfg.Timeout = v.GetDuration("timeout")
	}
	if v.IsSet("txfee") {
		fee, err := amount.ParseBTC(v.GetString("txfee"))
		if err != nil {
			return fmt.Errorf("txfee: %w", err)
		}
		cfg.TxFee = fee
	}
	if v.IsSet("feepolicy") {
		cfg.FeePolicy = v.GetString("feepolicy")
	}
	if v.IsSet("loglevel") {
		cfg.LogLevel = v.GetString("loglevel")
	}
	if v.IsSet("logfile") {
		cfg.LogFile = v.GetString("logfile")
	}
	return nil
}

// resolveRPC picks the node endpoint. An explicit URL wins, then the
// BTCTX_RPC_* variables, then the host, port and credentials of cfg.
func resolveRPC(cfg config.Config, rpcURL string) (*network.RPCConfig, error) {
	base := cfg.RPCConfig()
	env := map[string]string{
		network.EnvRPCURL:  base.URL,
		network.EnvRPCUser: base.User,
		network.EnvRPCPass: base.Password,
	}
	for _, key := range []string{network.EnvRPCURL, network.EnvRPCUser, network.EnvRPCPass} {
		if v := os.Getenv(key); v != "" {
			env[key] = v
		}
	}
	return network.ResolveConfig(&network.RPCConfig{URL: rpcURL, Timeout: base.Timeout}, env, cfg.Network)
}

// password returns the identity store password or an error naming how to
// supply one.
func (a *app) password() (string, error) {
	pw := a.v.GetString("password")
	if pw == "" {
		return "", fmt.Errorf("identity password required: use --password or %s_PASSWORD", envPrefix)
	}
	return pw, nil
}

// withStore opens the identity store for the duration of fn.
func (a *app) withStore(fn func(*wallet.IdentityStore) error) error {
	store, err := wallet.OpenIdentityStore(config.IdentityDBPath(a.cfg.DataDir))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

// loadSender opens a stored identity.
func (a *app) loadSender(name string) (wallet.Sender, error) {
	pw, err := a.password()
	if err != nil {
		return nil, err
	}
	var sender wallet.Sender
	err = a.withStore(func(store *wallet.IdentityStore) error {
		sender, err = store.Load(name, pw)
		return err
	})
	return sender, err
}

// saveSender seals id under name when name is non-empty.
func (a *app) saveSender(name string, id wallet.Sender) error {
	if name == "" {
		return nil
	}
	pw, err := a.password()
	if err != nil {
		return err
	}
	return a.withStore(func(store *wallet.IdentityStore) error {
		return store.Save(name, id, pw)
	})
}
