package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldstack/isp-ops-service/internal/access"
	"github.com/fieldstack/isp-ops-service/internal/cloudsync"
	"github.com/fieldstack/isp-ops-service/internal/kvstore"
	"github.com/fieldstack/isp-ops-service/internal/store"
)

// collectionKeys is the full key space a dump covers.
var collectionKeys = []string{
	store.KeyClients,
	store.KeyTickets,
	store.KeyEquipment,
	store.KeyInstallations,
	store.KeyDerivations,
	store.KeyPostSale,
	store.KeyAdminRequests,
	access.Key,
}

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump every collection as one JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			dump := make(map[string]json.RawMessage, len(collectionKeys))
			for _, key := range collectionKeys {
				data, err := env.kv.Get(cmd.Context(), key)
				if errors.Is(err, kvstore.ErrNotFound) {
					continue
				}
				if err != nil {
					return fmt.Errorf("read %s: %w", key, err)
				}
				dump[key] = data
			}

			encoded, err := json.MarshalIndent(dump, "", "  ")
			if err != nil {
				return err
			}
			if out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
				return err
			}
			return os.WriteFile(out, encoded, 0o644)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a JSON dump into the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var dump map[string]json.RawMessage
			if err := json.Unmarshal(data, &dump); err != nil {
				return fmt.Errorf("decode dump: %w", err)
			}

			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			for _, key := range collectionKeys {
				value, ok := dump[key]
				if !ok {
					continue
				}
				if err := env.kv.Set(cmd.Context(), key, value); err != nil {
					return fmt.Errorf("write %s: %w", key, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d bytes)\n", key, len(value))
			}
			return nil
		},
	}
	return cmd
}

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror every stored collection to the configured remote",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			remote, err := kvstore.NewRemote(cmd.Context(), env.cfg.Remote, env.logger)
			if err != nil {
				return err
			}
			if remote == nil {
				return errors.New("no remote configured; set REMOTE_TYPE")
			}
			defer remote.Close()

			syncer := cloudsync.New(env.kv, remote, env.logger, nil, env.cfg.Sync.Debounce())
			defer syncer.Close()
			if err := syncer.SyncAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "sync completed")
			return nil
		},
	}
	return cmd
}
