package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOperatorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operators",
		Short: "Manage the authorized-operator allow-list",
	}
	cmd.AddCommand(newOperatorsListCmd(), newOperatorsAddCmd(), newOperatorsRemoveCmd())
	return cmd
}

func newOperatorsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print authorized emails in insertion order",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			allowed := env.allowList()
			if err := allowed.Load(cmd.Context(), env.kv); err != nil {
				return err
			}
			emails := allowed.Emails()
			if len(emails) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(empty allow-list)")
				return nil
			}
			for _, email := range emails {
				fmt.Fprintln(cmd.OutOrStdout(), email)
			}
			return nil
		},
	}
}

func newOperatorsAddCmd() *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "add <email>",
		Short: "Authorize an operator email, optionally with a PIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			allowed := env.allowList()
			if err := allowed.Load(cmd.Context(), env.kv); err != nil {
				return err
			}
			added, err := allowed.Add(args[0], pin)
			if err != nil {
				return err
			}
			allowed.Flush()
			if !added {
				fmt.Fprintln(cmd.OutOrStdout(), "already authorized")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "authorized")
			return nil
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "optional login PIN")
	return cmd
}

func newOperatorsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <email>",
		Short: "Revoke an operator email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			allowed := env.allowList()
			if err := allowed.Load(cmd.Context(), env.kv); err != nil {
				return err
			}
			allowed.Remove(args[0])
			allowed.Flush()
			fmt.Fprintln(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}
