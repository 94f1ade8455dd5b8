// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/internal/users/auth"
)

var (
	superuserName  string
	superuserEmail string
)

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create an administrator with the superuser flag",
	Long: `Create an administrator account with the superuser flag set.

The account has no credential yet. Its owner signs up with the same
username and email to receive a confirmation code.

Examples:
  yamdbctl createsuperuser --username root --email root@example.com`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
			user, err := auth.CreateSuperuser(cmd.Context(), auth.NewUserRepository(pool), superuserName, superuserEmail, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Superuser %q created.\n", user.Username)
			return nil
		})
	},
}

func init() {
	createSuperuserCmd.Flags().StringVar(&superuserName, "username", "", "Username of the new superuser")
	createSuperuserCmd.Flags().StringVar(&superuserEmail, "email", "", "Email of the new superuser")
	_ = createSuperuserCmd.MarkFlagRequired("username")
	_ = createSuperuserCmd.MarkFlagRequired("email")
}
