package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/auth"
)

var (
	accountEmail    string
	accountFullName string
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the local account",
}

var accountRegisterCmd = &cobra.Command{
	Use:   "register <username> <password>",
	Short: "Register a local account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		ok, message := auth.Register(context.Background(), conn, args[0], args[1], accountEmail, accountFullName)
		fmt.Println(message)
		if !ok {
			return fmt.Errorf("registration failed")
		}
		return nil
	},
}

var accountLoginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Verify account credentials",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		ok, message := auth.Login(context.Background(), conn, args[0], args[1])
		fmt.Println(message)
		if !ok {
			return fmt.Errorf("login failed")
		}
		return nil
	},
}

func init() {
	accountRegisterCmd.Flags().StringVar(&accountEmail, "email", "", "Email address")
	accountRegisterCmd.Flags().StringVar(&accountFullName, "name", "", "Full name")
	accountCmd.AddCommand(accountRegisterCmd, accountLoginCmd)
}
