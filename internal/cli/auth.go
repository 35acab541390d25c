package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"go-blog-client/internal/model"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				v, err := prompt("Username: ")
				if err != nil {
					return err
				}
				username = v
			}
			if password == "" {
				v, err := prompt("Password: ")
				if err != nil {
					return err
				}
				password = v
			}

			resp, err := executor.Login(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			fmt.Printf("Logged in as %s", resp.Username)
			if sessions.IsAdmin() {
				fmt.Print(" (admin)")
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (prompted if omitted)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted if omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			executor.Logout()
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var req model.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, field := range []struct {
				value *string
				label string
			}{
				{&req.Username, "Username: "},
				{&req.Password, "Password: "},
				{&req.Name, "Name: "},
				{&req.Email, "Email: "},
			} {
				if *field.value == "" {
					v, err := prompt(field.label)
					if err != nil {
						return err
					}
					*field.value = v
				}
			}

			if err := executor.Register(cmd.Context(), req); err != nil {
				return fmt.Errorf("register: %w", err)
			}

			fmt.Println("You have successfully registered! Please log in to continue.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "Password")
	cmd.Flags().StringVar(&req.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !sessions.IsAuthenticated() {
				fmt.Println("Not logged in.")
				return nil
			}

			fmt.Printf("Username: %s\n", sessions.Username())
			fmt.Printf("Role:     %s\n", sessions.Role())
			fmt.Printf("Admin:    %v\n", sessions.IsAdmin())
			return nil
		},
	}
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}
