package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-blog-client/internal/model"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and update your profile",
	}

	cmd.AddCommand(
		newProfileShowCmd(),
		newProfileEditCmd(),
		newProfilePasswdCmd(),
	)

	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			user, err := users.Profile(cmd.Context())
			if err != nil {
				return fmt.Errorf("get profile: %w", err)
			}

			fmt.Printf("Username: %s\n", user.Username)
			fmt.Printf("Name:     %s\n", user.Name)
			fmt.Printf("Email:    %s\n", user.Email)
			fmt.Printf("Posts:    %d\n", len(user.Posts))
			fmt.Printf("Comments: %d\n", len(user.Comments))
			return nil
		},
	}
}

func newProfileEditCmd() *cobra.Command {
	var req model.UpdateProfileRequest

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Update your name and email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			user, err := users.UpdateProfile(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("update profile: %w", err)
			}

			fmt.Printf("Profile updated: %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newProfilePasswdCmd() *cobra.Command {
	var current, next string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change your password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			if current == "" {
				v, err := prompt("Current password: ")
				if err != nil {
					return err
				}
				current = v
			}
			if next == "" {
				v, err := prompt("New password: ")
				if err != nil {
					return err
				}
				next = v
			}

			if err := users.ChangePassword(cmd.Context(), current, next); err != nil {
				return fmt.Errorf("change password: %w", err)
			}

			fmt.Println("Password changed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password (prompted if omitted)")
	cmd.Flags().StringVar(&next, "new", "", "New password (prompted if omitted)")
	return cmd
}
