package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			items, err := categories.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list categories: %w", err)
			}

			if len(items) == 0 {
				fmt.Println("No categories found.")
				return nil
			}

			fmt.Printf("%-6s  %-24s  %s\n", "ID", "NAME", "DESCRIPTION")
			for _, c := range items {
				fmt.Printf("%-6d  %-24s  %s\n", c.ID, c.Name, c.Description)
			}
			return nil
		},
	}
}
