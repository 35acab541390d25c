package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-blog-client/internal/model"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Moderate posts, comments, categories and users",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Root PersistentPreRunE is not inherited once this one is set.
			if parent := cmd.Root().PersistentPreRunE; parent != nil {
				if err := parent(cmd, args); err != nil {
					return err
				}
			}
			if err := requireLogin(); err != nil {
				return err
			}
			if !sessions.IsAdmin() {
				return fmt.Errorf("admin commands require the ADMIN role (current: %s)", sessions.Role())
			}
			return nil
		},
	}

	cmd.AddCommand(
		newAdminOverviewCmd(),
		newAdminUsersCmd(),
		newAdminCommentsCmd(),
		newAdminPostsCmd(),
		newAdminCategoriesCmd(),
	)

	return cmd
}

func newAdminOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show site totals and recent activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			overview, err := admin.Overview(cmd.Context())
			if err != nil {
				return fmt.Errorf("overview: %w", err)
			}

			fmt.Printf("Posts:    %d\n", overview.TotalPosts)
			fmt.Printf("Comments: %d\n", overview.TotalComments)
			fmt.Printf("Users:    %d\n", overview.TotalUsers)
			if len(overview.Activity) > 0 {
				fmt.Println("\nRecent activity:")
				for _, a := range overview.Activity {
					fmt.Printf("  %-8s #%-5d %-40s %s\n", a.Type, a.ID, truncate(a.TitleOrContent, 40), a.Author)
				}
			}
			return nil
		},
	}
}

func newAdminUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all users",
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := admin.ListUsers(cmd.Context())
				if err != nil {
					return fmt.Errorf("list users: %w", err)
				}

				fmt.Printf("%-6s  %-16s  %-24s  %-8s  %s\n", "ID", "USERNAME", "EMAIL", "ROLE", "POSTS")
				for _, u := range items {
					fmt.Printf("%-6d  %-16s  %-24s  %-8s  %d\n", u.ID, u.Username, u.Email, u.Role, len(u.Posts))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "promote <id>",
			Short: "Grant a user the ADMIN role",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				user, err := admin.PromoteUser(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("promote user: %w", err)
				}

				fmt.Printf("%s is now %s\n", user.Username, user.Role)
				return nil
			},
		},
		&cobra.Command{
			Use:   "demote <id>",
			Short: "Revoke a user's ADMIN role",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				user, err := admin.DemoteUser(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("demote user: %w", err)
				}

				fmt.Printf("%s is now %s\n", user.Username, user.Role)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				if err := admin.DeleteUser(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete user: %w", err)
				}

				fmt.Printf("Deleted user %d\n", id)
				return nil
			},
		},
	)

	return cmd
}

func newAdminCommentsCmd() *cobra.Command {
	var content string

	list := &cobra.Command{
		Use:   "list",
		Short: "List every comment on the site",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := admin.ListAllComments(cmd.Context())
			if err != nil {
				return fmt.Errorf("list comments: %w", err)
			}

			printCommentTable(items)
			return nil
		},
	}

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rewrite any comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			comment, err := admin.UpdateAnyComment(cmd.Context(), id, content)
			if err != nil {
				return fmt.Errorf("edit comment: %w", err)
			}

			fmt.Printf("Updated comment %d\n", comment.ID)
			return nil
		},
	}
	edit.Flags().StringVarP(&content, "message", "m", "", "New comment text")
	_ = edit.MarkFlagRequired("message")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete any comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := admin.DeleteAnyComment(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete comment: %w", err)
			}

			fmt.Printf("Deleted comment %d\n", id)
			return nil
		},
	}

	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Moderate comments",
	}
	cmd.AddCommand(list, edit, del)
	return cmd
}

func newAdminPostsCmd() *cobra.Command {
	var req model.PostRequest

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rewrite any post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			post, err := admin.UpdateAnyPost(cmd.Context(), id, req)
			if err != nil {
				return fmt.Errorf("edit post: %w", err)
			}

			fmt.Printf("Updated post %d\n", post.ID)
			return nil
		},
	}
	edit.Flags().StringVarP(&req.Title, "title", "t", "", "Post title")
	edit.Flags().StringVarP(&req.Content, "content", "c", "", "Post body")
	edit.Flags().Int64SliceVar(&req.CategoryIDs, "category", nil, "Category ID (repeatable)")
	edit.Flags().StringVar(&req.Status, "status", "", "DRAFT or PUBLISHED")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete any post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := admin.DeleteAnyPost(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete post: %w", err)
			}

			fmt.Printf("Deleted post %d\n", id)
			return nil
		},
	}

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Moderate posts",
	}
	cmd.AddCommand(edit, del)
	return cmd
}

func newAdminCategoriesCmd() *cobra.Command {
	var req model.CategoryRequest

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := admin.CreateCategory(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("create category: %w", err)
			}

			fmt.Printf("Created category %d (%s)\n", category.ID, category.Name)
			return nil
		},
	}
	add.Flags().StringVar(&req.Name, "name", "", "Category name")
	add.Flags().StringVar(&req.Description, "description", "", "Category description")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("description")

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			category, err := admin.UpdateCategory(cmd.Context(), id, req)
			if err != nil {
				return fmt.Errorf("update category: %w", err)
			}

			fmt.Printf("Updated category %d (%s)\n", category.ID, category.Name)
			return nil
		},
	}
	edit.Flags().StringVar(&req.Name, "name", "", "Category name")
	edit.Flags().StringVar(&req.Description, "description", "", "Category description")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := admin.DeleteCategory(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete category: %w", err)
			}

			fmt.Printf("Deleted category %d\n", id)
			return nil
		},
	}

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
	}
	cmd.AddCommand(add, edit, del)
	return cmd
}
