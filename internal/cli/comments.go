package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-blog-client/internal/model"
)

func newCommentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Read and manage comments on a post",
	}

	cmd.AddCommand(
		newCommentsListCmd(),
		newCommentsAddCmd(),
		newCommentsEditCmd(),
		newCommentsDeleteCmd(),
	)

	return cmd
}

func newCommentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <post-id>",
		Short: "List comments on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			postID, err := parseID(args[0])
			if err != nil {
				return err
			}

			items, err := comments.ListByPost(cmd.Context(), postID)
			if err != nil {
				return fmt.Errorf("list comments: %w", err)
			}

			printCommentTable(items)
			return nil
		},
	}
}

func newCommentsAddCmd() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "add <post-id>",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			postID, err := parseID(args[0])
			if err != nil {
				return err
			}

			comment, err := comments.Create(cmd.Context(), postID, content)
			if err != nil {
				return fmt.Errorf("add comment: %w", err)
			}

			fmt.Printf("Added comment %d\n", comment.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "message", "m", "", "Comment text")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newCommentsEditCmd() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "edit <post-id> <comment-id>",
		Short: "Edit one of your comments",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			postID, err := parseID(args[0])
			if err != nil {
				return err
			}
			commentID, err := parseID(args[1])
			if err != nil {
				return err
			}

			comment, err := comments.Update(cmd.Context(), postID, commentID, content)
			if err != nil {
				return fmt.Errorf("edit comment: %w", err)
			}

			fmt.Printf("Updated comment %d\n", comment.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "message", "m", "", "New comment text")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newCommentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id> <comment-id>",
		Short: "Delete one of your comments",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			postID, err := parseID(args[0])
			if err != nil {
				return err
			}
			commentID, err := parseID(args[1])
			if err != nil {
				return err
			}

			if err := comments.Delete(cmd.Context(), postID, commentID); err != nil {
				return fmt.Errorf("delete comment: %w", err)
			}

			fmt.Printf("Deleted comment %d\n", commentID)
			return nil
		},
	}
}

func printCommentTable(items []model.Comment) {
	if len(items) == 0 {
		fmt.Println("No comments found.")
		return
	}

	fmt.Printf("%-6s  %-16s  %-50s  %s\n", "ID", "AUTHOR", "COMMENT", "CREATED")
	for _, c := range items {
		fmt.Printf("%-6d  %-16s  %-50s  %s\n", c.ID, c.Author, truncate(c.Comment, 50), c.CreatedAt)
	}
}
