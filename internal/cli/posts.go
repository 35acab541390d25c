package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"go-blog-client/internal/model"
)

func newPostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Read and manage posts",
	}

	cmd.AddCommand(
		newPostsListCmd(),
		newPostsMineCmd(),
		newPostsViewCmd(),
		newPostsCreateCmd(),
		newPostsEditCmd(),
		newPostsDeleteCmd(),
	)

	return cmd
}

func newPostsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List published posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			items, err := posts.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list posts: %w", err)
			}

			printPostTable(items)
			return nil
		},
	}
}

func newPostsMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your own posts, drafts included",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			items, err := posts.ListMine(cmd.Context())
			if err != nil {
				return fmt.Errorf("list own posts: %w", err)
			}

			printPostTable(items)
			return nil
		},
	}
}

func newPostsViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <id>",
		Short: "Show a post with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			post, err := posts.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get post: %w", err)
			}

			fmt.Printf("#%d %s [%s]\n", post.ID, post.Title, post.Status)
			fmt.Printf("by %s, %s\n", post.Username, post.CreatedAt)
			for _, c := range post.Categories {
				fmt.Printf("  category: %s\n", c.Name)
			}
			fmt.Println()
			fmt.Println(post.Content)
			if len(post.Comments) > 0 {
				fmt.Printf("\nComments (%d):\n", len(post.Comments))
				for _, c := range post.Comments {
					fmt.Printf("  [%d] %s: %s\n", c.ID, c.Author, c.Comment)
				}
			}
			return nil
		},
	}
}

func newPostsCreateCmd() *cobra.Command {
	var (
		req     model.PostRequest
		publish bool
		image   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			if publish {
				req.Status = model.PostStatusPublished
			}
			if image != "" {
				url, err := uploader.Upload(cmd.Context(), image)
				if err != nil {
					return fmt.Errorf("upload image: %w", err)
				}
				req.ImageURL = url
			}

			post, err := posts.Create(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("create post: %w", err)
			}

			fmt.Printf("Created post %d (%s)\n", post.ID, post.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Title, "title", "t", "", "Post title")
	cmd.Flags().StringVarP(&req.Content, "content", "c", "", "Post body")
	cmd.Flags().Int64SliceVar(&req.CategoryIDs, "category", nil, "Category ID (repeatable)")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish instead of saving as draft")
	cmd.Flags().StringVar(&image, "image", "", "Path of an image to upload and attach")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newPostsEditCmd() *cobra.Command {
	var (
		req     model.PostRequest
		publish bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if publish {
				req.Status = model.PostStatusPublished
			}

			post, err := posts.Update(cmd.Context(), id, req)
			if err != nil {
				return fmt.Errorf("update post: %w", err)
			}

			fmt.Printf("Updated post %d (%s)\n", post.ID, post.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Title, "title", "t", "", "Post title")
	cmd.Flags().StringVarP(&req.Content, "content", "c", "", "Post body")
	cmd.Flags().Int64SliceVar(&req.CategoryIDs, "category", nil, "Category ID (repeatable)")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the post")
	return cmd
}

func newPostsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := posts.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete post: %w", err)
			}

			fmt.Printf("Deleted post %d\n", id)
			return nil
		},
	}
}

func printPostTable(items []model.Post) {
	if len(items) == 0 {
		fmt.Println("No posts found.")
		return
	}

	fmt.Printf("%-6s  %-40s  %-10s  %-16s  %s\n", "ID", "TITLE", "STATUS", "AUTHOR", "CREATED")
	for _, p := range items {
		fmt.Printf("%-6d  %-40s  %-10s  %-16s  %s\n", p.ID, truncate(p.Title, 40), p.Status, p.Username, p.CreatedAt)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max-3] + "..."
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}

	return id, nil
}
