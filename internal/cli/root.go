package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go-blog-client/internal/api"
	"go-blog-client/internal/config"
	"go-blog-client/internal/logger"
	"go-blog-client/internal/media"
	"go-blog-client/internal/model"
	"go-blog-client/internal/service"
	"go-blog-client/internal/session"
)

var (
	flagServer    string
	flagLogLevel  string
	flagLogFormat string

	log      *slog.Logger
	sessions *session.Store
	executor *api.Executor

	posts      *service.PostService
	comments   *service.CommentService
	categories *service.CategoryService
	users      *service.UserService
	admin      *service.AdminService
	uploader   *media.Uploader
)

// NewRootCmd creates the root cobra command for blogctl.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "blogctl",
		Short: "blogctl — command-line client for the blog API",
		Long:  "blogctl reads, writes and moderates blog posts, comments, categories and users through the blog REST API.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if flagServer != "" {
				cfg.APIBaseURL = flagServer
			}
			if flagLogLevel != "" {
				cfg.LogLevel = flagLogLevel
			}
			if flagLogFormat != "" {
				cfg.LogFormat = flagLogFormat
			}

			log = logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

			sessions = session.NewStore(session.NewFileKeystore(cfg.SessionFile))
			if err := sessions.Restore(); err != nil {
				return fmt.Errorf("restore session: %w", err)
			}

			executor = api.NewExecutor(cfg.APIBaseURL, sessions, log)
			posts = service.NewPostService(executor)
			comments = service.NewCommentService(executor)
			categories = service.NewCategoryService(executor)
			users = service.NewUserService(executor)
			admin = service.NewAdminService(executor)
			uploader = media.NewUploader(cfg.MediaUploadURL, cfg.MediaMaxSize)

			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", "", "Blog API base URL (or BLOG_API_URL env)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (pretty, json)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newRegisterCmd(),
		newWhoamiCmd(),
		newPostsCmd(),
		newCommentsCmd(),
		newCategoriesCmd(),
		newProfileCmd(),
		newAdminCmd(),
		newUploadCmd(),
	)

	return root
}

// requireLogin guards commands that need an authenticated session.
func requireLogin() error {
	if !sessions.IsAuthenticated() {
		return fmt.Errorf("%w: run 'blogctl login' first", model.ErrNoSession)
	}

	return nil
}
