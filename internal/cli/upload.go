package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image and print its hosted URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := uploader.Upload(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("upload: %w", err)
			}

			fmt.Println(url)
			return nil
		},
	}
}
