package app

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bitop-dev/imagegen"
	"github.com/bitop-dev/imagegen/openai"
)

// NewCreateCommand creates the create command.
//
// Usage:
//
//	imagegen create PROMPT...
func NewCreateCommand(opts *GlobalOptions) *cobra.Command {
	var flags imageFlags

	cmd := &cobra.Command{
		Use:     "create PROMPT...",
		Short:   "Generate images from a prompt",
		Example: `  imagegen create -n 2 --size 256x256 "Generate a logo for a github repository"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := imagegen.CreateImageRequest{Prompt: strings.Join(args, " ")}
			req.N, req.Size, req.ResponseFormat, req.User = flags.optionals(cmd)
			return run(cmd.Context(), opts, func(ctx context.Context, c *openai.Client) (*imagegen.ImageResponse, error) {
				return imagegen.CreateImage(ctx, c, req)
			})
		},
	}
	flags.register(cmd)
	return cmd
}
