package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bitop-dev/imagegen"
	"github.com/bitop-dev/imagegen/openai"
)

// NewVariationCommand creates the variation command.
//
// Usage:
//
//	imagegen variation IMAGE
func NewVariationCommand(opts *GlobalOptions) *cobra.Command {
	var flags imageFlags

	cmd := &cobra.Command{
		Use:     "variation IMAGE",
		Short:   "Create variations of an image",
		Example: `  imagegen variation ./cake.png -n 3 --size 512x512`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := imagegen.CreateImageVariationRequest{Image: imagegen.NewImageInput(args[0])}
			req.N, req.Size, req.ResponseFormat, req.User = flags.optionals(cmd)
			return run(cmd.Context(), opts, func(ctx context.Context, c *openai.Client) (*imagegen.ImageResponse, error) {
				return imagegen.CreateImageVariation(ctx, c, req)
			})
		},
	}
	flags.register(cmd)
	return cmd
}
