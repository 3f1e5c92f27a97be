package app

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bitop-dev/imagegen"
	"github.com/bitop-dev/imagegen/openai"
)

// NewEditCommand creates the edit command. The image and mask are streamed
// from disk.
//
// Usage:
//
//	imagegen edit IMAGE PROMPT... [--mask MASK]
func NewEditCommand(opts *GlobalOptions) *cobra.Command {
	var (
		flags imageFlags
		mask  string
	)

	cmd := &cobra.Command{
		Use:     "edit IMAGE PROMPT...",
		Short:   "Edit an image according to a prompt",
		Example: `  imagegen edit ./sunlit_lounge.png --mask ./mask.png "A sunlit indoor lounge area with a pool containing a flamingo"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := imagegen.CreateImageEditRequest{
				Image:  imagegen.NewImageInput(args[0]),
				Prompt: strings.Join(args[1:], " "),
			}
			if mask != "" {
				req.Mask = imagegen.Ptr(imagegen.NewImageInput(mask))
			}
			req.N, req.Size, req.ResponseFormat, req.User = flags.optionals(cmd)
			return run(cmd.Context(), opts, func(ctx context.Context, c *openai.Client) (*imagegen.ImageResponse, error) {
				return imagegen.CreateImageEdit(ctx, c, req)
			})
		},
	}
	cmd.Flags().StringVar(&mask, "mask", "", "PNG whose transparent pixels mark the area to edit")
	flags.register(cmd)
	return cmd
}
