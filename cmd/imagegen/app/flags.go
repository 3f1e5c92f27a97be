package app

import (
	"github.com/spf13/cobra"

	"github.com/bitop-dev/imagegen"
)

// imageFlags are the optional request fields. A flag the user did not set is
// not sent.
type imageFlags struct {
	n              int
	size           string
	responseFormat string
	user           string
}

func (f *imageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.n, "n", "n", 1, "number of images to generate (1-10)")
	cmd.Flags().StringVar(&f.size, "size", "1024x1024", "image size: 256x256, 512x512 or 1024x1024")
	cmd.Flags().StringVar(&f.responseFormat, "response-format", "b64_json", "url or b64_json")
	cmd.Flags().StringVar(&f.user, "user", "", "end-user identifier")
}

func (f *imageFlags) optionals(cmd *cobra.Command) (n *int, size *imagegen.ImageSize, format *imagegen.ResponseFormat, user *string) {
	if cmd.Flags().Changed("n") {
		n = imagegen.Ptr(f.n)
	}
	if cmd.Flags().Changed("size") {
		size = imagegen.Ptr(imagegen.ImageSize(f.size))
	}
	if cmd.Flags().Changed("response-format") {
		format = imagegen.Ptr(imagegen.ResponseFormat(f.responseFormat))
	}
	if cmd.Flags().Changed("user") {
		user = imagegen.Ptr(f.user)
	}
	return n, size, format, user
}
