// Package app implements the imagegen command line: one subcommand per images
// endpoint, each saving the returned images into an output directory.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bitop-dev/imagegen"
	"github.com/bitop-dev/imagegen/openai"
)

const cliName = "imagegen"

// GlobalOptions holds flags shared by every subcommand.
type GlobalOptions struct {
	// OutDir receives the generated images.
	OutDir string

	// EnvFile is loaded before reading OPENAI_* variables. Missing files are ignored.
	EnvFile string

	Verbose bool
}

// NewImagegenCommand creates the root command with all subcommands.
func NewImagegenCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: "Create, edit and vary images with the OpenAI Images API",
		Long: `imagegen calls the OpenAI image endpoints and saves the results locally.

Configuration is read from the environment (OPENAI_API_KEY, OPENAI_BASE_URL,
OPENAI_API_PREFIX, OPENAI_ORG_ID, OPENAI_TIMEOUT), after loading the env file.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.OutDir, "out", "o", "./data", "directory to save images into")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "env file to load")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log requests")

	cmd.AddCommand(
		NewCreateCommand(opts),
		NewEditCommand(opts),
		NewVariationCommand(opts),
	)
	return cmd
}

func newLogger(opts *GlobalOptions) zerolog.Logger {
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(level)
}

func newClient(opts *GlobalOptions, log *zerolog.Logger) (*openai.Client, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", opts.EnvFile, err)
		}
	}
	cfg, err := openai.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is required")
	}
	cfg.Logger = log
	return openai.NewClient(cfg), nil
}

// run builds the client, performs call and saves its images.
func run(ctx context.Context, opts *GlobalOptions, call func(context.Context, *openai.Client) (*imagegen.ImageResponse, error)) error {
	log := newLogger(opts)
	c, err := newClient(opts, &log)
	if err != nil {
		return err
	}

	resp, err := call(ctx, c)
	if err != nil {
		return describe(err)
	}

	paths, err := resp.SaveWith(ctx, c, opts.OutDir)
	if err != nil {
		return describe(err)
	}
	for i, p := range paths {
		ev := log.Info().Str("path", p)
		if rp := resp.Data[i].RevisedPrompt; rp != "" {
			ev = ev.Str("revised_prompt", rp)
		}
		ev.Msg("saved image")
	}
	return nil
}

// describe prefixes err with what went wrong from the user's point of view.
func describe(err error) error {
	var ie imagegen.Error
	if !errors.As(err, &ie) {
		return err
	}
	switch e := ie.(type) {
	case *imagegen.TransportError:
		return fmt.Errorf("could not reach the API: %w", e)
	case *imagegen.APIError:
		return fmt.Errorf("the API rejected the request (status %d): %w", e.StatusCode, e)
	case *imagegen.DecodeError:
		return fmt.Errorf("unexpected API response: %w", e)
	case *imagegen.ImageSaveError:
		return fmt.Errorf("failed to save image: %w", e)
	case *imagegen.ImageReadError:
		return fmt.Errorf("failed to read image: %w", e)
	}
	return err
}
