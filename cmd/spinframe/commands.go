package main

import (
	"context"
	"errors"
	"fmt"

	"spinframe/internal/config"

	"github.com/spf13/cobra"
)

// commandOverrides applies subcommand flags on top of the loaded config.
var commandOverrides = map[string]func(cmd *cobra.Command, cfg *config.Config){
	"thumbnails": applyThumbnailFlags,
	"animate":    applyAnimationFlags,
	"all": func(cmd *cobra.Command, cfg *config.Config) {
		applyThumbnailFlags(cmd, cfg)
		applyAnimationFlags(cmd, cfg)
	},
}

func applyThumbnailFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Thumbnails.OutputDir, _ = flags.GetString("output")
	}
	if flags.Changed("budget") {
		cfg.Thumbnails.BudgetBytes, _ = flags.GetInt64("budget")
	}
}

func applyAnimationFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("gif") {
		cfg.Animation.Output, _ = flags.GetString("gif")
	}
	if flags.Changed("skip") {
		cfg.Animation.Skip, _ = flags.GetInt("skip")
	}
}

func addThumbnailFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output directory for thumbnails")
	cmd.Flags().Int64("budget", 0, "Maximum bytes per thumbnail")
}

func addAnimationFlags(cmd *cobra.Command) {
	cmd.Flags().String("gif", "", "Output path for the animation")
	cmd.Flags().Int("skip", 0, "Use every (skip+1)-th photo")
}

func newThumbnailsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "thumbnails",
		Aliases: []string{"thumbs"},
		Short:   "Write one size-budgeted still per photo",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThumbnails(cmd.Context(), a)
		},
	}
	addThumbnailFlags(cmd)
	return cmd
}

func newAnimateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Write a looping GIF of the photos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnimation(cmd.Context(), a)
		},
	}
	addAnimationFlags(cmd)
	return cmd
}

func newAllCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Run the thumbnail and animation pipelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			thumbErr := runThumbnails(ctx, a)
			if errors.Is(thumbErr, context.Canceled) {
				return thumbErr
			}
			animErr := runAnimation(ctx, a)
			if thumbErr != nil {
				thumbErr = fmt.Errorf("thumbnails: %w", thumbErr)
			}
			if animErr != nil {
				animErr = fmt.Errorf("animation: %w", animErr)
			}
			return errors.Join(thumbErr, animErr)
		},
	}
	addThumbnailFlags(cmd)
	addAnimationFlags(cmd)
	return cmd
}
