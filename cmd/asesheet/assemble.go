package main

import (
	"fmt"

	"github.com/darkautism/asesheet/sheet"
	"github.com/spf13/cobra"
)

func newAssembleCmd() *cobra.Command {
	var opts sheet.Options
	cmd := &cobra.Command{
		Use:   "assemble <input> <output>",
		Short: "Tiles frames from the given tags onto one sprite sheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := checkTags(opts.Tags)
			if err == nil {
				err = checkPositive("number-of-frames-from-each", opts.FramesPerTag)
			}
			if err == nil && cmd.Flags().Changed("columns") {
				err = checkPositive("columns", opts.Columns)
			}
			if err != nil {
				return fmt.Errorf("assemble: %w", err)
			}

			doc, err := load(args[0])
			if err == nil {
				err = sheet.Assemble(doc, args[1], opts)
			}
			if err != nil {
				return fmt.Errorf("assemble: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&opts.Tags, "tags", "t", nil, "tags to take frames from, in output order")
	cmd.Flags().IntVarP(&opts.FramesPerTag, "number-of-frames-from-each", "n", 1, "frames taken from the start of each tag")
	cmd.Flags().IntVarP(&opts.Columns, "columns", "c", 0, "columns of the sheet (default: all images on one row)")
	cmd.MarkFlagRequired("tags")
	return cmd
}
