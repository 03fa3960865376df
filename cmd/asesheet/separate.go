package main

import (
	"fmt"

	"github.com/darkautism/asesheet/sheet"
	"github.com/spf13/cobra"
)

func newSeparateCmd() *cobra.Command {
	var tags []string
	cmd := &cobra.Command{
		Use:   "separate <input> <output_directory>",
		Short: "Writes the first frame of each tag to <output_directory>/<tag>.png",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkTags(tags); err != nil {
				return fmt.Errorf("separate: %w", err)
			}
			doc, err := load(args[0])
			if err == nil {
				err = sheet.Separate(doc, args[1], tags)
			}
			if err != nil {
				return fmt.Errorf("separate: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "tags to export")
	cmd.MarkFlagRequired("tags")
	return cmd
}
