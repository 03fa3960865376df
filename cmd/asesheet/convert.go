package main

import (
	"fmt"

	"github.com/darkautism/asesheet/sheet"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Converts an aseprite file containing a single frame to a png file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := load(args[0])
			if err == nil {
				err = sheet.Convert(doc, args[1])
			}
			if err != nil {
				return fmt.Errorf("convert: %w", err)
			}
			return nil
		},
	}
}
