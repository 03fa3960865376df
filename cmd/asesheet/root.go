package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/darkautism/asesheet"
	"github.com/darkautism/asesheet/sheet"
	"github.com/spf13/cobra"
)

// ArgumentError reports a flag value rejected before any file is touched.
type ArgumentError struct {
	Flag   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid --%s: %s", e.Flag, e.Reason)
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "asesheet",
		Short: "Export Aseprite frames as PNG images and sprite sheets",
		Long: `asesheet turns Aseprite animation files into engine-ready PNGs.

  convert   writes the only frame of a single-frame file
  assemble  tiles frames from a list of tags onto one sprite sheet
  separate  writes the first frame of each tag to its own file`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !verbose {
				asesheet.SetLogger(nil)
				return
			}
			asesheet.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log decoding and output details to stderr")

	root.AddCommand(newConvertCmd(), newAssembleCmd(), newSeparateCmd())
	return root
}

func load(path string) (*asesheet.File, error) {
	f, err := asesheet.LoadAseprite(path)
	if err != nil {
		return nil, &sheet.LoadError{Path: path, Err: err}
	}
	return f, nil
}

func checkTags(tags []string) error {
	if len(tags) == 0 {
		return &ArgumentError{Flag: "tags", Reason: "at least one tag is required"}
	}
	for _, t := range tags {
		if t == "" {
			return &ArgumentError{Flag: "tags", Reason: "tag names can't be empty"}
		}
	}
	return nil
}

func checkPositive(flag string, v int) error {
	if v <= 0 {
		return &ArgumentError{Flag: flag, Reason: fmt.Sprintf("must be a positive integer, got %d", v)}
	}
	return nil
}
