package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/trackermeta/internal/app"
	"github.com/hyperifyio/trackermeta/internal/modarchive"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	var instrumentOnly bool
	cmd := &cobra.Command{
		Use:   "get <filename>",
		Short: "Resolve a module filename and print its record",
		Long: `Search the archive for the filename, pick the exact filename match (or the
first result when none matches exactly) and print the module record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			rec, err := a.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if instrumentOnly {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), rec.InstrumentText)
				return err
			}
			return app.WriteRecord(cmd.OutOrStdout(), rec, a.Config().Format)
		},
	}
	cmd.Flags().BoolVar(&instrumentOnly, "instrument-text", false, "Print only the instrument text")
	return cmd
}

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <id>",
		Short: "Print the record of a module by archive id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			rec, err := a.Info(cmd.Context(), id)
			if err != nil {
				return err
			}
			return app.WriteRecord(cmd.OutOrStdout(), rec, a.Config().Format)
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "List filename search matches in page order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			matches, err := a.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return app.WriteMatches(cmd.OutOrStdout(), matches, a.Config().Format)
		},
	}
}

func newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <id> <filename>",
		Short: "Print the download link of a module without contacting the archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), modarchive.DownloadLink(id, args[1]))
			return err
		},
	}
}

func newOffsetsCmd(opts *rootOptions) *cobra.Command {
	var write string
	cmd := &cobra.Command{
		Use:   "offsets",
		Short: "Print the effective layout offsets",
		Long: `Print the layout offsets in effect after applying --offsets. With --write the
effective offsets are saved to the given file, ready to be edited when the
archive changes its page layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			offsets := a.Layout().Offsets
			if write != "" {
				if err := app.NewOffsetStore(write).Save(offsets); err != nil {
					return err
				}
			}
			return writeOffsets(cmd.OutOrStdout(), offsets)
		},
	}
	cmd.Flags().StringVar(&write, "write", "", "Save the effective offsets to this file")
	return cmd
}

func writeOffsets(w io.Writer, o modarchive.Offsets) error {
	_, err := fmt.Fprintf(w, "statOffset       %d\nspotlitShift     %d\ninstrumentBlock  %d\n",
		o.StatOffset, o.SpotlitShift, o.InstrumentBlock)
	return err
}

func parseID(s string) (uint32, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid module id %q", errUsage, s)
	}
	return uint32(id), nil
}
