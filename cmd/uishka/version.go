package main

import (
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/uishka/internal/errors"
)

func versionCmd() *cobra.Command {
	var (
		short bool
		codes bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print version, commit, and build information for the uishka CLI.

With --codes, list every error code the CLI and library can report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if codes {
				return printCodes(cmd.OutOrStdout())
			}
			if short {
				fmt.Println(version)
				return nil
			}

			printBanner()
			fmt.Println()
			fmt.Printf("  Version:    %s\n", version)
			fmt.Printf("  Commit:     %s\n", commit)
			fmt.Printf("  Built:      %s\n", date)
			fmt.Printf("  Go version: %s\n", runtime.Version())
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")
	cmd.Flags().BoolVar(&codes, "codes", false, "List the registered error codes")

	return cmd
}

// printCodes writes one line per registered error code.
func printCodes(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tCATEGORY\tMESSAGE")
	for _, code := range errors.GetAllCodes() {
		t, _ := errors.GetTemplate(code)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", code, t.Category, t.Message)
	}
	return tw.Flush()
}
