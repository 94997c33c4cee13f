package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/uishka/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦ ╦┬┌─┐┬ ┬┬┌─┌─┐
  ║ ║│└─┐├─┤├┴┐├─┤
  ╚═╝┴└─┘┴ ┴┴ ┴┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "uishka",
		Short: "Bind Go components to HTML documents",
		Long: `uishka binds Button and Card components to the elements of an HTML
document and keeps their reactive properties in sync with the DOM.

  • inspect lists the components a document mounts
  • serve keeps the document live behind an inspector with
    metrics and a websocket event stream
  • snapshot saves the document and its instances locally or to S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "Directory to search for uishka.json")

	rootCmd.AddCommand(
		inspectCmd(),
		serveCmd(),
		snapshotCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the uishka ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
