package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/uishka/internal/config"
	"github.com/vango-dev/uishka/pkg/component"
	"github.com/vango-dev/uishka/pkg/widgets"
)

func inspectCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "List the components a document mounts",
		Long: `Parse an HTML document, mount the Button and Card widgets on it and
print every instance with its reactive properties.

Binding warnings (a card without a title element, for example) are
logged to stderr.

Examples:
  uishka inspect index.html
  uishka inspect index.html --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(configDir)
			if err != nil {
				return err
			}
			return runInspect(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], cfg, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}

// inspectReport is the --json output.
type inspectReport struct {
	Mounted   widgets.MountResult      `json:"mounted"`
	Instances []component.InstanceInfo `json:"instances"`
}

func runInspect(out, logOut io.Writer, path string, cfg *config.Config, asJSON bool) error {
	s, err := openSession(path, cfg, logOut)
	if err != nil {
		return err
	}
	defer s.Close()

	instances := s.env.Instances()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(inspectReport{Mounted: s.mounted, Instances: instances})
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tELEMENT\tPROPERTIES")
	for _, inst := range instances {
		props := make([]string, 0, len(inst.Properties))
		for _, p := range inst.Properties {
			props = append(props, fmt.Sprintf("%s=%q", p.Name, p.Value))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", inst.Kind, inst.Element, strings.Join(props, " "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d buttons, %d cards mounted\n", s.mounted.Buttons, s.mounted.Cards)
	return nil
}
