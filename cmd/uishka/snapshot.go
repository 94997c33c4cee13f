package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/uishka/internal/config"
	"github.com/vango-dev/uishka/pkg/snapshot"
)

func snapshotCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "snapshot <file>",
		Short: "Save the mounted document and its instances",
		Long: `Parse an HTML document, mount the widgets and save a snapshot: the
rendered document as <name>.html and the instance report as <name>.json.

Snapshots go to snapshot.dir, or to S3 when snapshot.bucket is set in
uishka.json. S3 credentials are read from AWS_ACCESS_KEY_ID and
AWS_SECRET_ACCESS_KEY.

Examples:
  uishka snapshot index.html
  uishka snapshot index.html --name checkout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(configDir)
			if err != nil {
				return err
			}
			return runSnapshot(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], name, cfg)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Snapshot name (default: current UTC time)")

	return cmd
}

func runSnapshot(ctx context.Context, out, logOut io.Writer, path, name string, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(path, cfg, logOut)
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := snapshot.Take(s.env, name)
	if err != nil {
		return err
	}
	store, err := snapshot.Open(cfg.Snapshot)
	if err != nil {
		return err
	}
	locations, err := snapshot.Save(ctx, store, snap)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Snapshot %s: %d buttons, %d cards\n", snap.Name, s.mounted.Buttons, s.mounted.Cards)
	for _, loc := range locations {
		fmt.Fprintf(out, "  %s\n", loc)
	}
	return nil
}
