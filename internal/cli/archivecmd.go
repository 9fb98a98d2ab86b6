package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/landscape/pkg/archive"
	apperrors "github.com/matzehuels/landscape/pkg/errors"
)

// archiveCommand creates the "archive" command group for the MongoDB
// snapshot archive.
func (c *CLI) archiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Push, pull and list network snapshots in the archive",
	}
	cmd.AddCommand(c.archivePushCommand())
	cmd.AddCommand(c.archivePullCommand())
	cmd.AddCommand(c.archiveListCommand())
	return cmd
}

// withArchive connects to the configured archive and runs fn.
func (c *CLI) withArchive(ctx context.Context, fn func(*archive.Store) error) error {
	store, err := archive.Connect(ctx, c.Config.Archive.URI, c.Config.Archive.Database)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeArchive, err, "connect to archive")
	}
	defer func() { _ = store.Close(ctx) }()
	return fn(store)
}

func (c *CLI) archivePushCommand() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Store the current network as a new snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			suffix, _ := cmd.Flags().GetString("suffix")

			n, err := c.loadNetwork(path, suffix)
			if err != nil {
				return err
			}
			return c.withArchive(cmd.Context(), func(store *archive.Store) error {
				id, err := store.Push(cmd.Context(), n, label)
				if err != nil {
					return apperrors.Wrap(apperrors.ErrCodeArchive, err, "push snapshot")
				}
				printSuccess("pushed snapshot %s", id)
				return nil
			})
		},
	}
	networkFlags(cmd)
	cmd.Flags().StringVar(&label, "label", "", "free-form snapshot label")
	return cmd
}

func (c *CLI) archivePullCommand() *cobra.Command {
	var outDir, outSuffix string

	cmd := &cobra.Command{
		Use:   "pull <snapshot-id>",
		Short: "Restore a snapshot as a dump directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withArchive(cmd.Context(), func(store *archive.Store) error {
				n, err := store.Pull(cmd.Context(), args[0])
				if err != nil {
					return apperrors.Wrap(apperrors.ErrCodeSnapshotNotFound, err,
						"pull snapshot %s", args[0])
				}
				if err := n.Dump(outDir, outSuffix); err != nil {
					return apperrors.Wrap(apperrors.ErrCodeStorage, err, "write dump")
				}
				printSuccess("restored %d minima, %d transition states to %s",
					n.NMinima(), n.NTS(), outDir)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "directory for the restored dump")
	cmd.Flags().StringVar(&outSuffix, "out-suffix", "", "artifact suffix for the restored dump")
	return cmd
}

func (c *CLI) archiveListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withArchive(cmd.Context(), func(store *archive.Store) error {
				snaps, err := store.List(cmd.Context())
				if err != nil {
					return apperrors.Wrap(apperrors.ErrCodeArchive, err, "list snapshots")
				}
				if len(snaps) == 0 {
					printInfo("archive is empty")
					return nil
				}
				for _, s := range snaps {
					label := s.Label
					if label == "" {
						label = "-"
					}
					printDetail("%s  %s  %d minima / %d ts  %s",
						s.ID, s.CreatedAt.Format("2006-01-02 15:04"),
						s.NMinima, s.NTS, label)
				}
				return nil
			})
		},
	}
}
