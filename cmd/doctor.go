package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/model"
	"github.com/manav03panchal/boost/internal/output"
	"github.com/manav03panchal/boost/internal/storage"
)

// doctorFs is the filesystem backups are written to.
var doctorFs afero.Fs = afero.NewOsFs()

// Doctor flags.
var (
	doctorFlagRepair    bool
	doctorFlagBackup    bool
	doctorFlagBackupDir string
)

// doctorCmd represents the doctor command.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored data for unreadable collections",
	Long: `Decode every stored collection and report the ones Boost would ignore on
load because they are corrupted or were written by a newer release.

With --repair, every collection is first backed up to a timestamped
directory, then the unreadable ones are removed so the next run starts them
fresh. Readable collections are never touched.

Examples:
  boost doctor
  boost doctor --backup
  boost doctor --repair --backup-dir ~/boost-backups`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoSeed: "true"},
	RunE:        runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFlagRepair, "repair", false, "Back up, then remove unreadable collections")
	doctorCmd.Flags().BoolVar(&doctorFlagBackup, "backup", false, "Only write a backup of every collection")
	doctorCmd.Flags().StringVar(&doctorFlagBackupDir, "backup-dir", "", "Backup location (default ~/.local/share/boost/backups)")
	doctorCmd.MarkFlagsMutuallyExclusive("repair", "backup")
	rootCmd.AddCommand(doctorCmd)
}

func backupDir() string {
	if doctorFlagBackupDir != "" {
		return doctorFlagBackupDir
	}
	return filepath.Join(xdg.DataHome, storage.AppName, "backups")
}

// doctorResult is the structured doctor report.
type doctorResult struct {
	Status  *storage.RecoveryStatus `json:"status" yaml:"status"`
	Backup  string                  `json:"backup,omitempty" yaml:"backup,omitempty"`
	Removed []model.Collection      `json:"removed,omitempty" yaml:"removed,omitempty"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	backend := ctx.Store.Backend()
	result := doctorResult{Status: storage.Check(backend)}

	switch {
	case doctorFlagBackup:
		path, err := storage.CreateBackup(backend, doctorFs, backupDir())
		if err != nil {
			return errors.NewSystemErrorWithOp("backup", "failed to back up storage", err)
		}
		result.Backup = path

	case doctorFlagRepair && !result.Status.Healthy:
		removed, err := storage.AttemptRecovery(backend, doctorFs, backupDir())
		if err != nil {
			return err
		}
		result.Removed = removed
		result.Status = storage.Check(backend)
		ctx.Workspace.Reload()
	}

	if ctx.IsStructured() {
		if err := ctx.Formatter.Structured(result); err != nil {
			return err
		}
	} else {
		printDoctor(result)
	}

	if !result.Status.Healthy {
		return fmt.Errorf("%w: %d collection(s) unreadable", errors.ErrStorageCorrupted, result.Status.ErrorCount)
	}
	return nil
}

func printDoctor(r doctorResult) {
	cli := ctx.CLIFormatter()
	cli.Title("Storage · " + r.Status.Backend)

	rows := make([]output.TableRow, 0, len(r.Status.Collections))
	for _, h := range r.Status.Collections {
		state := "ok"
		switch {
		case h.TooNew:
			state = "newer release"
		case !h.Readable:
			state = "unreadable"
		case !h.Present:
			state = "empty"
		}
		detail := fmt.Sprintf("v%d, %d item(s)", h.Version, h.Items)
		if !h.Present {
			detail = ""
		}
		if h.Error != "" {
			detail = h.Error
		}
		rows = append(rows, output.TableRow{Columns: []string{string(h.Collection), state, detail}})
	}
	cli.PrintTable([]string{"COLLECTION", "STATE", "DETAIL"}, rows)
	cli.Println()

	for _, k := range r.Status.Unknown {
		cli.Muted("Ignoring unknown key: " + k)
	}
	if r.Backup != "" {
		cli.Success("Backup written to " + r.Backup)
	}
	for _, c := range r.Removed {
		cli.Warning(fmt.Sprintf("Removed %s; it will start empty", c))
	}
	if r.Status.Healthy {
		cli.Success("All collections are readable")
	}
}
