package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/forcearc/forcearc/internal/core/ports/driving"
)

var (
	downloadValidate      bool
	downloadRemoveInvalid bool
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download files for all configured object types",
	Long: `Downloads every file linked to the configured object types.

Files already recorded in the downloaded ledger and present on disk
are skipped; duplicates of an already-fetched file are satisfied by a
local copy. Interrupting and re-running the command is safe.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().BoolVar(&downloadValidate, "validate", false,
		"run validation after the download finishes")
	downloadCmd.Flags().BoolVar(&downloadRemoveInvalid, "remove-invalid", false,
		"with --validate: delete invalid files so the next download re-fetches them")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, _ []string) error {
	archivist, cfg, err := buildArchivist(configPath)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	report, err := archivist.Download(ctx, driving.DownloadOptions{
		MaxWorkers: cfg.MaxWorkers,
	})
	if report != nil {
		cmd.Println(renderDownloadReport(report))
	}
	if err != nil {
		return err
	}

	ok := report.Success()

	if downloadValidate {
		vreport, err := archivist.Validate(ctx, driving.ValidateOptions{
			MaxWorkers:    cfg.MaxWorkers,
			RemoveInvalid: downloadRemoveInvalid,
		})
		if vreport != nil {
			cmd.Println(renderValidationReport(vreport))
		}
		if err != nil {
			return err
		}
		ok = ok && vreport.Success()
	}

	if !ok {
		return errors.New("archive run finished with failures")
	}
	return nil
}
