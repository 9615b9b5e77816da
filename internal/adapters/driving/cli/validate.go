package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/forcearc/forcearc/internal/core/ports/driving"
)

var (
	validateRemoveInvalid bool
	validateRevalidate    bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate downloaded files against Salesforce metadata",
	Long: `Checks every archived file against the checksum (or byte size)
recorded in the metadata snapshots. Results are kept in the validated
ledger, so re-running only re-checks what changed.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateRemoveInvalid, "remove-invalid", false,
		"delete invalid files and their ledger entries so the next download re-fetches them")
	validateCmd.Flags().BoolVar(&validateRevalidate, "revalidate", false,
		"recompute checksums even for files already recorded as valid")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	archivist, cfg, err := buildArchivist(configPath)
	if err != nil {
		return err
	}

	report, err := archivist.Validate(cmd.Context(), driving.ValidateOptions{
		MaxWorkers:    cfg.MaxWorkers,
		Revalidate:    validateRevalidate,
		RemoveInvalid: validateRemoveInvalid,
	})
	if report != nil {
		cmd.Println(renderValidationReport(report))
	}
	if err != nil {
		return err
	}
	if !report.Success() {
		return errors.New("validation finished with invalid files")
	}
	return nil
}
