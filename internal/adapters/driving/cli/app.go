package cli

import (
	"fmt"

	"github.com/forcearc/forcearc/internal/adapters/driven/salesforce"
	"github.com/forcearc/forcearc/internal/adapters/driven/storage/csvfile"
	"github.com/forcearc/forcearc/internal/config"
	"github.com/forcearc/forcearc/internal/core/services"
)

// buildArchivist loads configuration and assembles the engine with
// its production adapters.
func buildArchivist(path string) (*services.Archivist, *config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	client, err := salesforce.NewClient(salesforce.Config{
		InstanceURL: cfg.Auth.InstanceURL,
		LoginURL:    cfg.Auth.LoginURL,
		Username:    cfg.Auth.Username,
		ConsumerKey: cfg.Auth.ConsumerKey,
		PrivateKey:  cfg.Auth.PrivateKey,
	})
	if err != nil {
		return nil, nil, err
	}

	downloaded, err := csvfile.NewDownloadedLedger(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open downloaded ledger: %w", err)
	}
	validated, err := csvfile.NewValidatedLedger(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open validated ledger: %w", err)
	}

	var governor *services.Governor
	if cfg.MaxAPIUsagePercent > 0 {
		governor = services.NewGovernor(client, cfg.MaxAPIUsagePercent, 0)
	}

	archivist := services.NewArchivist(
		cfg.Objects,
		client,
		csvfile.NewMetadataStore(),
		downloaded,
		validated,
		governor,
	)
	return archivist, cfg, nil
}
