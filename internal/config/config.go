package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/forcearc/forcearc/internal/core/domain"
)

// Config is the fully loaded and validated configuration for a run.
type Config struct {
	// DataDir is the archive root directory.
	DataDir string

	// MaxWorkers bounds the download/validate worker pool.
	// Zero lets the runtime decide.
	MaxWorkers int

	// MaxAPIUsagePercent enables the usage governor when positive.
	MaxAPIUsagePercent float64

	// Auth holds the Salesforce connection parameters. PrivateKey is
	// already read from the configured key file.
	Auth Auth

	// Objects are the record types to archive, with global date
	// bounds already inherited.
	Objects []domain.ArchiveObject
}

// Auth holds Salesforce JWT bearer flow parameters.
type Auth struct {
	InstanceURL string
	LoginURL    string
	Username    string
	ConsumerKey string
	PrivateKey  []byte
}

// allowedDirNameFields is the fixed set of link-row field paths that
// may name grouping directories. Anything else is a configuration
// error raised here, before any download begins.
var allowedDirNameFields = map[string]struct{}{
	"LinkedEntityId":          {},
	"ContentDocumentId":       {},
	"LinkedEntity.Name":       {},
	"LinkedEntity.Username":   {},
	"LinkedEntity.CaseNumber": {},
}

// yamlConfig mirrors the config file schema.
type yamlConfig struct {
	DataDir            string                `yaml:"data_dir"`
	MaxWorkers         int                   `yaml:"max_workers"`
	MaxAPIUsagePercent float64               `yaml:"max_api_usage_percent"`
	ModifiedDateGt     string                `yaml:"modified_date_gt"`
	ModifiedDateLt     string                `yaml:"modified_date_lt"`
	Auth               yamlAuth              `yaml:"auth"`
	Objects            map[string]yamlObject `yaml:"objects"`
}

type yamlAuth struct {
	InstanceURL    string `yaml:"instance_url"`
	LoginURL       string `yaml:"login_url"`
	Username       string `yaml:"username"`
	ConsumerKey    string `yaml:"consumer_key"`
	PrivateKeyFile string `yaml:"private_key_file"`
}

type yamlObject struct {
	ModifiedDateGt     string `yaml:"modified_date_gt"`
	ModifiedDateLt     string `yaml:"modified_date_lt"`
	DirNameField       string `yaml:"dir_name_field"`
	ExtraFilter        string `yaml:"extra_soql_condition"`
	IncludeAttachments bool   `yaml:"include_attachments"`
}

// Load reads, parses and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrInvalidConfig, path, err)
	}
	return build(yc)
}

func build(yc yamlConfig) (*Config, error) {
	if yc.DataDir == "" {
		return nil, fmt.Errorf("%w: data_dir is required", domain.ErrInvalidConfig)
	}
	if yc.MaxWorkers < 0 {
		return nil, fmt.Errorf("%w: max_workers must not be negative", domain.ErrInvalidConfig)
	}
	if yc.MaxAPIUsagePercent < 0 || yc.MaxAPIUsagePercent > 100 {
		return nil, fmt.Errorf("%w: max_api_usage_percent must be between 0 and 100", domain.ErrInvalidConfig)
	}
	if len(yc.Objects) == 0 {
		return nil, fmt.Errorf("%w: at least one object type is required", domain.ErrInvalidConfig)
	}

	auth, err := buildAuth(yc.Auth)
	if err != nil {
		return nil, err
	}

	globalGt, err := parseDate(yc.ModifiedDateGt, "modified_date_gt")
	if err != nil {
		return nil, err
	}
	globalLt, err := parseDate(yc.ModifiedDateLt, "modified_date_lt")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:            yc.DataDir,
		MaxWorkers:         yc.MaxWorkers,
		MaxAPIUsagePercent: yc.MaxAPIUsagePercent,
		Auth:               auth,
	}

	// Deterministic object order regardless of YAML map iteration.
	for _, objType := range sortedKeys(yc.Objects) {
		yo := yc.Objects[objType]
		obj := domain.ArchiveObject{
			DataDir:            yc.DataDir,
			ObjType:            objType,
			DirNameField:       yo.DirNameField,
			ExtraFilter:        yo.ExtraFilter,
			IncludeAttachments: yo.IncludeAttachments,
		}
		if obj.DirNameField != "" {
			if _, ok := allowedDirNameFields[obj.DirNameField]; !ok {
				return nil, fmt.Errorf("%w: objects.%s.dir_name_field: unsupported field %q",
					domain.ErrInvalidConfig, objType, obj.DirNameField)
			}
		}

		gt, err := parseDate(yo.ModifiedDateGt, "objects."+objType+".modified_date_gt")
		if err != nil {
			return nil, err
		}
		lt, err := parseDate(yo.ModifiedDateLt, "objects."+objType+".modified_date_lt")
		if err != nil {
			return nil, err
		}
		// Per-object bounds win; unset ones inherit the globals.
		obj.ModifiedDateGt = gt
		if obj.ModifiedDateGt == nil {
			obj.ModifiedDateGt = globalGt
		}
		obj.ModifiedDateLt = lt
		if obj.ModifiedDateLt == nil {
			obj.ModifiedDateLt = globalLt
		}

		cfg.Objects = append(cfg.Objects, obj)
	}
	return cfg, nil
}

func buildAuth(ya yamlAuth) (Auth, error) {
	if ya.InstanceURL == "" || ya.Username == "" || ya.ConsumerKey == "" || ya.PrivateKeyFile == "" {
		return Auth{}, fmt.Errorf(
			"%w: auth requires instance_url, username, consumer_key and private_key_file",
			domain.ErrInvalidConfig)
	}
	key, err := os.ReadFile(ya.PrivateKeyFile)
	if err != nil {
		return Auth{}, fmt.Errorf("%w: read private key: %w", domain.ErrInvalidConfig, err)
	}
	return Auth{
		InstanceURL: ya.InstanceURL,
		LoginURL:    ya.LoginURL,
		Username:    ya.Username,
		ConsumerKey: ya.ConsumerKey,
		PrivateKey:  key,
	}, nil
}

func parseDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s: cannot parse %q as a date", domain.ErrInvalidConfig, field, value)
}

func sortedKeys(m map[string]yamlObject) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
