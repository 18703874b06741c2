package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/filip867/Karl-Filip/internal/domain/repository"
	"github.com/filip867/Karl-Filip/internal/shared/types"
)

// envPrefix is the prefix of the environment overrides (RAPPORT_INPUT, ...).
const envPrefix = "RAPPORT"

//go:embed reference.yaml
var defaultReference []byte

// ConfigRepositoryImpl implements ConfigRepository.
type ConfigRepositoryImpl struct {
	envFiles []string
	validate *validator.Validate
}

// NewConfigRepository creates a ConfigRepository. envFiles are loaded into
// the environment before RAPPORT_* variables are read; missing files are
// ignored.
func NewConfigRepository(envFiles ...string) repository.ConfigRepository {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	return &ConfigRepositoryImpl{
		envFiles: envFiles,
		validate: validator.New(),
	}
}

// LoadConfigFile loads a TOML, YAML or JSON configuration file.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := filepath.Ext(filePath)
	fileExtension = strings.ToLower(fileExtension)

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return decodeConfig(fileData, fileExtension)
}

func decodeConfig(data []byte, fileExtension string) (*types.Config, error) {
	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return &config, nil
}

// LoadConfig layers the embedded reference, the optional config file and the
// environment, then validates the result.
func (r *ConfigRepositoryImpl) LoadConfig(filePath string) (*types.Config, error) {
	config, err := decodeConfig(defaultReference, ".yaml")
	if err != nil {
		return nil, fmt.Errorf("error parsing embedded reference: %w", err)
	}

	if filePath != "" {
		fileConfig, err := r.LoadConfigFile(filePath)
		if err != nil {
			return nil, err
		}
		config = mergeConfigs(config, fileConfig)
	}

	env, err := r.loadEnv()
	if err != nil {
		return nil, err
	}
	applyEnv(config, env)

	if err := r.validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func (r *ConfigRepositoryImpl) loadEnv() (types.EnvConfig, error) {
	for _, f := range r.envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return types.EnvConfig{}, fmt.Errorf("error loading %s: %w", f, err)
		}
	}

	var env types.EnvConfig
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return types.EnvConfig{}, fmt.Errorf("error reading environment: %w", err)
	}
	return env, nil
}

// mergeConfigs overlays every field override sets on top of base.
func mergeConfigs(base, override *types.Config) *types.Config {
	out := *base

	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&out.Input, override.Input)
	setString(&out.Profile, override.Profile)
	setString(&out.ReportName, override.ReportName)
	setString(&out.Dir, override.Dir)
	setString(&out.ClientName, override.ClientName)
	setString(&out.ReportDate, override.ReportDate)
	setString(&out.Delimiter, override.Delimiter)
	setString(&out.Columns.Listing, override.Columns.Listing)
	setString(&out.Columns.Month, override.Columns.Month)
	setString(&out.Columns.Revenue, override.Columns.Revenue)
	setString(&out.Columns.Occupancy, override.Columns.Occupancy)
	setString(&out.Columns.Rate, override.Columns.Rate)
	setString(&out.ListingWindow.Start, override.ListingWindow.Start)
	setString(&out.Server.Addr, override.Server.Addr)
	setString(&out.Server.ImportDir, override.Server.ImportDir)
	setString(&out.Server.ImportS3Prefix, override.Server.ImportS3Prefix)

	if override.Year != 0 {
		out.Year = override.Year
		out.DefaultYear = override.Year
	}
	if override.DefaultYear != 0 {
		out.DefaultYear = override.DefaultYear
	}
	if override.Server.ImportRate != 0 {
		out.Server.ImportRate = override.Server.ImportRate
	}
	if override.Server.ImportBurst != 0 {
		out.Server.ImportBurst = override.Server.ImportBurst
	}
	if override.ListingWindow.Months != 0 {
		out.ListingWindow.Months = override.ListingWindow.Months
	}
	if override.Trend {
		out.Trend = true
	}
	if len(override.ReportType) > 0 {
		out.ReportType = override.ReportType
	}
	if len(override.Listings) > 0 {
		out.Listings = override.Listings
	}
	if override.Baseline != nil {
		out.Baseline = override.Baseline
	}
	if override.Quality != nil {
		out.Quality = override.Quality
	}

	setBullets := func(dst *[]string, v []string) {
		if len(v) > 0 {
			*dst = v
		}
	}
	setBullets(&out.Bullets.Revenue, override.Bullets.Revenue)
	setBullets(&out.Bullets.Occupancy, override.Bullets.Occupancy)
	setBullets(&out.Bullets.Rate, override.Bullets.Rate)
	setBullets(&out.Bullets.Listings, override.Bullets.Listings)
	setBullets(&out.Bullets.Total, override.Bullets.Total)
	setBullets(&out.Bullets.Quality, override.Bullets.Quality)
	setBullets(&out.Bullets.Actions, override.Bullets.Actions)

	return &out
}

func applyEnv(config *types.Config, env types.EnvConfig) {
	if env.Input != "" {
		config.Input = env.Input
	}
	if env.Profile != "" {
		config.Profile = env.Profile
	}
	if env.Year != 0 {
		config.Year = env.Year
		config.DefaultYear = env.Year
	}
	if env.Dir != "" {
		config.Dir = env.Dir
	}
	if env.ClientName != "" {
		config.ClientName = env.ClientName
	}
	if env.ReportDate != "" {
		config.ReportDate = env.ReportDate
	}
	if env.Addr != "" {
		config.Server.Addr = env.Addr
	}
	if env.ImportDir != "" {
		config.Server.ImportDir = env.ImportDir
	}
}
