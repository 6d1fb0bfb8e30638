package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/PrashantJha183/Feedback-backend/pkg/service/password"
	"github.com/PrashantJha183/Feedback-backend/pkg/service/report"
	"github.com/PrashantJha183/Feedback-backend/pkg/usecase"
)

// AppConfig represents the optional TOML configuration file
type AppConfig struct {
	Report   ReportConfig   `toml:"report"`
	Password PasswordConfig `toml:"password"`
}

// ReportConfig controls the exported feedback report
type ReportConfig struct {
	LinesPerPage int    `toml:"lines_per_page"`
	TitlePrefix  string `toml:"title_prefix"`
	FontPath     string `toml:"font_path"`
}

// PasswordConfig controls password hashing
type PasswordConfig struct {
	BcryptCost int `toml:"bcrypt_cost"`
}

// Validate checks if the ReportConfig is valid. Zero values select defaults.
func (r *ReportConfig) Validate() error {
	if r.LinesPerPage < 0 {
		return goerr.Wrap(ErrInvalidLinesOnPage, "invalid report config", goerr.V("lines_per_page", r.LinesPerPage))
	}
	if r.FontPath != "" {
		info, err := os.Stat(r.FontPath)
		if err != nil || info.IsDir() {
			return goerr.Wrap(ErrInvalidFontPath, "invalid report config", goerr.V("font_path", r.FontPath))
		}
	}
	return nil
}

// Validate checks if the PasswordConfig is valid. Zero selects the default cost.
func (p *PasswordConfig) Validate() error {
	if p.BcryptCost != 0 && (p.BcryptCost < bcrypt.MinCost || p.BcryptCost > bcrypt.MaxCost) {
		return goerr.Wrap(ErrInvalidBcryptCost, "invalid password config", goerr.V("bcrypt_cost", p.BcryptCost))
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if err := a.Report.Validate(); err != nil {
		return goerr.Wrap(err, "invalid report section")
	}
	if err := a.Password.Validate(); err != nil {
		return goerr.Wrap(err, "invalid password section")
	}
	return nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// UseCaseOptions converts the configuration into use case options
func (a *AppConfig) UseCaseOptions() []usecase.Option {
	opts := []usecase.Option{
		usecase.WithReportConfig(usecase.ReportConfig{
			LinesPerPage: a.Report.LinesPerPage,
			TitlePrefix:  a.Report.TitlePrefix,
		}),
	}
	if a.Report.FontPath != "" {
		opts = append(opts, usecase.WithReportRenderer(report.NewPDF(report.WithUTF8Font(a.Report.FontPath))))
	}
	if a.Password.BcryptCost != 0 {
		opts = append(opts, usecase.WithPasswordHasher(password.New(password.WithCost(a.Password.BcryptCost))))
	}
	return opts
}

// App holds the CLI flag pointing at the configuration file
type App struct {
	path string
}

func (x *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML configuration file",
			Sources:     cli.EnvVars("FEEDBACK_CONFIG"),
			Destination: &x.path,
		},
	}
}

func (x App) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

// Configure loads the configuration file. Without --config the defaults
// are returned.
func (x *App) Configure() (*AppConfig, error) {
	if x.path == "" {
		return &AppConfig{}, nil
	}
	return LoadAppConfiguration(x.path)
}
