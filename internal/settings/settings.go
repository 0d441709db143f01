package settings

import (
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	azdoctorerrors "github.com/openchat-labs/azdoctor/pkg/errors"
)

// DefaultPath is where azdoctor looks for its optional settings file.
const DefaultPath = ".azdoctor.yaml"

// Settings holds tool-level configuration. Command-line flags override
// anything set here.
type Settings struct {
	EnvFile  string `yaml:"env_file" validate:"required"`
	AzBinary string `yaml:"az_binary" validate:"required"`
	Timeout  string `yaml:"timeout" validate:"required,duration"`
	NoColor  bool   `yaml:"no_color"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		EnvFile:  ".env",
		AzBinary: "az",
		Timeout:  "10s",
	}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
			_, err := time.ParseDuration(fl.Field().String())
			return err == nil
		})
		validateInst = v
	})
	return validateInst
}

// Load reads settings from path. An absent file is not an error; the
// defaults apply. Fields left empty in the file fall back to their defaults
// before validation.
func Load(path string) (Settings, error) {
	if path == "" {
		path = DefaultPath
	}

	settings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return settings, azdoctorerrors.NewParseError(path, 0, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Default(), azdoctorerrors.NewParseError(path, 0, err)
	}

	defaults := Default()
	if settings.EnvFile == "" {
		settings.EnvFile = defaults.EnvFile
	}
	if settings.AzBinary == "" {
		settings.AzBinary = defaults.AzBinary
	}
	if settings.Timeout == "" {
		settings.Timeout = defaults.Timeout
	}

	if err := validatorInstance().Struct(settings); err != nil {
		return Default(), azdoctorerrors.NewValidationError("timeout", "must be a Go duration string (e.g. 10s)", err)
	}

	return settings, nil
}

// ProbeTimeout returns the parsed timeout. Load validates the format, so
// this only falls back when a Settings value was built by hand.
func (s Settings) ProbeTimeout() time.Duration {
	parsed, err := time.ParseDuration(s.Timeout)
	if err != nil || parsed <= 0 {
		return 10 * time.Second
	}
	return parsed
}
