package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/Behyna/sms-services/smsscheduler/internal/constants"
	"github.com/Behyna/sms-services/smsscheduler/pkg/smsprovider"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const FileName = "config.json"

var (
	ErrConfigNotFound = errors.New(constants.ErrMsgConfigNotFound)
	ErrConfigParse    = errors.New(constants.ErrMsgConfigParse)
)

var RequiredKeys = []string{"account_sid", "auth_token", "messaging_service_sid"}

type Config struct {
	AccountSID          string `mapstructure:"account_sid" validate:"required"`
	AuthToken           string `mapstructure:"auth_token" validate:"required"`
	MessagingServiceSID string `mapstructure:"messaging_service_sid" validate:"required"`
}

func (c *Config) Provider() smsprovider.Config {
	return smsprovider.Config{AccountSID: c.AccountSID, AuthToken: c.AuthToken}
}

// DefaultPath returns config.json in the directory of the running executable.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return FileName
	}

	return filepath.Join(filepath.Dir(exe), FileName)
}

func Load(path string) (cfg *Config, err error) {
	if _, err = os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s\ncreate a %s with: %s",
				ErrConfigNotFound, path, FileName, strings.Join(RequiredKeys, ", "))
		}

		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err = v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrConfigParse, path, err)
	}

	cfg = &Config{}
	if err = v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrConfigParse, path, err)
	}

	if err = validate(cfg); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrConfigParse, path, err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("mapstructure")
	})

	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	missing := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		missing = append(missing, fieldErr.Field())
	}

	return fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
}
