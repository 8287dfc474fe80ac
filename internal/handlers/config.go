package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var configValidator = validator.New()

// staticConfig is StaticHandler's typed, validated view of its route args.
type staticConfig struct {
	Root string `validate:"required"`
}

// dataPathConfig is shared by every handler whose only required arg is a
// data directory (ApiHandler, RegisterHandler, LoginHandler,
// PostMessageHandler, GetMessagesHandler).
type dataPathConfig struct {
	DataPath string `validate:"required"`
}

// sleepConfig is SleepHandler's typed view of its route args; SleepMillis
// is optional (zero means "use the default").
type sleepConfig struct {
	SleepMillis int `validate:"omitempty,min=0"`
}

func validateConfig(cfg any) error {
	if err := configValidator.Struct(cfg); err != nil {
		return fmt.Errorf("invalid handler config: %w", err)
	}
	return nil
}
