package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type LoggerConfig struct {
	Level          string                 `mapstructure:"level" json:"level,omitempty" validate:"oneof=trace debug info warn error"`
	Format         string                 `mapstructure:"format" json:"format,omitempty" validate:"oneof=json console"`
	OutputTarget   string                 `mapstructure:"output_target" json:"outputTarget,omitempty" validate:"oneof=stdout stderr"`
	TimeField      string                 `mapstructure:"time_field" json:"timeField,omitempty"`
	TimeFormat     string                 `mapstructure:"time_format" json:"timeFormat,omitempty" validate:"oneof=rfc3339 rfc3339nano unix unix_ms"`
	ServiceName    string                 `mapstructure:"service_name" json:"serviceName,omitempty"`
	ServiceVersion string                 `mapstructure:"service_version" json:"serviceVersion,omitempty"`
	Env            string                 `mapstructure:"env" json:"env,omitempty" validate:"oneof=dev staging prod"`
	WithCaller     bool                   `mapstructure:"with_caller" json:"withCaller,omitempty"`
	Stacktrace     bool                   `mapstructure:"stacktrace" json:"stacktrace,omitempty"`
	Fields         map[string]interface{} `mapstructure:"fields" json:"fields,omitempty"`
}

func New(logg *LoggerConfig) (logger zerolog.Logger, err error) {
	logg.setDefaults()

	v := validator.New()
	if err = v.Struct(logg); err != nil {
		return logger, fmt.Errorf("logger config validation error: %w", err)
	}

	// apply time settings from config
	zerolog.TimestampFieldName = logg.TimeField
	zerolog.TimeFieldFormat = timeFormat(logg.TimeFormat)

	// choose writer based on format; console is for humans, json for shippers
	var writer io.Writer = target(logg.OutputTarget)
	if logg.Format == "console" {
		writer = zerolog.ConsoleWriter{
			Out:        target(logg.OutputTarget),
			TimeFormat: timeFormat(logg.TimeFormat),
		}
	}

	logger = zerolog.New(writer).
		With().
		Timestamp().
		Str("service", logg.ServiceName).
		Str("version", logg.ServiceVersion).
		Str("env", logg.Env).
		Logger()

	// add optional extras in a clean linear flow
	if logg.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	if logg.Stacktrace {
		logger = logger.With().Stack().Logger()
	}
	if len(logg.Fields) > 0 {
		logger = logger.With().Fields(logg.Fields).Logger()
	}

	// set log level globally (important: must be after ParseLevel)
	level, err := zerolog.ParseLevel(logg.Level)
	if err != nil {
		return logger, err
	}
	zerolog.SetGlobalLevel(level)

	return logger, nil
}

func target(name string) *os.File {
	if name == "stderr" {
		return os.Stderr
	}
	return os.Stdout
}

func timeFormat(name string) string {
	switch name {
	case "rfc3339":
		return time.RFC3339
	case "unix":
		return zerolog.TimeFormatUnix
	case "unix_ms":
		return zerolog.TimeFormatUnixMs
	default:
		return time.RFC3339Nano
	}
}

func (c *LoggerConfig) setDefaults() {
	// environment default
	if c.Env == "" {
		c.Env = "prod"
	}

	// level defaults depend on environment
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}

	// format defaults
	if c.Format == "" {
		if c.Env == "dev" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}

	// output target default
	if c.OutputTarget == "" {
		c.OutputTarget = "stdout"
	}

	// time defaults
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "rfc3339nano"
	}

	// caller defaults
	if !c.WithCaller && c.Env == "dev" {
		c.WithCaller = true
	}
	if !c.Stacktrace && c.Env != "dev" {
		c.Stacktrace = true
	}

	// service defaults
	if c.ServiceName == "" {
		c.ServiceName = "todo-items-service"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.0.1"
	}

	// ensure fields map is not nil
	if c.Fields == nil {
		c.Fields = make(map[string]interface{})
	}
}
