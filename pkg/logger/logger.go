package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log   *zap.Logger
	sugar *zap.SugaredLogger
)

// Init builds the process-wide logger. "dev" gets a colored console encoder;
// anything else logs production JSON. level overrides the default when it
// parses, otherwise the config's default stands.
func Init(service, env, level string) {
	var cfg zap.Config
	if env == "dev" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	built, err := cfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	log = built.With(zap.String("service", service))
	sugar = log.Sugar()

	sugar.Infow("logger initialized", "env", env, "level", level)
}

// L returns the structured logger, self-initializing for tests and tools that
// never call Init.
func L() *zap.Logger {
	if log == nil {
		Init("fanstore", "dev", "info")
	}
	return log
}

// S returns the sugared logger.
func S() *zap.SugaredLogger {
	if sugar == nil {
		Init("fanstore", "dev", "info")
	}
	return sugar
}

// Sync flushes buffered entries; defer from main.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
