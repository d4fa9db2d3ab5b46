package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/Egor213/LogiSense/internal/detector"
	errorsUtils "github.com/Egor213/LogiSense/pkg/errors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/labstack/gommon/bytes"
	log "github.com/sirupsen/logrus"

	"github.com/joho/godotenv"
)

type (
	Config struct {
		App        `yaml:"app"`
		Log        `yaml:"log"`
		HTTP       `yaml:"http"`
		Enhancer   `yaml:"enhancer"`
		Prometheus `yaml:"prometheus"`
		Detector   `yaml:"detector"`
		PG         `yaml:"postgres"`
		Kafka      `yaml:"kafka"`
	}

	App struct {
		Name    string `yaml:"name" env-required:"true"`
		Version string `yaml:"version" env-required:"true"`
	}

	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	}

	HTTP struct {
		Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"5000"`
		BodyLimit       string        `yaml:"body_limit" env:"HTTP_BODY_LIMIT" env-default:"10M"`
		ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
		ReportTimeout   time.Duration `yaml:"report_timeout" env:"HTTP_REPORT_TIMEOUT" env-default:"5s"`
	}

	Enhancer struct {
		Port string `yaml:"port" env:"ENHANCER_PORT" env-default:"5001"`
	}

	Prometheus struct {
		Port string `yaml:"port" env:"PROMETHEUS_PORT" env-default:"9090"`
	}

	Detector struct {
		Contamination float64 `yaml:"contamination" env:"DETECTOR_CONTAMINATION" env-default:"0.05"`
		Seed          int64   `yaml:"seed" env:"DETECTOR_SEED" env-default:"42"`
		Trees         int     `yaml:"trees" env:"DETECTOR_TREES" env-default:"100"`
		SampleSize    int     `yaml:"sample_size" env:"DETECTOR_SAMPLE_SIZE" env-default:"256"`
	}

	// PG is optional: without a URL the run history is disabled.
	PG struct {
		MaxPoolSize int    `yaml:"max_pool_size" env:"MAX_POOL_SIZE" env-default:"10"`
		URL         string `yaml:"url" env:"PG_URL"`
	}

	// Kafka is optional: without brokers run summaries are not published.
	Kafka struct {
		Brokers      []string      `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
		Topic        string        `yaml:"topic" env:"KAFKA_TOPIC" env-default:"analysis-runs"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"KAFKA_WRITE_TIMEOUT" env-default:"5s"`
	}
)

const ENV_PATH = "infra/.env.dev"

var ErrBodyLimit = errors.New("invalid http body limit")

func New() (*Config, error) {
	if err := loadEnvFile(ENV_PATH); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	cfg := &Config{}

	pathToConfig, ok := os.LookupEnv("APP_CONFIG_PATH")
	if !ok || pathToConfig == "" {
		log.WithField("env_var", "APP_CONFIG_PATH").
			Info("Config path is not set, using default")
		pathToConfig = "infra/config.yaml"
	}

	if err := cleanenv.ReadConfig(pathToConfig, cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	if err := cleanenv.UpdateEnv(cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	if err := cfg.DetectorConfig().Validate(); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	if _, err := bytes.Parse(cfg.HTTP.BodyLimit); err != nil {
		return nil, errorsUtils.WrapPathErr(fmt.Errorf("%w: %v", ErrBodyLimit, err))
	}

	return cfg, nil
}

// loadEnvFile is a no-op when the file does not exist.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (c *Config) DetectorConfig() detector.Config {
	return detector.Config{
		Contamination: c.Detector.Contamination,
		Seed:          c.Detector.Seed,
		Trees:         c.Detector.Trees,
		SampleSize:    c.Detector.SampleSize,
	}
}

func (p PG) Enabled() bool {
	return p.URL != ""
}

func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0 && k.Topic != ""
}
