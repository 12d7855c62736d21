package bootstrap

import (
	"fmt"
	"time"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"
	libZap "github.com/LerianStudio/lib-commons/v2/commons/zap"

	"github.com/CedrusPay/sluice/internal/adapters/csv"
	"github.com/CedrusPay/sluice/internal/adapters/rabbitmq"
	"github.com/CedrusPay/sluice/internal/adapters/storage"
	"github.com/CedrusPay/sluice/internal/services"
)

const ApplicationName = "sluice"

// Source names accepted by the --source flag.
const (
	SourceCSV  = "csv"
	SourceAMQP = "amqp"
)

// Config is the configuration struct for the engine, populated from the
// environment.
type Config struct {
	EnvName              string `env:"ENV_NAME"`
	LogLevel             string `env:"LOG_LEVEL"`
	BackpressureCapacity int    `env:"BACKPRESSURE_CAPACITY"`
	RegistryCapacity     int    `env:"REGISTRY_CAPACITY"`
	IdleTimeout          string `env:"IDLE_TIMEOUT"`
	RabbitURI            string `env:"RABBITMQ_URI"`
	RabbitQueue          string `env:"RABBITMQ_QUEUE"`
	RabbitPrefetch       int    `env:"RABBITMQ_NUMBERS_OF_PREFETCH"`
}

// Options carries the command-line surface. Set fields override their
// environment counterparts.
type Options struct {
	InputPath            string
	Source               string
	BackpressureCapacity int
	RegistryCapacity     int
	IdleTimeout          time.Duration
	RabbitURI            string
	RabbitQueue          string
}

// InitService assembles the logger, store, source and engine into a runnable
// Service.
func InitService(options Options) (*Service, error) {
	cfg := &Config{}

	if err := libCommons.SetConfigFromEnvVars(cfg); err != nil {
		return nil, err
	}

	logger, err := libZap.InitializeLoggerWithError()
	if err != nil {
		return nil, err
	}

	engineConfig := services.Config{
		BackpressureCapacity: cfg.BackpressureCapacity,
		RegistryCapacity:     cfg.RegistryCapacity,
		IdleTimeout:          services.DefaultIdleTimeout,
	}

	if cfg.IdleTimeout != "" {
		idle, err := time.ParseDuration(cfg.IdleTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid IDLE_TIMEOUT %q: %w", cfg.IdleTimeout, err)
		}

		engineConfig.IdleTimeout = idle
	}

	if options.BackpressureCapacity > 0 {
		engineConfig.BackpressureCapacity = options.BackpressureCapacity
	}

	if options.RegistryCapacity > 0 {
		engineConfig.RegistryCapacity = options.RegistryCapacity
	}

	if options.IdleTimeout > 0 {
		engineConfig.IdleTimeout = options.IdleTimeout
	}

	if engineConfig.BackpressureCapacity <= 0 {
		engineConfig.BackpressureCapacity = services.DefaultBackpressureCapacity
	}

	if engineConfig.RegistryCapacity <= 0 {
		engineConfig.RegistryCapacity = services.DefaultRegistryCapacity
	}

	rabbitURI := cfg.RabbitURI
	if options.RabbitURI != "" {
		rabbitURI = options.RabbitURI
	}

	rabbitQueue := cfg.RabbitQueue
	if options.RabbitQueue != "" {
		rabbitQueue = options.RabbitQueue
	}

	var source TransactionSource

	switch options.Source {
	case "", SourceCSV:
		source = csv.NewTransactionSource(options.InputPath)
	case SourceAMQP:
		if rabbitURI == "" || rabbitQueue == "" {
			return nil, fmt.Errorf("the amqp source requires RABBITMQ_URI and RABBITMQ_QUEUE")
		}

		source = rabbitmq.NewTransactionConsumer(rabbitURI, rabbitQueue, cfg.RabbitPrefetch, logger)
	default:
		return nil, fmt.Errorf("unknown source %q", options.Source)
	}

	repository := storage.NewAccountInMemoryRepository()

	return &Service{
		Engine:     services.NewEngine(repository, engineConfig),
		Repository: repository,
		Source:     source,
		Logger:     logger,
		config:     engineConfig,
	}, nil
}
