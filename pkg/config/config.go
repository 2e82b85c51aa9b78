package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"StarSpin/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Mode        string `yaml:"mode"`
	Server      struct {
		Enabled         bool          `yaml:"enabled"`
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Data struct {
		Dir      string `yaml:"dir"`
		Format   string `yaml:"format"`
		ListFile string `yaml:"list_file"`
	} `yaml:"data"`
	Search struct {
		MinPeriod      float64 `yaml:"min_period"`
		MaxPeriod      float64 `yaml:"max_period"`
		Oversample     int     `yaml:"oversample"`
		Order          int     `yaml:"order"`
		BootstrapIters int     `yaml:"bootstrap_iters"`
		Quantile       float64 `yaml:"quantile"`
		Seed           int64   `yaml:"seed"`
		ThresholdScale float64 `yaml:"threshold_scale"`
		MaxSigPeriod   float64 `yaml:"max_sig_period"`
	} `yaml:"search"`
	Aperture struct {
		Enabled   bool    `yaml:"enabled"`
		MinPeriod float64 `yaml:"min_period"`
		MaxPeriod float64 `yaml:"max_period"`
	} `yaml:"aperture"`
	Batch struct {
		Workers     int `yaml:"workers"`
		WorkerIndex int `yaml:"worker_index"`
		WorkerCount int `yaml:"worker_count"`
	} `yaml:"batch"`
	Output struct {
		Backend  string `yaml:"backend"`
		Path     string `yaml:"path"`
		AllPeaks string `yaml:"all_peaks"`
	} `yaml:"output"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			Topic      string        `yaml:"topic"`
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Checkpoint struct {
		Backend string `yaml:"backend"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"checkpoint"`
	API struct {
		CacheTTL  time.Duration `yaml:"cache_ttl"`
		RateLimit struct {
			RPS   float64 `yaml:"rps"`
			Burst int     `yaml:"burst"`
		} `yaml:"rate_limit"`
	} `yaml:"api"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("OUTPUT_BACKEND"); v != "" {
		c.Output.Backend = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Checkpoint.Redis.Addr = v
	}
	c.Batch.WorkerIndex = util.ParseIntDefault(os.Getenv("WORKER_INDEX"), c.Batch.WorkerIndex)
	c.Batch.WorkerCount = util.ParseIntDefault(os.Getenv("WORKER_COUNT"), c.Batch.WorkerCount)

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = "batch"
	}
	if c.Data.Format == "" {
		c.Data.Format = "sff"
	}
	if c.Search.MinPeriod == 0 {
		c.Search.MinPeriod = 0.1
	}
	if c.Search.MaxPeriod == 0 {
		c.Search.MaxPeriod = 70
	}
	if c.Search.Oversample == 0 {
		c.Search.Oversample = 10
	}
	if c.Search.Order == 0 {
		c.Search.Order = 100
	}
	if c.Search.BootstrapIters == 0 {
		c.Search.BootstrapIters = 100
	}
	if c.Search.Quantile == 0 {
		c.Search.Quantile = 0.999
	}
	if c.Search.ThresholdScale == 0 {
		c.Search.ThresholdScale = 2
	}
	if c.Search.MaxSigPeriod == 0 {
		c.Search.MaxSigPeriod = 35
	}
	if c.Aperture.MinPeriod == 0 {
		c.Aperture.MinPeriod = c.Search.MinPeriod
	}
	if c.Aperture.MaxPeriod == 0 {
		c.Aperture.MaxPeriod = 35
	}
	if c.Batch.Workers == 0 {
		c.Batch.Workers = 4
	}
	if c.Batch.WorkerCount == 0 {
		c.Batch.WorkerCount = 1
	}
	if c.Output.Backend == "" {
		c.Output.Backend = "csv"
	}
	if c.Output.Path == "" {
		c.Output.Path = "tables/rotation_periods.csv"
	}
	if c.Checkpoint.Backend == "" {
		c.Checkpoint.Backend = "memory"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Mode != "batch" && c.Mode != "worker" {
		return fmt.Errorf("mode must be 'batch' or 'worker', got '%s'", c.Mode)
	}
	switch c.Output.Backend {
	case "csv", "clickhouse", "kafka":
	default:
		return fmt.Errorf("output.backend must be 'csv', 'clickhouse' or 'kafka', got '%s'", c.Output.Backend)
	}
	if c.Data.Format != "sff" && c.Data.Format != "sc" {
		return fmt.Errorf("data.format must be 'sff' or 'sc', got '%s'", c.Data.Format)
	}
	if c.Search.MinPeriod <= 0 || c.Search.MaxPeriod <= c.Search.MinPeriod {
		return fmt.Errorf("search period range [%g, %g] is invalid", c.Search.MinPeriod, c.Search.MaxPeriod)
	}
	if c.Batch.WorkerIndex < 0 || c.Batch.WorkerIndex >= c.Batch.WorkerCount {
		return fmt.Errorf("batch.worker_index %d out of range for worker_count %d", c.Batch.WorkerIndex, c.Batch.WorkerCount)
	}
	if c.Checkpoint.Backend != "memory" && c.Checkpoint.Backend != "redis" {
		return fmt.Errorf("checkpoint.backend must be 'memory' or 'redis', got '%s'", c.Checkpoint.Backend)
	}
	if c.Checkpoint.Backend == "redis" && c.Checkpoint.Redis.Addr == "" {
		return fmt.Errorf("checkpoint.redis.addr is required for redis checkpoints")
	}
	if c.Mode == "worker" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty in worker mode")
	}
	return nil
}
