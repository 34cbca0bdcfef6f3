package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type contextKey string

// TraceIDKey is the context key holding the request trace id.
const TraceIDKey contextKey = TRACE_ID_KEY

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Worker     WorkerConfig     `yaml:"worker"`
	Redis      RedisConfig      `yaml:"redis"`
	Auth       AuthConfig       `yaml:"auth"`
}

type ServerConfig struct {
	ListenAddr      string        `yaml:"listen_addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RateLimit       float64       `yaml:"rate_limit"`
	RateBurst       int           `yaml:"rate_burst"`
}

type LogConfig struct {
	Prod  bool   `yaml:"prod"`
	Level string `yaml:"level"`
}

// SummarizerConfig is the remote model surface: credential, model and the
// per call shape token/temperature settings.
type SummarizerConfig struct {
	Provider         string        `yaml:"provider"`
	APIKey           string        `yaml:"api_key"`
	BaseURL          string        `yaml:"base_url"`
	Model            string        `yaml:"model"`
	ChunkSize        int           `yaml:"chunk_size"`
	ChunkMaxTokens   int64         `yaml:"chunk_max_tokens"`
	ShortMaxTokens   int64         `yaml:"short_max_tokens"`
	SearchMaxTokens  int64         `yaml:"search_max_tokens"`
	Temperature      float64       `yaml:"temperature"`
	CallTimeout      time.Duration `yaml:"call_timeout"`
	ChunkConcurrency int           `yaml:"chunk_concurrency"`
	Prompts          PromptConfig  `yaml:"prompts"`
}

type PromptConfig struct {
	ChunkSystem    string `yaml:"chunk_system"`
	ChunkPrefix    string `yaml:"chunk_prefix"`
	ShortSystem    string `yaml:"short_system"`
	ShortPrefix    string `yaml:"short_prefix"`
	SearchSystem   string `yaml:"search_system"`
	SearchTemplate string `yaml:"search_template"`
}

type PipelineConfig struct {
	UploadDir      string        `yaml:"upload_dir"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
	ExtractWorkers int           `yaml:"extract_workers"`
	PageTimeout    time.Duration `yaml:"page_timeout"`
}

type WorkerConfig struct {
	MinWorkers           int64         `yaml:"min_workers"`
	MaxWorkers           int64         `yaml:"max_workers"`
	RequestsPerNewWorker int64         `yaml:"requests_per_new_worker"`
	IdleTimeout          time.Duration `yaml:"idle_timeout"`
	JobTimeout           time.Duration `yaml:"job_timeout"`
	BufferLimit          int           `yaml:"buffer_limit"`
}

type RedisConfig struct {
	Addr       string        `yaml:"addr"`
	Password   string        `yaml:"password"`
	UserDB     int           `yaml:"user_db"`
	SessionDB  int           `yaml:"session_db"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type AuthConfig struct {
	Disabled bool `yaml:"disabled"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:      ServerListenAddr,
			ReadTimeout:     ReadTimeout,
			WriteTimeout:    WriteTimeout,
			IdleTimeout:     IdleTimeout,
			ShutdownTimeout: ShutdownContextTimeout,
			RateLimit:       RATE_LIMIT_PER_SECOND,
			RateBurst:       BURST_RATE_LIMIT_PER_SECOND,
		},
		Log: LogConfig{Prod: IS_PROD, Level: "debug"},
		Summarizer: SummarizerConfig{
			Provider:         DefaultProvider,
			ChunkSize:        ChunkSize,
			ChunkMaxTokens:   ChunkMaxTokens,
			ShortMaxTokens:   ShortMaxTokens,
			SearchMaxTokens:  SearchMaxTokens,
			Temperature:      ModelTemperature,
			CallTimeout:      LLMCallTimeout,
			ChunkConcurrency: ChunkConcurrency,
			Prompts: PromptConfig{
				ChunkSystem:    ChunkSystemPrompt,
				ChunkPrefix:    ChunkUserPrefix,
				ShortSystem:    ShortSystemPrompt,
				ShortPrefix:    ShortUserPrefix,
				SearchSystem:   SearchSystemPrompt,
				SearchTemplate: SearchUserTemplate,
			},
		},
		Pipeline: PipelineConfig{
			UploadDir:      UploadDir,
			MaxUploadBytes: MaxUploadBytes,
			ExtractWorkers: ExtractWorkers,
			PageTimeout:    PageTimeout,
		},
		Worker: WorkerConfig{
			MinWorkers:           MinWorkerCount,
			MaxWorkers:           MaxWorkerCount,
			RequestsPerNewWorker: RequestsPerNewWorkerCount,
			IdleTimeout:          IdleWorkerTimeout,
			JobTimeout:           JobTimeout,
			BufferLimit:          BufferLimit,
		},
		Redis: RedisConfig{
			Addr:       RedisAddr,
			UserDB:     RedisUserStore,
			SessionDB:  RedisSessionStore,
			SessionTTL: SessionTTL,
		},
	}
}

// Load builds the configuration from defaults, an optional yaml file and the
// environment, in that order of precedence (environment wins).
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if cfg.Summarizer.Model == "" {
		cfg.Summarizer.Model = defaultModel(cfg.Summarizer.Provider)
	}
	return cfg, cfg.Validate()
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return GeminiModelName
	}
	return OpenAIModelName
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.ListenAddr, "LISTEN_ADDR")
	setString(&cfg.Summarizer.Provider, "SUMMARIZER_PROVIDER")
	setString(&cfg.Summarizer.Model, "SUMMARIZER_MODEL")
	setString(&cfg.Summarizer.BaseURL, "SUMMARIZER_BASE_URL")
	setString(&cfg.Pipeline.UploadDir, "UPLOAD_DIR")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	// credential follows the chosen provider
	if cfg.Summarizer.Provider == ProviderGemini {
		setString(&cfg.Summarizer.APIKey, "GEMINI_API_KEY")
	} else {
		setString(&cfg.Summarizer.APIKey, "OPENAI_API_KEY")
	}

	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Log.Prod = strings.EqualFold(v, "prod") || strings.EqualFold(v, "production")
	}
	if v := os.Getenv("CHUNK_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHUNK_SIZE: %w", err)
		}
		cfg.Summarizer.ChunkSize = n
	}
	if v := os.Getenv("MAX_TOKENS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_TOKENS: %w", err)
		}
		cfg.Summarizer.ChunkMaxTokens = n
	}
	if v := os.Getenv("TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("TEMPERATURE: %w", err)
		}
		cfg.Summarizer.Temperature = f
	}
	if v := os.Getenv("AUTH_DISABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("AUTH_DISABLED: %w", err)
		}
		cfg.Auth.Disabled = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	var errs []error
	switch c.Summarizer.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("unknown summarizer provider %q", c.Summarizer.Provider))
	}
	if c.Summarizer.ChunkSize <= 0 {
		errs = append(errs, errors.New("chunk size must be positive"))
	}
	if c.Summarizer.ChunkMaxTokens <= 0 || c.Summarizer.ShortMaxTokens <= 0 || c.Summarizer.SearchMaxTokens <= 0 {
		errs = append(errs, errors.New("max tokens must be positive"))
	}
	if c.Summarizer.Temperature < 0 || c.Summarizer.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature %v out of range [0,2]", c.Summarizer.Temperature))
	}
	if c.Pipeline.UploadDir == "" {
		errs = append(errs, errors.New("upload dir is required"))
	}
	if c.Pipeline.ExtractWorkers <= 0 {
		errs = append(errs, errors.New("extract workers must be positive"))
	}
	if c.Worker.MinWorkers < 1 || c.Worker.MaxWorkers < c.Worker.MinWorkers {
		errs = append(errs, fmt.Errorf("invalid worker bounds min=%d max=%d", c.Worker.MinWorkers, c.Worker.MaxWorkers))
	}
	return errors.Join(errs...)
}

func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		if l.Prod {
			return LOG_LEVEL_PROD
		}
		return slog.LevelDebug
	}
	return level
}

// TraceID returns the trace id stored on ctx, or an empty string.
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	trace, _ := ctx.Value(TraceIDKey).(string)
	return trace
}

func WithTraceID(ctx context.Context, trace string) context.Context {
	return context.WithValue(ctx, TraceIDKey, trace)
}
