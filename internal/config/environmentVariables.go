package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//worker pool
	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	JobTimeout                      = 5 * time.Minute

	//serverTimeouts - summarizing a batch takes a while, the write timeout has to cover it
	ReadTimeout            = 30 * time.Second
	WriteTimeout           = 6 * time.Minute
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//uploads
	UploadDir      = "temporary_data"
	MaxUploadBytes = 32 << 20 //32mb
	ExtractWorkers = 4
	PageTimeout    = 10 * time.Second

	//llm
	ProviderOpenAI   = "openai"
	ProviderGemini   = "gemini"
	DefaultProvider  = ProviderOpenAI
	OpenAIModelName  = "gpt-3.5-turbo"
	GeminiModelName  = "gemini-2.5-flash-lite-preview-09-2025"
	LLMCallTimeout   = 60 * time.Second
	ChunkConcurrency = 1

	ChunkSize                = 3000
	ChunkMaxTokens     int64 = 500
	ShortMaxTokens     int64 = 50
	SearchMaxTokens    int64 = 1000
	ModelTemperature         = 0.5
	LLMConnectionTimeout     = 90 * time.Second

	ChunkSystemPrompt  = "You are a helpful assistant that summarizes legal documents."
	ChunkUserPrefix    = "Summarize this legal document:\n\n"
	ShortSystemPrompt  = "You are a helpful assistant that provides concise summaries."
	ShortUserPrefix    = "Provide a one-line summary of this text:\n\n"
	SearchSystemPrompt = "You are a helpful assistant for searching documents."
	SearchUserTemplate = "Search the following document for this text: '%s' and provide related information:\n\n%s"

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisUserStore    = 0
	RedisSessionStore = 1

	SessionTTL        = 24 * time.Hour
	SessionCookieName = "session"
)
