package utils

//run redis, users on db 0 and sessions on db 1
//docker run -p 6379:6379 -d redis
//without redis both stores fall back to memory and accounts are lost on restart

//summarizer credential follows SUMMARIZER_PROVIDER
//OPENAI_API_KEY=... go run ./cmd/api
//SUMMARIZER_PROVIDER=gemini GEMINI_API_KEY=... go run ./cmd/api -config config.yaml

//local use without accounts
//AUTH_DISABLED=true go run ./cmd/api

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
