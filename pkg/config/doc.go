// Package config loads application configuration from an optional YAML file
// layered under CRITIQUE_* environment variables.
//
// # Sources
//
// Precedence, lowest to highest: built-in defaults, the YAML file named by
// the -config flag or CRITIQUE_CONFIG_FILE, then environment variables.
//
// # Environment Variables
//
// Server:
//
//	CRITIQUE_HOST="0.0.0.0"
//	CRITIQUE_PORT="8080"
//	CRITIQUE_HEALTH_PORT="9090"
//	CRITIQUE_READ_TIMEOUT="15s"
//	CRITIQUE_WRITE_TIMEOUT="15s"
//	CRITIQUE_SHUTDOWN_TIMEOUT="30s"
//
// Storage:
//
//	CRITIQUE_DB_DRIVER="sqlite3"   # sqlite3 or postgres
//	CRITIQUE_DB_DSN="file:critique.db?_foreign_keys=on"
//	CRITIQUE_DB_MAX_OPEN_CONNS="10"
//	CRITIQUE_LIST_LIMIT="20"
//	CRITIQUE_CACHE="none"          # none, lru, or redis
//	CRITIQUE_LRU_SIZE="1024"
//	CRITIQUE_REDIS_ADDR="localhost:6379"
//	CRITIQUE_REDIS_TTL="5m"
//
// Observability:
//
//	CRITIQUE_LOG_LEVEL="info"
//	CRITIQUE_LOG_FORMAT="json"
//	CRITIQUE_METRICS_ENABLED="true"
//	CRITIQUE_STATS_SCHEDULE="@every 1m"
//	CRITIQUE_OTEL_ENABLED="false"
//	CRITIQUE_OTEL_ENDPOINT="localhost:4317"
package config
