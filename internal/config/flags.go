package config

import (
	"flag"
	"os"
	"time"
)

// ParseFlags parses all configuration flags from the process command line.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d remote database DSN
//	-redis-addr redis address for the report change feed
//	-media-endpoint hosted blob store base URL
//	-local-db sqlite database path for the fallback store
//	-poll-interval local subscription polling period (e.g., "2s")
//	-base-url public base URL used in complaint deep links
//	-relay-endpoint outbound form relay URL
//	-relay-recipient municipal complaint inbox
//	-classifier-endpoint image classifier URL
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "24h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	return parseFlagSet(flag.CommandLine, os.Args[1:])
}

func parseFlagSet(fs *flag.FlagSet, args []string) *StructuredConfig {
	var serverAddress string
	var databaseDSN string
	var redisAddr string
	var mediaEndpoint string
	var localDBPath string
	var pollInterval time.Duration
	var baseURL string
	var relayEndpoint string
	var relayRecipient string
	var classifierEndpoint string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration

	fs.StringVar(&serverAddress, "a", "", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Remote database DSN")
	fs.StringVar(&redisAddr, "redis-addr", "", "Redis address for the change feed")
	fs.StringVar(&mediaEndpoint, "media-endpoint", "", "Hosted blob store base URL")
	fs.StringVar(&localDBPath, "local-db", "", "SQLite database path")
	fs.DurationVar(&pollInterval, "poll-interval", 0, "Local subscription polling period (e.g., 2s)")
	fs.StringVar(&baseURL, "base-url", "", "Public base URL for deep links")
	fs.StringVar(&relayEndpoint, "relay-endpoint", "", "Outbound form relay URL")
	fs.StringVar(&relayRecipient, "relay-recipient", "", "Municipal complaint inbox")
	fs.StringVar(&classifierEndpoint, "classifier-endpoint", "", "Image classifier URL")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 24h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	_ = fs.Parse(args)

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			BaseURL:       baseURL,
		},
		Storage: Storage{
			Remote: Remote{
				DSN:           databaseDSN,
				RedisAddr:     redisAddr,
				MediaEndpoint: mediaEndpoint,
			},
			Local: Local{
				Path:         localDBPath,
				PollInterval: pollInterval,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			RelayEndpoint:      relayEndpoint,
			RelayRecipient:     relayRecipient,
			ClassifierEndpoint: classifierEndpoint,
		},
		JSONFilePath: jsonConfigPath,
	}
}
