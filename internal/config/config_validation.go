// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CivicWatch Authors

package config

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the application relies on at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.Local.PollInterval < 0 {
		return ErrInvalidStorageConfigs
	}

	// The change feed rides on the remote store; Redis without a database
	// has nothing to announce.
	if cfg.Storage.Remote.RedisAddr != "" && cfg.Storage.Remote.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenDuration < 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
