/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package project

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Settings is the process configuration consumed by the evaluation pipeline.
type Settings struct {
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY,required"`
}

// LoadSettings reads Settings from the environment.
func LoadSettings(ctx context.Context) (Settings, error) {
	var s Settings
	if err := envconfig.Process(ctx, &s); err != nil {
		return Settings{}, fmt.Errorf("processing settings: %w", err)
	}
	return s, nil
}
