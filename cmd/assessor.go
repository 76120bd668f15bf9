package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Tjindl/HackTheCoast-sub000/internal/chance"
	"github.com/Tjindl/HackTheCoast-sub000/internal/chance/gemini"
	"github.com/Tjindl/HackTheCoast-sub000/internal/logger"
	"github.com/Tjindl/HackTheCoast-sub000/internal/secrets"
)

// newChanceAssessor wires the configured reasoning provider into the
// resilient assessor. When no usable provider is configured the assessor
// runs on the local heuristic alone; that is a degradation, not an error.
func newChanceAssessor(ctx context.Context, config *Config, log *zap.Logger) *chance.Assessor {
	var aiConfig *AIConfig
	if config != nil {
		aiConfig = config.AI
	}

	provider, err := newChanceProvider(ctx, aiConfig, log)
	if err != nil {
		log.Warn("chance provider unavailable, assessments will use the local heuristic", zap.Error(err))
	}

	return chance.NewAssessor(provider, log)
}

func newChanceProvider(ctx context.Context, config *AIConfig, log *zap.Logger) (chance.Provider, error) {
	if config == nil || !config.Enabled {
		return nil, errors.New("ai provider is not enabled")
	}

	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.Provider)
	}

	if config.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model)
	if err != nil {
		return nil, err
	}

	providerLogger := logger.WithCommonFields(log, "gemini", generator.Model())

	return gemini.NewAssessor(generator, providerLogger, config.Gemini.MaxLogLength), nil
}
