package featureflags

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the feature flag service.
type ServiceConfig struct {
	Repository   Repository
	Logger       zerolog.Logger
	DefaultFlags map[string]*Flag
}

// Service evaluates feature flags with fallback to defaults.
type Service struct {
	repo         Repository
	logger       zerolog.Logger
	defaultFlags map[string]*Flag
}

// NewService creates a new feature flag service.
func NewService(cfg ServiceConfig) *Service {
	defaultFlags := cfg.DefaultFlags
	if defaultFlags == nil {
		defaultFlags = DefaultFlags()
	}
	return &Service{
		repo:         cfg.Repository,
		logger:       cfg.Logger,
		defaultFlags: defaultFlags,
	}
}

// GetFlag retrieves a feature flag by key, falling back to its default when
// no override is stored. Returns nil for an unknown key.
func (s *Service) GetFlag(ctx context.Context, key string) *Flag {
	flag, err := s.repo.GetFlag(ctx, key)
	if err == nil {
		return flag
	}
	if !errors.Is(err, ErrFlagNotFound) {
		s.logger.Warn().Err(err).Str("flag", key).Msg("failed to get feature flag from repository")
	}
	if defaultFlag, ok := s.defaultFlags[key]; ok {
		return defaultFlag
	}
	return nil
}

// GetAllFlags returns stored overrides merged over the defaults.
func (s *Service) GetAllFlags(ctx context.Context) map[string]*Flag {
	result := make(map[string]*Flag, len(s.defaultFlags))
	for k, v := range s.defaultFlags {
		result[k] = v
	}

	flags, err := s.repo.GetAllFlags(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to get feature flags from repository, using defaults")
		return result
	}
	for k, v := range flags {
		result[k] = v
	}
	return result
}

// SetFlag updates a feature flag.
func (s *Service) SetFlag(ctx context.Context, flag *Flag) error {
	flag.UpdatedAt = time.Now()
	return s.repo.SetFlag(ctx, flag)
}

// SetFlags updates multiple feature flags atomically.
func (s *Service) SetFlags(ctx context.Context, flags []*Flag) error {
	now := time.Now()
	for _, flag := range flags {
		flag.UpdatedAt = now
	}
	return s.repo.SetFlags(ctx, flags)
}

// DeleteFlag removes an override, reverting the flag to its default.
func (s *Service) DeleteFlag(ctx context.Context, key string) error {
	return s.repo.DeleteFlag(ctx, key)
}

// IsEnabled returns true if the flag with the given key is truthy.
func (s *Service) IsEnabled(ctx context.Context, key string) bool {
	return s.GetFlag(ctx, key).BoolValue(false)
}

// Convenience methods for well-known flags.

// IsRemoteFetchDisabled returns true when loading from remote URLs is blocked.
func (s *Service) IsRemoteFetchDisabled(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagDisableRemoteFetch)
}

// IsSampleGeneratorDisabled returns true when the sample dataset is blocked.
func (s *Service) IsSampleGeneratorDisabled(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagDisableSampleGenerator)
}

// MaxUploadBytes returns the current upload size cap.
func (s *Service) MaxUploadBytes(ctx context.Context) int64 {
	return s.GetFlag(ctx, FlagMaxUploadBytes).Int64Value(DefaultMaxUploadBytes)
}
