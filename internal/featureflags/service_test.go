package featureflags_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashankpm7/aqi-dashboard/internal/featureflags"
)

func newService() *featureflags.Service {
	return featureflags.NewService(featureflags.ServiceConfig{
		Repository: featureflags.NewMemoryRepository(),
		Logger:     zerolog.Nop(),
	})
}

func TestServiceDefaults(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	assert.False(t, svc.IsRemoteFetchDisabled(ctx))
	assert.False(t, svc.IsSampleGeneratorDisabled(ctx))
	assert.Equal(t, int64(featureflags.DefaultMaxUploadBytes), svc.MaxUploadBytes(ctx))
}

func TestServiceSetAndGet(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	err := svc.SetFlag(ctx, &featureflags.Flag{
		Key:   featureflags.FlagDisableRemoteFetch,
		Value: true,
	})
	require.NoError(t, err)

	assert.True(t, svc.IsRemoteFetchDisabled(ctx))

	flag := svc.GetFlag(ctx, featureflags.FlagDisableRemoteFetch)
	require.NotNil(t, flag)
	assert.False(t, flag.UpdatedAt.IsZero())
}

func TestServiceUnknownKey(t *testing.T) {
	svc := newService()
	assert.Nil(t, svc.GetFlag(context.Background(), "no_such_flag"))
	assert.False(t, svc.IsEnabled(context.Background(), "no_such_flag"))
}

func TestServiceGetAllFlagsMergesOverrides(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.SetFlag(ctx, &featureflags.Flag{
		Key:   featureflags.FlagDisableSampleGenerator,
		Value: true,
	}))

	all := svc.GetAllFlags(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, true, all[featureflags.FlagDisableSampleGenerator].Value)
	assert.Equal(t, false, all[featureflags.FlagDisableRemoteFetch].Value)
}

func TestServiceSetFlags(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	err := svc.SetFlags(ctx, []*featureflags.Flag{
		{Key: featureflags.FlagDisableRemoteFetch, Value: true},
		{Key: featureflags.FlagMaxUploadBytes, Value: float64(1024)},
	})
	require.NoError(t, err)

	assert.True(t, svc.IsRemoteFetchDisabled(ctx))
	assert.Equal(t, int64(1024), svc.MaxUploadBytes(ctx))
}

func TestServiceDeleteFlagRevertsToDefault(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.SetFlag(ctx, &featureflags.Flag{
		Key:   featureflags.FlagMaxUploadBytes,
		Value: float64(1024),
	}))
	assert.Equal(t, int64(1024), svc.MaxUploadBytes(ctx))

	require.NoError(t, svc.DeleteFlag(ctx, featureflags.FlagMaxUploadBytes))
	assert.Equal(t, int64(featureflags.DefaultMaxUploadBytes), svc.MaxUploadBytes(ctx))

	assert.ErrorIs(t, svc.DeleteFlag(ctx, featureflags.FlagMaxUploadBytes), featureflags.ErrFlagNotFound)
}

func TestFlagValueHelpers(t *testing.T) {
	var nilFlag *featureflags.Flag
	assert.True(t, nilFlag.BoolValue(true))
	assert.Equal(t, int64(7), nilFlag.Int64Value(7))

	f := &featureflags.Flag{Value: float64(1)}
	assert.True(t, f.BoolValue(false))
	assert.Equal(t, int64(1), f.Int64Value(0))

	f = &featureflags.Flag{Value: "nope"}
	assert.False(t, f.BoolValue(false))
	assert.Equal(t, int64(3), f.Int64Value(3))
}
