package dataset_test

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashankpm7/aqi-dashboard/internal/dataset"
)

func TestStoreEmpty(t *testing.T) {
	store := dataset.NewStore(zerolog.Nop())

	_, err := store.Current()
	assert.ErrorIs(t, err, dataset.ErrNoDataset)
}

func TestStoreReplaceAndCurrent(t *testing.T) {
	store := dataset.NewStore(zerolog.Nop())
	ds := testDataset()

	prev := store.Replace(ds)
	assert.Nil(t, prev)

	got, err := store.Current()
	require.NoError(t, err)
	assert.Same(t, ds, got)
}

func TestStoreReplaceReturnsPrevious(t *testing.T) {
	store := dataset.NewStore(zerolog.Nop())
	first := testDataset()
	second := testDataset()

	store.Replace(first)
	prev := store.Replace(second)
	assert.Same(t, first, prev)

	got, err := store.Current()
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestStoreClear(t *testing.T) {
	store := dataset.NewStore(zerolog.Nop())
	store.Replace(testDataset())
	store.Clear()

	_, err := store.Current()
	assert.ErrorIs(t, err, dataset.ErrNoDataset)

	// Clearing twice is fine.
	store.Clear()
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := dataset.NewStore(zerolog.Nop())
	store.Replace(testDataset())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Replace(testDataset())
		}()
		go func() {
			defer wg.Done()
			if ds, err := store.Current(); err == nil {
				_ = ds.Len()
			}
		}()
	}
	wg.Wait()

	_, err := store.Current()
	assert.NoError(t, err)
}
