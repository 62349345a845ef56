package iostore_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gnames/gnfish/internal/iostore"
	"github.com/gnames/gnfish/pkg/config"
	"github.com/gnames/gnfish/pkg/errcode"
	"github.com/gnames/gnfish/pkg/species"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) species.Store {
	t.Helper()
	cfg := config.New()
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "species.db")
	st, err := iostore.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func cod() species.Record {
	return species.Record{
		ID:                 species.RecordID("Gadus morhua"),
		CommonName:         "Atlantic Cod",
		ScientificName:     "Gadus morhua",
		FullScientificName: "Gadus morhua Linnaeus, 1758",
		GBIFKey:            8084280,
		VernacularName:     "Atlantic cod",
		MatchQuality:       species.MatchExact,
		ConservationStatus: "Vulnerable",
		CategoryCode:       "VU",
		PopulationTrend:    "Decreasing",
		AssessmentID:       139443,
		YearPublished:      "1996",
	}
}

func TestUpsertInsertUpdate(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	st := newStore(t)
	ctx := context.Background()

	rec, action, err := st.Upsert(ctx, cod())
	require.NoError(err)
	assert.Equal(species.ActionInserted, action)
	assert.Equal(species.RecordID("Gadus morhua"), rec.ID)
	assert.False(rec.CreatedAt.IsZero())
	created := rec.CreatedAt

	upd := cod()
	upd.CommonName = "atlantic cod"
	upd.ConservationStatus = "Least Concern"
	upd.CategoryCode = "LC"
	rec, action, err = st.Upsert(ctx, upd)
	require.NoError(err)
	assert.Equal(species.ActionUpdated, action)
	assert.Equal("LC", rec.CategoryCode)
	assert.True(created.Equal(rec.CreatedAt), "createdAt is preserved")

	n, err := st.Count(ctx)
	require.NoError(err)
	assert.Equal(int64(1), n)
}

func TestUpsertMatchByScientificName(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	st := newStore(t)
	ctx := context.Background()

	_, _, err := st.Upsert(ctx, cod())
	require.NoError(err)

	other := cod()
	other.CommonName = "Cod"
	rec, action, err := st.Upsert(ctx, other)
	require.NoError(err)
	assert.Equal(species.ActionUpdated, action)
	assert.Equal("Cod", rec.CommonName)

	n, err := st.Count(ctx)
	require.NoError(err)
	assert.Equal(int64(1), n)
}

func TestUpsertKeepsSizes(t *testing.T) {
	require := require.New(t)
	st := newStore(t)
	ctx := context.Background()

	length := 200.0
	rec := cod()
	rec.MaxLength = &length
	_, _, err := st.Upsert(ctx, rec)
	require.NoError(err)

	// resolved records have no sizes
	res, _, err := st.Upsert(ctx, cod())
	require.NoError(err)
	require.NotNil(res.MaxLength)
	assert.Equal(t, 200.0, *res.MaxLength)
}

func TestUpsertEmpty(t *testing.T) {
	st := newStore(t)
	_, _, err := st.Upsert(context.Background(), species.Record{CommonName: "x"})
	assert.True(t, species.IsCode(err, errcode.StoreUpsertError))
}

func TestUpsertConcurrent(t *testing.T) {
	require := require.New(t)
	st := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := cod()
			if i%2 == 0 {
				rec = species.Record{
					CommonName:     fmt.Sprintf("Fish %d", i),
					ScientificName: fmt.Sprintf("Genus species%d", i),
				}
			}
			_, _, err := st.Upsert(ctx, rec)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	n, err := st.Count(ctx)
	require.NoError(err)
	assert.Equal(t, int64(5), n)
}

func TestFind(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	st := newStore(t)
	ctx := context.Background()

	_, _, err := st.Upsert(ctx, cod())
	require.NoError(err)

	tests := []struct {
		msg, name string
		found     bool
	}{
		{"common", "Atlantic Cod", true},
		{"common case", "ATLANTIC cod", true},
		{"scientific", "gadus morhua", true},
		{"spaces", "  Atlantic Cod ", true},
		{"miss", "Red Snapper", false},
		{"empty", "", false},
	}

	for _, v := range tests {
		rec, err := st.FindByCommonOrScientificName(ctx, v.name)
		assert.NoError(err, v.msg)
		if !v.found {
			assert.Nil(rec, v.msg)
			continue
		}
		if assert.NotNil(rec, v.msg) {
			assert.Equal("Gadus morhua", rec.ScientificName, v.msg)
			assert.Equal("VU", rec.CategoryCode, v.msg)
		}
	}
}

func TestListAll(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	st := newStore(t)
	ctx := context.Background()

	names := [][2]string{
		{"yellowfin Tuna", "Thunnus albacares"},
		{"Atlantic Cod", "Gadus morhua"},
		{"Mahi-Mahi", "Coryphaena hippurus"},
	}
	for _, v := range names {
		_, _, err := st.Upsert(ctx, species.Record{
			CommonName:     v[0],
			ScientificName: v[1],
		})
		require.NoError(err)
	}

	res, err := st.ListAll(ctx)
	require.NoError(err)
	require.Len(res, 3)
	assert.Equal("Atlantic Cod", res[0].CommonName)
	assert.Equal("Mahi-Mahi", res[1].CommonName)
	assert.Equal("yellowfin Tuna", res[2].CommonName)
}
