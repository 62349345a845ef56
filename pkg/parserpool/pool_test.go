package parserpool_test

import (
	"sync"
	"testing"

	"github.com/gnames/gnfish/pkg/parserpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewPool verifies pool creation with default and custom sizes.
func TestNewPool(t *testing.T) {
	for _, jobs := range []int{0, 1, 4} {
		pool := parserpool.NewPool(jobs)
		require.NotNil(t, pool)

		res := pool.Parse("Gadus morhua")
		assert.True(t, res.Parsed, "jobs %d", jobs)
		pool.Close()
	}
}

func TestCanonical(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	tests := []struct {
		msg, name, canonical string
		ok                   bool
	}{
		{"binomial", "Gadus morhua", "Gadus morhua", true},
		{"with authorship", "Gadus morhua Linnaeus, 1758",
			"Gadus morhua", true},
		{"with parenthesized authorship",
			"Thunnus albacares (Bonnaterre, 1788)",
			"Thunnus albacares", true},
		{"trinomial", "Oncorhynchus mykiss irideus (Gibbons, 1855)",
			"Oncorhynchus mykiss irideus", true},
		{"empty", "", "", false},
	}

	for _, v := range tests {
		res, ok := pool.Canonical(v.name)
		assert.Equal(t, v.ok, ok, v.msg)
		assert.Equal(t, v.canonical, res, v.msg)
	}
}

// TestParse_Concurrent verifies the pool is safe for concurrent use.
func TestParse_Concurrent(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	names := []string{
		"Gadus morhua Linnaeus, 1758",
		"Salmo salar Linnaeus, 1758",
		"Thunnus albacares (Bonnaterre, 1788)",
		"Lutjanus campechanus (Poey, 1860)",
		"Coryphaena hippurus Linnaeus, 1758",
	}

	var wg sync.WaitGroup
	results := make([]string, len(names)*4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = pool.Canonical(names[i%len(names)])
		}(i)
	}
	wg.Wait()

	for i, v := range results {
		assert.NotEmpty(t, v, "name %d", i)
	}
}
