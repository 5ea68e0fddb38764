package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations_Ordered(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)
}

func TestSchema_ForeignKeyRules(t *testing.T) {
	b, err := fs.ReadFile(migrationsFS, "migrations/000001_init_schema.up.sql")
	require.NoError(t, err)
	schema := string(b)

	assert.Contains(t, schema, "category_id INT NOT NULL REFERENCES categories (id) ON DELETE RESTRICT")
	assert.Contains(t, schema, "order_id     INT NOT NULL REFERENCES orders (id) ON DELETE CASCADE")
	assert.Contains(t, schema, "product_id   INT NOT NULL REFERENCES products (id) ON DELETE RESTRICT")
}

func TestSeedMigration_MatchesInMemorySeed(t *testing.T) {
	b, err := fs.ReadFile(migrationsFS, "migrations/000002_seed_catalog.up.sql")
	require.NoError(t, err)
	seedSQL := string(b)

	for _, c := range SeedCategories() {
		assert.True(t, strings.Contains(seedSQL, "'"+c.Name+"'"), "category %q missing from seed migration", c.Name)
	}
	for _, p := range SeedProducts() {
		assert.True(t, strings.Contains(seedSQL, "'"+p.Name+"'"), "product %q missing from seed migration", p.Name)
		assert.True(t, strings.Contains(seedSQL, p.Price.StringFixed(2)), "price of %q missing from seed migration", p.Name)
	}
	assert.Len(t, SeedProducts(), 10)
	assert.Len(t, CategoryNames(SeedCategories()), 5)
}
