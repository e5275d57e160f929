package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(files, "sql/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, n := range names {
		base := strings.TrimPrefix(n, "sql/")
		switch {
		case strings.HasSuffix(base, ".up.sql"):
			ups[strings.TrimSuffix(base, ".up.sql")] = true
		case strings.HasSuffix(base, ".down.sql"):
			downs[strings.TrimSuffix(base, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", n)
		}
	}

	assert.Equal(t, ups, downs)
}

func TestOfferLettersSchema(t *testing.T) {
	data, err := files.ReadFile("sql/000001_offer_letters.up.sql")
	require.NoError(t, err)

	ddl := string(data)
	for _, col := range []string{"id", "name", "duration", "start_date", "end_date", "generated_on"} {
		assert.Contains(t, ddl, col)
	}
	assert.Contains(t, ddl, "generated_on date\n")
}
