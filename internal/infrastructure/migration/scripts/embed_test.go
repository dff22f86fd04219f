package scripts

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedScripts(t *testing.T) {
	mysql, err := fs.Glob(MySQL, "mysql/*.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, mysql)

	ups, err := fs.Glob(Postgres, "postgres/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(Postgres, "postgres/*.down.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
