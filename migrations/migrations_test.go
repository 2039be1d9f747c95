package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames_Ordered(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_init.sql", names[0])
}

func TestInitSchema_DeclaresUniquenessGuards(t *testing.T) {
	body, err := files.ReadFile("001_init.sql")
	require.NoError(t, err)

	schema := string(body)
	assert.True(t, strings.Contains(schema, "booking_request_id UUID NOT NULL UNIQUE"))
	assert.True(t, strings.Contains(schema, "approval_request_id UUID UNIQUE"))
	assert.True(t, strings.Contains(schema, "PRIMARY KEY (user_id, listing_id)"))
}
