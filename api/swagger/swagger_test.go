package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocDescribesAPI(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Info  map[string]string          `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "NEMI Admin API", doc.Info["title"])
	for _, path := range []string{"/api/dashboard", "/api/reports/{type}", "/api/programs/{id}", "/api/attendance/checkin"} {
		assert.Contains(t, doc.Paths, path)
	}
}
