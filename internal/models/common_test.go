package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONAcceptsDateAndTimestamp(t *testing.T) {
	var payload struct {
		A Date `json:"a"`
		B Date `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"2024-03-09","b":"2024-03-09T22:15:00Z"}`), &payload))

	assert.Equal(t, "2024-03-09", payload.A.String())
	assert.Equal(t, "2024-03-09", payload.B.String())

	out, err := json.Marshal(payload.A)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-09"`, string(out))
}

func TestDateRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"09/03/2024"`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-31", d.String())

	require.NoError(t, d.Scan([]byte("2023-12-01")))
	assert.Equal(t, "2023-12-01", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestListParamsNormalize(t *testing.T) {
	assert.Equal(t, ListParams{Limit: 100, Offset: 0}, ListParams{Limit: 0, Offset: -4}.Normalize())
	assert.Equal(t, ListParams{Limit: MaxListLimit, Offset: 10}, ListParams{Limit: 10000, Offset: 10}.Normalize())
}
