package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeTable_SetPreservesInsertionOrder(t *testing.T) {
	var table GradeTable
	table.Set("PSA 10", "$1,500.00")
	table.Set("PSA 9", "$400.00")
	table.Set("PSA 8", "$150.00")

	// Overwriting an existing label keeps its original position.
	table.Set("PSA 9", "$425.00")

	entries := table.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, GradeEntry{Label: "PSA 9", Value: "$425.00"}, entries[1])
}

func TestGradeTable_Get(t *testing.T) {
	var table GradeTable
	table.Set("PSA 10", "$1,500.00")

	value, ok := table.Get("PSA 10")
	require.True(t, ok)
	assert.Equal(t, "$1,500.00", value)

	_, ok = table.Get("psa 10")
	assert.False(t, ok, "lookup is exact, not case-folded")
}

func TestGradeTable_JSONRoundTrip(t *testing.T) {
	var table GradeTable
	table.Set("PSA 10", "$1,500.00")
	table.Set("PSA 9", "$400.00")

	data, err := json.Marshal(table)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"label":"PSA 10","value":"$1,500.00"},
		{"label":"PSA 9","value":"$400.00"}
	]`, string(data))

	var decoded GradeTable
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, table.Entries(), decoded.Entries())
}

func TestGradeTable_EmptyMarshalsAsArray(t *testing.T) {
	var record CertRecord
	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price_table":[]`)
}
