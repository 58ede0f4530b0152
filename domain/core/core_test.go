package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 1000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		require.False(t, id.IsEmpty(), "generated empty ID at iteration %d", i)
		require.False(t, ids[id], "generated duplicate ID: %s", id)
		ids[id] = true
	}
}

func TestParseRunID(t *testing.T) {
	valid := RunID(NewID())
	parsed, err := ParseRunID(valid.String())
	require.NoError(t, err)
	assert.Equal(t, valid, parsed)

	_, err = ParseRunID("not-a-uuid")
	assert.Error(t, err)

	_, err = ParseRunID("")
	assert.Error(t, err)
}

func TestHashDeterminism(t *testing.T) {
	a := NewHash([]byte("payload"))
	b := NewHash([]byte("payload"))
	c := NewHash([]byte("other"))

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.Len(t, a.String(), 64)
}

func TestTimestampJSONRoundTrip(t *testing.T) {
	orig := NewTimestamp(time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC))

	data, err := json.Marshal(orig)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-14T09:26:53Z"`, string(data))

	var back Timestamp
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, orig.Time().Equal(back.Time()))
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, IsInputError(NewMissingInputError("wind_speed")))
	assert.True(t, IsUnitError(NewIncompatibleUnitError("m/s", "kg")))
	assert.True(t, IsNotFoundError(NewNotFoundError("study", "abc")))

	err := NewUnknownParameterError("gusts")
	assert.True(t, errors.Is(err, ErrUnknownParameter))
	assert.Contains(t, err.Error(), "gusts")
}
