package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreTimestampShapes(t *testing.T) {
	cases := map[string]time.Time{
		`{"_seconds":1717200000,"_nanoseconds":500000000}`: time.Unix(1717200000, 500000000).UTC(),
		`"2024-06-01T00:00:00Z"`:                             time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		`1717200000000`:                                      time.UnixMilli(1717200000000).UTC(),
		`null`:                                               {},
		`""`:                                                 {},
	}
	for raw, want := range cases {
		var ts StoreTimestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)
		assert.True(t, want.Equal(ts.Time), raw)
	}
}

func TestStoreTimestampMissingField(t *testing.T) {
	var course Course
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c1","title":"Go"}`), &course))
	assert.True(t, course.CreatedAt.IsZero())
}

func TestAmountAcceptsNumberOrString(t *testing.T) {
	var c Course
	require.NoError(t, json.Unmarshal([]byte(`{"fees":4999}`), &c))
	assert.Equal(t, Amount("4999"), c.Fees)
	require.NoError(t, json.Unmarshal([]byte(`{"fees":"5000"}`), &c))
	assert.Equal(t, "5000", c.Fees.String())
}

func TestApplicationStatusNormalize(t *testing.T) {
	assert.Equal(t, ApplicationStatusPending, ApplicationStatus("").Normalize())
	assert.Equal(t, ApplicationStatusSelected, ApplicationStatusSelected.Normalize())
	assert.False(t, ApplicationStatus("UNKNOWN").Valid())
}
