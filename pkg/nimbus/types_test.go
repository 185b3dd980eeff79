package nimbus_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-cloud/nimbus-client/pkg/nimbus"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want time.Time
	}{
		{
			name: "rfc3339 string",
			data: `"2025-03-18T09:30:00Z"`,
			want: time.Date(2025, 3, 18, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "rfc3339 with offset",
			data: `"2025-03-18T11:30:00+02:00"`,
			want: time.Date(2025, 3, 18, 11, 30, 0, 0, time.FixedZone("", 2*3600)),
		},
		{
			name: "epoch seconds",
			data: `1742290200`,
			want: time.Date(2025, 3, 18, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "fractional epoch seconds",
			data: `1742290200.5`,
			want: time.Date(2025, 3, 18, 9, 30, 0, 500000000, time.UTC),
		},
		{
			name: "epoch seconds as string",
			data: `"1742290200"`,
			want: time.Date(2025, 3, 18, 9, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ts nimbus.Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.data), &ts))
			assert.True(t, ts.Equal(tt.want), "got %v, want %v", ts.Time, tt.want)
		})
	}
}

func TestTimestamp_UnmarshalJSON_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "free text", data: `"yesterday"`},
		{name: "wrong layout", data: `"18/03/2025 09:30"`},
		{name: "boolean", data: `true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ts nimbus.Timestamp
			err := json.Unmarshal([]byte(tt.data), &ts)
			require.Error(t, err)

			malformedErr := &nimbus.MalformedResponseError{}
			require.ErrorAs(t, err, &malformedErr)
			assert.Equal(t, "timestamp", malformedErr.Field)
		})
	}
}

func TestTimestamp_UnmarshalJSON_Null(t *testing.T) {
	t.Parallel()

	var ts nimbus.Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("set value emits rfc3339", func(t *testing.T) {
		t.Parallel()

		ts := nimbus.NewTimestamp(time.Date(2025, 3, 18, 9, 30, 0, 0, time.UTC))

		data, err := json.Marshal(ts)
		require.NoError(t, err)
		assert.Equal(t, `"2025-03-18T09:30:00Z"`, string(data))
	})

	t.Run("zero value emits null", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(nimbus.Timestamp{})
		require.NoError(t, err)
		assert.Equal(t, `null`, string(data))
	})
}

func TestTimestamp_RoundTrip(t *testing.T) {
	t.Parallel()

	original := nimbus.NewTimestamp(time.Date(2025, 3, 18, 9, 30, 0, 0, time.UTC))

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var restored nimbus.Timestamp
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.True(t, restored.Equal(original.Time))
}

func TestPointerHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "x", *nimbus.String("x"))
	assert.Equal(t, int64(7), *nimbus.Int64(7))
	assert.Equal(t, int32(0), *nimbus.Int32(0))
	assert.True(t, *nimbus.Bool(true))
}
