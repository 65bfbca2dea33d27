package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArgs(t *testing.T) {
	args := map[string]interface{}{"a": "x", "n": 3.0}

	assert.Equal(t, "x", StringArg(args, "a"))
	assert.Equal(t, "", StringArg(args, "n"))
	assert.Equal(t, "", StringArg(nil, "a"))

	v, err := RequiredString(args, "a")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	_, err = RequiredString(args, "missing")
	assert.EqualError(t, err, "missing is required")
}

func TestBoolAndIntArgs(t *testing.T) {
	args := map[string]interface{}{"b": true, "f": false, "n": 25.0, "s": "7"}

	assert.True(t, BoolArg(args, "b"))
	assert.False(t, BoolArg(args, "missing"))

	require.NotNil(t, OptionalBool(args, "f"))
	assert.False(t, *OptionalBool(args, "f"))
	assert.Nil(t, OptionalBool(args, "missing"))

	assert.Equal(t, 25, IntArg(args, "n", 10))
	assert.Equal(t, 10, IntArg(args, "missing", 10))
	assert.Equal(t, 10, IntArg(args, "s", 10))
}

func TestStringListArg(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    []string
		wantErr bool
	}{
		{name: "absent", value: nil, want: nil},
		{name: "comma separated", value: "a@example.com, b@example.com,", want: []string{"a@example.com", "b@example.com"}},
		{name: "array", value: []interface{}{"INBOX", " UNREAD "}, want: []string{"INBOX", "UNREAD"}},
		{name: "array with non-string", value: []interface{}{"INBOX", 1}, wantErr: true},
		{name: "wrong type", value: 12.0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StringListArg(map[string]interface{}{"k": tt.value}, "k")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeArg(t *testing.T) {
	got, err := TimeArg(map[string]interface{}{"t": "2025-03-01T10:00:00+01:00"}, "t")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)))

	got, err = TimeArg(map[string]interface{}{"t": "2025-03-01"}, "t")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = TimeArg(nil, "t")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = TimeArg(map[string]interface{}{"t": "tomorrow"}, "t")
	assert.Error(t, err)
}
