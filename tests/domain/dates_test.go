package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexDateUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantDate  string
		wantErr   bool
	}{
		{
			name:      "rfc3339 timestamp",
			input:     `"2026-03-10T14:30:00Z"`,
			wantValid: true,
			wantDate:  "2026-03-10",
		},
		{
			name:      "millisecond timestamp",
			input:     `"2026-03-10T14:30:00.000Z"`,
			wantValid: true,
			wantDate:  "2026-03-10",
		},
		{
			name:      "plain date",
			input:     `"2026-03-10"`,
			wantValid: true,
			wantDate:  "2026-03-10",
		},
		{
			name:      "us style date",
			input:     `"03/10/2026"`,
			wantValid: true,
			wantDate:  "2026-03-10",
		},
		{
			name:      "null",
			input:     `null`,
			wantValid: false,
		},
		{
			name:      "empty string",
			input:     `""`,
			wantValid: false,
		},
		{
			name:    "garbage",
			input:   `"next tuesday"`,
			wantErr: true,
		},
		{
			name:    "number",
			input:   `1234567890`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d domain.FlexDate
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, d.Valid)
			if tt.wantValid {
				assert.Equal(t, tt.wantDate, d.Time.Format("2006-01-02"))
			}
		})
	}
}

func TestFlexDateMarshal(t *testing.T) {
	d := domain.NewFlexDate(time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC))
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-10"`, string(out))

	var unset domain.FlexDate
	out, err = json.Marshal(unset)
	require.NoError(t, err)
	assert.Equal(t, `null`, string(out))
}

func TestFlexDatePtr(t *testing.T) {
	var unset domain.FlexDate
	assert.Nil(t, unset.Ptr())

	set := domain.NewFlexDate(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	ptr := set.Ptr()
	require.NotNil(t, ptr)
	assert.Equal(t, set.Time, *ptr)

	back := domain.FlexDateFrom(ptr)
	assert.True(t, back.Valid)
	assert.Equal(t, set.Time, back.Time)

	assert.False(t, domain.FlexDateFrom(nil).Valid)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", domain.FormatDate(nil))

	d := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-10", domain.FormatDate(&d))
}
