package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func TestSlotLabels(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		step  int
		want  []string
	}{
		{
			name:  "full working day hourly",
			start: "09:00",
			end:   "18:00",
			step:  60,
			want:  []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"},
		},
		{
			name:  "half hour step",
			start: "10:00",
			end:   "12:00",
			step:  30,
			want:  []string{"10:00", "10:30", "11:00", "11:30"},
		},
		{
			name:  "end excluded",
			start: "09:00",
			end:   "10:00",
			step:  60,
			want:  []string{"09:00"},
		},
		{
			name:  "empty day",
			start: "18:00",
			end:   "09:00",
			step:  60,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels, err := SlotLabels(mustTime(t, tt.start), mustTime(t, tt.end), tt.step)
			require.NoError(t, err)

			got := make([]string, 0, len(labels))
			for _, l := range labels {
				got = append(got, l.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotLabelsInvalidStep(t *testing.T) {
	_, err := SlotLabels(mustTime(t, "09:00"), mustTime(t, "18:00"), 0)
	assert.Error(t, err)

	_, err = SlotLabels(mustTime(t, "09:00"), mustTime(t, "18:00"), -15)
	assert.Error(t, err)
}

func TestIsKnownSlotLabel(t *testing.T) {
	labels, err := SlotLabels(mustTime(t, "09:00"), mustTime(t, "12:00"), 60)
	require.NoError(t, err)

	assert.True(t, IsKnownSlotLabel(mustTime(t, "10:00"), labels))
	assert.False(t, IsKnownSlotLabel(mustTime(t, "10:30"), labels))
	assert.False(t, IsKnownSlotLabel(mustTime(t, "12:00"), labels))
}

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()
	assert.Equal(t, DefaultSlotCapacity, policy.MaxCapacity)
	assert.True(t, policy.IsActive)
	assert.Nil(t, policy.Reason)
}

func TestPolicyFromConfig(t *testing.T) {
	// nil-конфигурация означает отсутствие переопределения
	assert.Equal(t, DefaultPolicy(), PolicyFromConfig(nil))

	reason := "санитарный день"
	cfg := &TimeSlotConfig{
		MaxCapacity: 5,
		IsActive:    false,
		Reason:      &reason,
	}

	policy := PolicyFromConfig(cfg)
	assert.Equal(t, 5, policy.MaxCapacity)
	assert.False(t, policy.IsActive)
	require.NotNil(t, policy.Reason)
	assert.Equal(t, reason, *policy.Reason)
}

func TestPolicyRejectionReason(t *testing.T) {
	assert.Equal(t, ReasonSlotUnavailable, Policy{}.RejectionReason())

	empty := ""
	assert.Equal(t, ReasonSlotUnavailable, Policy{Reason: &empty}.RejectionReason())

	custom := "оборудование на обслуживании"
	assert.Equal(t, custom, Policy{Reason: &custom}.RejectionReason())
}
