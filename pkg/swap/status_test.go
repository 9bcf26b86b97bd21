package swap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from     Status
		to       Status
		expected bool
	}{
		{StatusMakePending, StatusTakePending, true},
		{StatusTakePending, StatusAcceptPending, true},
		{StatusAcceptPending, StatusComplete, true},
		{StatusMakePending, StatusFailed, true},
		{StatusAcceptPending, StatusFailed, true},
		{StatusMakePending, StatusComplete, false},
		{StatusAcceptPending, StatusTakePending, false},
		{StatusComplete, StatusFailed, false},
		{StatusFailed, StatusMakePending, false},
		{Status("UNKNOWN"), StatusFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			require.Equal(t, tt.expected, tt.from.CanMoveTo(tt.to))
		})
	}
}
