package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "minutes", input: "30m", want: 30 * time.Minute},
		{name: "hours and minutes", input: "1h30m", want: 90 * time.Minute},
		{name: "days", input: "2d", want: 48 * time.Hour},
		{name: "days and hours", input: "1d12h", want: 36 * time.Hour},
		{name: "spaces around", input: " 45m ", want: 45 * time.Minute},
		{name: "empty", input: "", wantErr: true},
		{name: "zero", input: "0m", wantErr: true},
		{name: "negative", input: "-1h", wantErr: true},
		{name: "invalid day segment", input: "xd", wantErr: true},
		{name: "garbage", input: "soon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
