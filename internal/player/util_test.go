package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"--volume=50", []string{"--volume=50"}},
		{"  --volume=50   --mute=no ", []string{"--volume=50", "--mute=no"}},
		{`--title="my player" --af=loudnorm`, []string{"--title=my player", "--af=loudnorm"}},
		{`--ao='pulse alsa'`, []string{"--ao=pulse alsa"}},
		{`--title="it's fine"`, []string{"--title=it's fine"}},
		{`""`, []string{""}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseArgs(tt.in), "ParseArgs(%q)", tt.in)
	}
}
