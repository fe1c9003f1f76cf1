package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		content string
		want    Command
		ok      bool
		wantErr bool
	}{
		{name: "countdown default", content: "!countdown", want: Command{Kind: KindCountdown}, ok: true},
		{name: "countdown minutes", content: "!countdown 5", want: Command{Kind: KindCountdown, Minutes: 5}, ok: true},
		{name: "case insensitive", content: "  !CountDown 15 ", want: Command{Kind: KindCountdown, Minutes: 15}, ok: true},
		{name: "zero minutes", content: "!countdown 0", want: Command{Kind: KindCountdown}, ok: true},
		{name: "stop", content: "!stop", want: Command{Kind: KindStop}, ok: true},
		{name: "pause", content: "!pause", want: Command{Kind: KindPause}, ok: true},
		{name: "resume", content: "!resume", want: Command{Kind: KindResume}, ok: true},
		{name: "status", content: "!status", want: Command{Kind: KindStatus}, ok: true},
		{name: "custom prefix", prefix: "t.", content: "t.stop", want: Command{Kind: KindStop}, ok: true},
		{name: "other prefix ignored", prefix: "t.", content: "!stop"},
		{name: "plain text", content: "hello"},
		{name: "prefix only", content: "!"},
		{name: "unknown command", content: "!dance", want: Command{Kind: KindUnknown}, ok: true},
		{name: "bad minutes", content: "!countdown soon", want: Command{Kind: KindCountdown}, ok: true, wantErr: true},
		{name: "negative minutes", content: "!countdown -3", want: Command{Kind: KindCountdown}, ok: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Parse(tt.prefix, tt.content)
			assert.Equal(t, tt.ok, ok)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "countdown", KindCountdown.String())
	assert.Equal(t, "status", KindStatus.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
