package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("GIFTMATCH_TEST_DIR", "/tmp/campaigns")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty stays empty", in: "", want: ""},
		{name: "plain path unchanged", in: "contacts.csv", want: "contacts.csv"},
		{name: "tilde expands", in: "~/contacts.csv", want: filepath.Join(home, "contacts.csv")},
		{name: "bare tilde expands", in: "~", want: home},
		{name: "env var expands", in: "$GIFTMATCH_TEST_DIR/contacts.csv", want: "/tmp/campaigns/contacts.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
