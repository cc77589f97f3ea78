package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate flag and value",
			args:    []string{"-d", "dsn", "-x", "other"},
			allowed: []string{"-d"},
			want:    []string{"-d", "dsn"},
		},
		{
			name:    "combined form",
			args:    []string{"--config=conf.json", "--other=skip"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag without value",
			args:    []string{"-d", "-o", "5"},
			allowed: []string{"-d"},
			want:    []string{"-d"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-d", "dsn"},
			allowed: []string{},
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowed)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"cmd", "-c", "conf.json"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"cmd"}
	assert.Equal(t, "", JsonConfigFlags())
}
