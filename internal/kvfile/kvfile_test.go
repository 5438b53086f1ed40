package kvfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-ini/ini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thejimmylin/f5project/internal/kvfile"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")

	err := kvfile.Write(path, []kvfile.Section{
		{Name: "Core", Entries: []kvfile.Entry{{Key: "Entry", Value: "https://x"}}},
		{Name: "Api", Entries: []kvfile.Entry{{Key: "Key", Value: "k"}, {Key: "Secret", Value: "s"}}},
	})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[Core]\nEntry = https://x\n[Api]\nKey = k\nSecret = s\n", string(b))
}

func TestWrite_KeepsIniSettings(t *testing.T) {
	format, equal := ini.PrettyFormat, ini.PrettyEqual
	defer func() { ini.PrettyFormat, ini.PrettyEqual = format, equal }()

	ini.PrettyFormat, ini.PrettyEqual = true, false

	path := filepath.Join(t.TempDir(), "config.ini")
	err := kvfile.Write(path, []kvfile.Section{
		{Name: "Api", Entries: []kvfile.Entry{{Key: "Key", Value: "k"}, {Key: "Secret", Value: "s"}}},
	})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[Api]\nKey = k\nSecret = s\n", string(b))

	assert.True(t, ini.PrettyFormat)
	assert.False(t, ini.PrettyEqual)
}

func TestWriteRead(t *testing.T) {
	cases := []struct {
		name     string
		sections []kvfile.Section
	}{
		{
			name: "single section",
			sections: []kvfile.Section{
				{Name: "User", Entries: []kvfile.Entry{{Key: "Account", Value: "12345"}}},
			},
		},
		{
			name: "order and case kept",
			sections: []kvfile.Section{
				{Name: "Zeta", Entries: []kvfile.Entry{{Key: "b", Value: "1"}, {Key: "A", Value: "2"}}},
				{Name: "alpha", Entries: []kvfile.Entry{{Key: "CamelCase", Value: "3"}, {Key: "lower", Value: "4"}}},
			},
		},
		{
			name: "comment characters in values",
			sections: []kvfile.Section{
				{Name: "Api", Entries: []kvfile.Entry{{Key: "Secret", Value: "abc#def;ghi"}}},
			},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.ini")
			require.NoError(t, kvfile.Write(path, tt.sections))

			got, err := kvfile.Read(path)
			require.NoError(t, err)
			assert.Equal(t, tt.sections, got)
		})
	}
}

func TestSection_Get(t *testing.T) {
	s := kvfile.Section{Name: "Api", Entries: []kvfile.Entry{{Key: "Key", Value: "k"}}}

	v, ok := s.Get("Key")
	assert.True(t, ok)
	assert.Equal(t, "k", v)

	_, ok = s.Get("key")
	assert.False(t, ok)
}
