package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout/jobscout-cli/internal/config"
)

// chdirT is t.Chdir for toolchains predating Go 1.24.
func chdirT(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}

func TestResolveCareersInput(t *testing.T) {
	chdirT(t, t.TempDir())
	cfg = &config.Config{Careers: config.CareersConfig{InputFile: "company_list.txt"}}
	t.Cleanup(func() { cfg = nil; careersInput = "" })

	// Nothing exists: the configured default is returned as-is.
	assert.Equal(t, "company_list.txt", resolveCareersInput())

	// A candidate file appears.
	require.NoError(t, os.WriteFile("job_name_list.txt", []byte("Acme\n"), 0o644))
	assert.Equal(t, "job_name_list.txt", resolveCareersInput())

	// The configured file wins over candidates.
	require.NoError(t, os.WriteFile("company_list.txt", []byte("Acme\n"), 0o644))
	assert.Equal(t, "company_list.txt", resolveCareersInput())

	// The flag wins over everything.
	careersInput = "explicit.txt"
	assert.Equal(t, "explicit.txt", resolveCareersInput())
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short"))

	long := strings.Repeat("x", 150)
	got := preview(long)
	assert.Len(t, got, 103)
	assert.True(t, strings.HasSuffix(got, "..."))
}
