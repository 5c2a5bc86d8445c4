package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCareerResult_Classification(t *testing.T) {
	found := CareerResult{Company: "Acme", Result: "https://acme.example/careers"}
	assert.True(t, found.Found())
	assert.False(t, found.NotFound())
	assert.False(t, found.Errored())

	notFound := CareerResult{Company: "Globex", Result: "NOT_FOUND"}
	assert.True(t, notFound.NotFound())
	assert.False(t, notFound.Found())

	errored := CareerResult{Company: "Initech", Result: "ERROR"}
	assert.True(t, errored.Errored())
	assert.False(t, errored.Found())
}

func TestWriteCareerReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "career_pages.txt")
	results := []CareerResult{
		{Company: "Acme", Result: "https://acme.example/careers"},
		{Company: "Globex", Result: "NOT_FOUND"},
		{Company: "Initech", Result: "ERROR"},
	}

	require.NoError(t, WriteCareerReport(results, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Company | Career Page URL", lines[0])
	assert.Equal(t, strings.Repeat("=", 60), lines[1])
	assert.Equal(t, "Acme | https://acme.example/careers", lines[2])
	assert.Equal(t, "Globex | NOT_FOUND", lines[3])
	assert.Equal(t, "Initech | ERROR", lines[4])
}

func TestTallyCareers(t *testing.T) {
	tally := TallyCareers([]CareerResult{
		{Result: "https://a.example/jobs"},
		{Result: "https://b.example/careers"},
		{Result: "NOT_FOUND"},
		{Result: "ERROR"},
		{Result: "some unexpected prose"},
	})

	assert.Equal(t, 2, tally.Found)
	assert.Equal(t, 1, tally.NotFound)
	assert.Equal(t, 1, tally.Errors)
}
