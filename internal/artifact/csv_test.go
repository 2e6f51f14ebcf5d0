package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)

	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(cwd)
	})
}

func TestSanitizeCampaignID(t *testing.T) {
	assert.Equal(t, "c1", sanitizeCampaignID("c1"))
	assert.Equal(t, "c_1___", sanitizeCampaignID("c 1!@#"))
}

func TestWriteCSV_CreatesDirectoriesAndFile(t *testing.T) {
	chdirTemp(t)

	path, webPath, err := writeCSV("c1", []string{"topic"}, "out.csv", []string{"a", "b"}, [][]string{{"1", "2"}})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("data", "campaigns", "c1", "topic", "out.csv"), path)
	assert.Equal(t, "/static/campaigns/c1/topic/out.csv", webPath)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a,b")
	assert.Contains(t, string(data), "1,2")
}

func TestCell_NilAndValuePointers(t *testing.T) {
	assert.Equal(t, "", cell((*string)(nil)))

	s := "hello"
	assert.Equal(t, "hello", cell(&s))

	n := 42
	assert.Equal(t, "42", cell(&n))
}

func TestCell_ListsJoinedWithSemicolon(t *testing.T) {
	assert.Equal(t, "a; b; c", cell([]string{"a", "b", "c"}))
	assert.Equal(t, "", cell([]string{}))
}

func TestCell_MapsSerializedAsJSON(t *testing.T) {
	assert.Equal(t, `{"x":1}`, cell(map[string]int{"x": 1}))
	assert.Equal(t, "", cell(map[string]int{}))
}

func TestMsToISO8601(t *testing.T) {
	assert.Equal(t, "", msToISO8601(nil))

	ms := int64(1700000000000)
	result := msToISO8601(&ms)
	assert.NotEmpty(t, result)
	assert.Contains(t, result, "T")
}
