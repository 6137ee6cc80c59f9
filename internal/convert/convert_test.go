package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/config"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/export"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/manifest"
)

func loadDoc(t *testing.T, raw string) *export.Document {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "conversations.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	doc, err := export.LoadFile(path)
	require.NoError(t, err)
	return doc
}

const twoConversations = `[
	{
		"title": "Test Chat",
		"create_time": 1736942400,
		"mapping": {
			"n1": {"message": {"author":{"role":"user"},"content":{"text":"Hello"},"create_time":1736942400}},
			"n2": {"message": {"author":{"role":"assistant"},"content":{"text":"Hi there"},"create_time":1736942460}}
		}
	},
	{
		"title": "Second Chat",
		"create_time": 1736942400,
		"mapping": {
			"m1": {"message": {"author":{"role":"user"},"content":{"text":"Ping"},"create_time":1736942400}}
		}
	}
]`

func newConverter(t *testing.T) (*Converter, string) {
	t.Helper()
	out := t.TempDir()
	cfg := config.Default()
	cfg.OrganizationMode = "flat"
	cfg.OutputDirectory = out
	cfg.UseFrontmatter = false
	return &Converter{
		Config:     cfg,
		ExportRoot: t.TempDir(),
		Quiet:      true,
	}, out
}

func TestRunEndToEnd(t *testing.T) {
	conv, out := newConverter(t)
	doc := loadDoc(t, twoConversations)

	stats := conv.Run(doc)
	assert.Equal(t, 2, stats.Conversations)
	assert.Equal(t, 2, stats.Converted)
	assert.Zero(t, stats.Skipped)
	assert.Zero(t, stats.Errors)

	data, err := os.ReadFile(filepath.Join(out, "Test_Chat.md"))
	require.NoError(t, err)
	text := string(data)

	dateIdx := strings.Index(text, "<sub>")
	ruleIdx := strings.Index(text, "---")
	userIdx := strings.Index(text, "**User**\n\nHello")
	asstIdx := strings.Index(text, "**ChatGPT**\n\nHi there")

	require.GreaterOrEqual(t, dateIdx, 0)
	require.Greater(t, ruleIdx, dateIdx)
	require.Greater(t, userIdx, ruleIdx)
	require.Greater(t, asstIdx, userIdx)

	assert.FileExists(t, filepath.Join(out, "Second_Chat.md"))
}

func TestRunSkipsEmptyMapping(t *testing.T) {
	conv, out := newConverter(t)
	doc := loadDoc(t, `[
		{"title": "No Mapping"},
		{"title": "Real", "mapping": {
			"n1": {"message": {"author":{"role":"user"},"content":{"text":"hi"},"create_time":1}}
		}}
	]`)

	stats := conv.Run(doc)
	assert.Equal(t, 2, stats.Conversations)
	assert.Equal(t, 1, stats.Converted)
	assert.Equal(t, 1, stats.Skipped)
	assert.FileExists(t, filepath.Join(out, "Real.md"))
	assert.NoFileExists(t, filepath.Join(out, "No_Mapping.md"))
}

func TestRunCountsMalformedEntries(t *testing.T) {
	conv, _ := newConverter(t)
	doc := loadDoc(t, `["bogus", {"title":"Real","mapping":{
		"n1": {"message": {"author":{"role":"user"},"content":{"text":"hi"},"create_time":1}}
	}}]`)

	stats := conv.Run(doc)
	assert.Equal(t, 1, stats.Converted)
	assert.Equal(t, 1, stats.Skipped)
}

func TestRunOverwritesExistingMarkdown(t *testing.T) {
	conv, out := newConverter(t)
	doc := loadDoc(t, twoConversations)

	stale := filepath.Join(out, "Test_Chat.md")
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o644))

	conv.Run(doc)

	data, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(data))
}

func TestRunHybridOrganization(t *testing.T) {
	conv, out := newConverter(t)
	conv.Config.OrganizationMode = "hybrid"
	conv.Config.UseFrontmatter = false

	raw := `[{
		"title": "Starred Chat",
		"is_starred": true,
		"create_time": %s,
		"mapping": {
			"n1": {"message": {"author":{"role":"user"},"content":{"text":"hi"},"create_time":1736942400}}
		}
	}]`
	doc := loadDoc(t, strings.Replace(raw, "%s", "1736942400", 1))

	stats := conv.Run(doc)
	assert.Equal(t, 1, stats.Converted)

	var found string
	filepath.Walk(filepath.Join(out, "Starred"), func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && strings.HasSuffix(path, ".md") {
			found = path
		}
		return nil
	})
	require.NotEmpty(t, found)
	assert.Equal(t, "Starred_Chat.md", filepath.Base(found))
}

func TestRunCopiesAttachmentsOnce(t *testing.T) {
	conv, out := newConverter(t)
	require.NoError(t, os.WriteFile(filepath.Join(conv.ExportRoot, "file-P1-pic.png"), []byte("png"), 0o644))

	raw := `[{
		"title": "Pic Chat",
		"mapping": {
			"n1": {"message": {"author":{"role":"user"},"content":{"parts":[
				{"content_type":"image_asset_pointer","asset_pointer":"file-service://file-P1"}
			]},"create_time":1}}
		}
	}]`

	stats := conv.Run(loadDoc(t, raw))
	assert.Equal(t, 1, stats.Assets)

	// second run: markdown rewritten, asset untouched
	stats = conv.Run(loadDoc(t, raw))
	assert.Equal(t, 1, stats.Assets)

	entries, err := os.ReadDir(filepath.Join(out, "Assets", "Images"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunRecordsManifest(t *testing.T) {
	conv, out := newConverter(t)

	db, err := manifest.OpenAt(out)
	require.NoError(t, err)
	defer db.Close()

	runID, err := db.BeginRun("in", out)
	require.NoError(t, err)
	conv.Manifest = db
	conv.RunID = runID

	stats := conv.Run(loadDoc(t, twoConversations))
	require.NoError(t, db.FinishRun(runID, stats.Converted, stats.Assets, stats.Errors))

	files, err := db.FileCount()
	require.NoError(t, err)
	assert.Equal(t, 2, files)

	last, err := db.LastRun()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, 2, last.Conversations)
}

func TestRunMalformedMessageDoesNotAbort(t *testing.T) {
	conv, out := newConverter(t)
	doc := loadDoc(t, `[{
		"title": "Odd",
		"mapping": {
			"n1": {"message": {"author":{"role":"user"},"content":{"mystery":[1,2]},"create_time":1}},
			"n2": {"message": {"author":{"role":"user"},"content":{"text":"fine"},"create_time":2}}
		}
	}]`)

	stats := conv.Run(doc)
	assert.Equal(t, 1, stats.Converted)
	assert.Zero(t, stats.Errors)

	data, err := os.ReadFile(filepath.Join(out, "Odd.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "fine")
}

func TestStatsString(t *testing.T) {
	s := Stats{Conversations: 3, Converted: 2, Skipped: 1, Assets: 4}
	assert.Equal(t, "conversations=3 converted=2 skipped=1 assets=4 errors=0", s.String())
}
