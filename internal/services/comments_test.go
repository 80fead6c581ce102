package services

import (
	"context"
	"os"
	"path/filepath"
	"staticcomments/internal/config"
	"staticcomments/internal/site"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newCommentSite(t *testing.T, failOnError bool) (*site.Site, *config.Config, *observer.ObservedLogs) {
	t.Helper()
	cfg := config.Default()
	cfg.SiteDir = t.TempDir()
	cfg.SiteURL = "https://blog.example.com"
	cfg.SiteTitle = "Example"
	cfg.FailOnCommentError = failOnError

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	return NewSite(cfg, logger), cfg, logs
}

func yamlComment(id, replyingTo, date, message string) string {
	return "_id: " + id + "\nauthor: " + id + "\ndate: " + date + "\nreplying_to_id: '" + replyingTo + "'\nmessage: " + message + "\n"
}

func TestCommentService_Build(t *testing.T) {
	s, cfg, _ := newCommentSite(t, true)
	posts := cfg.PostsPath()
	writeFile(t, filepath.Join(posts, "hello.md"), "---\ntitle: Hello\ndate: 2024-01-01\n---\nbody\n")
	writeFile(t, filepath.Join(posts, "hello.md.comments", "c1.yml"), yamlComment("c1", "", "2024-01-02T10:00:00Z", "first"))
	writeFile(t, filepath.Join(posts, "hello.md.comments", "c2.yml"), yamlComment("c2", "c1", "2024-01-02T11:00:00Z", "reply"))
	writeFile(t, filepath.Join(posts, "hello.md.comments", "c3.yml"), yamlComment("c3", "", "2024-01-02T10:30:00Z", "second"))
	writeFile(t, filepath.Join(posts, "quiet.md"), "---\ntitle: Quiet\ndate: 2023-01-01\n---\nno comments\n")

	require.NoError(t, s.Build(context.Background()))

	hello := s.PostBySlug("hello")
	require.NotNil(t, hello)
	assert.Equal(t, []string{"c1", "c2", "c3"}, ids(hello.Comments))
	assert.Equal(t, []int{0, 1, 0}, depths(hello.Comments))
	assert.Empty(t, s.PostBySlug("quiet").Comments)

	out := cfg.OutputPath()
	page, err := os.ReadFile(filepath.Join(out, "posts", "hello", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `id="comment-c2"`)

	js, err := os.ReadFile(filepath.Join(out, "assets", "js", "staticman_comments.js"))
	require.NoError(t, err)
	assert.NotEmpty(t, js)

	feed, err := os.ReadFile(filepath.Join(out, "comments.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(feed), "https://blog.example.com/posts/hello/#comment-c2")
}

func TestCommentService_FailOnError(t *testing.T) {
	s, cfg, _ := newCommentSite(t, true)
	posts := cfg.PostsPath()
	writeFile(t, filepath.Join(posts, "broken.md"), "---\ntitle: Broken\n---\n")
	writeFile(t, filepath.Join(posts, "broken.md.comments", "a.yml"), yamlComment("a", "b", "2024-01-02T10:00:00Z", "x"))
	writeFile(t, filepath.Join(posts, "broken.md.comments", "b.yml"), yamlComment("b", "a", "2024-01-02T11:00:00Z", "y"))

	err := s.Build(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidThread)
	assert.Contains(t, err.Error(), "broken.md")

	_, statErr := os.Stat(filepath.Join(cfg.OutputPath(), "posts", "broken", "index.html"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCommentService_WarnAndContinue(t *testing.T) {
	s, cfg, logs := newCommentSite(t, false)
	posts := cfg.PostsPath()
	writeFile(t, filepath.Join(posts, "broken.md"), "---\ntitle: Broken\n---\nstill here\n")
	writeFile(t, filepath.Join(posts, "broken.md.comments", "a.yml"), yamlComment("a", "ghost", "2024-01-02T10:00:00Z", "x"))

	require.NoError(t, s.Build(context.Background()))
	assert.Empty(t, s.PostBySlug("broken").Comments)

	page, err := os.ReadFile(filepath.Join(cfg.OutputPath(), "posts", "broken", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "still here")

	warnings := logs.FilterMessage("rendering post without comments").All()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].ContextMap()["post"], "broken.md")
}

func TestCommentService_InvalidFileFails(t *testing.T) {
	s, cfg, _ := newCommentSite(t, true)
	posts := cfg.PostsPath()
	writeFile(t, filepath.Join(posts, "p.md"), "---\ntitle: P\n---\n")
	writeFile(t, filepath.Join(posts, "p.md.comments", "bad.yml"), "author: nobody\n")

	err := s.Build(context.Background())
	assert.ErrorIs(t, err, ErrInvalidComment)
}
