package application

import (
	"context"
	"testing"
	"time"

	"github.com/dfryer1193/kvblog/blog/domain"
	"github.com/dfryer1193/kvblog/shared/kv"
	"github.com/google/go-github/v75/github"
)

// fakeSourceRepo serves canned commits and file contents.
type fakeSourceRepo struct {
	commits map[string]*github.RepositoryCommit
	files   map[string]string
}

func (f *fakeSourceRepo) GetCommitsInRange(ctx context.Context, baseCommit, headCommit string) ([]*github.RepositoryCommit, error) {
	return []*github.RepositoryCommit{f.commits[headCommit]}, nil
}

func (f *fakeSourceRepo) GetCommit(ctx context.Context, sha string) (*github.RepositoryCommit, error) {
	return f.commits[sha], nil
}

func (f *fakeSourceRepo) GetFileContents(ctx context.Context, path, ref string) ([]byte, error) {
	return []byte(f.files[path]), nil
}

func (f *fakeSourceRepo) GetDefaultBranchName(ctx context.Context) (string, error) {
	return "main", nil
}

func (f *fakeSourceRepo) GetRepoFullName() string {
	return "example/content"
}

func pushCommit(sha string, files ...*github.CommitFile) *github.RepositoryCommit {
	return &github.RepositoryCommit{
		SHA:   github.Ptr(sha),
		Files: files,
	}
}

func changedFile(path, status string) *github.CommitFile {
	return &github.CommitFile{
		Filename: github.Ptr(path),
		Status:   github.Ptr(status),
	}
}

func waitForKey(t *testing.T, store *kv.MemoryStore, key string) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if value, found, _ := store.Get(context.Background(), key); found {
			return value
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("key %s never appeared", key)
	return ""
}

func TestHandlePushEvent_MainBranchPublishes(t *testing.T) {
	content := postContent("Pushed Post", "2025-04-01", "tech", "go")
	source := &fakeSourceRepo{
		commits: map[string]*github.RepositoryCommit{
			"abc123": pushCommit("abc123", changedFile("content/en/tech/pushed-post.md", "added")),
		},
		files: map[string]string{
			"content/en/tech/pushed-post.md": content,
		},
	}

	store := kv.NewMemoryStore()
	service := NewGitHubSyncService(source, NewSyncService(store), "content/", "main")
	defer service.Close()

	evt := &github.PushEvent{
		Ref:    github.Ptr("refs/heads/main"),
		Before: github.Ptr(""),
		After:  github.Ptr("abc123"),
	}

	if err := service.HandlePushEvent(evt); err != nil {
		t.Fatalf("HandlePushEvent failed: %v", err)
	}

	got := waitForKey(t, store, "published:en/tech/pushed-post")
	if got != content {
		t.Error("content mismatch")
	}

	index := waitForKey(t, store, "index:en/tech")
	if index != `["pushed-post"]` {
		t.Errorf("index = %s", index)
	}
}

func TestHandlePushEvent_FeatureBranchSyncsDraft(t *testing.T) {
	content := postContent("WIP Post", "2025-04-02", "tech", "go")
	source := &fakeSourceRepo{
		commits: map[string]*github.RepositoryCommit{
			"def456": pushCommit("def456", changedFile("content/en/tech/wip-post.md", "modified")),
		},
		files: map[string]string{
			"content/en/tech/wip-post.md": content,
		},
	}

	store := kv.NewMemoryStore()
	service := NewGitHubSyncService(source, NewSyncService(store), "content/", "main")
	defer service.Close()

	evt := &github.PushEvent{
		Ref:    github.Ptr("refs/heads/feature/new-post"),
		Before: github.Ptr(""),
		After:  github.Ptr("def456"),
	}

	if err := service.HandlePushEvent(evt); err != nil {
		t.Fatalf("HandlePushEvent failed: %v", err)
	}

	waitForKey(t, store, "draft:en/tech/wip-post")

	service.Close()
	if _, found, _ := store.Get(context.Background(), "index:en/tech"); found {
		t.Error("feature branch push touched the category index")
	}
	if _, found, _ := store.Get(context.Background(), "published:en/tech/wip-post"); found {
		t.Error("feature branch push wrote the published slot")
	}
}

func TestHandlePushEvent_IgnoresNonContentAndRemovedFiles(t *testing.T) {
	source := &fakeSourceRepo{
		commits: map[string]*github.RepositoryCommit{
			"aaa111": pushCommit("aaa111",
				changedFile("README.md", "modified"),
				changedFile("content/en/tech/old-post.md", "removed"),
				changedFile("content/en/tech/notes.txt", "added"),
			),
		},
		files: map[string]string{},
	}

	store := kv.NewMemoryStore()
	service := NewGitHubSyncService(source, NewSyncService(store), "content/", "main")

	evt := &github.PushEvent{
		Ref:    github.Ptr("refs/heads/main"),
		Before: github.Ptr(""),
		After:  github.Ptr("aaa111"),
	}

	if err := service.HandlePushEvent(evt); err != nil {
		t.Fatalf("HandlePushEvent failed: %v", err)
	}
	service.Close()

	if store.Len() != 0 {
		t.Errorf("store has %d keys, want none synced", store.Len())
	}
}

func TestLogicalKeyForPath(t *testing.T) {
	service := NewGitHubSyncService(&fakeSourceRepo{}, NewSyncService(kv.NewMemoryStore()), "content", "main")
	defer service.Close()

	tests := []struct {
		path string
		want string
	}{
		{"content/en/tech/my-post.md", "en/tech/my-post"},
		{"content/en/about.md", "en/about"},
		{"docs/en/tech/my-post.md", ""},
		{"content/en/tech/image.png", ""},
	}

	for _, tt := range tests {
		if got := service.logicalKeyForPath(tt.path); got != tt.want {
			t.Errorf("logicalKeyForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

var _ domain.SourceRepository = (*fakeSourceRepo)(nil)
