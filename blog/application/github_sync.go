package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dfryer1193/kvblog/blog/domain"
	"github.com/google/go-github/v75/github"
	"github.com/rs/zerolog/log"
)

const zeroSHA = "0000000000000000000000000000000000000000"

// GitHubSyncService turns pushes to a content repository into sync writes.
// Markdown files under the content prefix map onto logical keys by their
// relative path: content/en/tech/my-post.md becomes en/tech/my-post.
//
// Pushes to the default branch sync as published; pushes to any other
// branch sync the same files into the draft slot, so authors can preview
// work in progress without touching the indexes. Removed files are ignored:
// the indexes are append-only and nothing in the read path expects entries
// to disappear.
type GitHubSyncService struct {
	sourceRepo     domain.SourceRepository
	syncService    *SyncService
	contentPrefix  string
	mainBranchName string

	// Service lifecycle context - cancelled when Close() is called
	ctx    context.Context
	cancel context.CancelFunc
	wg     *sync.WaitGroup
}

func NewGitHubSyncService(sourceRepo domain.SourceRepository, syncService *SyncService, contentPrefix, mainBranchName string) *GitHubSyncService {
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	if contentPrefix != "" && !strings.HasSuffix(contentPrefix, "/") {
		contentPrefix += "/"
	}

	return &GitHubSyncService{
		sourceRepo:     sourceRepo,
		syncService:    syncService,
		contentPrefix:  contentPrefix,
		mainBranchName: mainBranchName,
		ctx:            ctx,
		cancel:         cancel,
		wg:             &wg,
	}
}

// Close gracefully shuts down the service by cancelling all background workers
func (s *GitHubSyncService) Close() error {
	s.cancel()
	s.wg.Wait()

	return nil
}

// HandlePushEvent processes a GitHub push event and syncs changed content files.
// This method returns after validating the event and spawning async workers;
// workers use the service's lifecycle context, not the request context.
func (s *GitHubSyncService) HandlePushEvent(evt *github.PushEvent) error {
	var commits []*github.RepositoryCommit
	var err error

	if evt.GetBefore() != "" && evt.GetBefore() != zeroSHA {
		// Normal push with a base commit - get the range
		commits, err = s.sourceRepo.GetCommitsInRange(s.ctx, evt.GetBefore(), evt.GetAfter())
		if err != nil {
			return fmt.Errorf("failed to get commits in range %s...%s: %w", evt.GetBefore(), evt.GetAfter(), err)
		}
	} else {
		// New branch or first commit - just get the head commit
		headCommit, err := s.sourceRepo.GetCommit(s.ctx, evt.GetAfter())
		if err != nil {
			return fmt.Errorf("failed to get commit %s: %w", evt.GetAfter(), err)
		}
		commits = []*github.RepositoryCommit{headCommit}
	}

	filesToProcess, err := s.analyzeCommitFiles(commits)
	if err != nil {
		return fmt.Errorf("failed to analyze commits: %w", err)
	}

	isMainBranch := evt.GetRef() == "refs/heads/"+s.mainBranchName
	status := string(domain.Draft)
	if isMainBranch {
		status = string(domain.Published)
	}

	for filePath, commit := range filesToProcess {
		logicalKey := s.logicalKeyForPath(filePath)
		if logicalKey == "" {
			continue
		}

		// Capture variables for goroutine
		capturedKey := logicalKey
		capturedPath := filePath
		// Use the commit SHA instead of ref to get the exact file version
		capturedCommitSHA := commit.GetSHA()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.processContentFile(s.ctx, capturedKey, capturedPath, capturedCommitSHA, status)
		}()
	}

	return nil
}

// analyzeCommitFiles iterates through commits to determine which files need syncing.
// Later commits win when a file appears more than once in the push.
func (s *GitHubSyncService) analyzeCommitFiles(commits []*github.RepositoryCommit) (map[string]*github.RepositoryCommit, error) {
	filesToProcess := make(map[string]*github.RepositoryCommit)

	for _, commitSummary := range commits {
		fullCommit, err := s.sourceRepo.GetCommit(s.ctx, *commitSummary.SHA)
		if err != nil {
			return nil, fmt.Errorf("failed to get full commit %s: %w", *commitSummary.SHA, err)
		}

		for _, file := range fullCommit.Files {
			switch file.GetStatus() {
			case "added", "modified", "renamed":
				if s.isContentFile(file.GetFilename()) {
					filesToProcess[file.GetFilename()] = fullCommit
				}
			case "removed":
				delete(filesToProcess, file.GetFilename())
				log.Debug().Str("path", file.GetFilename()).Msg("Ignoring removed content file")
			}
		}
	}

	return filesToProcess, nil
}

// processContentFile fetches and syncs a single content file.
func (s *GitHubSyncService) processContentFile(ctx context.Context, logicalKey, filePath, commitSHA, status string) {
	content, err := s.sourceRepo.GetFileContents(ctx, filePath, commitSHA)
	if err != nil {
		log.Error().Err(err).Str("path", filePath).Str("commitSHA", commitSHA).Msg("Failed to get file contents")
		return
	}

	payload := SyncPayload{
		Key:     logicalKey,
		Content: string(content),
		Status:  status,
	}

	if err := s.syncService.Sync(ctx, payload); err != nil {
		log.Error().Err(err).Str("key", logicalKey).Msg("Failed to sync content file")
		return
	}

	log.Info().Str("key", logicalKey).Str("status", status).Msg("Synced content file from push")
}

func (s *GitHubSyncService) isContentFile(filePath string) bool {
	return strings.HasPrefix(filePath, s.contentPrefix) && strings.HasSuffix(filePath, ".md")
}

// logicalKeyForPath maps a repository file path onto a logical key, or ""
// when the path is not a content file.
func (s *GitHubSyncService) logicalKeyForPath(filePath string) string {
	if !s.isContentFile(filePath) {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(filePath, s.contentPrefix), ".md")
}
