// kvblog-sync walks a local directory of markdown files and syncs them into
// a running kvblog server. Relative paths become logical keys:
// <dir>/en/tech/my-post.md syncs as en/tech/my-post.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dfryer1193/kvblog/blog/application"
	"github.com/dfryer1193/kvblog/blog/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	dir := pflag.String("dir", "./content", "directory of markdown files to sync")
	server := pflag.String("server", "http://localhost:8080", "base URL of the kvblog server")
	publish := pflag.Bool("publish", false, "sync every file as published, overriding front-matter status")
	dryRun := pflag.Bool("dry-run", false, "validate and report without contacting the server")
	pflag.Parse()

	synced := 0
	skipped := 0

	err := filepath.WalkDir(*dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		rel, err := filepath.Rel(*dir, path)
		if err != nil {
			return err
		}
		logicalKey := strings.TrimSuffix(filepath.ToSlash(rel), ".md")

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		content := string(raw)

		meta, found := application.ExtractMetadata(content)
		if !found || !meta.Valid() {
			log.Warn().Str("path", path).Msg("Skipping file without valid front matter")
			skipped++
			return nil
		}

		if _, err := time.Parse("2006-01-02", meta.Date); err != nil {
			log.Warn().Str("path", path).Str("date", meta.Date).Msg("Date is not YYYY-MM-DD; post will sort as oldest in recency queries")
		}

		status := meta.Status
		if *publish {
			status = string(domain.Published)
		}

		if *dryRun {
			fmt.Printf("would sync %s as %s\n", logicalKey, status)
			synced++
			return nil
		}

		if err := postPayload(*server, application.SyncPayload{
			Key:     logicalKey,
			Content: content,
			Status:  status,
		}); err != nil {
			return fmt.Errorf("failed to sync %s: %w", logicalKey, err)
		}

		fmt.Printf("synced %s as %s\n", logicalKey, status)
		synced++
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Sync failed")
	}

	fmt.Printf("done: %d synced, %d skipped\n", synced, skipped)
}

func postPayload(server string, payload application.SyncPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := http.Post(strings.TrimSuffix(server, "/")+"/sync/v1/", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
