// Package importfeeds bulk-subscribes feeds from a CSV file through
// the registry, fetching each one as it goes.
package importfeeds

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"feedhaven/reader/internal/feeds"
)

// Importer handles the feed import process
type Importer struct {
	registry *feeds.Registry
}

// NewImporter creates a new feed importer
func NewImporter(registry *feeds.Registry) *Importer {
	return &Importer{registry: registry}
}

// ImportFeeds subscribes every feed listed in the CSV file. The file
// must carry a "url" column; a "title" column is optional. Each row is
// added through the registry, which fetches the feed, so failures are
// per-row and do not stop the import.
func (i *Importer) ImportFeeds(ctx context.Context, csvPath string) error {
	log.Info().Str("csv", csvPath).Msg("Starting feed import")

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	if err := i.parseAndImportFeeds(ctx, f); err != nil {
		return fmt.Errorf("failed to import feeds: %w", err)
	}

	log.Info().Msg("Import completed successfully")
	return nil
}

func (i *Importer) parseAndImportFeeds(ctx context.Context, csvData io.Reader) error {
	reader := csv.NewReader(csvData)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return err
	}

	log.Debug().Strs("header", header).Msg("CSV header read")

	urlIdx := findColumnIndex(header, "url")
	titleIdx := findColumnIndex(header, "title")
	if urlIdx < 0 {
		return fmt.Errorf("required column 'url' not found in CSV header")
	}

	lineCount := 1 // Header was already read
	successCount := 0
	var importErrors []string

	for {
		lineCount++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Int("line", lineCount).Msg("Error reading CSV line")
			importErrors = append(importErrors, fmt.Sprintf("line %d: %v", lineCount, err))
			continue
		}

		if len(record) == 0 || (len(record) == 1 && record[0] == "") {
			log.Debug().Int("line", lineCount).Msg("Skipping empty row")
			continue
		}

		url := safeGetValue(record, urlIdx)
		title := safeGetValue(record, titleIdx)

		if url == "" {
			log.Warn().Int("line", lineCount).Msg("Skipping row with empty URL")
			importErrors = append(importErrors, fmt.Sprintf("line %d: empty URL", lineCount))
			continue
		}

		logger := log.With().
			Int("line", lineCount).
			Str("url", url).
			Logger()

		logger.Debug().Msg("Subscribing feed")

		if _, err := i.registry.AddFeed(ctx, url, title); err != nil {
			var dup *feeds.DuplicateFeedError
			if errors.As(err, &dup) {
				logger.Warn().Msg("Duplicate URL")
				importErrors = append(importErrors, fmt.Sprintf("line %d: duplicate URL: %s", lineCount, url))
			} else {
				logger.Error().Err(err).Msg("Failed to subscribe feed")
				importErrors = append(importErrors, fmt.Sprintf("line %d: %v", lineCount, err))
			}
			continue
		}

		successCount++
		logger.Debug().Msg("Feed subscribed successfully")
	}

	log.Info().
		Int("total", lineCount-1).
		Int("success", successCount).
		Int("errors", len(importErrors)).
		Msg("Import summary")

	fmt.Printf("Imported %d feeds successfully\n", successCount)
	if len(importErrors) > 0 {
		fmt.Printf("Encountered %d errors:\n", len(importErrors))
		for _, e := range importErrors {
			fmt.Printf("  - %s\n", e)
		}
	}

	return nil
}

func findColumnIndex(header []string, columnName string) int {
	for i, col := range header {
		if strings.EqualFold(col, columnName) {
			return i
		}
	}
	return -1
}

// safeGetValue returns the trimmed value at index, or "" when the
// index is out of bounds.
func safeGetValue(record []string, index int) string {
	if index >= 0 && index < len(record) {
		return strings.TrimSpace(record[index])
	}
	return ""
}
