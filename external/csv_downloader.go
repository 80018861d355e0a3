// external/csv_downloader.go
package external

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DownloadFile downloads url and saves it to localSavePath, creating the directory if needed.
func (c *Client) DownloadFile(ctx context.Context, url, localSavePath string) error {
	c.log.Info("External: downloading file", slog.String("url", url), slog.String("path", localSavePath))

	body, err := c.get(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to download file from %s: %w", url, err)
	}

	dir := filepath.Dir(localSavePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	outFile, err := os.Create(localSavePath)
	if err != nil {
		return fmt.Errorf("failed to create local file %s: %w", localSavePath, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, bytes.NewReader(body)); err != nil {
		return fmt.Errorf("failed to copy downloaded content to %s: %w", localSavePath, err)
	}

	c.log.Info("External: download complete", slog.String("path", localSavePath), slog.Int("bytes", len(body)))
	return nil
}

// OpenCSVSource opens a reference CSV from a local path, or downloads it first
// when source is an http(s) URL. The caller closes the returned reader.
func (c *Client) OpenCSVSource(ctx context.Context, source, downloadDir, table string) (io.ReadCloser, error) {
	path := source
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		path = filepath.Join(downloadDir, table+".csv")
		if err := c.DownloadFile(ctx, source, path); err != nil {
			return nil, err
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV %s: %w", path, err)
	}
	return f, nil
}
