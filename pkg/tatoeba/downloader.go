package tatoeba

import (
	"archive/tar"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/japaniel/sentencepairs/pkg/atomicfile"
)

const (
	// DefaultBaseURL is where Tatoeba publishes its weekly exports.
	DefaultBaseURL = "https://downloads.tatoeba.org/exports"

	SentencesArchive = "sentences_detailed.tar.bz2"
	LinksArchive     = "links.tar.bz2"
)

// ErrNoCSVInArchive is returned when a downloaded archive holds no .csv member.
var ErrNoCSVInArchive = errors.New("no csv file found in downloaded archive")

// Downloader fetches export archives and unpacks their csv member.
type Downloader struct {
	Client *http.Client
	Log    *slog.Logger
}

// NewDownloader returns a Downloader with a bounded HTTP timeout.
func NewDownloader(log *slog.Logger, timeout time.Duration) *Downloader {
	return &Downloader{
		Client: &http.Client{Timeout: timeout},
		Log:    log,
	}
}

// Ensure checks if destPath exists. If not, it downloads the archive at url
// and extracts its csv member to destPath.
func (d *Downloader) Ensure(ctx context.Context, url, destPath string) error {
	if _, err := os.Stat(destPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	d.Log.Info("export not found, downloading", slog.String("path", destPath), slog.String("url", url))
	start := time.Now()
	if err := d.downloadAndExtract(ctx, url, destPath); err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	d.Log.Info("export downloaded", slog.String("path", destPath), slog.Duration("duration", time.Since(start)))
	return nil
}

func (d *Downloader) downloadAndExtract(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "sentencepairs-cli")

	resp, err := d.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s", resp.Status)
	}

	body, err := decompress(url, resp.Body)
	if err != nil {
		return err
	}

	tarReader := tar.NewReader(body)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return ErrNoCSVInArchive
		}
		if err != nil {
			return fmt.Errorf("error reading tar archive: %w", err)
		}

		if header.Typeflag == tar.TypeReg && strings.HasSuffix(header.Name, ".csv") {
			return atomicfile.Write(destPath, func(w io.Writer) error {
				if _, err := io.Copy(w, tarReader); err != nil {
					return fmt.Errorf("failed to write to file: %w", err)
				}
				return nil
			})
		}
	}
}

// decompress picks the codec from the archive name. Tatoeba ships bzip2.
func decompress(name string, r io.Reader) (io.Reader, error) {
	switch {
	case strings.HasSuffix(name, ".bz2"):
		return bzip2.NewReader(r), nil
	case strings.HasSuffix(name, ".gz"), strings.HasSuffix(name, ".tgz"):
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gz, nil
	default:
		return r, nil
	}
}
