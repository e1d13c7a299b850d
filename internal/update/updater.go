package update

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// binaryName is the executable name inside release archives.
const binaryName = "skel"

// maxBinarySize bounds decompression to guard against a corrupt archive.
const maxBinarySize = 256 << 20

// Updater downloads a release archive and replaces the running binary.
type Updater struct {
	client *http.Client
	logger *slog.Logger
}

// NewUpdater creates an Updater. A nil client gets a sane default,
// a nil logger discards output.
func NewUpdater(client *http.Client, logger *slog.Logger) *Updater {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Updater{client: client, logger: logger.With("module", "update")}
}

// Apply downloads the archive described by info, verifies its checksum
// when one is published, extracts the binary and swaps it over the
// current executable via temp file + rename.
func (u *Updater) Apply(ctx context.Context, info *VersionInfo) error {
	if info == nil || info.URL == "" {
		return fmt.Errorf("updater: no archive available for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	archive, err := u.download(ctx, info.URL)
	if err != nil {
		return err
	}

	if info.Checksum != "" {
		sum := sha256.Sum256(archive)
		if got := hex.EncodeToString(sum[:]); got != info.Checksum {
			return fmt.Errorf("updater: checksum mismatch: got %s, want %s", got, info.Checksum)
		}
	} else {
		u.logger.Warn("no checksum published for release; skipping verification",
			"version", info.Version)
	}

	binary, err := extractBinary(info.URL, archive)
	if err != nil {
		return err
	}

	return replaceExecutable(binary)
}

// download fetches the release archive into memory.
func (u *Updater) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("updater: create request: %w", err)
	}
	req.Header.Set("User-Agent", "skel-updater")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("updater: download failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("updater: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBinarySize))
	if err != nil {
		return nil, fmt.Errorf("updater: read archive: %w", err)
	}

	u.logger.Debug("archive downloaded", "bytes", len(data))
	return data, nil
}

// extractBinary pulls the skel executable out of a tar.gz or zip archive.
func extractBinary(url string, archive []byte) ([]byte, error) {
	if strings.HasSuffix(url, ".zip") {
		return extractFromZip(archive)
	}
	return extractFromTarGz(archive)
}

// extractFromTarGz extracts the binary from a gzip-compressed tarball.
func extractFromTarGz(archive []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("updater: open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("updater: read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || filepath.Base(hdr.Name) != binaryName {
			continue
		}
		data, err := io.ReadAll(io.LimitReader(tr, maxBinarySize))
		if err != nil {
			return nil, fmt.Errorf("updater: extract binary: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("updater: binary %q not found in archive", binaryName)
}

// extractFromZip extracts the binary from a zip archive (Windows builds).
func extractFromZip(archive []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("updater: open zip: %w", err)
	}

	want := binaryName + ".exe"
	for _, f := range zr.File {
		if filepath.Base(f.Name) != want {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("updater: open zip entry: %w", err)
		}
		data, err := io.ReadAll(io.LimitReader(rc, maxBinarySize))
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("updater: extract binary: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("updater: binary %q not found in archive", want)
}

// replaceExecutable writes the new binary next to the current one and
// renames it into place. On Windows the running binary cannot be
// removed, so it is moved aside first.
func replaceExecutable(binary []byte) error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("updater: locate executable: %w", err)
	}
	exePath, err = filepath.EvalSymlinks(exePath)
	if err != nil {
		return fmt.Errorf("updater: resolve executable: %w", err)
	}

	dir := filepath.Dir(exePath)
	tmp, err := os.CreateTemp(dir, ".skel-update-*.tmp")
	if err != nil {
		return fmt.Errorf("updater: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(binary); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("updater: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("updater: close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o755); err != nil {
		return fmt.Errorf("updater: chmod temp file: %w", err)
	}

	if runtime.GOOS == "windows" {
		old := exePath + ".old"
		_ = os.Remove(old)
		if err := os.Rename(exePath, old); err != nil {
			return fmt.Errorf("updater: move old binary aside: %w", err)
		}
	}

	if err := os.Rename(tmpName, exePath); err != nil {
		return fmt.Errorf("updater: install new binary: %w", err)
	}
	return nil
}
