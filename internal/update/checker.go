package update

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// releaseResponse represents the GitHub Releases API JSON response.
type releaseResponse struct {
	TagName     string          `json:"tag_name"`
	PublishedAt time.Time       `json:"published_at"`
	Assets      []assetResponse `json:"assets"`
}

// assetResponse represents a single release asset.
type assetResponse struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// checker is the concrete implementation of Checker.
type checker struct {
	apiURL string
	client *http.Client
}

// NewChecker creates a Checker that queries the given API URL.
// The apiURL should be the latest-release endpoint; for testing, pass
// the httptest.Server URL directly.
func NewChecker(apiURL string, client *http.Client) Checker {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &checker{
		apiURL: apiURL,
		client: client,
	}
}

// CheckLatest fetches the latest release metadata from GitHub.
func (c *checker) CheckLatest(ctx context.Context) (*VersionInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("checker: create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "skel-updater")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checker: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("checker: release not found (status 404) - repository may not exist or have no releases")
		}
		return nil, fmt.Errorf("checker: unexpected status %d", resp.StatusCode)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("checker: decode response: %w", err)
	}

	return c.buildVersionInfo(ctx, release), nil
}

// buildVersionInfo constructs a VersionInfo from a releaseResponse.
func (c *checker) buildVersionInfo(ctx context.Context, release releaseResponse) *VersionInfo {
	info := &VersionInfo{
		Version: release.TagName,
		Date:    release.PublishedAt,
	}

	// Find the platform-specific archive URL matching goreleaser format.
	// Archive format: skel_<version>_<os>_<arch>.<ext>
	// GoReleaser's {{ .Version }} strips the "v" prefix, so we must too.
	ext := "tar.gz"
	if runtime.GOOS == "windows" {
		ext = "zip"
	}

	version := strings.TrimPrefix(release.TagName, "v")
	archiveName := fmt.Sprintf("skel_%s_%s_%s.%s", version, runtime.GOOS, runtime.GOARCH, ext)

	var checksumsURL string
	for _, asset := range release.Assets {
		if asset.Name == archiveName {
			info.URL = asset.BrowserDownloadURL
		}
		if asset.Name == "checksums.txt" {
			checksumsURL = asset.BrowserDownloadURL
		}
	}

	// Resolve the checksum for this platform's archive. A failed
	// checksum download is tolerated; the updater warns instead of
	// blocking the update entirely.
	if checksumsURL != "" {
		checksum, err := c.downloadChecksum(ctx, checksumsURL, archiveName)
		if err == nil && checksum != "" {
			info.Checksum = checksum
		}
	}

	return info
}

// downloadChecksum downloads and parses the checksums.txt file to extract
// the checksum for the specified archive filename. Cancelling the caller's
// context cancels the fetch.
func (c *checker) downloadChecksum(ctx context.Context, checksumsURL, archiveName string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, checksumsURL, nil)
	if err != nil {
		return "", fmt.Errorf("create checksum request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch checksums: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("checksums status %d", resp.StatusCode)
	}

	// Format: <checksum>  <filename>
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		if parts[1] == archiveName {
			return parts[0], nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan checksums: %w", err)
	}

	return "", fmt.Errorf("checksum not found for %s", archiveName)
}

// IsUpdateAvailable compares the current version against the latest release.
func (c *checker) IsUpdateAvailable(current string) (bool, *VersionInfo, error) {
	info, err := c.CheckLatest(context.Background())
	if err != nil {
		return false, nil, err
	}

	cmp := compareSemver(info.Version, current)
	if cmp <= 0 {
		// Latest is same or older than current.
		return false, nil, nil
	}

	return true, info, nil
}

// compareSemver compares two semantic version strings.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
// Handles an optional "v" prefix.
func compareSemver(a, b string) int {
	a = strings.TrimPrefix(a, "v")
	b = strings.TrimPrefix(b, "v")

	aParts := parseSemverParts(a)
	bParts := parseSemverParts(b)

	for i := range 3 {
		if aParts[i] > bParts[i] {
			return 1
		}
		if aParts[i] < bParts[i] {
			return -1
		}
	}
	return 0
}

// parseSemverParts extracts [major, minor, patch] from a version string.
func parseSemverParts(v string) [3]int {
	var parts [3]int
	segments := strings.SplitN(v, ".", 3)
	for i, seg := range segments {
		if i >= 3 {
			break
		}
		// Strip any pre-release suffix (e.g., "1-beta").
		if idx := strings.IndexAny(seg, "-+"); idx >= 0 {
			seg = seg[:idx]
		}
		n, err := strconv.Atoi(seg)
		if err == nil {
			parts[i] = n
		}
	}
	return parts
}
