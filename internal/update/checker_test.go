package update

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"
)

// newReleaseServer serves a fake latest-release endpoint with a
// platform archive asset and a checksums.txt asset.
func newReleaseServer(t *testing.T, tag string) (*httptest.Server, string) {
	t.Helper()

	ext := "tar.gz"
	if runtime.GOOS == "windows" {
		ext = "zip"
	}
	archiveName := fmt.Sprintf("skel_%s_%s_%s.%s",
		tag[1:], runtime.GOOS, runtime.GOARCH, ext)

	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/latest", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{
			"tag_name": %q,
			"published_at": "2026-08-01T12:00:00Z",
			"assets": [
				{"name": %q, "browser_download_url": %q},
				{"name": "checksums.txt", "browser_download_url": %q}
			]
		}`, tag, archiveName, srv.URL+"/archive", srv.URL+"/checksums.txt")
	})
	mux.HandleFunc("/checksums.txt", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "deadbeef  other_archive.tar.gz\ncafebabe  %s\n", archiveName)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, archiveName
}

func TestCheckLatest(t *testing.T) {
	t.Parallel()

	srv, _ := newReleaseServer(t, "v1.5.0")
	c := NewChecker(srv.URL+"/latest", srv.Client())

	info, err := c.CheckLatest(context.Background())
	if err != nil {
		t.Fatalf("CheckLatest() error = %v", err)
	}
	if info.Version != "v1.5.0" {
		t.Errorf("Version = %q, want v1.5.0", info.Version)
	}
	if info.URL != srv.URL+"/archive" {
		t.Errorf("URL = %q, want the platform archive URL", info.URL)
	}
	if info.Checksum != "cafebabe" {
		t.Errorf("Checksum = %q, want cafebabe", info.Checksum)
	}
}

func TestCheckLatestChecksumHonorsCancellation(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/latest", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{
			"tag_name": "v1.5.0",
			"published_at": "2026-08-01T12:00:00Z",
			"assets": [
				{"name": "checksums.txt", "browser_download_url": %q}
			]
		}`, srv.URL+"/checksums.txt")
	})
	mux.HandleFunc("/checksums.txt", func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewChecker(srv.URL+"/latest", srv.Client())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	info, err := c.CheckLatest(ctx)
	if err != nil {
		t.Fatalf("CheckLatest() error = %v", err)
	}
	if info.Checksum != "" {
		t.Errorf("Checksum = %q, want empty when the fetch is cut short", info.Checksum)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("CheckLatest() took %v; checksum fetch ignored the caller's deadline", elapsed)
	}
}

func TestCheckLatestNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	c := NewChecker(srv.URL, srv.Client())
	if _, err := c.CheckLatest(context.Background()); err == nil {
		t.Error("CheckLatest() = nil, want error for 404")
	}
}

func TestIsUpdateAvailable(t *testing.T) {
	t.Parallel()

	srv, _ := newReleaseServer(t, "v1.5.0")
	c := NewChecker(srv.URL+"/latest", srv.Client())

	available, info, err := c.IsUpdateAvailable("v1.4.0")
	if err != nil {
		t.Fatalf("IsUpdateAvailable() error = %v", err)
	}
	if !available || info == nil {
		t.Fatal("IsUpdateAvailable() = false, want update for older current version")
	}

	available, _, err = c.IsUpdateAvailable("v1.5.0")
	if err != nil {
		t.Fatalf("IsUpdateAvailable() error = %v", err)
	}
	if available {
		t.Error("IsUpdateAvailable() = true for the current release")
	}

	available, _, err = c.IsUpdateAvailable("v2.0.0")
	if err != nil {
		t.Fatalf("IsUpdateAvailable() error = %v", err)
	}
	if available {
		t.Error("IsUpdateAvailable() = true for a newer current version")
	}
}

func TestCompareSemver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"v1.0.0", "v1.0.0", 0},
		{"1.0.0", "v1.0.0", 0},
		{"v1.0.1", "v1.0.0", 1},
		{"v1.1.0", "v1.0.9", 1},
		{"v2.0.0", "v1.9.9", 1},
		{"v1.0.0", "v1.0.1", -1},
		{"v1.5.0-beta", "v1.5.0", 0},
		{"v1.5", "v1.5.0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			t.Parallel()
			if got := compareSemver(tt.a, tt.b); got != tt.want {
				t.Errorf("compareSemver(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
