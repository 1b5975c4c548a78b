package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	releasesURL  = "https://api.github.com/repos/studiowebux/curlfmt/releases/latest"
	checkTimeout = 5 * time.Second
)

// Version is the running build, overridden with -ldflags "-X .../version.Version=..."
var Version = "0.1.0"

type GitHubRelease struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// UpdateInfo is the outcome of a release check
type UpdateInfo struct {
	Available bool
	Latest    string
	URL       string
}

// Checker queries a releases endpoint
type Checker struct {
	URL    string
	Client *http.Client
}

// NewChecker returns a checker against the curlfmt GitHub releases
func NewChecker() *Checker {
	return &Checker{
		URL:    releasesURL,
		Client: &http.Client{Timeout: checkTimeout},
	}
}

// CheckForUpdate checks if a newer version is available
func CheckForUpdate(ctx context.Context, currentVersion string) (UpdateInfo, error) {
	return NewChecker().Check(ctx, currentVersion)
}

// Check compares currentVersion with the latest published release
func (c *Checker) Check(ctx context.Context, currentVersion string) (UpdateInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return UpdateInfo{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "curlfmt/"+currentVersion)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return UpdateInfo{}, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UpdateInfo{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return UpdateInfo{}, fmt.Errorf("failed to decode response: %w", err)
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")

	return UpdateInfo{
		Available: latest != "" && isNewerVersion(latest, current),
		Latest:    latest,
		URL:       release.HTMLURL,
	}, nil
}

// isNewerVersion compares two semantic versions and returns true if latest > current
// Supports versions like "0.0.28", "1.2.3", "0.0.29-dev", etc.
func isNewerVersion(latest, current string) bool {
	latestParts := parseVersion(latest)
	currentParts := parseVersion(current)

	maxLen := max(len(latestParts), len(currentParts))
	for len(latestParts) < maxLen {
		latestParts = append(latestParts, 0)
	}
	for len(currentParts) < maxLen {
		currentParts = append(currentParts, 0)
	}

	for i := 0; i < maxLen; i++ {
		if latestParts[i] > currentParts[i] {
			return true
		}
		if latestParts[i] < currentParts[i] {
			return false
		}
	}

	return false
}

// parseVersion splits "1.2.3-rc1+meta" into [1 2 3]
func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))

	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		result = append(result, num)
	}

	return result
}
