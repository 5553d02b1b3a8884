package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// Version is the running release; overridden at build time with -ldflags "-X".
var Version = "0.1.0"

const updateRepo = "Fepozopo/shockwave"

var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// githubRelease is the subset of the GitHub releases payload used for updates.
type githubRelease struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
	Assets     []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// pickLatest returns the highest semver among published, non-prerelease releases, taking the
// version from the tag or else the release name. The asset matching goos/goarch is preferred,
// then any platform-looking asset, then the first asset. It returns nil when nothing qualifies.
func pickLatest(releases []githubRelease, goos, goarch string) *selfupdate.Release {
	type candidate struct {
		ver      semver.Version
		assetURL string
	}
	var candidates []candidate
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverRe.FindString(r.TagName)
		if match == "" {
			if match = semverRe.FindString(r.Name); match == "" {
				continue
			}
		}
		v, err := semver.Parse(strings.TrimPrefix(match, "v"))
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{ver: v, assetURL: pickAsset(r, goos, goarch)})
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ver.GT(candidates[j].ver)
	})
	return &selfupdate.Release{Version: candidates[0].ver, AssetURL: candidates[0].assetURL}
}

func pickAsset(r githubRelease, goos, goarch string) string {
	fallback := ""
	for _, a := range r.Assets {
		name := strings.ToLower(a.Name)
		if strings.Contains(name, goos) && strings.Contains(name, goarch) {
			return a.BrowserDownloadURL
		}
		if fallback == "" {
			fallback = a.BrowserDownloadURL
		}
	}
	return fallback
}

// fetchReleases queries the GitHub releases API for repo.
func fetchReleases(repo string) ([]githubRelease, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(fmt.Sprintf("https://api.github.com/repos/%s/releases", repo))
	if err != nil {
		return nil, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading github response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}
	var releases []githubRelease
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, fmt.Errorf("failed to decode github releases: %w", err)
	}
	return releases, nil
}

// CheckForUpdates compares Version with the latest GitHub release and, after confirmation
// through confirm, replaces the running executable. The new binary takes effect on next start.
func CheckForUpdates(out io.Writer, goos, goarch string, confirm func(prompt string) (string, error)) error {
	fmt.Fprintf(out, "Current version: %s\n", Version)
	releases, err := fetchReleases(updateRepo)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	latest := pickLatest(releases, goos, goarch)
	if latest == nil {
		fmt.Fprintf(out, "No releases found for %s.\n", updateRepo)
		return nil
	}
	fmt.Fprintf(out, "Latest version: %s\n", latest.Version)

	current, perr := semver.Parse(strings.TrimPrefix(Version, "v"))
	if perr != nil {
		fmt.Fprintf(out, "warning: could not parse current version %q: %v\n", Version, perr)
	} else if !latest.Version.GT(current) {
		fmt.Fprintf(out, "You are already running the latest version: %s.\n", current)
		return nil
	}
	if latest.AssetURL == "" {
		fmt.Fprintf(out, "A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		return nil
	}

	answer, err := confirm(fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
	if err != nil {
		return fmt.Errorf("failed reading input: %w", err)
	}
	if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
		fmt.Fprintln(out, "Update cancelled.")
		return nil
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(out, "Updated to version %s. Restart shockwave to use it.\n", latest.Version)
	return nil
}
