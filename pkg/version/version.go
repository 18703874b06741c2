package version

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// Set through -ldflags "-X"; otherwise filled from the embedded build info.
var (
	Version   = "0.0.0-dev"
	Commit    = ""
	BuildTime = ""
)

func init() {
	fillFromBuildInfo()
}

// fillFromBuildInfo uses the module version and VCS stamps the go command
// embeds when ldflags left the defaults in place.
func fillFromBuildInfo() {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return
	}
	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if Version == "0.0.0-dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		Version = strings.TrimPrefix(bi.Main.Version, "v")
		if settings["vcs.modified"] == "true" && !strings.HasSuffix(Version, "+dirty") {
			Version += "-dirty"
		}
	}
	if rev := settings["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}
	if BuildTime == "" {
		if ts, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}
}

// ReleaseURL is the GitHub endpoint describing the latest release.
var ReleaseURL = "https://api.github.com/repos/filip867/Karl-Filip/releases/latest"

// LatestRelease fetches the tag of the latest published release.
func LatestRelease(ctx context.Context, client *http.Client) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleaseURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(body, &release); err != nil {
		return "", err
	}
	return strings.TrimPrefix(release.TagName, "v"), nil
}

// Newer reports whether latest is a higher dotted version than current.
// Pre-release and build suffixes are ignored.
func Newer(latest, current string) bool {
	parse := func(v string) []int {
		v = strings.TrimPrefix(v, "v")
		if i := strings.IndexAny(v, "-+"); i >= 0 {
			v = v[:i]
		}
		var parts []int
		for _, p := range strings.Split(v, ".") {
			n, err := strconv.Atoi(p)
			if err != nil {
				n = 0
			}
			parts = append(parts, n)
		}
		return parts
	}
	l, c := parse(latest), parse(current)
	for i := 0; i < len(l) || i < len(c); i++ {
		var a, b int
		if i < len(l) {
			a = l[i]
		}
		if i < len(c) {
			b = c[i]
		}
		if a != b {
			return a > b
		}
	}
	return false
}

// CheckLatestVersion warns when a newer release is published. Development
// builds are never checked.
func CheckLatestVersion(ctx context.Context, currentVersion string) {
	if strings.HasSuffix(currentVersion, "-dev") {
		return
	}

	client := &http.Client{Timeout: 3 * time.Second}
	latestVersion, err := LatestRelease(ctx, client)
	if err != nil {
		return
	}
	if Newer(latestVersion, currentVersion) {
		pterm.Warning.Println(fmt.Sprintf("A new version of rapport is available: %s", latestVersion))
		pterm.Info.Println("Please update using: go install github.com/filip867/Karl-Filip/cmd/rapport@latest")
	}
}

// FormatVersion renders the version with whatever build stamps are known,
// e.g. "1.2.3 (commit: abc1234, built at: 2026-04-02T09:30:00Z)".
func FormatVersion() string {
	return format(Version, Commit, BuildTime)
}

func format(ver, commit, built string) string {
	if ver == "" {
		ver = "0.0.0-dev"
	}
	switch {
	case commit == "" && built == "":
		return ver + " (development)"
	case commit == "":
		return fmt.Sprintf("%s (built at: %s)", ver, built)
	case built == "":
		return fmt.Sprintf("%s (commit: %s)", ver, commit)
	default:
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, commit, built)
	}
}
