// Package version holds Kaya's build version, injected with -ldflags at release time.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Build information set at compile time via -ldflags.
var (
	// Version is the semantic version of the application.
	Version = "0.1.0"

	// GitCommit is the commit the binary was built from.
	GitCommit = "unknown"

	// BuildDate is when the binary was built.
	BuildDate = "unknown"
)

// Each minor release is named after a rock, from softest to hardest.
var codenames = map[string]string{
	"0.1.0": "Basalt",
	"0.2.0": "Granite",
	"0.3.0": "Obsidian",
	"0.4.0": "Quartzite",
	"1.0.0": "Diamond",
}

// Info is the full build description.
type Info struct {
	Version   string          `json:"version"`
	Codename  string          `json:"codename"`
	GitCommit string          `json:"gitCommit"`
	BuildDate string          `json:"buildDate"`
	GoVersion string          `json:"goVersion"`
	Platform  string          `json:"platform"`
	SemVer    *semver.Version `json:"-"`
}

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetCodename returns the codename of the current version, or "".
func GetCodename() string {
	return GetCodenameForVersion(Version)
}

// GetCodenameForVersion resolves a codename by exact version, then by its
// major.minor.0 base so patch releases share their minor's name.
func GetCodenameForVersion(v string) string {
	if name, ok := codenames[v]; ok {
		return name
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return ""
	}
	return codenames[fmt.Sprintf("%d.%d.0", sv.Major(), sv.Minor())]
}

// GetInfo parses the current version into Info.
func GetInfo() (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return &Info{
		Version:   Version,
		Codename:  GetCodename(),
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		SemVer:    sv,
	}, nil
}

// GetFormattedVersion returns "Kaya v<version> (<codename>)", the codename
// omitted when the version has none.
func GetFormattedVersion() string {
	if codename := GetCodename(); codename != "" {
		return fmt.Sprintf("Kaya v%s (%s)", Version, codename)
	}
	return fmt.Sprintf("Kaya v%s", Version)
}

// GetDetailedVersion returns a multi-line build report for `kaya version --detailed`.
func GetDetailedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("Kaya v%s (error: %v)", Version, err)
	}

	lines := []string{GetFormattedVersion()}
	if IsPrerelease() {
		lines = append(lines, fmt.Sprintf("Prerelease: %s", info.SemVer.Prerelease()))
	}
	if IsDevelopment() {
		lines = append(lines, "Build: development")
	}
	lines = append(lines,
		fmt.Sprintf("Git Commit: %s", info.GitCommit),
		fmt.Sprintf("Build Date: %s", info.BuildDate),
		fmt.Sprintf("Go Version: %s", info.GoVersion),
		fmt.Sprintf("Platform: %s", info.Platform),
	)
	return strings.Join(lines, "\n")
}

// ValidateVersion reports whether Version is valid semver.
func ValidateVersion() error {
	if _, err := semver.NewVersion(Version); err != nil {
		return fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return nil
}

// IsPrerelease reports whether Version carries a prerelease tag.
func IsPrerelease() bool {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return false
	}
	return sv.Prerelease() != ""
}

// IsDevelopment reports a build without injected metadata.
func IsDevelopment() bool {
	return GitCommit == "unknown" || BuildDate == "unknown"
}

// SetBuildInfo overrides build information. Tests use it and restore afterwards.
func SetBuildInfo(version, gitCommit, buildDate string) {
	Version = version
	GitCommit = gitCommit
	BuildDate = buildDate
}
