package version

import "github.com/fatih/color"

// Build metadata for the mirvm CLI, overridable via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component highlighted.
// Versions that do not look like MAJOR.MINOR.PATCH are returned as is.
func Colored() string {
	major, minor, patch, suffix, ok := split(Version)
	if !ok {
		return Version
	}
	return majorColor.Sprint(major) + "." + minorColor.Sprint(minor) + "." + patchColor.Sprint(patch) + suffix
}

func split(v string) (major, minor, patch, suffix string, ok bool) {
	parts := make([]string, 0, 3)
	start := 0
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '.' && len(parts) < 2 {
			parts = append(parts, v[start:i])
			start = i + 1
			continue
		}
		if c < '0' || c > '9' {
			if len(parts) != 2 {
				return "", "", "", "", false
			}
			parts = append(parts, v[start:i])
			suffix = v[i:]
			break
		}
	}
	if len(parts) == 2 {
		parts = append(parts, v[start:])
	}
	if len(parts) != 3 {
		return "", "", "", "", false
	}
	for _, p := range parts {
		if p == "" {
			return "", "", "", "", false
		}
	}
	return parts[0], parts[1], parts[2], suffix, true
}
