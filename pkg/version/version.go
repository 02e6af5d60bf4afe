package version

import "strings"

const appName = "NeuroCards"

var (
	// These values are injected during build - DO NOT MODIFY
	Version   = "VERSION_PLACEHOLDER"
	CommitSHA = "COMMIT_PLACEHOLDER"
)

func GetVersionInfo() string {
	return appName + " " + Version
}

func GetDetailedVersionInfo() string {
	var b strings.Builder
	b.WriteString(appName + "\n")
	b.WriteString("Version:  " + Version + "\n")
	b.WriteString("Commit:   " + CommitSHA + "\n")
	return b.String()
}

// UserAgent is sent with outgoing HTTP requests.
func UserAgent() string {
	return appName + "/" + strings.TrimPrefix(Version, "v")
}
