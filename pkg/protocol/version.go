package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

const Version = "v1.0.0"

// IsCompatibleVersion reports whether a client at clientVersion can talk to
// a server at serverVersion. Major versions must match; minor and patch may differ.
func IsCompatibleVersion(clientVersion, serverVersion string) (bool, error) {
	if !semver.IsValid(clientVersion) {
		return false, fmt.Errorf("invalid client version: %s", clientVersion)
	}
	if !semver.IsValid(serverVersion) {
		return false, fmt.Errorf("invalid server version: %s", serverVersion)
	}
	return semver.Major(clientVersion) == semver.Major(serverVersion), nil
}

// CompatibilityError returns a user-facing message for incompatible versions.
func CompatibilityError(clientVersion, serverVersion string) string {
	return fmt.Sprintf(
		"client version %s is incompatible with server version %s; required version: %s.x.x",
		clientVersion, serverVersion, semver.Major(serverVersion),
	)
}

// BumpVersion increments one part of a semantic version. part is one of
// major, minor, patch or pre. Bumping pre increments a trailing numeric
// prerelease identifier (v1.2.0-rc.1 -> v1.2.0-rc.2), appends ".1" to a
// non-numeric one, and starts v1.2.4-rc.1 from a release v1.2.3.
// Build metadata is dropped.
func BumpVersion(v, part string) (string, error) {
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid version: %s", v)
	}
	pre := semver.Prerelease(v)
	core := strings.TrimSuffix(semver.Canonical(v), pre)
	nums := strings.Split(strings.TrimPrefix(core, "v"), ".")
	major, _ := strconv.Atoi(nums[0])
	minor, _ := strconv.Atoi(nums[1])
	patch, _ := strconv.Atoi(nums[2])

	switch part {
	case "major":
		return fmt.Sprintf("v%d.0.0", major+1), nil
	case "minor":
		return fmt.Sprintf("v%d.%d.0", major, minor+1), nil
	case "patch":
		if pre != "" {
			return core, nil
		}
		return fmt.Sprintf("v%d.%d.%d", major, minor, patch+1), nil
	case "pre":
		if pre == "" {
			return fmt.Sprintf("v%d.%d.%d-rc.1", major, minor, patch+1), nil
		}
		ids := strings.Split(strings.TrimPrefix(pre, "-"), ".")
		last := ids[len(ids)-1]
		if n, err := strconv.Atoi(last); err == nil {
			ids[len(ids)-1] = strconv.Itoa(n + 1)
		} else {
			ids = append(ids, "1")
		}
		return core + "-" + strings.Join(ids, "."), nil
	}
	return "", fmt.Errorf("unknown version part %q (want major, minor, patch or pre)", part)
}
