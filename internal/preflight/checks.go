package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"audiocourse/internal/config"
	"audiocourse/internal/deps"
	"audiocourse/internal/sentence"
	"audiocourse/internal/services"
	"audiocourse/internal/settings"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCreatableDirectory passes when the directory exists with access, or
// when its nearest existing ancestor allows it to be created.
func CheckCreatableDirectory(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	if _, err := os.Stat(path); err == nil {
		return CheckDirectoryAccess(name, path)
	}
	parent := filepath.Dir(path)
	for {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		next := filepath.Dir(parent)
		if next == parent {
			break
		}
		parent = next
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckCredentials verifies the service account file exists and is not empty.
func CheckCredentials(path string) Result {
	const name = "Google credentials"
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "credentials_file not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (missing; run `audiocourse configure`)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() || info.Size() == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a credentials file)", path)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckSettings verifies the settings artifact loads and holds every required key.
func CheckSettings(path string) Result {
	const name = "Course settings"
	cfg, err := settings.Load(path)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (missing; run `audiocourse configure`)", path)}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return Result{Name: name, Detail: services.Details(err).Message}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("language %s, %d repeats", cfg.LanguageCode(), cfg.NumberOfRepeats()),
	}
}

// CheckSentences reports how many lines of the candidate file qualify.
func CheckSentences(path string) Result {
	const name = "Sentences file"
	lines, err := sentence.ReadCandidates(path)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (missing)", path)}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	qualified, err := sentence.Qualify(lines)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (no qualified sentences)", path)}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s (%d of %d lines qualify)", path, len(qualified), len(lines)),
	}
}

// CheckSystemDeps evaluates the media tools for the given config. The
// configure wizard and the status command share this list.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.CheckMedia(cfg.FFmpegBinary(), cfg.FFprobeBinary())
}

// DependencyResults converts dependency statuses to check results.
func DependencyResults(statuses []deps.Status) []Result {
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		detail := status.Path
		if !status.Available {
			detail = status.Detail
		}
		results = append(results, Result{
			Name:   status.Name,
			Passed: status.Available || status.Optional,
			Detail: detail,
		})
	}
	return results
}
