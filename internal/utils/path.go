package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppDirName is the directory name used under the platform config and cache roots
const AppDirName = "wordlook"

// PathResolver finds where config, cache and log files live
type PathResolver struct {
	homeDir   string
	configDir string
	cacheDir  string
}

// NewPathResolver creates a new path resolver for the current user
func NewPathResolver() (*PathResolver, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		homeDir:   homeDir,
		configDir: getConfigDir(homeDir),
		cacheDir:  getCacheDir(homeDir),
	}

	log.Debugf("PathResolver initialized: configDir=%s, cacheDir=%s", pr.configDir, pr.cacheDir)
	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", AppDirName)
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppDirName)
		}
		return filepath.Join(homeDir, ".config", AppDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppDirName)
	default:
		return filepath.Join(homeDir, "."+AppDirName)
	}
}

// getCacheDir returns the snapshot cache directory, next to the config dir when
// the platform has no cache root.
func getCacheDir(homeDir string) string {
	if cacheRoot, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cacheRoot, AppDirName)
	}
	return filepath.Join(getConfigDir(homeDir), ".dict_cache")
}

// GetConfigPath returns the full path for a config file
// It ensures the config directory exists and handles read-only filesystem issues
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	configPath := filepath.Join(pr.configDir, filename)
	if pr.ensureWritableDir(pr.configDir) {
		return configPath, nil
	}

	fallbackDirs := []string{
		filepath.Join(pr.homeDir, "."+AppDirName),
		filepath.Join(os.TempDir(), AppDirName),
	}

	for _, dir := range fallbackDirs {
		if pr.ensureWritableDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// GetCachePath resolves a cache file path. Absolute paths are returned as is,
// relative ones are placed under the cache directory.
func (pr *PathResolver) GetCachePath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(pr.cacheDir, filename)
}

// ensureWritableDir creates the directory if it doesn't exist and tests writability
func (pr *PathResolver) ensureWritableDir(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Debugf("Cannot create directory %s: %v", dir, err)
		return false
	}

	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		log.Debugf("Directory %s is not writable: %v", dir, err)
		return false
	}

	os.Remove(testFile)
	return true
}

// GetConfigDir returns the config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}

// GetCacheDir returns the cache directory
func (pr *PathResolver) GetCacheDir() string {
	return pr.cacheDir
}
