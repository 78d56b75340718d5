// Package storage persists board preferences and usage statistics.
package storage

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "boardtouch"

// homeJoin joins elem onto the user's home directory.
func homeJoin(elem ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, elem...)...), nil
}

// dataHome is the per-user root for application data on this platform.
func dataHome() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return homeJoin("Library", "Application Support")
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return homeJoin("AppData", "Roaming")
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		return homeJoin(".local", "share")
	}
}

// ensureDir creates dir and its parents and returns it.
func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// GetDataDir returns the application data directory, creating it:
// ~/Library/Application Support/boardtouch on macOS, %APPDATA%\boardtouch
// on Windows and $XDG_DATA_HOME/boardtouch (or ~/.local/share) elsewhere.
func GetDataDir() (string, error) {
	base, err := dataHome()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(base, appName))
}

// GetDatabaseDir returns the directory for the BadgerDB database. An empty
// root selects GetDataDir.
func GetDatabaseDir(root string) (string, error) {
	if root == "" {
		var err error
		if root, err = GetDataDir(); err != nil {
			return "", err
		}
	}
	dir, err := ensureDir(filepath.Join(root, "db"))
	if err != nil {
		return "", err
	}
	log.Printf("Database directory: %s", dir)
	return dir, nil
}
