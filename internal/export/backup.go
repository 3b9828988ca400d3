package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Backup copies the database file into dir (the database's own directory
// when dir is empty) and returns the backup path.
func Backup(dbPath, dir string) (string, error) {
	// Generate backup filename with timestamp
	timestamp := time.Now().Format("2006-01-02-150405")
	baseName := strings.TrimSuffix(filepath.Base(dbPath), filepath.Ext(dbPath))
	if dir == "" {
		dir = filepath.Dir(dbPath)
	}
	backupPath := filepath.Join(dir, fmt.Sprintf("%s-backup-%s.db", baseName, timestamp))

	src, err := os.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy database: %w", err)
	}
	if err := dst.Sync(); err != nil {
		return "", fmt.Errorf("failed to flush backup: %w", err)
	}
	return backupPath, nil
}
