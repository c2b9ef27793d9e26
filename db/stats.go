package db

import (
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/teranos/recruitiq/errors"
)

// FileStats describes the database file and the volume it lives on
type FileStats struct {
	SizeBytes       int64   `json:"size_bytes"` // main file only, WAL excluded
	VolumeFreeBytes uint64  `json:"volume_free_bytes"`
	VolumeUsedPct   float64 `json:"volume_used_percent"`
}

// Stats reports the size of the database at path and the free space left on its volume
func Stats(path string) (FileStats, error) {
	var s FileStats

	info, err := os.Stat(path)
	if err != nil {
		return s, errors.Wrapf(err, "failed to stat database %s", path)
	}
	s.SizeBytes = info.Size()

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return s, errors.Wrapf(err, "failed to resolve directory of %s", path)
	}
	usage, err := disk.Usage(dir)
	if err != nil {
		return s, errors.Wrap(err, "failed to get disk usage")
	}
	s.VolumeFreeBytes = usage.Free
	s.VolumeUsedPct = usage.UsedPercent
	return s, nil
}
