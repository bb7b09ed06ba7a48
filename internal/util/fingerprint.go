package util

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

// tailSize is how much of the end of a file goes into its fingerprint.
const tailSize = 2048

// FileFingerprint identifies the current content of an event file without
// reading all of it: inode, size, mtime and the CRC32 of the last 2KB.
// Appending a line or rewriting the file changes it.
func FileFingerprint(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", err
	}
	base := fmt.Sprintf("%d-%d-%d", inode(stat), stat.Size(), stat.ModTime().UnixNano())

	size := stat.Size()
	if size == 0 {
		return base, nil
	}
	readSize := int64(tailSize)
	if size < readSize {
		readSize = size
	}

	data := make([]byte, readSize)
	if _, err := file.ReadAt(data, size-readSize); err != nil && err != io.EOF {
		return "", err
	}
	return base + "-" + Checksum(data), nil
}

// Checksum returns the CRC32 of data as eight hex digits.
func Checksum(data []byte) string {
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE(data))
}
