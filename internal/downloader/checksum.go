package downloader

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

type ChecksumInfo struct {
	ExpectedHash string
	AlgoName     string
	Algo         ChecksumAlgo
}

type ChecksumAlgo struct {
	ChecksumLen int
	NewHash     func() hash.Hash
}

var SupportedChecksum = map[string]ChecksumAlgo{
	"md5":    {ChecksumLen: 32, NewHash: md5.New},
	"sha1":   {ChecksumLen: 40, NewHash: sha1.New},
	"sha256": {ChecksumLen: 64, NewHash: sha256.New},
	"sha384": {ChecksumLen: 96, NewHash: sha512.New384},
	"sha512": {ChecksumLen: 128, NewHash: sha512.New},
}

// NewChecksumInfo validates the algorithm name and digest length before
// anything is downloaded.
func NewChecksumInfo(expected, algoName string) (*ChecksumInfo, error) {
	name := strings.ToLower(algoName)
	algo, ok := SupportedChecksum[name]
	if !ok {
		return nil, fmt.Errorf("unsupported checksum algorithm %q", algoName)
	}
	expected = strings.ToLower(strings.TrimSpace(expected))
	if len(expected) != algo.ChecksumLen {
		return nil, fmt.Errorf("%s checksum must be %d hex characters, got %d", name, algo.ChecksumLen, len(expected))
	}
	if _, err := hex.DecodeString(expected); err != nil {
		return nil, fmt.Errorf("checksum is not valid hex - %w", err)
	}
	return &ChecksumInfo{ExpectedHash: expected, AlgoName: name, Algo: algo}, nil
}

func VerifyFile(filepath string, info *ChecksumInfo) error {
	f, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("failed to open the file %q - %w", filepath, err)
	}
	defer f.Close()

	hash := info.Algo.NewHash()

	if _, err := io.Copy(hash, f); err != nil {
		return fmt.Errorf("failed to hash file stream - %w", err)
	}

	calculatedHash := hex.EncodeToString(hash.Sum(nil))

	if calculatedHash != info.ExpectedHash {
		return fmt.Errorf("checksum mismatch: expected %s | got %s", info.ExpectedHash, calculatedHash)
	}
	return nil
}
