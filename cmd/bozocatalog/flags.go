package main

import (
	"fmt"
	"strings"

	"bozocatalog/internal/catalog"
	"bozocatalog/internal/indexer"
)

func parseAlgorithm(s string) (catalog.HashAlgorithm, error) {
	switch strings.ToLower(s) {
	case "sha256":
		return catalog.SHA256, nil
	case "blake2b-256", "blake2b":
		return catalog.Blake2b256, nil
	case "blake3":
		return catalog.Blake3, nil
	default:
		return "", fmt.Errorf("%w: %q (expected sha256, blake2b-256, or blake3)", catalog.ErrUnsupportedAlgorithm, s)
	}
}

func parseStorageType(s string) (indexer.StorageType, error) {
	switch strings.ToLower(s) {
	case "ssd":
		return indexer.SSD, nil
	case "raid":
		return indexer.RAID, nil
	case "hdd":
		return indexer.HDD, nil
	default:
		return 0, fmt.Errorf("unknown storage type %q (expected ssd, raid, or hdd)", s)
	}
}
