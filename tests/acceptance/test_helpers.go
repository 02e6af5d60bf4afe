package acceptance

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type TestFileHashes struct {
	Filename string     `json:"filename"`
	Cards    []CardHash `json:"cards"`
}

type CardHash struct {
	Front string `json:"front"`
	Hash  string `json:"hash"`
}

// HashStore holds the golden card hashes for each input under testdata.
// Setting UPDATE_TEST_DATA=true rewrites them from the current output.
type HashStore struct {
	path         string
	updateHashes bool
	hashes       map[string]TestFileHashes // filename -> hashes
}

func NewHashStore(testDataPath string) *HashStore {
	return &HashStore{
		path:         filepath.Join(testDataPath, "expected_hashes.json"),
		updateHashes: os.Getenv("UPDATE_TEST_DATA") == "true",
		hashes:       make(map[string]TestFileHashes),
	}
}

func (s *HashStore) Load() error {
	if s.updateHashes {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read hash file: %w", err)
	}

	var hashList []TestFileHashes
	if err := json.Unmarshal(data, &hashList); err != nil {
		return fmt.Errorf("failed to parse hash file: %w", err)
	}

	for _, h := range hashList {
		s.hashes[h.Filename] = h
	}

	return nil
}

func (s *HashStore) Save() error {
	if !s.updateHashes {
		return nil
	}

	var hashList []TestFileHashes
	for _, h := range s.hashes {
		hashList = append(hashList, h)
	}

	sort.Slice(hashList, func(i, j int) bool {
		return hashList[i].Filename < hashList[j].Filename
	})

	data, err := json.MarshalIndent(hashList, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal hashes: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write hash file: %w", err)
	}

	return nil
}

func (s *HashStore) UpdateFileHashes(filename string, cards []CardHash) {
	if !s.updateHashes {
		return
	}

	s.hashes[filename] = TestFileHashes{
		Filename: filename,
		Cards:    cards,
	}
}

func (s *HashStore) GetFileHashes(filename string) (TestFileHashes, bool) {
	hashes, exists := s.hashes[filename]
	return hashes, exists
}

func (s *HashStore) IsUpdateMode() bool {
	return s.updateHashes
}
