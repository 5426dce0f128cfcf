package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"slugline/internal/app/models"
)

// File storage
type FileStorage struct {
	filePath string
}

// New file storage
func NewFileStorage(filePath string) *FileStorage {
	return &FileStorage{filePath: filePath}
}

// Get mappings from file
func (fs *FileStorage) Snapshot() ([]models.Mapping, error) {
	file, err := os.OpenFile(fs.filePath, os.O_RDONLY|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("could not load data from file: %s", err)
	}

	scanner := bufio.NewScanner(file)
	result := make([]models.Mapping, 0)
	for scanner.Scan() {
		var m models.Mapping
		data := scanner.Bytes()
		err = json.Unmarshal(data, &m)
		if err != nil {
			continue
		}
		result = append(result, m)
	}

	err = file.Close()
	if err != nil {
		return nil, fmt.Errorf("could not restore data: %s", err.Error())
	}

	return result, scanner.Err()
}

// Save mappings to file
func (fs *FileStorage) Dump(ms *MapStorage) error {
	file, err := os.OpenFile(fs.filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("could not dump storage: %w", err)
	}

	encoder := json.NewEncoder(file)
	for _, m := range ms.snapshot() {
		encoder.Encode(m)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("could not dump storage: %w", err)
	}

	return nil
}
