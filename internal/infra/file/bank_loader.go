package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"daily-quiz-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// extensions are tried in order when resolving a bank id to a file.
var extensions = []string{".json", ".yaml", ".yml"}

// BankLoader reads banks from <dir>/<id>.json, .yaml or .yml.
type BankLoader struct {
	dir string
}

func NewBankLoader(dir string) *BankLoader {
	return &BankLoader{dir: dir}
}

func (l *BankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	if bankID == "" || strings.ContainsAny(bankID, `/\`) || bankID == ".." {
		return nil, domain.NewLoadError(l.dir, fmt.Errorf("%w: invalid bank id %q", domain.ErrBankNotFound, bankID))
	}
	for _, ext := range extensions {
		path := filepath.Join(l.dir, bankID+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, domain.NewLoadError(path, err)
		}
		bank, err := Decode(data, ext)
		if err != nil {
			return nil, domain.NewLoadError(path, err)
		}
		return bank, nil
	}
	return nil, domain.NewLoadError(l.dir, fmt.Errorf("%w: %s", domain.ErrBankNotFound, bankID))
}

// ReadBank loads and validates a single bank file.
func ReadBank(path string) (domain.Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewLoadError(path, err)
	}
	bank, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, domain.NewLoadError(path, err)
	}
	return bank, nil
}

// Decode parses a bank document by file extension and validates it.
func Decode(data []byte, ext string) (domain.Bank, error) {
	var bank domain.Bank
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &bank); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&bank); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}
	if bank == nil {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidBank)
	}
	if err := bank.Validate(); err != nil {
		return nil, err
	}
	return bank, nil
}
