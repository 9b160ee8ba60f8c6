package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persiste cada namespace como um arquivo JSON em um diretório.
// A escrita é atômica: grava em arquivo temporário e renomeia por cima.
type FileStore struct {
	dir string
}

// NewFileStore cria o diretório de dados se necessário e devolve o store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório de dados %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(namespace string) string {
	return filepath.Join(s.dir, namespace+".json")
}

// Load devolve o conteúdo do namespace, ou nil se o arquivo não existe.
func (s *FileStore) Load(namespace string) ([]byte, error) {
	data, err := os.ReadFile(s.path(namespace))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ler %s: %w", namespace, err)
	}
	return data, nil
}

// Save grava o snapshot do namespace de forma atômica.
func (s *FileStore) Save(namespace string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, namespace+"-*.tmp")
	if err != nil {
		return fmt.Errorf("gravar %s: %w", namespace, err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("gravar %s: %w", namespace, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("gravar %s: %w", namespace, err)
	}
	if err := os.Rename(name, s.path(namespace)); err != nil {
		os.Remove(name)
		return fmt.Errorf("gravar %s: %w", namespace, err)
	}
	return nil
}

// Clear remove o arquivo do namespace; ausência não é erro.
func (s *FileStore) Clear(namespace string) error {
	err := os.Remove(s.path(namespace))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("limpar %s: %w", namespace, err)
	}
	return nil
}
