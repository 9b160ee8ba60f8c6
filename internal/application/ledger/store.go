package ledger

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Iraldo49/financeiro/internal/domain"
	"github.com/Iraldo49/financeiro/internal/domain/entity"
	"github.com/Iraldo49/financeiro/internal/domain/repository"
)

// DefaultCapacity é o teto de transações do livro-razão; acima disso Append
// devolve ErrCapacityExceeded e o operador precisa limpar registros antigos.
const DefaultCapacity = 999

// Store é o livro-razão: coleção ordenada e append-only de transações
// imutáveis. Toda mutação persiste o snapshot completo de forma síncrona;
// se a persistência falha, o estado em memória volta ao último snapshot
// gravado e o erro sobe ao chamador.
type Store struct {
	mu       sync.Mutex
	store    repository.SnapshotStore
	capacity int
	txs      []entity.Transaction
}

// NewStore cria o livro-razão sobre o colaborador de persistência.
// capacity <= 0 usa DefaultCapacity.
func NewStore(store repository.SnapshotStore, capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{store: store, capacity: capacity}
}

// Load reidrata o livro-razão a partir do snapshot persistido. Registros sem
// ID (dados antigos) ganham um na carga.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Load(repository.NamespaceTransactions)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if data == nil {
		s.txs = nil
		return nil
	}
	var txs []entity.Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	for i := range txs {
		if txs[i].ID == "" {
			txs[i].ID = "tx_" + uuid.NewString()
		}
	}
	s.txs = txs
	return nil
}

// Append acrescenta a transação ao fim do livro-razão e persiste. Devolve a
// transação armazenada. Falha com ErrCapacityExceeded no teto e, em falha de
// persistência, não altera o estado em memória.
func (s *Store) Append(tx entity.Transaction) (entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.txs) >= s.capacity {
		return entity.Transaction{}, domain.ErrCapacityExceeded
	}
	next := append(append([]entity.Transaction(nil), s.txs...), tx)
	if err := s.persist(next); err != nil {
		return entity.Transaction{}, err
	}
	s.txs = next
	return tx, nil
}

// Remove descarta a transação com o ID dado e persiste.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.txs {
		if s.txs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	next := append(append([]entity.Transaction(nil), s.txs[:idx]...), s.txs[idx+1:]...)
	if err := s.persist(next); err != nil {
		return err
	}
	s.txs = next
	return nil
}

// Clear descarta todas as transações.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(repository.NamespaceTransactions); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	s.txs = nil
	return nil
}

// List devolve as transações em ordem de inserção (não necessariamente
// cronológica; quem precisa de cronologia ordena por CreatedAt).
func (s *Store) List() []entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Transaction(nil), s.txs...)
}

// Len devolve o tamanho atual do livro-razão.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs)
}

func (s *Store) persist(txs []entity.Transaction) error {
	data, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := s.store.Save(repository.NamespaceTransactions, data); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}
