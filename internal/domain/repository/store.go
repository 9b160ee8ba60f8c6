package repository

// Namespaces persistidos de forma independente; não há transacionalidade entre
// eles. Uma queda entre dois Save pode deixá-los dessincronizados.
const (
	NamespaceTransactions = "transactions"
	NamespaceProducts     = "products"
	NamespaceInventory    = "inventory"
)

// SnapshotStore é o colaborador de persistência: cada namespace guarda o
// snapshot completo do seu estado, gravado de forma síncrona a cada mutação.
type SnapshotStore interface {
	// Load devolve o snapshot do namespace, ou nil se nunca foi gravado.
	Load(namespace string) ([]byte, error)
	// Save substitui o snapshot do namespace.
	Save(namespace string, data []byte) error
	// Clear descarta o snapshot do namespace.
	Clear(namespace string) error
}
