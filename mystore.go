// Package mystore is the data core of the myStore inventory application:
// categories, items, and purchase orders over an embedded SQLite store,
// with JSON backup and CSV merge-import exchange. The UI layer constructs
// one Store at startup and calls into it for everything.
package mystore

import (
	"github.com/pavan1045/myStore/internal/db"
	"github.com/pavan1045/myStore/internal/repo"
	"github.com/pavan1045/myStore/internal/transfer"
	"github.com/pavan1045/myStore/pkg/logger"
	"go.uber.org/zap"
)

// Store bundles the opened database with the repositories and the
// import/export service. Create one with Open and Close it at shutdown.
type Store struct {
	Categories *repo.CategoryRepository
	Items      *repo.ItemRepository
	Orders     *repo.OrderRepository
	Transfer   *transfer.Service

	db  *db.DB
	log *zap.Logger
}

// Open opens the store at path (":memory:" for an ephemeral one), applies
// pending schema migrations, and wires the repositories.
func Open(path, logLevel string) (*Store, error) {
	log := logger.NewLogger("mystore", logLevel)

	database, err := db.Open(path)
	if err != nil {
		log.Error("Failed to open store", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	if err := db.RunMigrations(database, log); err != nil {
		log.Error("Failed to run migrations", zap.Error(err))
		database.Close()
		return nil, err
	}

	return &Store{
		Categories: repo.NewCategoryRepository(database, log),
		Items:      repo.NewItemRepository(database, log),
		Orders:     repo.NewOrderRepository(database, log),
		Transfer:   transfer.NewService(database, log),
		db:         database,
		log:        log,
	}, nil
}

// Ping checks that the underlying store is reachable.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// Close flushes the logger and closes the store.
func (s *Store) Close() error {
	s.log.Sync()
	return s.db.Close()
}
