package lookup

import (
	"context"

	"github.com/at-ishikawa/foodscout/internal/fooddb"
	"github.com/at-ishikawa/foodscout/internal/fooddb/usda"
)

//go:generate mockgen -source=interface.go -destination=../mocks/lookup/mock_interface.go -package=mock_lookup

// Resolver finds nutrition data for foods missing from the local database.
// A false result means no data is available; it is never an error.
type Resolver interface {
	Resolve(ctx context.Context, name string) (usda.Candidate, bool)
}

// Store persists the database after it has been mutated.
type Store interface {
	Save(db *fooddb.Database) error
	Today() string
}
