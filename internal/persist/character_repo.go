package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CharacterRow is the saved state of an account's character.
type CharacterRow struct {
	ID          int64
	AccountName string
	X           int
	Y           int
	RunEnergy   int
	RunToggled  bool
	Weight      int
	Agility     int
}

type CharacterRepo struct {
	db *DB
}

func NewCharacterRepo(db *DB) *CharacterRepo {
	return &CharacterRepo{db: db}
}

// Load returns the account's character, or nil when it has none.
func (r *CharacterRepo) Load(ctx context.Context, accountName string) (*CharacterRow, error) {
	c := &CharacterRow{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, account_name, x, y, run_energy, run_toggled, weight, agility
		 FROM characters WHERE account_name = $1`, accountName,
	).Scan(&c.ID, &c.AccountName, &c.X, &c.Y, &c.RunEnergy, &c.RunToggled, &c.Weight, &c.Agility)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load character %s: %w", accountName, err)
	}
	return c, nil
}

// Create inserts c and fills in its ID.
func (r *CharacterRepo) Create(ctx context.Context, c *CharacterRow) error {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO characters (account_name, x, y, run_energy, run_toggled, weight, agility)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		c.AccountName, c.X, c.Y, c.RunEnergy, c.RunToggled, c.Weight, c.Agility,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("create character %s: %w", c.AccountName, err)
	}
	return nil
}

const saveCharacterSQL = `UPDATE characters
	SET x = $2, y = $3, run_energy = $4, run_toggled = $5, weight = $6, agility = $7, updated_at = NOW()
	WHERE id = $1`

func (r *CharacterRepo) Save(ctx context.Context, c *CharacterRow) error {
	_, err := r.db.Pool.Exec(ctx, saveCharacterSQL,
		c.ID, c.X, c.Y, c.RunEnergy, c.RunToggled, c.Weight, c.Agility,
	)
	if err != nil {
		return fmt.Errorf("save character %d: %w", c.ID, err)
	}
	return nil
}

// SaveAll writes every row in one round trip.
func (r *CharacterRepo) SaveAll(ctx context.Context, rows []CharacterRow) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i := range rows {
		c := &rows[i]
		batch.Queue(saveCharacterSQL, c.ID, c.X, c.Y, c.RunEnergy, c.RunToggled, c.Weight, c.Agility)
	}
	if err := r.db.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save %d characters: %w", len(rows), err)
	}
	return nil
}
