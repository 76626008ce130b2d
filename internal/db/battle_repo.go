package db

import (
	"database/sql"
	"time"
)

// Battle is one tracked battle: a container for an observation log.
type Battle struct {
	BattleID  string     `json:"battle_id" db:"battle_id"`
	Format    string     `json:"format" db:"format"`
	Opponent  *string    `json:"opponent,omitempty" db:"opponent"`
	StartedAt time.Time  `json:"started_at" db:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty" db:"ended_at"`
}

// Observation is one logged fact about the opponent's team. The log is
// append-only: epistemic state is never stored, it is rebuilt by replaying
// the log against a freshly seeded model.
type Observation struct {
	ID        int64     `json:"id" db:"id"`
	BattleID  string    `json:"battle_id" db:"battle_id"`
	Pokemon   string    `json:"pokemon" db:"pokemon"`
	Kind      string    `json:"kind" db:"kind"` // reveal, move, item, ability, noitem
	Value     string    `json:"value" db:"value"`
	Note      string    `json:"note" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BattleRepository handles battle database operations
type BattleRepository struct {
	db *DB
}

// NewBattleRepository creates a new battle repository
func NewBattleRepository(db *DB) *BattleRepository {
	return &BattleRepository{db: db}
}

// Create creates a new battle
func (r *BattleRepository) Create(battle *Battle) error {
	query := `
		INSERT INTO battles (battle_id, format, opponent, started_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, battle.BattleID, battle.Format, battle.Opponent, battle.StartedAt)
	return err
}

// Get retrieves a battle by ID
func (r *BattleRepository) Get(battleID string) (*Battle, error) {
	var battle Battle
	query := `SELECT battle_id, format, opponent, started_at, ended_at FROM battles WHERE battle_id = ?`
	err := r.db.Get(&battle, query, battleID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &battle, nil
}

// End marks a battle as finished
func (r *BattleRepository) End(battleID string) error {
	query := `UPDATE battles SET ended_at = ? WHERE battle_id = ?`
	_, err := r.db.Exec(query, time.Now(), battleID)
	return err
}

// AddObservation appends an observation to a battle's log
func (r *BattleRepository) AddObservation(obs *Observation) error {
	query := `
		INSERT INTO observations (battle_id, pokemon, kind, value, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.Exec(query, obs.BattleID, obs.Pokemon, obs.Kind, obs.Value, obs.Note, obs.CreatedAt)
	if err != nil {
		return err
	}
	obs.ID, _ = res.LastInsertId()
	return nil
}

// Observations lists a battle's log in insertion order
func (r *BattleRepository) Observations(battleID string) ([]*Observation, error) {
	var observations []*Observation
	query := `
		SELECT id, battle_id, pokemon, kind, value, note, created_at
		FROM observations WHERE battle_id = ? ORDER BY id ASC
	`
	if err := r.db.Select(&observations, query, battleID); err != nil {
		return nil, err
	}
	return observations, nil
}
