package repositories

import (
	"database/sql"
	"fmt"
	"slices"

	"github.com/desertthunder/cleanify/internal/shared"
)

// sequencedTables are the tables with a "<table>_sequence" counter row.
var sequencedTables = []string{"overrides", "verdicts"}

// NextSequence increments and returns the counter for table.
//
// Overrides and verdicts are numbered independently (override #3, verdict #120). The
// number orders history listings and never appears in verdicts.
func NextSequence(db *sql.DB, table string) (int, error) {
	if !slices.Contains(sequencedTables, table) {
		return 0, fmt.Errorf("%w: no sequence for table %q", shared.ErrInvalidInput, table)
	}

	var sequence int
	query := fmt.Sprintf("UPDATE %s_sequence SET value = value + 1 WHERE id = 1 RETURNING value", table)
	if err := db.QueryRow(query).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to increment %s sequence: %w", table, err)
	}
	return sequence, nil
}
