package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Yoast/visitor_currency_app/internal/apperrors"
	portsrepo "github.com/Yoast/visitor_currency_app/internal/core/ports/repositories"
	"github.com/Yoast/visitor_currency_app/internal/models"
)

// vatOptionName is the durable option under which the EU VAT rule set is
// stored, kept identical to the name the surrounding application has always
// used for it.
const vatOptionName = "yst_vat_euro"

// PgxVATRuleRepository persists the VAT rule set as a single JSONB option row.
type PgxVATRuleRepository struct {
	BaseRepository
}

// NewPgxVATRuleRepository creates a new repository for the VAT rule option.
func NewPgxVATRuleRepository(pool *pgxpool.Pool) portsrepo.VATRuleRepository {
	return &PgxVATRuleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.VATRuleRepository = (*PgxVATRuleRepository)(nil)

// GetVATRules returns the stored rule set, or apperrors.ErrNotFound when no
// rule set has ever been persisted.
func (r *PgxVATRuleRepository) GetVATRules(ctx context.Context) (*models.VATRuleSet, error) {
	query := `
		SELECT option_value
		FROM app_options
		WHERE option_name = $1;
	`
	var raw []byte
	err := r.Pool.QueryRow(ctx, query, vatOptionName).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read option %s: %w", vatOptionName, err)
	}

	var ruleSet models.VATRuleSet
	if err := json.Unmarshal(raw, &ruleSet); err != nil {
		return nil, fmt.Errorf("failed to decode option %s: %w", vatOptionName, err)
	}

	return &ruleSet, nil
}

// SaveVATRules replaces the stored rule set. Concurrent refreshes race
// last-writer-wins, which is acceptable for advisory data.
func (r *PgxVATRuleRepository) SaveVATRules(ctx context.Context, rules models.VATRuleSet) error {
	raw, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to encode option %s: %w", vatOptionName, err)
	}

	query := `
		INSERT INTO app_options (option_name, option_value)
		VALUES ($1, $2)
		ON CONFLICT (option_name) DO UPDATE SET
			option_value = EXCLUDED.option_value;
	`
	if _, err := r.Pool.Exec(ctx, query, vatOptionName, raw); err != nil {
		return fmt.Errorf("failed to write option %s: %w", vatOptionName, err)
	}
	return nil
}
