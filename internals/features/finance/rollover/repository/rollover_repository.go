package repository

import (
	"context"

	"gorm.io/gorm"
)

type RolloverRepository struct {
	DB *gorm.DB
}

func NewRolloverRepository(db *gorm.DB) *RolloverRepository {
	return &RolloverRepository{DB: db}
}

// ProcessYearlyRollover calls the stored procedure that resets every active
// member's dues for the new cycle.
func (r *RolloverRepository) ProcessYearlyRollover(ctx context.Context, headAmount, dependentAmount string) error {
	return r.DB.WithContext(ctx).
		Exec("SELECT process_yearly_rollover(head_amount => ?, dependent_amount => ?)", headAmount, dependentAmount).
		Error
}
