package repositories

import (
	"fmt"
	"strconv"
	"strings"

	"mcacrm/internal/models"

	"gorm.io/gorm/clause"
)

// DealNumberPrefix returns the MCA-<year>- prefix.
func DealNumberPrefix(year int) string {
	return fmt.Sprintf("MCA-%d-", year)
}

// FormatDealNumber renders a sequence as MCA-<year>-NNNN.
func FormatDealNumber(year, seq int) string {
	return fmt.Sprintf("%s%04d", DealNumberPrefix(year), seq)
}

// NextDealNumber bumps the per-year counter row. The UPDATE takes a row
// lock so concurrent creators in the same year queue behind each other
// until commit. The counter never falls behind numbers already issued,
// including ones written before the counter existed.
func (r *dealRepository) NextDealNumber(year int) (string, error) {
	seed := models.DealSequence{Year: year, LastValue: 0}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return "", fmt.Errorf("failed to seed deal sequence: %w", err)
	}

	highest, err := r.highestIssued(year)
	if err != nil {
		return "", err
	}

	err = r.db.Exec(
		"UPDATE deal_sequences SET last_value = CASE WHEN last_value < ? THEN ? ELSE last_value END + 1 WHERE year = ?",
		highest, highest, year,
	).Error
	if err != nil {
		return "", fmt.Errorf("failed to advance deal sequence: %w", err)
	}

	var seq models.DealSequence
	if err := r.db.Where("year = ?", year).First(&seq).Error; err != nil {
		return "", fmt.Errorf("failed to read deal sequence: %w", err)
	}
	return FormatDealNumber(year, seq.LastValue), nil
}

func (r *dealRepository) highestIssued(year int) (int, error) {
	prefix := DealNumberPrefix(year)
	var numbers []string
	err := r.db.Model(&models.Deal{}).
		Where("deal_number LIKE ?", prefix+"%").
		Order("LENGTH(deal_number) DESC, deal_number DESC").
		Limit(1).
		Pluck("deal_number", &numbers).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read latest deal number: %w", err)
	}
	if len(numbers) == 0 {
		return 0, nil
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(numbers[0], prefix))
	if err != nil {
		return 0, nil
	}
	return seq, nil
}
