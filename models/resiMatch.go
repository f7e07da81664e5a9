package models

import (
	"context"
	"sort"
	"strings"

	"github.com/returnukhti/resi_backend/config"
	"github.com/returnukhti/resi_backend/utils"
)

// MatchResult reports one reconciliation run. MarketplaceUnmatched lists
// marketplace resi with no scan counterpart; those rows are reported only,
// never mutated.
type MatchResult struct {
	Marketplace          string   `json:"marketplace"`
	TotalScan            int      `json:"total_scan"`
	TotalMarketplace     int      `json:"total_marketplace"`
	Matched              int      `json:"matched"`
	UnmatchedScan        int      `json:"unmatched_scan"`
	MarketplaceUnmatched []string `json:"marketplace_unmatched"`
}

// MatchResi reconciles userId's unmatched scan resi against the rows recorded
// under the given marketplace label. Matching is by normalized nomor_resi
// equality only; item and store names never participate. Matched scan rows
// transition unmatched -> matched; the transition is conditional on the
// current status so concurrent runs stay idempotent.
func MatchResi(ctx context.Context, userId int, marketplace string) (*MatchResult, error) {
	if userId == 0 {
		return nil, utils.ErrorUnauthorized
	}
	if marketplace == "" {
		return nil, utils.NewValidationError("marketplace is required")
	}
	mp := strings.ToLower(marketplace)

	db := config.GetDB()

	// 1) All scan resi still unmatched.
	var scanResi []*Resi
	if err := db.WithContext(ctx).
		Where("user_id = ? AND sumber = ? AND status = ?", userId, SumberScan, ResiStatusUnmatched).
		Find(&scanResi).Error; err != nil {
		return nil, err
	}

	// 2) All marketplace resi for the label.
	var marketResi []*Resi
	if err := db.WithContext(ctx).
		Where("user_id = ? AND sumber = ?", userId, mp).
		Find(&marketResi).Error; err != nil {
		return nil, err
	}

	marketSet := make(map[string]struct{}, len(marketResi))
	for _, r := range marketResi {
		if nomor := utils.NormalizeResi(r.NomorResi); nomor != "" {
			marketSet[nomor] = struct{}{}
		}
	}

	scanSet := make(map[string]struct{}, len(scanResi))
	for _, r := range scanResi {
		if nomor := utils.NormalizeResi(r.NomorResi); nomor != "" {
			scanSet[nomor] = struct{}{}
		}
	}

	// 3) Transition scan rows that the marketplace knows about.
	matched := 0
	for _, r := range scanResi {
		nomor := utils.NormalizeResi(r.NomorResi)
		if nomor == "" {
			continue
		}
		if _, ok := marketSet[nomor]; !ok {
			continue
		}
		result := db.WithContext(ctx).Model(&Resi{}).
			Where("id = ? AND status = ?", r.ID, ResiStatusUnmatched).
			Update("status", ResiStatusMatched)
		if result.Error != nil {
			return nil, result.Error
		}
		// Rows already flipped by a concurrent run are not re-counted.
		if result.RowsAffected > 0 {
			matched++
		}
	}

	// 4) Marketplace resi never scanned, report-only.
	marketplaceUnmatched := make([]string, 0)
	for nomor := range marketSet {
		if _, ok := scanSet[nomor]; !ok {
			marketplaceUnmatched = append(marketplaceUnmatched, nomor)
		}
	}
	sort.Strings(marketplaceUnmatched)

	return &MatchResult{
		Marketplace:          mp,
		TotalScan:            len(scanResi),
		TotalMarketplace:     len(marketResi),
		Matched:              matched,
		UnmatchedScan:        len(scanResi) - matched,
		MarketplaceUnmatched: marketplaceUnmatched,
	}, nil
}
