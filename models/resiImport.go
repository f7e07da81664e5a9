package models

import (
	"context"
	"strings"

	"github.com/returnukhti/resi_backend/config"
	"github.com/returnukhti/resi_backend/utils"
)

// ImportSummary reports a best-effort batch: rows stored vs rows skipped as
// duplicates. Batches are not transactional; a failure partway leaves earlier
// inserts committed and the counters tell the caller what happened.
type ImportSummary struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// ImportResiRows ingests parsed rows for userId under the given sumber,
// sequentially and in input order. Duplicates increment the skip counter;
// any other per-row storage error is logged and the batch continues.
func ImportResiRows(ctx context.Context, userId int, rows []*ResiRow, sumber string) (*ImportSummary, error) {
	if userId == 0 {
		return nil, utils.ErrorUnauthorized
	}
	if sumber == "" {
		return nil, utils.NewValidationError("sumber is required")
	}

	logger := config.GetLogger()
	summary := ImportSummary{}

	for _, row := range rows {
		nomor := utils.NormalizeResi(row.NomorResi)
		if nomor == "" {
			continue
		}

		resi := Resi{
			UserId:     userId,
			NomorResi:  nomor,
			NamaBarang: utils.NilIfEmpty(row.NamaBarang),
			NamaToko:   utils.NilIfEmpty(row.NamaToko),
			JasaKirim:  utils.NilIfEmpty(row.JasaKirim),
			Sumber:     sumber,
			Status:     ResiStatusUnmatched,
			Tanggal:    utils.ParseDateOrNow(row.Tanggal),
		}

		err := insertResi(ctx, &resi)
		switch {
		case err == nil:
			summary.Inserted++
		case err == utils.ErrorDuplicateRecord:
			summary.Skipped++
		default:
			config.LogError(logger, "resiImport.go", "ImportResiRows", "insert "+nomor, nil, err)
		}
	}

	return &summary, nil
}

// PasteImportSummary reports a positional paste import. TotalResi and
// TotalBarang are the raw detected counts; when they differ the excess is
// silently dropped and the counts let the client warn the user.
type PasteImportSummary struct {
	Marketplace string `json:"marketplace"`
	NamaToko    string `json:"nama_toko"`
	TotalResi   int    `json:"total_resi"`
	TotalBarang int    `json:"total_barang"`
	Inserted    int    `json:"inserted"`
	Skipped     int    `json:"skipped"`
}

// ImportMarketplacePaste parses a paste block and ingests the index-paired
// (resi, item) records under the lowercased marketplace label.
func ImportMarketplacePaste(ctx context.Context, userId int, marketplace string, text string) (*PasteImportSummary, error) {
	if userId == 0 {
		return nil, utils.ErrorUnauthorized
	}
	if marketplace == "" {
		return nil, utils.NewValidationError("marketplace is required")
	}
	mp := strings.ToLower(marketplace)

	block, err := ParseMarketplacePaste(text)
	if err != nil {
		return nil, err
	}

	// Pair by index up to the shorter list.
	max := len(block.ResiList)
	if len(block.BarangList) < max {
		max = len(block.BarangList)
	}

	rows := make([]*ResiRow, 0, max)
	for i := 0; i < max; i++ {
		rows = append(rows, &ResiRow{
			NomorResi:  block.ResiList[i],
			NamaBarang: block.BarangList[i],
			NamaToko:   block.NamaToko,
		})
	}

	summary, err := ImportResiRows(ctx, userId, rows, mp)
	if err != nil {
		return nil, err
	}

	return &PasteImportSummary{
		Marketplace: mp,
		NamaToko:    block.NamaToko,
		TotalResi:   len(block.ResiList),
		TotalBarang: len(block.BarangList),
		Inserted:    summary.Inserted,
		Skipped:     summary.Skipped,
	}, nil
}
