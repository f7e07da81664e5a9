package models

import (
	"context"
	"time"

	"github.com/returnukhti/resi_backend/config"
	"github.com/returnukhti/resi_backend/utils"
)

// Resi is the single domain entity: one tracking number plus its metadata,
// owned by exactly one user for its entire lifetime. The same nomor_resi may
// exist once per sumber per user (scan + marketplace rows coexist); the
// composite unique index enforces that at the storage layer.
type Resi struct {
	ID         int        `gorm:"primary_key" json:"id"`
	UserId     int        `gorm:"not null;index;uniqueIndex:uniq_user_resi_sumber" json:"user_id"`
	NomorResi  string     `gorm:"size:100;not null;uniqueIndex:uniq_user_resi_sumber" json:"nomor_resi"`
	NamaBarang *string    `gorm:"size:255" json:"nama_barang"`
	NamaToko   *string    `gorm:"size:255" json:"nama_toko"`
	JasaKirim  *string    `gorm:"size:100" json:"jasa_kirim"`
	Sumber     string     `gorm:"size:50;not null;uniqueIndex:uniq_user_resi_sumber" json:"sumber"`
	Status     ResiStatus `gorm:"size:20;not null;default:'unmatched'" json:"status"`
	Tanggal    time.Time  `gorm:"not null" json:"tanggal"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// NewResi is the manual-entry input.
type NewResi struct {
	NomorResi  string `json:"nomor_resi" binding:"required"`
	NamaBarang string `json:"nama_barang"`
	NamaToko   string `json:"nama_toko"`
	JasaKirim  string `json:"jasa_kirim"`
	Tanggal    string `json:"tanggal"`
}

// NewResiScan is the scanner-entry input (no item/store metadata on the label).
type NewResiScan struct {
	NomorResi string `json:"nomor_resi" binding:"required"`
	JasaKirim string `json:"jasa_kirim"`
	Tanggal   string `json:"tanggal"`
}

// EditResi carries a partial update; nil fields keep their current value.
type EditResi struct {
	NomorResi  *string `json:"nomor_resi"`
	NamaBarang *string `json:"nama_barang"`
	NamaToko   *string `json:"nama_toko"`
	JasaKirim  *string `json:"jasa_kirim"`
	Sumber     *string `json:"sumber"`
	Status     *string `json:"status"`
	Tanggal    *string `json:"tanggal"`
}

func insertResi(ctx context.Context, resi *Resi) error {
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(resi).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			return utils.ErrorDuplicateRecord
		}
		return err
	}
	return nil
}

// CreateResi stores a manually entered resi for userId.
func CreateResi(ctx context.Context, userId int, input *NewResi) (*Resi, error) {
	if userId == 0 {
		return nil, utils.ErrorUnauthorized
	}

	nomor := utils.NormalizeResi(input.NomorResi)
	if nomor == "" {
		return nil, utils.NewValidationError("nomor resi is required")
	}

	resi := Resi{
		UserId:     userId,
		NomorResi:  nomor,
		NamaBarang: utils.NilIfEmpty(input.NamaBarang),
		NamaToko:   utils.NilIfEmpty(input.NamaToko),
		JasaKirim:  utils.NilIfEmpty(input.JasaKirim),
		Sumber:     SumberManual,
		Status:     ResiStatusUnmatched,
		Tanggal:    utils.ParseDateOrNow(input.Tanggal),
	}

	if err := insertResi(ctx, &resi); err != nil {
		return nil, err
	}
	return &resi, nil
}

// CreateResiScan stores a scanner-entered resi for userId.
func CreateResiScan(ctx context.Context, userId int, input *NewResiScan) (*Resi, error) {
	if userId == 0 {
		return nil, utils.ErrorUnauthorized
	}

	nomor := utils.NormalizeResi(input.NomorResi)
	if nomor == "" {
		return nil, utils.NewValidationError("nomor resi is required")
	}

	resi := Resi{
		UserId:    userId,
		NomorResi: nomor,
		JasaKirim: utils.NilIfEmpty(input.JasaKirim),
		Sumber:    SumberScan,
		Status:    ResiStatusUnmatched,
		Tanggal:   utils.ParseDateOrNow(input.Tanggal),
	}

	if err := insertResi(ctx, &resi); err != nil {
		return nil, err
	}
	return &resi, nil
}

// ResiFilter holds the optional list filters, straight from query params.
type ResiFilter struct {
	Search    string
	JasaKirim string
	Status    string
	Sumber    string
	Tanggal   string
	Start     string
	End       string
}

func (f *ResiFilter) empty() bool {
	return f.Search == "" && f.JasaKirim == "" && f.Status == "" &&
		f.Sumber == "" && f.Tanggal == "" && f.Start == "" && f.End == ""
}

func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// ListResi returns userId's resi, most recent first. With no filter at all the
// default working view is the scan backlog: sumber=scan, status=unmatched.
func ListResi(ctx context.Context, userId int, filter *ResiFilter) ([]*Resi, error) {
	if userId == 0 {
		return nil, utils.ErrorUnauthorized
	}
	if filter == nil {
		filter = &ResiFilter{}
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&Resi{}).Where("user_id = ?", userId)

	if filter.empty() {
		dbCtx = dbCtx.Where("sumber = ? AND status = ?", SumberScan, ResiStatusUnmatched)
	}

	if filter.JasaKirim != "" {
		dbCtx = dbCtx.Where("jasa_kirim = ?", filter.JasaKirim)
	}
	if filter.Status != "" {
		dbCtx = dbCtx.Where("status = ?", filter.Status)
	}
	if filter.Sumber != "" {
		dbCtx = dbCtx.Where("sumber = ?", filter.Sumber)
	}

	if filter.Tanggal != "" {
		day, err := parseDay(filter.Tanggal)
		if err != nil {
			return nil, utils.NewValidationError("tanggal must be YYYY-MM-DD")
		}
		dbCtx = dbCtx.Where("tanggal >= ? AND tanggal < ?", day, day.AddDate(0, 0, 1))
	}

	if filter.Start != "" && filter.End != "" {
		start, err := parseDay(filter.Start)
		if err != nil {
			return nil, utils.NewValidationError("start must be YYYY-MM-DD")
		}
		end, err := parseDay(filter.End)
		if err != nil {
			return nil, utils.NewValidationError("end must be YYYY-MM-DD")
		}
		dbCtx = dbCtx.Where("tanggal >= ? AND tanggal < ?", start, end.AddDate(0, 0, 1))
	}

	if filter.Search != "" {
		q := "%" + filter.Search + "%"
		dbCtx = dbCtx.Where("nomor_resi LIKE ? OR nama_barang LIKE ? OR nama_toko LIKE ?", q, q, q)
	}

	var results []*Resi
	if err := dbCtx.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateResi applies a partial edit to one of userId's resi. A wrong owner and
// a missing id both report "not found"; existence is never leaked to
// non-owners.
func UpdateResi(ctx context.Context, userId int, id int, input *EditResi) (*Resi, error) {
	if userId == 0 {
		return nil, utils.ErrorUnauthorized
	}

	db := config.GetDB()

	var resi Resi
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userId).Take(&resi).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	updates := map[string]interface{}{}
	if input.NomorResi != nil {
		nomor := utils.NormalizeResi(*input.NomorResi)
		if nomor == "" {
			return nil, utils.NewValidationError("nomor resi is required")
		}
		updates["nomor_resi"] = nomor
	}
	if input.NamaBarang != nil {
		updates["nama_barang"] = utils.NilIfEmpty(*input.NamaBarang)
	}
	if input.NamaToko != nil {
		updates["nama_toko"] = utils.NilIfEmpty(*input.NamaToko)
	}
	if input.JasaKirim != nil {
		updates["jasa_kirim"] = utils.NilIfEmpty(*input.JasaKirim)
	}
	if input.Sumber != nil {
		updates["sumber"] = *input.Sumber
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Tanggal != nil {
		updates["tanggal"] = utils.ParseDateOrNow(*input.Tanggal)
	}

	if len(updates) > 0 {
		if err := db.WithContext(ctx).Model(&resi).Updates(updates).Error; err != nil {
			if utils.IsDuplicateKeyError(err) {
				return nil, utils.ErrorDuplicateRecord
			}
			return nil, err
		}
	}

	return &resi, nil
}

// DeleteResi removes one of userId's resi.
func DeleteResi(ctx context.Context, userId int, id int) error {
	if userId == 0 {
		return utils.ErrorUnauthorized
	}

	db := config.GetDB()
	result := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userId).Delete(&Resi{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}

// DeleteSelectedResi removes a batch of userId's resi and returns how many
// rows actually went away (ids owned by someone else are simply not counted).
func DeleteSelectedResi(ctx context.Context, userId int, ids []int) (int64, error) {
	if userId == 0 {
		return 0, utils.ErrorUnauthorized
	}
	if len(ids) == 0 {
		return 0, utils.NewValidationError("no records selected")
	}

	db := config.GetDB()
	result := db.WithContext(ctx).Where("id IN ? AND user_id = ?", ids, userId).Delete(&Resi{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
