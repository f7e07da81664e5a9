package models_test

import (
	"context"
	"errors"
	"testing"

	"github.com/returnukhti/resi_backend/models"
	"github.com/returnukhti/resi_backend/utils"
)

func TestCreateResiNormalizesNomor(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	resi, err := models.CreateResi(ctx, 1, &models.NewResi{
		NomorResi:  "  jx12345678 ",
		NamaBarang: "Gamis Syari",
		NamaToko:   "Toko A",
	})
	if err != nil {
		t.Fatalf("CreateResi: %v", err)
	}
	if resi.NomorResi != "JX12345678" {
		t.Fatalf("nomor not normalized: %q", resi.NomorResi)
	}
	if resi.Sumber != models.SumberManual {
		t.Fatalf("sumber = %q, want manual", resi.Sumber)
	}
	if resi.Status != models.ResiStatusUnmatched {
		t.Fatalf("status = %q, want unmatched", resi.Status)
	}
	if resi.NamaBarang == nil || *resi.NamaBarang != "Gamis Syari" {
		t.Fatalf("nama_barang not stored")
	}
}

func TestCreateResiValidation(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	if _, err := models.CreateResi(ctx, 1, &models.NewResi{NomorResi: "   "}); !utils.IsValidationError(err) {
		t.Fatalf("blank nomor: got %v, want validation error", err)
	}
	if _, err := models.CreateResi(ctx, 0, &models.NewResi{NomorResi: "JX12345678"}); !errors.Is(err, utils.ErrorUnauthorized) {
		t.Fatalf("zero user: got %v, want unauthorized", err)
	}
}

func TestCreateResiDuplicatePerSumber(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	if _, err := models.CreateResi(ctx, 1, &models.NewResi{NomorResi: "JX12345678"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	// Same nomor + same sumber + same user is a duplicate.
	_, err := models.CreateResi(ctx, 1, &models.NewResi{NomorResi: "jx12345678"})
	if !errors.Is(err, utils.ErrorDuplicateRecord) {
		t.Fatalf("duplicate insert: got %v, want duplicate error", err)
	}

	// Same nomor under a different sumber coexists (scan vs manual).
	if _, err := models.CreateResiScan(ctx, 1, &models.NewResiScan{NomorResi: "JX12345678"}); err != nil {
		t.Fatalf("scan insert of same nomor: %v", err)
	}

	// Same nomor for a different user coexists too.
	if _, err := models.CreateResi(ctx, 2, &models.NewResi{NomorResi: "JX12345678"}); err != nil {
		t.Fatalf("other user insert: %v", err)
	}
}

func TestListResiDefaultFilterIsScanBacklog(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	if _, err := models.CreateResiScan(ctx, 1, &models.NewResiScan{NomorResi: "JX11111111"}); err != nil {
		t.Fatalf("seed scan: %v", err)
	}
	if _, err := models.CreateResi(ctx, 1, &models.NewResi{NomorResi: "JX22222222"}); err != nil {
		t.Fatalf("seed manual: %v", err)
	}

	results, err := models.ListResi(ctx, 1, nil)
	if err != nil {
		t.Fatalf("ListResi: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("default list: got %d rows, want 1 (scan backlog only)", len(results))
	}
	if results[0].NomorResi != "JX11111111" {
		t.Fatalf("default list returned %q", results[0].NomorResi)
	}

	// An explicit filter lifts the default.
	all, err := models.ListResi(ctx, 1, &models.ResiFilter{Status: "unmatched"})
	if err != nil {
		t.Fatalf("ListResi filtered: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("filtered list: got %d rows, want 2", len(all))
	}
}

func TestListResiOwnerIsolation(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	if _, err := models.CreateResiScan(ctx, 1, &models.NewResiScan{NomorResi: "JX11111111"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	results, err := models.ListResi(ctx, 2, &models.ResiFilter{Status: "unmatched"})
	if err != nil {
		t.Fatalf("ListResi: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("user 2 sees %d of user 1's rows", len(results))
	}
}

func TestListResiSearchAndBadDate(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	if _, err := models.CreateResi(ctx, 1, &models.NewResi{NomorResi: "JX11111111", NamaBarang: "Gamis Syari", Tanggal: "2025-03-10"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := models.CreateResi(ctx, 1, &models.NewResi{NomorResi: "JX22222222", NamaBarang: "Khimar", Tanggal: "2025-03-11"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	results, err := models.ListResi(ctx, 1, &models.ResiFilter{Search: "Gamis"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].NomorResi != "JX11111111" {
		t.Fatalf("search returned wrong rows: %+v", results)
	}

	byDay, err := models.ListResi(ctx, 1, &models.ResiFilter{Tanggal: "2025-03-10"})
	if err != nil {
		t.Fatalf("day filter: %v", err)
	}
	if len(byDay) != 1 || byDay[0].NomorResi != "JX11111111" {
		t.Fatalf("day filter returned wrong rows: %+v", byDay)
	}

	if _, err := models.ListResi(ctx, 1, &models.ResiFilter{Tanggal: "10-03-2025"}); !utils.IsValidationError(err) {
		t.Fatalf("bad tanggal: got %v, want validation error", err)
	}
}

func TestUpdateResi(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	created, err := models.CreateResi(ctx, 1, &models.NewResi{NomorResi: "JX11111111"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	nomor := "  jx99999999 "
	barang := "Mukena Anak"
	updated, err := models.UpdateResi(ctx, 1, created.ID, &models.EditResi{
		NomorResi:  &nomor,
		NamaBarang: &barang,
	})
	if err != nil {
		t.Fatalf("UpdateResi: %v", err)
	}
	if updated.NomorResi != "JX99999999" {
		t.Fatalf("nomor not renormalized on edit: %q", updated.NomorResi)
	}
	if updated.NamaBarang == nil || *updated.NamaBarang != "Mukena Anak" {
		t.Fatalf("nama_barang not updated")
	}
}

func TestUpdateResiWrongOwnerIsNotFound(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	created, err := models.CreateResi(ctx, 1, &models.NewResi{NomorResi: "JX11111111"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	barang := "x"
	if _, err := models.UpdateResi(ctx, 2, created.ID, &models.EditResi{NamaBarang: &barang}); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("wrong owner edit: got %v, want not found", err)
	}
}

func TestDeleteResi(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	created, err := models.CreateResi(ctx, 1, &models.NewResi{NomorResi: "JX11111111"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := models.DeleteResi(ctx, 2, created.ID); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("wrong owner delete: got %v, want not found", err)
	}
	if err := models.DeleteResi(ctx, 1, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := models.DeleteResi(ctx, 1, created.ID); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("second delete: got %v, want not found", err)
	}
}

func TestDeleteSelectedResi(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	a, _ := models.CreateResi(ctx, 1, &models.NewResi{NomorResi: "JX11111111"})
	b, _ := models.CreateResi(ctx, 1, &models.NewResi{NomorResi: "JX22222222"})
	other, _ := models.CreateResi(ctx, 2, &models.NewResi{NomorResi: "JX33333333"})

	if _, err := models.DeleteSelectedResi(ctx, 1, nil); !utils.IsValidationError(err) {
		t.Fatalf("empty ids: got %v, want validation error", err)
	}

	// Another user's id in the batch is silently not counted.
	deleted, err := models.DeleteSelectedResi(ctx, 1, []int{a.ID, b.ID, other.ID})
	if err != nil {
		t.Fatalf("DeleteSelectedResi: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted = %d, want 2", deleted)
	}

	remaining, err := models.ListResi(ctx, 2, &models.ResiFilter{Status: "unmatched"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("user 2's row went away")
	}
}
