package models

import (
	"io"
	"regexp"
	"strings"

	"github.com/returnukhti/resi_backend/utils"
	"github.com/xuri/excelize/v2"
)

// ResiRow is one candidate record produced by the bulk parsers, before any
// normalization or persistence.
type ResiRow struct {
	NomorResi  string
	NamaBarang string
	NamaToko   string
	JasaKirim  string
	Tanggal    string
}

func splitDataLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func field(cols []string, i int) string {
	if i >= len(cols) {
		return ""
	}
	return strings.TrimSpace(cols[i])
}

// ParseScanRows parses scan-export CSV text: header line first, then
// `nomor_resi,jasa_kirim,tanggal` per line. Lines without a tracking number
// are skipped silently.
func ParseScanRows(text string) []*ResiRow {
	lines := splitDataLines(text)
	if len(lines) <= 1 {
		return nil
	}

	var rows []*ResiRow
	for _, line := range lines[1:] {
		cols := strings.Split(line, ",")
		nomor := field(cols, 0)
		if nomor == "" {
			continue
		}
		rows = append(rows, &ResiRow{
			NomorResi: nomor,
			JasaKirim: field(cols, 1),
			Tanggal:   field(cols, 2),
		})
	}
	return rows
}

// ParseMarketplaceRows parses marketplace-export CSV text: header line first,
// then `nomor_resi,nama_barang,nama_toko,jasa_kirim,tanggal` per line.
func ParseMarketplaceRows(text string) []*ResiRow {
	lines := splitDataLines(text)
	if len(lines) <= 1 {
		return nil
	}

	var rows []*ResiRow
	for _, line := range lines[1:] {
		cols := strings.Split(line, ",")
		nomor := field(cols, 0)
		if nomor == "" {
			continue
		}
		rows = append(rows, &ResiRow{
			NomorResi:  nomor,
			NamaBarang: field(cols, 1),
			NamaToko:   field(cols, 2),
			JasaKirim:  field(cols, 3),
			Tanggal:    field(cols, 4),
		})
	}
	return rows
}

// ParseMarketplaceXlsxRows reads the first sheet of an XLSX marketplace
// export with the same positional columns as ParseMarketplaceRows.
func ParseMarketplaceXlsxRows(r io.Reader) ([]*ResiRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, utils.NewValidationError("could not open xlsx file")
	}
	defer f.Close()

	cells, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(cells) <= 1 {
		return nil, nil
	}

	var rows []*ResiRow
	for _, cols := range cells[1:] {
		nomor := field(cols, 0)
		if nomor == "" {
			continue
		}
		rows = append(rows, &ResiRow{
			NomorResi:  nomor,
			NamaBarang: field(cols, 1),
			NamaToko:   field(cols, 2),
			JasaKirim:  field(cols, 3),
			Tanggal:    field(cols, 4),
		})
	}
	return rows, nil
}

// Resi-shape patterns for paste classification. The two courier patterns are
// checked before the generic fallback; the fallback deliberately over-matches
// (any alphanumeric token of 10+ chars), which the paste format relies on.
var (
	jntResiPattern     = regexp.MustCompile(`^JX[0-9]{8,}$`)
	ninjaResiPattern   = regexp.MustCompile(`^NJVTT[0-9]{8,}$`)
	genericResiPattern = regexp.MustCompile(`^[A-Z0-9]{10,}$`)
)

// IsResiShape reports whether a pasted line looks like a tracking number
// after normalization.
func IsResiShape(val string) bool {
	v := utils.NormalizeResi(val)
	if v == "" {
		return false
	}
	return jntResiPattern.MatchString(v) ||
		ninjaResiPattern.MatchString(v) ||
		genericResiPattern.MatchString(v)
}

// pasteState is the two-state cursor of the paste classifier. The transition
// is one-way: the first non-resi-shaped line flips to scanningBarang and every
// later line is an item name regardless of shape.
type pasteState int

const (
	scanningResi pasteState = iota
	scanningBarang
)

// PasteBlock is the classified result of a marketplace paste: store name,
// resi lines (normalized), item-name lines.
type PasteBlock struct {
	NamaToko   string
	ResiList   []string
	BarangList []string
}

// ParseMarketplacePaste classifies a free-form paste block.
// Expected shape: line 1 = store name, then a run of resi lines, then a run
// of item-name lines (paired by position by the caller).
func ParseMarketplacePaste(text string) (*PasteBlock, error) {
	if strings.TrimSpace(text) == "" {
		return nil, utils.NewValidationError("paste data is empty")
	}

	var lines []string
	for _, line := range splitDataLines(text) {
		lines = append(lines, strings.TrimSpace(line))
	}

	if len(lines) < 3 {
		return nil, utils.NewValidationError("paste is too short: need store name + 1 resi + 1 item")
	}

	block := PasteBlock{NamaToko: lines[0]}

	state := scanningResi
	for _, row := range lines[1:] {
		if state == scanningResi && IsResiShape(row) {
			block.ResiList = append(block.ResiList, utils.NormalizeResi(row))
			continue
		}
		state = scanningBarang
		block.BarangList = append(block.BarangList, row)
	}

	if len(block.ResiList) == 0 {
		return nil, utils.NewValidationError("no resi numbers detected; expected JX... or NJVTT... lines after the store name")
	}
	if len(block.BarangList) == 0 {
		return nil, utils.NewValidationError("no item names detected; the resi list must be followed by item names")
	}

	return &block, nil
}
