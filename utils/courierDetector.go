package utils

import "strings"

type Courier struct {
	Name  string
	Codes []string
}

// Ordered courier prefix table. Declaration order is the tie-breaker: the
// first courier whose prefix matches wins, so narrow marketplace/expedisi
// codes must stay above the short generic ones (e.g. "JX" before POS's "R").
// Built once at startup, read-only afterwards.
var couriers = []Courier{
	// ===== MARKETPLACE =====
	{Name: "Shopee Express", Codes: []string{"SPX", "SPXID", "SHOPEE"}},
	{Name: "Lazada Logistics", Codes: []string{"LZ", "LZD", "LXAD"}},
	{Name: "TikTok Logistics", Codes: []string{"TT", "TTS"}},

	// ===== EKSPEDISI NASIONAL =====
	{Name: "J&T Express", Codes: []string{"JNT", "JX", "JT"}},
	{Name: "JNE", Codes: []string{"JP", "JNE"}},
	{Name: "SiCepat", Codes: []string{"SC", "SICEPAT"}},
	{Name: "AnterAja", Codes: []string{"ANT", "ANTERAJA"}},
	{Name: "Ninja Xpress", Codes: []string{"NJV", "NJVTT", "NINJA"}},
	{Name: "ID Express", Codes: []string{"ID"}},
	{Name: "TIKI", Codes: []string{"TIKI"}},
	{Name: "Lion Parcel", Codes: []string{"LION", "LP"}},
	{Name: "J&T Cargo", Codes: []string{"JTC"}},

	// ===== POS & REGIONAL =====
	{Name: "POS Indonesia", Codes: []string{"POS", "R", "CP", "EE"}},

	// ===== INSTANT / SAME DAY =====
	{Name: "GoSend", Codes: []string{"GOSEND"}},
	{Name: "Grab Express", Codes: []string{"GRAB"}},
}

// DetectCourier maps a resi number to a courier display name by prefix.
// Input is normalized first, so detection depends only on NormalizeResi(resi).
// Unrecognized numbers return "".
func DetectCourier(resi string) string {
	upper := NormalizeResi(resi)
	if upper == "" {
		return ""
	}

	for _, courier := range couriers {
		for _, code := range courier.Codes {
			if strings.HasPrefix(upper, code) {
				return courier.Name
			}
		}
	}

	return ""
}
