package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCourier(t *testing.T) {
	tests := []struct {
		name string
		resi string
		want string
	}{
		{name: "jnt jx prefix", resi: "JX1234567890", want: "J&T Express"},
		{name: "jnt jnt prefix", resi: "JNT9988776655", want: "J&T Express"},
		{name: "ninja njvtt", resi: "NJVTT12345678", want: "Ninja Xpress"},
		{name: "shopee spx", resi: "SPXID045678901234", want: "Shopee Express"},
		{name: "lazada lx", resi: "LXAD0012345678", want: "Lazada Logistics"},
		{name: "sicepat", resi: "SC0001234567", want: "SiCepat"},
		{name: "pos short r code", resi: "RA123456789ID", want: "POS Indonesia"},
		{name: "tiki", resi: "TIKI12345678", want: "TIKI"},
		{name: "unknown", resi: "XYZ987654321", want: ""},
		{name: "empty", resi: "", want: ""},
		{name: "whitespace only", resi: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCourier(tt.resi))
		})
	}
}

// First match in declaration order wins. J&T Express ("JT") sits above
// J&T Cargo ("JTC"), so a JTC number also resolves to J&T Express.
func TestDetectCourierOrderedTieBreak(t *testing.T) {
	assert.Equal(t, "J&T Express", DetectCourier("JT0011223344"))
	assert.Equal(t, "J&T Express", DetectCourier("JTC0011223344"))
	// TT (TikTok) is declared before TIKI, but TIKI rows start with "TI" not
	// "TT" so they never collide.
	assert.Equal(t, "TikTok Logistics", DetectCourier("TTS1234567890"))
}

func TestDetectCourierNormalizesInput(t *testing.T) {
	assert.Equal(t, DetectCourier("JX1234567890"), DetectCourier("  jx1234567890  "))
	assert.Equal(t, "Ninja Xpress", DetectCourier("njvtt12345678"))
}
