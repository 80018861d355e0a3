package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/gewnthar/flightops/models"
)

func rankingInput() []models.EmissionObservation {
	return []models.EmissionObservation{
		obs("AAA", "2022-01", 10),
		obs("BBB", "2022-01", 20),
		obs("CCC", "2022-01", 30),
		obs("DDD", "2022-01", 40),
		obs("EEE", "2022-01", 30),
		obs("EEE", "2022-02", 20), // EEE sums to 50 across months
		obs("FFF", "2022-01", 1000),
	}
}

func TestRankCountriesTiers(t *testing.T) {
	r, err := RankCountries(rankingInput(), models.Descending)
	if err != nil {
		t.Fatalf("RankCountries: %v", err)
	}
	if len(r.Entries) != 6 {
		t.Fatalf("entries = %d, want 6", len(r.Entries))
	}

	tiers := make(map[models.Tier]int)
	for _, e := range r.Entries {
		tiers[e.Tier]++
	}
	if tiers[models.TierLow] != 5 {
		t.Errorf("low tier count = %d, want 5 (%+v)", tiers[models.TierLow], r.Entries)
	}
	if tiers[models.TierHigh] != 1 || r.Entries[0].CountryCode != "FFF" || r.Entries[0].Tier != models.TierHigh {
		t.Errorf("outlier not isolated as high: %+v", r.Entries[0])
	}
	if r.Total != 1150 {
		t.Errorf("total = %v, want 1150", r.Total)
	}

	var share float64
	for _, e := range r.Entries {
		share += e.SharePercent
	}
	if math.Abs(share-100) > 1e-9 {
		t.Errorf("shares sum to %v, want 100", share)
	}
}

func TestRankCountriesOrderInverts(t *testing.T) {
	desc, err := RankCountries(rankingInput(), models.Descending)
	if err != nil {
		t.Fatal(err)
	}
	asc, err := RankCountries(rankingInput(), models.Ascending)
	if err != nil {
		t.Fatal(err)
	}
	n := len(desc.Entries)
	for i := range desc.Entries {
		if desc.Entries[i].CountryCode != asc.Entries[n-1-i].CountryCode {
			t.Fatalf("ascending is not the reverse of descending: %+v vs %+v", asc.Entries, desc.Entries)
		}
	}
	if asc.Entries[0].CountryCode != "AAA" || asc.Entries[0].Rank != 1 {
		t.Errorf("first ascending entry = %+v", asc.Entries[0])
	}
}

func TestRankCountriesTiesAndZeroTotal(t *testing.T) {
	r, err := RankCountries([]models.EmissionObservation{
		obs("ZZZ", "2022-01", 0),
		obs("AAA", "2022-01", 0),
	}, models.Ascending)
	if err != nil {
		t.Fatal(err)
	}
	if r.Entries[0].CountryCode != "AAA" {
		t.Errorf("tie not broken by code: %+v", r.Entries)
	}
	for _, e := range r.Entries {
		if e.SharePercent != 0 || math.IsNaN(e.SharePercent) {
			t.Errorf("share = %v, want 0", e.SharePercent)
		}
		if e.Tier != models.TierLow {
			t.Errorf("tier = %v, want low", e.Tier)
		}
	}
}

func TestRankCountriesEmpty(t *testing.T) {
	if _, err := RankCountries(nil, models.Descending); !errors.Is(err, ErrNoRecords) {
		t.Errorf("err = %v, want ErrNoRecords", err)
	}
}

func TestTierFor(t *testing.T) {
	low, high := TierCutoffs([]float64{0, 100})
	tests := []struct {
		v    float64
		want models.Tier
	}{
		{0, models.TierLow},
		{33, models.TierLow},
		{50, models.TierMedium},
		{66, models.TierMedium},
		{67, models.TierHigh},
	}
	for _, tt := range tests {
		if got := TierFor(tt.v, low, high); got != tt.want {
			t.Errorf("TierFor(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
