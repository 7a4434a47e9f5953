package game

import "testing"

func TestBuiltinVariantsValidate(t *testing.T) {
	t.Parallel()
	for _, v := range Variants {
		if err := v.Validate(); err != nil {
			t.Errorf("Built-in variant %s failed validation: %v", v.Name, err)
		}
	}
}

func TestVariantByName(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"mundial", "kiosco", "feria"} {
		v, err := VariantByName(name)
		if err != nil {
			t.Fatalf("VariantByName(%s) returned error: %v", name, err)
		}
		if v.Name != name {
			t.Errorf("Expected variant %s, got %s", name, v.Name)
		}
	}
	if _, err := VariantByName("casino"); err == nil {
		t.Error("Expected error for unknown variant name")
	}
}

func TestValidateRejectsDuplicateRiskTier(t *testing.T) {
	t.Parallel()
	v := Mundial
	v.Steps[0].Options[1].Risk = LowRisk
	if err := v.Validate(); err == nil {
		t.Error("Expected validation error for duplicate risk tier")
	}
}

func TestValidateRejectsBrokenCorrelation(t *testing.T) {
	t.Parallel()
	v := Mundial
	// Cheapest option may not also have the worst odds.
	v.Steps[1].Options[0].WinChance = 10
	if err := v.Validate(); err == nil {
		t.Error("Expected validation error when a cheaper option has lower odds")
	}
}

func TestValidateRejectsLowFloor(t *testing.T) {
	t.Parallel()
	v := Mundial
	v.FloorAmount = 50 // below the cheapest option of step 3 (200)
	if err := v.Validate(); err == nil {
		t.Error("Expected validation error for a floor that cannot afford a later step")
	}
}

func TestValidateRejectsLowStartingMoney(t *testing.T) {
	t.Parallel()
	v := Mundial
	v.StartingMoney = 50 // below the cheapest option of step 1 (150)
	if err := v.Validate(); err == nil {
		t.Error("Expected validation error for starting money that cannot afford the first step")
	}
}

func TestValidateRejectsUnorderedTiers(t *testing.T) {
	t.Parallel()
	v := Kiosco
	v.Tiers = append([]Tier(nil), v.Tiers...)
	v.Tiers[1].Threshold = 1500 // above tier 0's 1200
	if err := v.Validate(); err == nil {
		t.Error("Expected validation error for non-descending tier thresholds")
	}
}

func TestParseRisk(t *testing.T) {
	t.Parallel()
	for s, want := range map[string]Risk{"low": LowRisk, "Medium": MediumRisk, "HIGH": HighRisk} {
		got, err := ParseRisk(s)
		if err != nil {
			t.Errorf("ParseRisk(%q) returned error: %v", s, err)
		}
		if got != want {
			t.Errorf("ParseRisk(%q) = %s, want %s", s, got, want)
		}
	}
	if _, err := ParseRisk("extremo"); err == nil {
		t.Error("Expected error for unknown risk tier")
	}
}

func TestClassifyTotalAndMonotonic(t *testing.T) {
	t.Parallel()
	for _, v := range Variants {
		tierRank := func(amount int) int {
			got := v.Classify(amount)
			for i, tier := range v.Tiers {
				if tier.Label == got.Label {
					return i
				}
			}
			t.Fatalf("Variant %s classified %d into unknown tier %q", v.Name, amount, got.Label)
			return -1
		}

		prevRank := tierRank(0)
		for amount := 10; amount <= v.Goal*3; amount += 10 {
			rank := tierRank(amount)
			if rank > prevRank {
				t.Fatalf("Variant %s: amount %d ranked worse (%d) than a smaller amount (%d)",
					v.Name, amount, rank, prevRank)
			}
			prevRank = rank
		}

		// The catch-all tier covers zero.
		if v.Classify(0).Label == "" {
			t.Errorf("Variant %s: classification of 0 has no label", v.Name)
		}
	}
}

func TestClassifyBoundaries(t *testing.T) {
	t.Parallel()
	// Exactly at a threshold belongs to that tier.
	if got := Mundial.Classify(2000); got.Label != "¡Crack total!" {
		t.Errorf("Expected top tier at exactly 2000, got %q", got.Label)
	}
	if got := Mundial.Classify(1999); got.Label == "¡Crack total!" {
		t.Error("1999 should not reach the top tier")
	}
	if got := Mundial.Classify(999); got.Label != "A seguir intentando" {
		t.Errorf("Expected catch-all tier below 1000, got %q", got.Label)
	}
}

func TestStepMinInvestment(t *testing.T) {
	t.Parallel()
	if got := Mundial.Steps[1].MinInvestment(); got != 100 {
		t.Errorf("Expected min investment 100 for mundial step 2, got %d", got)
	}
}
