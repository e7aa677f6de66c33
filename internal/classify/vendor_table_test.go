package classify

import "testing"

func TestVendorTable_Match(t *testing.T) {
	table := DefaultVendorTable()

	tests := []struct {
		name         string
		text         string
		wantKeyword  string
		wantCode     string
		wantCategory VendorCategory
		wantMiss     bool
	}{
		{
			name:         "hardware store",
			text:         "Betaalautomaat GAMMA UTRECHT",
			wantKeyword:  "gamma",
			wantCode:     "4800",
			wantCategory: CategoryHardwareStore,
		},
		{
			name:         "telecom",
			text:         "SEPA Incasso KPN B.V.",
			wantKeyword:  "kpn",
			wantCode:     "4600",
			wantCategory: CategoryTelecom,
		},
		{
			name:         "short fuel brand on word boundary",
			text:         "BP TANKSTATION A2",
			wantKeyword:  "bp",
			wantCode:     "4400",
			wantCategory: CategoryFuel,
		},
		{
			name:     "short keyword inside a longer word does not fire",
			text:     "ABPENSIOEN PREMIE",
			wantMiss: true,
		},
		{
			name:         "keyword with punctuation",
			text:         "bol.com bestelling 2231",
			wantKeyword:  "bol.com",
			wantCode:     "4200",
			wantCategory: CategoryOnlineRetail,
		},
		{
			name:         "cash withdrawal books to owner private",
			text:         "GELDAUTOMAAT AMSTERDAM CS",
			wantKeyword:  "geldautomaat",
			wantCode:     "0800",
			wantCategory: CategoryCashWithdrawal,
		},
		{
			name:     "no vendor keyword",
			text:     "Overboeking spaarrekening",
			wantMiss: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, found := table.Match(tt.text)

			if tt.wantMiss {
				if found {
					t.Fatalf("expected no match, got %q", entry.Keyword)
				}
				return
			}

			if !found {
				t.Fatal("expected a match, got none")
			}
			if entry.Keyword != tt.wantKeyword {
				t.Errorf("keyword = %q, want %q", entry.Keyword, tt.wantKeyword)
			}
			if entry.AccountCode != tt.wantCode {
				t.Errorf("account code = %s, want %s", entry.AccountCode, tt.wantCode)
			}
			if entry.Category != tt.wantCategory {
				t.Errorf("category = %s, want %s", entry.Category, tt.wantCategory)
			}
		})
	}
}

func TestVendorTable_HighestConfidenceWins(t *testing.T) {
	table := DefaultVendorTable()

	// Both a grocery brand (85) and a cash-withdrawal keyword (95) occur;
	// the higher-confidence entry must win.
	entry, found := table.Match("GELDOPNAME BIJ JUMBO SUPERMARKT")
	if !found {
		t.Fatal("expected a match")
	}
	if entry.Category != CategoryCashWithdrawal {
		t.Errorf("category = %s, want %s", entry.Category, CategoryCashWithdrawal)
	}
	if entry.Confidence != 95 {
		t.Errorf("confidence = %d, want 95", entry.Confidence)
	}
}
