package classify

import "testing"

func testCandidates() []CandidateAccount {
	return []CandidateAccount{
		{ID: "01JZXA0000000000000000A48H", Code: "4800", Name: "Materialen en gereedschap"},
		{ID: "01JZXA0000000000000000A41T", Code: "4110", Name: "Telefoon en internet"},
		{ID: "01JZXA0000000000000000A80R", Code: "8000", Name: "Omzet"},
	}
}

func TestExtractAccountRef(t *testing.T) {
	candidates := testCandidates()

	tests := []struct {
		name         string
		response     string
		wantID       string
		wantStrategy string
		wantScore    int
		wantMiss     bool
	}{
		{
			name:         "clean json object",
			response:     `{"account_id": "01JZXA0000000000000000A48H", "confidence": "high"}`,
			wantID:       "01JZXA0000000000000000A48H",
			wantStrategy: StrategyStructured,
			wantScore:    90,
		},
		{
			name:         "markdown fenced json",
			response:     "```json\n{\"account\": \"01JZXA0000000000000000A41T\"}\n```",
			wantID:       "01JZXA0000000000000000A41T",
			wantStrategy: StrategyStructured,
			wantScore:    90,
		},
		{
			name:         "json embedded in prose",
			response:     `Based on the industry I suggest {"accountId": "01JZXA0000000000000000A80R"} as the booking.`,
			wantID:       "01JZXA0000000000000000A80R",
			wantStrategy: StrategyStructured,
			wantScore:    90,
		},
		{
			name:         "identifier in prose",
			response:     "The best fit is account 01JZXA0000000000000000A48H for this purchase.",
			wantID:       "01JZXA0000000000000000A48H",
			wantStrategy: StrategyIdentifier,
			wantScore:    80,
		},
		{
			name:     "two distinct identifiers disqualify",
			response: "Either 01JZXA0000000000000000A48H or 01JZXA0000000000000000A41T could work.",
			wantMiss: true,
		},
		{
			name:         "account code in prose",
			response:     "Book this to 4800 (hardware store materials).",
			wantID:       "01JZXA0000000000000000A48H",
			wantStrategy: StrategyCode,
			wantScore:    72,
		},
		{
			name:     "ambiguous codes disqualify",
			response: "Could be 4800 or maybe 4110.",
			wantMiss: true,
		},
		{
			name:         "account name substring",
			response:     "This looks like telefoon en internet to me.",
			wantID:       "01JZXA0000000000000000A41T",
			wantStrategy: StrategyName,
			wantScore:    65,
		},
		{
			name:     "unknown code is not a candidate",
			response: "Try account 9999.",
			wantMiss: true,
		},
		{
			name:     "empty response",
			response: "   ",
			wantMiss: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extraction, ok := ExtractAccountRef(tt.response, candidates)

			if tt.wantMiss {
				if ok {
					t.Fatalf("expected no extraction, got %+v", extraction)
				}
				return
			}

			if !ok {
				t.Fatal("expected an extraction, got none")
			}
			if extraction.AccountID != tt.wantID {
				t.Errorf("account = %s, want %s", extraction.AccountID, tt.wantID)
			}
			if extraction.Strategy != tt.wantStrategy {
				t.Errorf("strategy = %s, want %s", extraction.Strategy, tt.wantStrategy)
			}
			if extraction.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", extraction.Score, tt.wantScore)
			}
		})
	}
}

func TestExtractAccountRef_NoCandidates(t *testing.T) {
	if _, ok := ExtractAccountRef(`{"account_id": "x"}`, nil); ok {
		t.Error("expected no extraction with an empty candidate list")
	}
}
