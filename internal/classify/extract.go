package classify

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Extraction strategies, ordered. Each strategy is a pure function over the
// mapper's free-text response and the candidate list it was shown; each
// carries a fixed confidence ceiling and fires only when every strategy
// before it yielded nothing.
const (
	StrategyStructured = "structured"
	StrategyIdentifier = "identifier"
	StrategyCode       = "code"
	StrategyName       = "name"
)

const (
	scoreStructured = 90
	scoreIdentifier = 80
	scoreCode       = 72
	scoreName       = 65
)

// Extraction is the recovered account reference plus the strategy that
// produced it and that strategy's ceiling score.
type Extraction struct {
	AccountID string
	Strategy  string
	Score     int
}

var (
	jsonObjectRegex = regexp.MustCompile(`\{[^{}]*\}`)
	ulidRegex       = regexp.MustCompile(`[0-9A-HJKMNP-TV-Z]{26}`)
	codeTokenRegex  = regexp.MustCompile(`\b[0-9]{3,4}\b`)
)

// ExtractAccountRef recovers an account reference from the category mapper's
// response. The response may be clean JSON, markdown-fenced JSON, prose
// containing an identifier or code, or prose mentioning an account by name.
// Returns false when no strategy recovers a candidate account.
func ExtractAccountRef(response string, candidates []CandidateAccount) (Extraction, bool) {
	if strings.TrimSpace(response) == "" || len(candidates) == 0 {
		return Extraction{}, false
	}

	byID := make(map[string]CandidateAccount, len(candidates))
	byCode := make(map[string]CandidateAccount, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
		byCode[c.Code] = c
	}

	if id, ok := extractStructured(response, byID); ok {
		return Extraction{AccountID: id, Strategy: StrategyStructured, Score: scoreStructured}, true
	}
	if id, ok := extractIdentifier(response, byID); ok {
		return Extraction{AccountID: id, Strategy: StrategyIdentifier, Score: scoreIdentifier}, true
	}
	if id, ok := extractCode(response, byCode); ok {
		return Extraction{AccountID: id, Strategy: StrategyCode, Score: scoreCode}, true
	}
	if id, ok := extractName(response, candidates); ok {
		return Extraction{AccountID: id, Strategy: StrategyName, Score: scoreName}, true
	}

	return Extraction{}, false
}

// extractStructured parses the response, or any JSON object embedded in it,
// and reads a recognized account field. Markdown fences are stripped first.
func extractStructured(response string, byID map[string]CandidateAccount) (string, bool) {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	attempts := []string{cleaned}
	attempts = append(attempts, jsonObjectRegex.FindAllString(cleaned, -1)...)

	for _, attempt := range attempts {
		var payload map[string]any
		if err := json.Unmarshal([]byte(attempt), &payload); err != nil {
			continue
		}
		for _, field := range []string{"account_id", "accountId", "account", "id"} {
			value, ok := payload[field].(string)
			if !ok {
				continue
			}
			if _, known := byID[value]; known {
				return value, true
			}
		}
	}

	return "", false
}

// extractIdentifier scans the text for ULID-shaped tokens and accepts the
// result only when exactly one distinct candidate identifier appears.
func extractIdentifier(response string, byID map[string]CandidateAccount) (string, bool) {
	seen := make(map[string]bool)
	for _, token := range ulidRegex.FindAllString(strings.ToUpper(response), -1) {
		if _, known := byID[token]; known {
			seen[token] = true
		}
	}
	if len(seen) != 1 {
		return "", false
	}
	for id := range seen {
		return id, true
	}
	return "", false
}

// extractCode scans for account-code tokens; ambiguity (two different
// candidate codes mentioned) disqualifies the strategy.
func extractCode(response string, byCode map[string]CandidateAccount) (string, bool) {
	seen := make(map[string]bool)
	for _, token := range codeTokenRegex.FindAllString(response, -1) {
		if c, known := byCode[token]; known {
			seen[c.ID] = true
		}
	}
	if len(seen) != 1 {
		return "", false
	}
	for id := range seen {
		return id, true
	}
	return "", false
}

// extractName falls back to a case-insensitive substring match on candidate
// account names, preferring the longest matching name.
func extractName(response string, candidates []CandidateAccount) (string, bool) {
	lower := strings.ToLower(response)

	best := ""
	bestLen := 0
	for _, c := range candidates {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" || !strings.Contains(lower, name) {
			continue
		}
		if len(name) > bestLen {
			best = c.ID
			bestLen = len(name)
		}
	}

	return best, best != ""
}
