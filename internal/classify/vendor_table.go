package classify

import "regexp"

// VendorCategory groups vendor keywords by spending category. The category
// decides the target account code in the seeded chart of accounts.
type VendorCategory string

const (
	CategoryGroceries      VendorCategory = "groceries"
	CategoryHardwareStore  VendorCategory = "hardware_store"
	CategoryFuel           VendorCategory = "fuel"
	CategoryTelecom        VendorCategory = "telecom"
	CategoryUtilities      VendorCategory = "utilities"
	CategoryInsurance      VendorCategory = "insurance"
	CategoryOnlineRetail   VendorCategory = "online_retail"
	CategoryTransport      VendorCategory = "transport"
	CategoryFoodService    VendorCategory = "food_service"
	CategorySoftware       VendorCategory = "software"
	CategoryBankCharges    VendorCategory = "bank_charges"
	CategoryCashWithdrawal VendorCategory = "cash_withdrawal"
)

// VendorEntry is one static keyword mapping. Confidence is author-assigned
// per entry (75-100). AccountCode points into the seeded chart.
type VendorEntry struct {
	Keyword     string
	Category    VendorCategory
	AccountCode string
	Confidence  int

	pattern *regexp.Regexp
}

// VendorTable is the static, in-memory vendor knowledge base. No
// persistence, no external calls.
type VendorTable struct {
	entries []VendorEntry
}

// Account codes used by the vendor table, matching the seeded chart.
const (
	codeOwnerPrivate = "0800"
	codeHousing      = "4100"
	codeOffice       = "4200"
	codeTravel       = "4400"
	codeInsurance    = "4500"
	codeTelecom      = "4600"
	codeSoftware     = "4700"
	codeMaterials    = "4800"
	codeCatering     = "4900"
	codeBankCharges  = "6000"
)

// DefaultVendorTable returns the built-in Dutch vendor knowledge base.
// Cash-withdrawal entries are the named special case: withdrawals always
// book to the owner-private equity account, never to an expense account,
// regardless of amount. That is a fixed domestic accounting convention.
func DefaultVendorTable() *VendorTable {
	entries := []VendorEntry{
		// Groceries and daily spending (private for a sole trader).
		{Keyword: "albert heijn", Category: CategoryGroceries, AccountCode: codeOwnerPrivate, Confidence: 90},
		{Keyword: "jumbo", Category: CategoryGroceries, AccountCode: codeOwnerPrivate, Confidence: 85},
		{Keyword: "lidl", Category: CategoryGroceries, AccountCode: codeOwnerPrivate, Confidence: 85},
		{Keyword: "aldi", Category: CategoryGroceries, AccountCode: codeOwnerPrivate, Confidence: 85},

		// Hardware stores.
		{Keyword: "gamma", Category: CategoryHardwareStore, AccountCode: codeMaterials, Confidence: 85},
		{Keyword: "praxis", Category: CategoryHardwareStore, AccountCode: codeMaterials, Confidence: 85},
		{Keyword: "karwei", Category: CategoryHardwareStore, AccountCode: codeMaterials, Confidence: 85},
		{Keyword: "hornbach", Category: CategoryHardwareStore, AccountCode: codeMaterials, Confidence: 85},
		{Keyword: "bouwmarkt", Category: CategoryHardwareStore, AccountCode: codeMaterials, Confidence: 80},

		// Fuel. Short brand keywords rely on word-boundary matching so that
		// "bp" never fires inside an unrelated longer word.
		{Keyword: "shell", Category: CategoryFuel, AccountCode: codeTravel, Confidence: 85},
		{Keyword: "bp", Category: CategoryFuel, AccountCode: codeTravel, Confidence: 80},
		{Keyword: "esso", Category: CategoryFuel, AccountCode: codeTravel, Confidence: 85},
		{Keyword: "tango", Category: CategoryFuel, AccountCode: codeTravel, Confidence: 80},
		{Keyword: "tinq", Category: CategoryFuel, AccountCode: codeTravel, Confidence: 80},

		// Telecom and internet.
		{Keyword: "kpn", Category: CategoryTelecom, AccountCode: codeTelecom, Confidence: 90},
		{Keyword: "vodafone", Category: CategoryTelecom, AccountCode: codeTelecom, Confidence: 90},
		{Keyword: "ziggo", Category: CategoryTelecom, AccountCode: codeTelecom, Confidence: 90},
		{Keyword: "odido", Category: CategoryTelecom, AccountCode: codeTelecom, Confidence: 85},

		// Utilities.
		{Keyword: "eneco", Category: CategoryUtilities, AccountCode: codeHousing, Confidence: 85},
		{Keyword: "vattenfall", Category: CategoryUtilities, AccountCode: codeHousing, Confidence: 85},
		{Keyword: "essent", Category: CategoryUtilities, AccountCode: codeHousing, Confidence: 85},

		// Insurance.
		{Keyword: "nationale nederlanden", Category: CategoryInsurance, AccountCode: codeInsurance, Confidence: 85},
		{Keyword: "centraal beheer", Category: CategoryInsurance, AccountCode: codeInsurance, Confidence: 85},
		{Keyword: "interpolis", Category: CategoryInsurance, AccountCode: codeInsurance, Confidence: 85},

		// Online retail and office supplies.
		{Keyword: "bol.com", Category: CategoryOnlineRetail, AccountCode: codeOffice, Confidence: 75},
		{Keyword: "coolblue", Category: CategoryOnlineRetail, AccountCode: codeOffice, Confidence: 75},
		{Keyword: "amazon", Category: CategoryOnlineRetail, AccountCode: codeOffice, Confidence: 75},

		// Transport.
		{Keyword: "ns groep", Category: CategoryTransport, AccountCode: codeTravel, Confidence: 85},
		{Keyword: "ov-chipkaart", Category: CategoryTransport, AccountCode: codeTravel, Confidence: 90},
		{Keyword: "q-park", Category: CategoryTransport, AccountCode: codeTravel, Confidence: 85},

		// Food service.
		{Keyword: "thuisbezorgd", Category: CategoryFoodService, AccountCode: codeCatering, Confidence: 80},
		{Keyword: "mcdonald", Category: CategoryFoodService, AccountCode: codeCatering, Confidence: 80},

		// Software subscriptions.
		{Keyword: "microsoft", Category: CategorySoftware, AccountCode: codeSoftware, Confidence: 85},
		{Keyword: "adobe", Category: CategorySoftware, AccountCode: codeSoftware, Confidence: 85},
		{Keyword: "google cloud", Category: CategorySoftware, AccountCode: codeSoftware, Confidence: 85},
		{Keyword: "mollie", Category: CategoryBankCharges, AccountCode: codeBankCharges, Confidence: 80},

		// Cash withdrawals: always owner-private, see above.
		{Keyword: "geldautomaat", Category: CategoryCashWithdrawal, AccountCode: codeOwnerPrivate, Confidence: 95},
		{Keyword: "geldopname", Category: CategoryCashWithdrawal, AccountCode: codeOwnerPrivate, Confidence: 95},
		{Keyword: "opname kantoor", Category: CategoryCashWithdrawal, AccountCode: codeOwnerPrivate, Confidence: 90},
		{Keyword: "atm", Category: CategoryCashWithdrawal, AccountCode: codeOwnerPrivate, Confidence: 85},
	}

	for i := range entries {
		entries[i].pattern = wordBoundaryPattern(entries[i].Keyword)
	}

	return &VendorTable{entries: entries}
}

// Match returns the highest-confidence entry whose keyword occurs in the
// text on a word boundary.
func (t *VendorTable) Match(text string) (VendorEntry, bool) {
	var best VendorEntry
	found := false
	for _, entry := range t.entries {
		if !entry.pattern.MatchString(text) {
			continue
		}
		if !found || entry.Confidence > best.Confidence {
			best = entry
			found = true
		}
	}
	return best, found
}

// wordBoundaryPattern compiles a case-insensitive whole-word pattern for a
// keyword. \b alone is not enough for keywords containing punctuation
// ("bol.com", "q-park"), so the boundary is expressed explicitly.
func wordBoundaryPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(^|[^\p{L}\p{N}])` + regexp.QuoteMeta(keyword) + `($|[^\p{L}\p{N}])`)
}
