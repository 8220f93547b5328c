package transaction

import "strings"

// keywordBucket groups merchant keywords that map to one app category.
// Buckets are checked in order; the first keyword hit wins.
type keywordBucket struct {
	Keywords []string
	Category string
}

// merchantBuckets covers the Brazilian merchants that show up most often
// in bank statements. Descriptions are matched uppercase.
var merchantBuckets = []keywordBucket{
	{
		// Food delivery
		Keywords: []string{"IFOOD", "IFD*", "RAPPI", "UBER EATS", "ZDELIVERY"},
		Category: "Alimentação",
	},
	{
		// Transport and fuel
		Keywords: []string{"UBER", "99", "CABIFY", "LYFT", "POSTO", "SHELL", "IPIRANGA", "BR MANIA"},
		Category: "Transporte",
	},
	{
		// Supermarkets
		Keywords: []string{"CARREFOUR", "PAO DE ACUCAR", "EXTRA", "ASSAI", "ATACADAO", "BIG", "WALMART", "SUPERMERCADO"},
		Category: "Alimentação",
	},
	{
		// Streaming and subscriptions
		Keywords: []string{"NETFLIX", "SPOTIFY", "AMAZON PRIME", "DISNEY", "HBO", "GLOBOPLAY", "YOUTUBE", "APPLE.COM"},
		Category: "Lazer",
	},
	{
		// E-commerce
		Keywords: []string{"AMAZON", "MERCADO LIVRE", "MAGAZINELUIZA", "AMERICANAS", "SHOPEE", "ALIEXPRESS"},
		Category: "Compras",
	},
	{
		// Utilities and telecom
		Keywords: []string{"ENEL", "CPFL", "SABESP", "COMGAS", "VIVO", "CLARO", "TIM", "OI", "NET"},
		Category: "Utilidades",
	},
	{
		// Pharmacies and health
		Keywords: []string{"DROGASIL", "DROGA RAIA", "PACHECO", "DROGARIA", "FARMACIA", "HOSPITAL", "CLINICA", "MEDICO"},
		Category: "Saúde",
	},
	{
		// Education
		Keywords: []string{"ALURA", "UDEMY", "COURSERA", "FACULDADE", "UNIVERSIDADE", "ESCOLA"},
		Category: "Educação",
	},
	{
		// Salary and payroll
		Keywords: []string{"SALARIO", "PAGAMENTO", "FOLHA", "REMUNERACAO", "PRO-LABORE"},
		Category: "Salário",
	},
	{
		// Bank transfers
		Keywords: []string{"PIX", "TED", "DOC", "TRANSF"},
		Category: "Transferências",
	},
}

// providerCategoryMap translates the aggregator's own category labels,
// used only when no merchant keyword matched.
var providerCategoryMap = map[string]string{
	"FOOD":          "Alimentação",
	"TRANSPORT":     "Transporte",
	"HOUSING":       "Moradia",
	"UTILITIES":     "Utilidades",
	"HEALTH":        "Saúde",
	"EDUCATION":     "Educação",
	"ENTERTAINMENT": "Lazer",
	"SHOPPING":      "Compras",
	"TRAVEL":        "Viagem",
	"TRANSFERS":     "Transferências",
	"SALARY":        "Salário",
	"INVESTMENTS":   "Investimentos",
	"OTHER_INCOME":  "Outras Receitas",
	"OTHER_EXPENSE": "Outras Despesas",
}

// SmartCategorize maps a statement description to an app category.
// Merchant keywords are checked first, in bucket order; if none match,
// the provider's category label is consulted; otherwise CategoryGeneral.
func SmartCategorize(description, providerCategory string) string {
	desc := strings.ToUpper(description)

	for _, bucket := range merchantBuckets {
		for _, keyword := range bucket.Keywords {
			if strings.Contains(desc, keyword) {
				return bucket.Category
			}
		}
	}

	if providerCategory != "" {
		key := strings.ToUpper(strings.TrimSpace(providerCategory))
		key = strings.ReplaceAll(key, " ", "_")
		if mapped, ok := providerCategoryMap[key]; ok {
			return mapped
		}
	}

	return CategoryGeneral
}
