package importer

// Columns is the fixed layout of an import sheet. Row 1 is the header.
var Columns = []string{
	"date",
	"country_code",
	"spend_trust",
	"spend_crossgif",
	"spend_fbm",
	"revenue_local_priemka",
	"revenue_usdt_priemka",
	"revenue_local_own",
	"revenue_usdt_own",
	"fd_count",
	"fd_sum_local",
	"chatterfy_cost",
	"additional_expenses",
}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Imported int        `json:"imported"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors"`
}
