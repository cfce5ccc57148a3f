package registry

import (
	"log/slog"
	"regexp"
)

// Display names of the built-in banks, exported so callers can register
// them under the exact strings Identify matches against.
const (
	CentralBankOfIndia = "Central Bank of India"
	CityUnionBank      = "City Union Bank"
	BarodaGraminBank   = "Baroda Gramin Bank"
)

var ifscPattern = regexp.MustCompile(`IFSC\s*(?:Code)?\s*[:\-]?\s*([A-Z]{4}0[A-Z0-9]{6})`)

// NewCentralBankOfIndia handles the eight-column Central Bank layout:
// post date, value date, branch code, cheque number, description, debit,
// credit, balance.
func NewCentralBankOfIndia(logger *slog.Logger) *bankStrategy {
	return &bankStrategy{
		name:   CentralBankOfIndia,
		logger: orDefault(logger),
		layout: columnLayout{
			postDate:     0,
			valueDate:    1,
			branchCode:   2,
			chequeNumber: 3,
			description:  4,
			debit:        5,
			credit:       6,
			balance:      7,
		},
		patterns: fieldPatterns{
			accountHolder: []*regexp.Regexp{
				regexp.MustCompile(`Name\s*of\s*(?:the\s*)?Customer\s*[:\-]?\s*(.+)`),
				regexp.MustCompile(`Account\s*Holder\s*[:\-]?\s*(.+)`),
			},
			accountNumber: []*regexp.Regexp{
				regexp.MustCompile(`Account\s*(?:No|Number)\s*[.:\-]?\s*(\d{8,18})`),
			},
			ifscCode: []*regexp.Regexp{ifscPattern},
			clearedBalance: []*regexp.Regexp{
				regexp.MustCompile(`Cleared\s*Balance\s*[:\-]?\s*([\d.,]+)`),
				regexp.MustCompile(`Available\s*Balance\s*[:\-]?\s*([\d.,]+)`),
			},
			periodRange: []*regexp.Regexp{
				regexp.MustCompile(`Statement\s*(?:of\s*account\s*)?(?:Period|from)\s*[:\-]?\s*([\d/\-.]+)\s*(?:to|-)\s*([\d/\-.]+)`),
			},
			periodSingle: []*regexp.Regexp{
				regexp.MustCompile(`Transactions\s*From\s*[:\-]?\s*([\d/\-.]+)`),
			},
		},
	}
}

// NewCityUnionBank handles the six-column City Union layout: date,
// description, cheque number, debit, credit, balance. No value date or
// branch code column.
func NewCityUnionBank(logger *slog.Logger) *bankStrategy {
	return &bankStrategy{
		name:   CityUnionBank,
		logger: orDefault(logger),
		layout: columnLayout{
			postDate:     0,
			valueDate:    -1,
			branchCode:   -1,
			chequeNumber: 2,
			description:  1,
			debit:        3,
			credit:       4,
			balance:      5,
		},
		patterns: fieldPatterns{
			accountHolder: []*regexp.Regexp{
				regexp.MustCompile(`Customer\s*Name\s*[:\-]?\s*(.+)`),
			},
			accountNumber: []*regexp.Regexp{
				regexp.MustCompile(`A/?c\s*(?:No|Number)\s*[.:\-]?\s*(\d{8,18})`),
				regexp.MustCompile(`Account\s*(?:No|Number)\s*[.:\-]?\s*(\d{8,18})`),
			},
			ifscCode: []*regexp.Regexp{ifscPattern},
			clearedBalance: []*regexp.Regexp{
				regexp.MustCompile(`Closing\s*Balance\s*[:\-]?\s*([\d.,]+)`),
			},
			periodRange: []*regexp.Regexp{
				regexp.MustCompile(`(?:Period|From)\s*[:\-]?\s*([\d/\-.]+)\s*(?:to|To)\s*([\d/\-.]+)`),
			},
		},
	}
}

// NewBarodaGraminBank handles the seven-column Gramin layout: post date,
// description, cheque number, value date, debit, credit, balance.
func NewBarodaGraminBank(logger *slog.Logger) *bankStrategy {
	return &bankStrategy{
		name:   BarodaGraminBank,
		logger: orDefault(logger),
		layout: columnLayout{
			postDate:     0,
			valueDate:    3,
			branchCode:   -1,
			chequeNumber: 2,
			description:  1,
			debit:        4,
			credit:       5,
			balance:      6,
		},
		patterns: fieldPatterns{
			accountHolder: []*regexp.Regexp{
				regexp.MustCompile(`(?:Account\s*Holder|Name)\s*[:\-]?\s*(.+)`),
			},
			accountNumber: []*regexp.Regexp{
				regexp.MustCompile(`Account\s*(?:No|Number)\s*[.:\-]?\s*(\d{8,18})`),
			},
			ifscCode: []*regexp.Regexp{ifscPattern},
			clearedBalance: []*regexp.Regexp{
				regexp.MustCompile(`Cleared\s*Balance\s*[:\-]?\s*([\d.,]+)`),
				regexp.MustCompile(`Closing\s*Balance\s*[:\-]?\s*([\d.,]+)`),
			},
			periodRange: []*regexp.Regexp{
				regexp.MustCompile(`Statement\s*Period\s*[:\-]?\s*([\d/\-.]+)\s*(?:to|To|-)\s*([\d/\-.]+)`),
			},
		},
	}
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
