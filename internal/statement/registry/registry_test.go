package registry

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-extractor/internal/statement/metadata"
	"github.com/FACorreiaa/statement-extractor/internal/statement/table"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIdentifyDispatchesOnSubstring(t *testing.T) {
	r := NewRegistry(testLogger())
	require.NoError(t, r.Register(CentralBankOfIndia, NewCentralBankOfIndia(testLogger())))
	require.NoError(t, r.Register(CityUnionBank, NewCityUnionBank(testLogger())))

	s, err := r.Identify("Statement of Account\nCity Union Bank Branch: Chennai\n")
	require.NoError(t, err)
	assert.Equal(t, CityUnionBank, s.BankName())
}

func TestIdentifyCaseInsensitive(t *testing.T) {
	r := DefaultRegistry("", testLogger())

	s, err := r.Identify("statement issued by CITY UNION BANK ltd")
	require.NoError(t, err)
	assert.Equal(t, CityUnionBank, s.BankName())
}

func TestIdentifyRegistrationOrderBreaksTies(t *testing.T) {
	r := NewRegistry(testLogger())
	require.NoError(t, r.Register(CityUnionBank, NewCityUnionBank(testLogger())))
	require.NoError(t, r.Register(CentralBankOfIndia, NewCentralBankOfIndia(testLogger())))

	// Both names occur; the earlier registration wins regardless of the
	// order they appear in the text.
	s, err := r.Identify("Transferred from Central Bank of India to City Union Bank")
	require.NoError(t, err)
	assert.Equal(t, CityUnionBank, s.BankName())
}

func TestIdentifyUnrecognizedIsHardStop(t *testing.T) {
	r := DefaultRegistry("", testLogger())

	_, err := r.Identify("Some Cooperative Society passbook")
	assert.ErrorIs(t, err, ErrBankUnrecognized)

	empty := NewRegistry(testLogger())
	_, err = empty.Identify("Central Bank of India")
	assert.ErrorIs(t, err, ErrBankUnrecognized)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry(testLogger())
	require.NoError(t, r.Register(CityUnionBank, NewCityUnionBank(testLogger())))
	err := r.Register("city union bank", NewCityUnionBank(testLogger()))
	assert.ErrorIs(t, err, ErrDuplicateBank)
}

func centralBankDoc() *table.Document {
	return &table.Document{Pages: []table.Page{
		{
			Number: 1,
			Text: "Central Bank of India\n" +
				"Name of Customer: Suresh Menon\n" +
				"Account Number: 30412345678\n" +
				"IFSC Code: CBIN0280350\n" +
				"Statement Period: 01/03/2023 to 31/03/2023\n" +
				"Cleared Balance: 18,400.00\n",
			Tables: []table.Table{{Rows: [][]string{
				{"Date", "Value Date", "Branch", "Cheque", "Description", "Debit", "Credit", "Balance"},
				{"02/03/2023", "02/03/2023", "280350", "", "HITACHI ATM CASH WDL", "500.00", "", "17,900.00"},
				{"05/03/2023", "06/03/2023", "280350", "104221", "CHEQUE DEPOSIT", "", "2,000.00", "19,900.00"},
				{"09/03/2023", "09/03/2023", "280350", "", "HITACHI ATM CASH WDL", "1,000.00", "", "18,900.00"},
			}}},
		},
	}}
}

func TestCentralBankParse(t *testing.T) {
	s := NewCentralBankOfIndia(testLogger())

	result, err := s.Parse(centralBankDoc())
	require.NoError(t, err)

	meta := result.Metadata
	assert.Equal(t, CentralBankOfIndia, meta.BankName)
	assert.Equal(t, "Suresh Menon", meta.AccountHolder)
	assert.Equal(t, "30412345678", meta.AccountNumber)
	assert.Equal(t, "CBIN0280350", meta.IFSCCode)
	assert.Equal(t, "01-03-2023", meta.TransactionFrom)
	assert.Equal(t, "31-03-2023", meta.TransactionTo)
	assert.Equal(t, "18,400.00", meta.ClearedBalance)
	assert.True(t, meta.Complete())

	require.Len(t, result.Transactions, 3)
	first := result.Transactions[0]
	assert.Equal(t, "02-03-2023", first.PostDate)
	assert.Equal(t, "02-03-2023", first.ValueDate)
	assert.Equal(t, "280350", first.BranchCode)
	assert.Equal(t, "HITACHI ATM CASH WDL", first.Description)
	assert.Equal(t, "500.00", first.Debit)
	assert.Equal(t, "", first.Credit)
	assert.Equal(t, "104221", result.Transactions[1].ChequeNumber)

	// The header row never parses as a date.
	assert.Equal(t, 1, result.SkippedRows)
}

func TestMarkerFilterKeepsMatchingRows(t *testing.T) {
	s := NewCentralBankOfIndia(testLogger()).WithMarker("Hitachi")

	result, err := s.Parse(centralBankDoc())
	require.NoError(t, err)

	require.Len(t, result.Transactions, 2)
	for _, tx := range result.Transactions {
		assert.Contains(t, tx.Description, "HITACHI")
	}
	// Header plus the cheque-deposit row.
	assert.Equal(t, 2, result.SkippedRows)
}

func TestCityUnionLayout(t *testing.T) {
	s := NewCityUnionBank(testLogger())

	doc := &table.Document{Pages: []table.Page{{
		Number: 1,
		Text:   "City Union Bank\nCustomer Name: Anita Rao\nA/c No: 500101234567\n",
		Tables: []table.Table{{Rows: [][]string{
			{"10/04/2023", "NEFT FROM EMPLOYER", "", "", "45,000.00", "52,300.00"},
			{"11/04/2023", "CHQ PAID", "220101", "5,000.00", "", "47,300.00"},
		}}},
	}}}

	result, err := s.Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, "Anita Rao", result.Metadata.AccountHolder)
	assert.Equal(t, "500101234567", result.Metadata.AccountNumber)

	require.Len(t, result.Transactions, 2)
	assert.Equal(t, "45,000.00", result.Transactions[0].Credit)
	assert.Equal(t, "", result.Transactions[0].ValueDate)
	assert.Equal(t, "220101", result.Transactions[1].ChequeNumber)
}

func TestRegistryParseEndToEnd(t *testing.T) {
	r := DefaultRegistry("", testLogger())

	result, err := r.Parse(centralBankDoc())
	require.NoError(t, err)
	assert.Equal(t, CentralBankOfIndia, result.Metadata.BankName)
	assert.Len(t, result.Transactions, 3)

	_, err = r.Parse(&table.Document{Pages: []table.Page{{Number: 1, Text: "Unbranded slip"}}})
	assert.ErrorIs(t, err, ErrBankUnrecognized)
}

func TestConfigBuild(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.yaml")
	content := "marker: hitachi\nbanks:\n" +
		"  - strategy: city-union-bank\n" +
		"  - strategy: central-bank-of-india\n" +
		"    marker: atmwdl\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "hitachi", cfg.Marker)

	r, err := cfg.Build(testLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{CityUnionBank, CentralBankOfIndia}, r.Names())
}

func TestConfigRejectsUnknownStrategy(t *testing.T) {
	cfg := &Config{Banks: []BankConfig{{Strategy: "no-such-bank"}}}
	_, err := cfg.Build(testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-bank")
}

func TestCentralBankSingleDatePeriod(t *testing.T) {
	s := NewCentralBankOfIndia(testLogger())
	doc := &table.Document{Pages: []table.Page{{
		Number: 1,
		Text: "Central Bank of India\n" +
			"Account Number: 30412345678\n" +
			"Transactions From: 02/03/2023\n",
	}}}

	result, err := s.Parse(doc)
	require.NoError(t, err)

	// A single statement date bounds the period on both sides.
	assert.Equal(t, "02-03-2023", result.Metadata.TransactionFrom)
	assert.Equal(t, "02-03-2023", result.Metadata.TransactionTo)
}

func TestStrategyMetadataSentinels(t *testing.T) {
	s := NewBarodaGraminBank(testLogger())
	result, err := s.Parse(&table.Document{Pages: []table.Page{{Number: 1, Text: "Baroda Gramin Bank\n"}}})
	require.NoError(t, err)

	assert.Equal(t, BarodaGraminBank, result.Metadata.BankName)
	assert.Equal(t, metadata.NotAvailable, result.Metadata.AccountHolder)
	assert.Equal(t, metadata.NotAvailable, result.Metadata.TransactionFrom)
}
