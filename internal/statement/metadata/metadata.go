// Package metadata derives document-level statement fields from first-page
// text. Every field is populated with either a detected value or an explicit
// sentinel, never left empty, so consumers can branch on presence without
// nil checks.
package metadata

// Sentinel values for undetected fields. These match the wire format
// downstream consumers already parse.
const (
	UnknownBank  = "Unknown Bank"
	NotAvailable = "NA"
)

// Metadata holds the document-level fields of one statement.
type Metadata struct {
	BankName        string `json:"bankName"`
	AccountHolder   string `json:"accountHolder"`
	AccountNumber   string `json:"accountNumber"`
	IFSCCode        string `json:"ifscCode"`
	TransactionFrom string `json:"transactionFrom"`
	TransactionTo   string `json:"transactionTo"`
	ClearedBalance  string `json:"clearedBalance"`
}

// Empty returns a Metadata with every field set to its sentinel.
func Empty() Metadata {
	return Metadata{
		BankName:        UnknownBank,
		AccountHolder:   NotAvailable,
		AccountNumber:   NotAvailable,
		IFSCCode:        NotAvailable,
		TransactionFrom: NotAvailable,
		TransactionTo:   NotAvailable,
		ClearedBalance:  NotAvailable,
	}
}

// MissingFields names the fields still carrying a sentinel, in a stable
// order suitable for response remarks.
func (m Metadata) MissingFields() []string {
	var missing []string
	if m.BankName == UnknownBank || m.BankName == NotAvailable {
		missing = append(missing, "bankName")
	}
	if m.AccountHolder == NotAvailable {
		missing = append(missing, "accountHolder")
	}
	if m.AccountNumber == NotAvailable {
		missing = append(missing, "accountNumber")
	}
	if m.IFSCCode == NotAvailable {
		missing = append(missing, "ifscCode")
	}
	if m.TransactionFrom == NotAvailable {
		missing = append(missing, "transactionFrom")
	}
	if m.TransactionTo == NotAvailable {
		missing = append(missing, "transactionTo")
	}
	if m.ClearedBalance == NotAvailable {
		missing = append(missing, "clearedBalance")
	}
	return missing
}

// Complete reports whether every field holds a detected value.
func (m Metadata) Complete() bool {
	return len(m.MissingFields()) == 0
}
