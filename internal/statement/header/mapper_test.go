package header

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	syns := DefaultSynonyms()

	t.Run("standard statement header", func(t *testing.T) {
		m := Map([]string{"Txn Date", "Particulars", "Withdrawal", "Deposit", "Balance"}, syns)

		want := map[CanonicalField]int{
			FieldDate:        0,
			FieldDescription: 1,
			FieldDebit:       2,
			FieldCredit:      3,
			FieldBalance:     4,
		}
		require.Equal(t, len(want), m.Len())
		for field, idx := range want {
			got, ok := m.Column(field)
			require.True(t, ok, "field %s not mapped", field)
			assert.Equal(t, idx, got, "field %s", field)
		}
	})

	t.Run("case insensitive substring match", func(t *testing.T) {
		m := Map([]string{"value date", "TRANSACTION DETAILS", "dr", "cr", "closing balance"}, syns)
		assert.Equal(t, 5, m.Len())
	})

	t.Run("unmapped cells never appear", func(t *testing.T) {
		m := Map([]string{"Sl No", "Txn Date", "Remarks Code"}, syns)
		assert.Equal(t, 1, m.Len())
		idx, ok := m.Column(FieldDate)
		require.True(t, ok)
		assert.Equal(t, 1, idx)
	})

	t.Run("first matching cell wins for a field", func(t *testing.T) {
		m := Map([]string{"Date", "Value Date", "Particulars"}, syns)
		idx, ok := m.Column(FieldDate)
		require.True(t, ok)
		assert.Equal(t, 0, idx)
	})

	t.Run("empty header row", func(t *testing.T) {
		m := Map([]string{"", "  "}, syns)
		assert.Equal(t, 0, m.Len())
		assert.Equal(t, -1, m.MaxIndex())
	})
}

func TestMappingMissing(t *testing.T) {
	m := Map([]string{"Txn Date", "Particulars"}, DefaultSynonyms())
	missing := m.Missing(AllFields)
	assert.Equal(t, []CanonicalField{FieldDebit, FieldCredit, FieldBalance}, missing)

	full := Map([]string{"Date", "Details", "Debit", "Credit", "Balance"}, DefaultSynonyms())
	assert.Empty(t, full.Missing(AllFields))
}

func TestLoadSynonyms(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "synonyms.yaml")
	content := []byte("date:\n  - datum\ndescription:\n  - omschrijving\ndebit:\n  - af\ncredit:\n  - bij\nbalance:\n  - saldo\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	table, err := LoadSynonyms(path)
	require.NoError(t, err)

	m := Map([]string{"Datum", "Omschrijving", "Af", "Bij", "Saldo"}, table)
	assert.Equal(t, 5, m.Len())
}

func TestLoadSynonymsRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "synonyms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chequeno:\n  - chq\n"), 0o600))

	_, err := LoadSynonyms(path)
	assert.Error(t, err)
}
