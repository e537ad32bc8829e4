package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postaltools/postmerge/internal/config"
	"github.com/postaltools/postmerge/internal/tabular"
)

func discard(string) {}

func TestSplitAliases(t *testing.T) {
	got := SplitAliases("SL Or sr Or  srno  Or SR. NO. Or sr. no.")
	assert.Equal(t, []string{"SL", "sr", "srno", "SR. NO.", "sr. no."}, got)
}

func TestSplitAliasesDropsEmpties(t *testing.T) {
	got := SplitAliases(" add 1 Or  Or add 2 ")
	assert.Equal(t, []string{"add 1", "add 2"}, got)
}

func TestMatchSingle(t *testing.T) {
	headers := []string{"Barcode No", " Pin code ", "Customer Name"}

	col, ok := MatchSingle(headers, "Pincode Or Pin code Or Pin")
	require.True(t, ok)
	assert.Equal(t, " Pin code ", col)

	_, ok = MatchSingle(headers, "REF Or reference Or code")
	assert.False(t, ok)
}

// With both SRNO and "sr. no." present, the alias appearing earlier in the
// canonical alias list wins, deterministically.
func TestMatchSingleAliasPriority(t *testing.T) {
	headers := []string{"sr. no.", "SRNO"}

	col, ok := MatchSingle(headers, "SL Or sr Or srno Or SR. NO. Or sr. no.")
	require.True(t, ok)
	assert.Equal(t, "SRNO", col, "'srno' precedes 'sr. no.' in the alias list")
}

func TestMatchAllPreservesColumnOrder(t *testing.T) {
	headers := []string{"add3", "Name", "add1", "add2"}

	got := MatchAll(headers, "add1 Or add2 Or add3")
	assert.Equal(t, []string{"add3", "add1", "add2"}, got)
}

func TestRename(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"Pin code", "Customer Name", "Extra"},
		Rows: []map[string]string{
			{"Pin code": "110001", "Customer Name": "A Sharma", "Extra": "x"},
		},
	}

	applied := Rename(table, config.Default().FieldAliases, config.Default().OutputColumns, discard)

	assert.Equal(t, "AddrePincode", applied["Pin code"])
	assert.Equal(t, "AddreName", applied["Customer Name"])
	assert.True(t, table.HasColumn("AddrePincode"))
	assert.False(t, table.HasColumn("Pin code"))
	assert.Equal(t, "110001", table.Rows[0]["AddrePincode"])
	assert.Equal(t, "A Sharma", table.Rows[0]["AddreName"])
	// Unmatched input columns are untouched.
	assert.Equal(t, "x", table.Rows[0]["Extra"])
}

// The configured column order decides which field claims a header both
// alias lists could match; the built-in order must not leak in.
func TestRenameHonorsColumnOrder(t *testing.T) {
	aliases := map[string]string{
		"FieldA": "code",
		"FieldB": "code",
	}

	table := &tabular.Table{
		Headers: []string{"code"},
		Rows:    []map[string]string{{"code": "42"}},
	}
	applied := Rename(table, aliases, []string{"FieldB", "FieldA"}, discard)
	require.Equal(t, "FieldB", applied["code"])
	assert.True(t, table.HasColumn("FieldB"))
	assert.False(t, table.HasColumn("FieldA"))

	table = &tabular.Table{
		Headers: []string{"code"},
		Rows:    []map[string]string{{"code": "42"}},
	}
	applied = Rename(table, aliases, []string{"FieldA", "FieldB"}, discard)
	require.Equal(t, "FieldA", applied["code"])
	assert.True(t, table.HasColumn("FieldA"))
}

func TestJoinAddress(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"add1", "add2", "add3"},
		Rows: []map[string]string{
			{"add1": "12 MG Road", "add2": "", "add3": "Bangalore"},
			{"add1": "", "add2": "", "add3": ""},
		},
	}

	cols := JoinAddress(table, "add1 Or add2 Or add3")
	assert.Equal(t, []string{"add1", "add2", "add3"}, cols)

	// Empty parts are skipped, the rest joined with ", " and trimmed.
	assert.Equal(t, "12 MG Road, Bangalore", table.Rows[0][config.FieldAddress])
	assert.Equal(t, "", table.Rows[1][config.FieldAddress])
}

func TestJoinAddressNoMatch(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"Name"},
		Rows:    []map[string]string{{"Name": "A"}},
	}

	cols := JoinAddress(table, "add1 Or add2")
	assert.Nil(t, cols)
	assert.False(t, table.HasColumn(config.FieldAddress))
}
