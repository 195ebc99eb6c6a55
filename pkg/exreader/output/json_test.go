package output

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exreader-go/pkg/exreader/models"
)

func TestRecordsJSONKeepsHeaderOrder(t *testing.T) {
	table := &models.Table{
		Columns: []string{"zeta", "alpha", "mid"},
		Rows: [][]interface{}{
			{int64(1), "a<b>&c", nil},
			{2.5, true},
		},
	}

	data, err := RecordsJSON(table, Encoding{})
	require.NoError(t, err)
	assert.Equal(t,
		`[{"zeta":1,"alpha":"a<b>&c","mid":null},{"zeta":2.5,"alpha":true,"mid":null}]`,
		string(data))
}

func TestRecordsJSONValues(t *testing.T) {
	day := time.Date(2024, 3, 15, 8, 30, 0, 250*int(time.Millisecond), time.UTC)
	table := &models.Table{
		Columns: []string{"when", "nan", "inf", "name"},
		Rows:    [][]interface{}{{day, math.NaN(), math.Inf(1), "剣"}},
	}

	data, err := RecordsJSON(table, Encoding{})
	require.NoError(t, err)
	assert.Equal(t, `[{"when":"2024-03-15T08:30:00.250","nan":null,"inf":null,"name":"剣"}]`, string(data))

	data, err = RecordsJSON(table, Encoding{ASCII: true})
	require.NoError(t, err)
	assert.Equal(t, `[{"when":"2024-03-15T08:30:00.250","nan":null,"inf":null,"name":"\u5263"}]`, string(data))
}

func TestASCIIEscapesSurrogatePairs(t *testing.T) {
	data, err := StringsJSON([]string{"😀 é"}, Encoding{ASCII: true})
	require.NoError(t, err)
	assert.Equal(t, `["\ud83d\ude00 \u00e9"]`, string(data))

	var back []string
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []string{"😀 é"}, back)
}

func TestRecordsJSONRoundTrip(t *testing.T) {
	table := &models.Table{
		Columns: []string{"id", "name", "price", "active", "note"},
		Rows: [][]interface{}{
			{int64(1), "Sword", 12.5, true, nil},
			{int64(2), "Shield", int64(30), false, "ps: heavy"},
		},
	}

	for _, enc := range []Encoding{{}, {ASCII: true}} {
		data, err := RecordsJSON(table, enc)
		require.NoError(t, err)

		var back []map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &back))
		require.Len(t, back, len(table.Rows))
		for i, rec := range table.Records() {
			assert.Len(t, back[i], len(rec))
			for _, field := range rec {
				want := field.Value
				if n, ok := want.(int64); ok {
					want = float64(n)
				}
				assert.Equal(t, want, back[i][field.Name], "row %d field %s", i, field.Name)
			}
		}
	}
}

func TestEmptyResults(t *testing.T) {
	data, err := RecordsJSON(&models.Table{}, Encoding{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = StringsJSON(nil, Encoding{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestErrorJSON(t *testing.T) {
	assert.Equal(t, `{"error":"File <x> not found"}`, string(ErrorJSON(errors.New("File <x> not found"), Encoding{})))

	err := errors.New("File アイテム.xlsx not found")
	assert.Equal(t, `{"error":"File アイテム.xlsx not found"}`, string(ErrorJSON(err, Encoding{})))
	assert.Equal(t, `{"error":"File \u30a2\u30a4\u30c6\u30e0.xlsx not found"}`, string(ErrorJSON(err, Encoding{ASCII: true})))
}
