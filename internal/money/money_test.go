package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseAndArithmetic(t *testing.T) {
	p := MustParse("19.90")
	assert.Equal(t, "59.70", p.Mul(3).String())
	assert.Equal(t, "29.90", p.Add(MustParse("10")).String())

	_, err := Parse("abc")
	assert.Error(t, err)
}

func TestJSON_AcceptsStringAndNumber(t *testing.T) {
	var v struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"10.5","b":3.25}`), &v))
	assert.Equal(t, "10.50", v.A.String())
	assert.Equal(t, "3.25", v.B.String())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"10.50","b":"3.25"}`, string(out))
}

func TestBSON_StoresDecimal128(t *testing.T) {
	type doc struct {
		Price Amount `bson:"price"`
	}
	raw, err := bson.Marshal(doc{Price: MustParse("199.90")})
	require.NoError(t, err)

	assert.Equal(t, bson.TypeDecimal128, bson.Raw(raw).Lookup("price").Type)

	var back doc
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.True(t, back.Price.Equal(MustParse("199.9").Decimal))
}

func TestBSON_DecodesLegacyDouble(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"price": 12.5})
	require.NoError(t, err)

	var back struct {
		Price Amount `bson:"price"`
	}
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, "12.50", back.Price.String())
}

func TestIsPrice(t *testing.T) {
	cases := map[string]bool{
		"0":             true,
		"19.90":         true,
		"1.500":         true,
		"9999999999.99": true,
		"1.005":         false,
		"-1":            false,
		"10000000000":   false,
		"1e12":          false,
		"1e5000000":     false,
		"1e-5000000":    false,
	}
	for in, want := range cases {
		assert.Equal(t, want, MustParse(in).IsPrice(), in)
	}
	assert.True(t, Zero.IsPrice())
}
