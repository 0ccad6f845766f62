// Package money wraps decimal amounts so prices survive JSON, BSON and SQL without float rounding.
package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Amount is a decimal currency amount. JSON carries it as a string ("19.90").
type Amount struct {
	decimal.Decimal
}

var Zero = Amount{decimal.Zero}

func New(d decimal.Decimal) Amount { return Amount{d} }

// Parse accepts a decimal string such as "199.90".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	return Amount{d}, nil
}

func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Price columns are NUMERIC(12,2): ten integer digits, two fraction digits.
const (
	MaxIntegerDigits = 10
	maxScale         = 12
)

// IsPrice reports whether a is non-negative and fits a price column exactly.
// Bounds are checked on the coefficient and exponent, so "1e5000000" is
// rejected without expanding it.
func (a Amount) IsPrice() bool {
	exp := int(a.Exponent())
	if exp < -maxScale || a.NumDigits()+exp > MaxIntegerDigits {
		return false
	}
	return !a.IsNegative() && a.Equal(a.Truncate(2))
}

func (a Amount) Mul(qty int) Amount {
	return Amount{a.Decimal.Mul(decimal.NewFromInt(int64(qty)))}
}

func (a Amount) Add(b Amount) Amount {
	return Amount{a.Decimal.Add(b.Decimal)}
}

// String renders two fraction digits.
func (a Amount) String() string {
	return a.Decimal.StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both "19.90" and 19.90.
func (a *Amount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

// MarshalBSONValue stores the amount as Decimal128.
func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d, err := primitive.ParseDecimal128(a.Decimal.String())
	if err != nil {
		return 0, nil, err
	}
	return bson.MarshalValue(d)
}

func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeDecimal128:
		d, err := decimal.NewFromString(rv.Decimal128().String())
		if err != nil {
			return err
		}
		a.Decimal = d
	case bson.TypeString:
		d, err := decimal.NewFromString(rv.StringValue())
		if err != nil {
			return err
		}
		a.Decimal = d
	case bson.TypeDouble:
		a.Decimal = decimal.NewFromFloat(rv.Double())
	case bson.TypeInt32:
		a.Decimal = decimal.NewFromInt32(rv.Int32())
	case bson.TypeInt64:
		a.Decimal = decimal.NewFromInt(rv.Int64())
	case bson.TypeNull:
		a.Decimal = decimal.Zero
	default:
		return fmt.Errorf("money: cannot decode BSON %s", t)
	}
	return nil
}
