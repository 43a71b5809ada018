package records

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
)

type product struct {
	Name     string
	Price    float64
	Quantity int
	InStock  bool   `md:"in stock"`
	SKU      string `md:"code,optional"`
	Weight   *float64
}

func TestDecode(t *testing.T) {
	tbl := models.Table{
		Headers: []string{"Name", "Price", "Quantity", "In Stock", "Weight"},
		Rows: [][]string{
			{"Apple", "1.25", "10", "yes", "0.2"},
			{"Pear", "2", " 3 ", "[ ]", ""},
		},
	}

	res, err := Decode[product](tbl)
	require.NoError(t, err)
	require.True(t, res.OK())
	require.NoError(t, res.Err())
	require.Len(t, res.Records, 2)

	apple := res.Records[0]
	assert.Equal(t, "Apple", apple.Name)
	assert.Equal(t, 1.25, apple.Price)
	assert.Equal(t, 10, apple.Quantity)
	assert.True(t, apple.InStock)
	assert.Equal(t, "", apple.SKU)
	if assert.NotNil(t, apple.Weight) {
		assert.Equal(t, 0.2, *apple.Weight)
	}

	pear := res.Records[1]
	assert.Equal(t, 3, pear.Quantity)
	assert.False(t, pear.InStock)
	assert.Nil(t, pear.Weight)
}

func TestDecodeCollectsErrors(t *testing.T) {
	tbl := models.Table{
		Headers: []string{"Name", "Price", "Quantity", "In Stock"},
		Rows: [][]string{
			{"ok", "1", "1", "true"},
			{"bad", "cheap", "", "maybe"},
		},
	}

	res, err := Decode[product](tbl)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Empty(t, res.Records)

	require.Len(t, res.Errors, 3)
	assert.Equal(t, FieldError{Row: 2, Column: "price", Reason: ReasonInvalidFloat, Message: "invalid float value: 'cheap'"}, res.Errors[0])
	assert.Equal(t, ReasonEmptyValue, res.Errors[1].Reason)
	assert.Equal(t, "quantity", res.Errors[1].Column)
	assert.Equal(t, ReasonInvalidBool, res.Errors[2].Reason)

	var verr *ValidationError
	require.True(t, errors.As(res.Err(), &verr))
	assert.Contains(t, verr.Error(), "validation failed with 3 errors")
	assert.Contains(t, verr.Error(), "Row 2: Column 'price': invalid float value: 'cheap'")
}

func TestDecodeMissingRequiredColumn(t *testing.T) {
	tbl := models.Table{
		Headers: []string{"Name", "Price"},
		Rows:    [][]string{{"a", "1"}, {"b", "2"}},
	}

	res, err := Decode[product](tbl)
	require.NoError(t, err)

	// quantity and in_stock are missing on each of the two rows
	require.Len(t, res.Errors, 4)
	for _, fe := range res.Errors {
		assert.Equal(t, ReasonMissingField, fe.Reason)
		assert.Empty(t, fe.Column)
	}
	assert.Equal(t, "Row 1: missing required field 'quantity'", res.Errors[0].Error())
}

func TestDecodeMissingFieldAfterCellErrors(t *testing.T) {
	tbl := models.Table{
		Headers: []string{"Name", "Price", "In Stock"},
		Rows: [][]string{
			{"a", "cheap", "yes"},
			{"b", "2", "no"},
		},
	}

	res, err := Decode[product](tbl)
	require.NoError(t, err)

	require.Len(t, res.Errors, 2)
	assert.Equal(t, FieldError{Row: 1, Column: "price", Reason: ReasonInvalidFloat, Message: "invalid float value: 'cheap'"}, res.Errors[0])
	assert.Equal(t, FieldError{Row: 2, Reason: ReasonMissingField, Message: "missing required field 'quantity'"}, res.Errors[1])
}

func TestDecodeNoHeaders(t *testing.T) {
	res, err := Decode[product](models.Table{Rows: [][]string{{"a"}}})
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ReasonNoHeaders, res.Errors[0].Reason)
	assert.Equal(t, "table has no headers", res.Errors[0].Error())
}

func TestDecodeShortRowsAndExtraColumns(t *testing.T) {
	type item struct {
		ID   uint8
		Note string
	}

	tbl := models.Table{
		Headers: []string{"ID", "Note", "Ignored"},
		Rows:    [][]string{{"7"}, {"300", "x", "y"}},
	}

	res, err := Decode[item](tbl)
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Row)
	assert.Equal(t, ReasonInvalidInt, res.Errors[0].Reason)
}

func TestDecodeShapeErrors(t *testing.T) {
	tbl := models.Table{Headers: []string{"a"}}

	_, err := Decode[int](tbl)
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))

	type nested struct {
		Tags []string
	}
	_, err = Decode[nested](tbl)
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in    string
		value bool
		ok    bool
	}{
		{"true", true, true},
		{"YES", true, true},
		{"1", true, true},
		{"on", true, true},
		{"[x]", true, true},
		{"[X]", true, true},
		{"false", false, true},
		{"No", false, true},
		{"0", false, true},
		{"off", false, true},
		{"", false, true},
		{"[ ]", false, true},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		value, ok := parseBool(tt.in)
		assert.Equal(t, tt.value, value, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, "user_name", NormalizeHeader("  User Name "))
	assert.Equal(t, "straße", NormalizeHeader("Straße"))

	assert.Equal(t, "user_name", snakeCase("UserName"))
	assert.Equal(t, "http_code", snakeCase("HTTPCode"))
	assert.Equal(t, "id", snakeCase("ID"))
	assert.Equal(t, "item2_name", snakeCase("Item2Name"))
}
