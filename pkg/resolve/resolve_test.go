package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DOGE-network/cali-doge-sub006/pkg/departments"
	"github.com/DOGE-network/cali-doge-sub006/pkg/fuzzy"
)

func carb() Target {
	return Target{
		Name:    "Air Resources Board",
		Code:    "3900",
		Aliases: []string{"CARB"},
	}
}

func TestMatchCodeAndName(t *testing.T) {
	record := departments.ExternalRecord{
		Code: "3900",
		Fields: []departments.Field{
			{Name: "department_name", Value: "Air Resources Board", Weight: 0.9},
		},
	}

	result, err := Match(carb(), record, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, FieldCodeAndName, result.Field)
	assert.Equal(t, fuzzy.ConfidenceHigh, result.Confidence)
}

// A registered alias counts as a name field for the exact check.
func TestMatchCodeAndAliasName(t *testing.T) {
	record := departments.ExternalRecord{
		Code: "3900",
		Fields: []departments.Field{
			{Name: "department", Value: "CARB", Weight: 0.9},
		},
	}

	result, err := Match(carb(), record, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, FieldCodeAndName, result.Field)
}

func TestMatchCodeOnly(t *testing.T) {
	record := departments.ExternalRecord{
		Code: "3900",
		Fields: []departments.Field{
			{Name: "department_name", Value: "Something Unrelated", Weight: 0.9},
		},
	}

	result, err := Match(carb(), record, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, FieldCode, result.Field)
}

func TestMatchExactName(t *testing.T) {
	record := departments.ExternalRecord{
		Fields: []departments.Field{
			{Name: "department_name", Value: "air resources board", Weight: 0.9},
		},
	}

	result, err := Match(carb(), record, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 0.8, result.Score)
	assert.Equal(t, FieldName, result.Field)
	assert.Equal(t, fuzzy.AlgorithmExact, result.Algorithm)
}

// An alias matched exactly in a name field scores as an exact name.
func TestMatchAliasAsName(t *testing.T) {
	record := departments.ExternalRecord{
		Fields: []departments.Field{
			{Name: "department", Value: "CARB", Weight: 0.9},
		},
	}

	result, err := Match(carb(), record, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 0.8, result.Score)
	assert.Equal(t, FieldName, result.Field)
	assert.Equal(t, "CARB", result.MatchedText)
}

// Fuzzy evidence is weighted by field priority and capped at 0.7.
func TestMatchWeightedFuzzyCap(t *testing.T) {
	record := departments.ExternalRecord{
		Fields: []departments.Field{
			{Name: "description", Value: "California Air Resource Board", Weight: 1.0},
		},
	}

	result, err := Match(carb(), record, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, fuzzy.AlgorithmFieldWeighted, result.Algorithm)
	assert.LessOrEqual(t, result.Score, 0.7)
	assert.Equal(t, "description", result.Field)
}

// An exact name match beats weighted fuzzy evidence even when the fuzzy
// raw score before capping was higher.
func TestMatchExactSupremacy(t *testing.T) {
	record := departments.ExternalRecord{
		Fields: []departments.Field{
			{Name: "description", Value: "California Air Resource Board", Weight: 1.0},
			{Name: "vendor_name", Value: "CARB", Weight: 0.5},
		},
	}

	result, err := Match(carb(), record, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 0.8, result.Score)
	assert.Equal(t, FieldName, result.Field)
	assert.Equal(t, "CARB", result.MatchedText)
}

func TestMatchNoPlausibleIdentification(t *testing.T) {
	record := departments.ExternalRecord{
		Fields: []departments.Field{
			{Name: "description", Value: "xyzzy", Weight: 0.2},
		},
	}

	result, err := Match(carb(), record, nil)
	require.NoError(t, err)
	assert.Nil(t, result, "no match is an expected outcome, not an error")
}

func TestMatchEmptyRecord(t *testing.T) {
	result, err := Match(carb(), departments.ExternalRecord{}, nil)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestMatchSkipsEmptyFields(t *testing.T) {
	record := departments.ExternalRecord{
		Fields: []departments.Field{
			{Name: "description", Value: "   ", Weight: 1.0},
			{Name: "agency", Value: "Air Resources Board", Weight: 0.9},
		},
	}

	result, err := Match(carb(), record, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 0.8, result.Score)
}

func TestMatchInvalidTarget(t *testing.T) {
	_, err := Match(Target{}, departments.ExternalRecord{}, nil)
	assert.Error(t, err)
}

func TestMatchInvalidOptions(t *testing.T) {
	_, err := Match(carb(), departments.ExternalRecord{}, &Options{Threshold: 2})
	assert.Error(t, err)
}

func TestMatchCustomThreshold(t *testing.T) {
	record := departments.ExternalRecord{
		Fields: []departments.Field{
			{Name: "description", Value: "Air Resources", Weight: 0.5},
		},
	}

	// Passes at the default threshold...
	result, err := Match(carb(), record, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	// ...but not at a stricter one.
	strict, err := Match(carb(), record, &Options{Threshold: 0.9})
	require.NoError(t, err)
	assert.Nil(t, strict)
}
