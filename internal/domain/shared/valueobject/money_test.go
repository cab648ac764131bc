package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), INR)
		require.NoError(t, err)
		assert.Equal(t, INR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", INR)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", INR)
		assert.Error(t, err)
	})
}

func TestNewMoneyINR(t *testing.T) {
	m := NewMoneyINR(decimal.NewFromFloat(50.00))
	assert.Equal(t, INR, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(50.00)))
}

func TestZeroINR(t *testing.T) {
	m := ZeroINR()
	assert.True(t, m.IsZero())
	assert.Equal(t, INR, m.Currency())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds amounts with matching currency", func(t *testing.T) {
		a := NewMoneyINRFromFloat(100)
		b := NewMoneyINRFromFloat(50.25)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(150.25)))
	})

	t.Run("rejects mismatched currencies", func(t *testing.T) {
		a := NewMoneyINRFromFloat(100)
		b, _ := NewMoneyFromFloat(50, USD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoneySubtract(t *testing.T) {
	a := NewMoneyINRFromFloat(100)
	b := NewMoneyINRFromFloat(40)
	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, 60.0, diff.Float64())
}

func TestMoneyMultiply(t *testing.T) {
	m := NewMoneyINRFromFloat(100)
	result := m.MultiplyByInt(5)
	assert.True(t, result.Amount().Equal(decimal.NewFromInt(500)))
}

func TestMoneyRound(t *testing.T) {
	m := NewMoneyINRFromFloat(10.005)
	assert.Equal(t, "10.01", m.Round(2).StringFixed(2))
}

func TestMoneyComparisons(t *testing.T) {
	a := NewMoneyINRFromFloat(100)
	b := NewMoneyINRFromFloat(200)

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)

	gte, err := b.GreaterThanOrEqual(a)
	require.NoError(t, err)
	assert.True(t, gte)

	assert.True(t, a.Equals(NewMoneyINRFromFloat(100)))
	assert.False(t, a.Equals(b))
}

func TestMoneyString(t *testing.T) {
	m := NewMoneyINRFromFloat(590)
	assert.Equal(t, "590.00 INR", m.String())
}

func TestMoneyJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		m := NewMoneyINRFromFloat(123.45)
		data, err := json.Marshal(m)
		require.NoError(t, err)

		var decoded Money
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, m.Equals(decoded))
	})

	t.Run("missing currency defaults to INR", func(t *testing.T) {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(`{"amount":"10"}`), &m))
		assert.Equal(t, INR, m.Currency())
	})
}
