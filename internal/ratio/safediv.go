package ratio

import "github.com/shopspring/decimal"

// Undefined is the value of a ratio whose inputs do not support a quotient.
var Undefined = decimal.NullDecimal{}

var daysPerYear = decimal.NewFromInt(365)

// SafeDiv returns num/den, or Undefined when den is zero or either side is
// not a number.
func SafeDiv(num, den decimal.NullDecimal) decimal.NullDecimal {
	if !num.Valid || !den.Valid || den.Decimal.IsZero() {
		return Undefined
	}
	return defined(num.Decimal.Div(den.Decimal))
}

func defined(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// add returns a+b, undefined if either is.
func add(a, b decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid || !b.Valid {
		return Undefined
	}
	return defined(a.Decimal.Add(b.Decimal))
}

func sub(a, b decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid || !b.Valid {
		return Undefined
	}
	return defined(a.Decimal.Sub(b.Decimal))
}

func mul(a decimal.NullDecimal, b decimal.Decimal) decimal.NullDecimal {
	if !a.Valid {
		return Undefined
	}
	return defined(a.Decimal.Mul(b))
}

// orZero collapses an undefined value to zero.
func orZero(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}

// truthy reports whether v is a valid non-zero number.
func truthy(v decimal.NullDecimal) bool {
	return v.Valid && !v.Decimal.IsZero()
}
