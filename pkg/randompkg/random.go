// Package randompkg provides functionality for generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"
	digits   = "0123456789"
)

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// IntBetween generates a random integer between min and max.
func IntBetween(min, max int) int64 {
	return int64(min) + Intn(max-min+1)
}

// FloatBetween generates a random decimal number between min and max rounded to 2 decimals.
func FloatBetween(min, max float64) float64 {
	numInRange := min + Float64()*(max-min)
	return math.Floor(numInRange*100) / 100
}

func fromAlphabet(chars string, n int) string {
	var sb strings.Builder

	k := len(chars)

	for i := 0; i < n; i++ {
		c := chars[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// String generates a random string of length n.
func String(n int) string {
	return fromAlphabet(alphabet, n)
}

// Owner generates a random owner name.
func Owner() string {
	return String(6)
}

// Role generates a random user role.
func Role() string {
	roles := []string{"member", "admin"}
	return roles[Intn(len(roles))]
}

// AccountCode generates a random numeric chart of accounts code.
func AccountCode() string {
	return fromAlphabet(digits, 8)
}

// AccountType generates a random account type.
func AccountType() string {
	types := []string{"Asset", "Liability", "Revenue", "Expense"}
	return types[Intn(len(types))]
}

// MoneyAmountBetween generates a random amount of money between min and max rounded to 2 decimals.
func MoneyAmountBetween(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(FloatBetween(min, max)).Round(2)
}

// Email generates a random email.
func Email() string {
	return fmt.Sprintf("%s@email.com", String(10))
}
