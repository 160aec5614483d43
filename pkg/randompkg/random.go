// Package randompkg provides functionality for generating random application items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/cbk-gemmy/finance-platform/pkg/idpkg"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// Username generates a random username.
func Username() string {
	return String(6)
}

// UserID generates a random user id.
func UserID() string {
	return idpkg.New()
}

// AccountName generates a random human looking account name.
func AccountName() string {
	kinds := []string{"Checking", "Savings", "Credit Card", "Brokerage", "Cash"}
	return fmt.Sprintf("%s %s", kinds[Intn(len(kinds))], String(4))
}

// PlaidID generates a random external link id.
func PlaidID() string {
	return "plaid-" + String(12)
}

// Email generates a random email.
func Email() string {
	return fmt.Sprintf("%s@email.com", String(10))
}
