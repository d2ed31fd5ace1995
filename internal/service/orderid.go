package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderID returns an id of the form ORD{YY}{MM}{DD}-{NNN} with a
// random three-digit suffix. The suffix is small enough to collide on a busy
// day, so order creation retries with a fresh id on a primary-key conflict.
func GenerateOrderID(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	suffix := int64(0)
	if err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("ORD%s-%03d", now.Format("060102"), suffix)
}
