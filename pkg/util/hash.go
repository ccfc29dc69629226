package util

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// HashRepairKey derives a stable document ID from a repair number and client,
// so re-imported tickets land on the same document.
func HashRepairKey(repairNumber, clientName string) string {
	builder := strings.Builder{}
	builder.WriteString(strings.TrimSpace(strings.ToLower(repairNumber)))
	builder.WriteString("|")
	builder.WriteString(strings.TrimSpace(strings.ToLower(clientName)))
	return hashString(builder.String())
}

func hashString(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
