package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

// EncodeOffsetToken creates a token pointing at offset within a listing
// ordered by sortKey. The sort key is embedded so a token cannot be replayed
// against a different ordering.
func EncodeOffsetToken(sortKey string, offset int) string {
	return EncodeMultiFieldToken(sortKey, strconv.Itoa(offset))
}

// DecodeOffsetToken returns the offset of a token created by EncodeOffsetToken
// for the same sortKey.
func DecodeOffsetToken(token string, sortKey string) (int, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	if parts[0] != sortKey {
		return 0, fmt.Errorf("pagination token was issued for sort %q, not %q", parts[0], sortKey)
	}
	offset, err := strconv.Atoi(parts[1])
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid pagination token format (offset)")
	}
	return offset, nil
}
