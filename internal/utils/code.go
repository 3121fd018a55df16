package utils

import (
    "strings"
    "time"

    "github.com/google/uuid"
)

// NewCustomerCode builds the unique customer code assigned at profile
// creation: the first three characters of the seed (the email local part),
// the current date as YYMMDD, and eight characters of random entropy,
// e.g. "joh-250823-1f4a9c02".
func NewCustomerCode(seed string) string {
    s := strings.ToLower(strings.TrimSpace(seed))
    if i := strings.IndexByte(s, '@'); i >= 0 {
        s = s[:i]
    }
    if len(s) > 3 {
        s = s[:3]
    }
    if s == "" {
        s = "cst"
    }
    return s + "-" + time.Now().UTC().Format("060102") + "-" + uuid.NewString()[:8]
}
