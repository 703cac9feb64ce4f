package utils

import "strconv"

// Int64ToStr converts an int64 to its decimal string form.
func Int64ToStr(num int64) string {
	return strconv.FormatInt(num, 10)
}

// StrToInt64 parses a decimal string as an int64. Handlers use it for path
// and query parameters, so the raw strconv error is enough context.
func StrToInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
