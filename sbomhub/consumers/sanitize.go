package consumers

import "strings"

var usernameReplacer = strings.NewReplacer(".", "_", "+", "_")

// derives the gateway username from an email: the lowercased local part
// with "." and "+" replaced by "_"
func Username(email string) string {
	local := strings.ToLower(strings.TrimSpace(email))

	if i := strings.Index(local, "@"); i >= 0 {
		local = local[:i]
	}

	return usernameReplacer.Replace(local)
}
