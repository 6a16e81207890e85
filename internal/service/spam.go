package service

// IsSpam reports whether the honeypot field was filled in. Humans never see
// the field, so any value at all marks the submission as automated. The gate
// runs only on payloads that already passed schema validation.
func IsSpam(honeypot string) bool {
	return honeypot != ""
}
