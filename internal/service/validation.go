package service

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9()\s./-]{6,19}$`)
	idnaProfile  = idna.Lookup
)

const (
	nameMin    = 2
	nameMax    = 50
	companyMin = 2
	companyMax = 100
	messageMin = 10
	messageMax = 1000
)

// serviceKeys enumerates the agency offerings the contact form's multi-select
// can carry, in the order the site displays them.
var serviceKeys = []string{
	"rpAndEvent",
	"webDevelopment",
	"branding",
	"socialMedia",
	"seoSea",
	"contentCreation",
	"graphicDesign",
	"mediaBuying",
}

// ServiceKeys returns the catalogue of selectable service identifiers.
func ServiceKeys() []string {
	return slices.Clone(serviceKeys)
}

// FieldError reports a single constraint violation on a submitted field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ContactForm holds the validated, defaulted payload of the full contact form.
// Website is the honeypot field; it is carried through untouched so the spam
// gate can inspect it after validation.
type ContactForm struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	CompanyName string
	Services    []string
	Message     string
	Website     string
}

// StripForm holds the validated payload of the condensed homepage lead form.
type StripForm struct {
	FirstName   string
	LastName    string
	CompanyName string
	Location    string
	Phone       string
	Email       string
	Website     string
}

// ValidateContactForm checks an untyped JSON payload against the contact form
// schema. It never panics: missing keys, wrong types and bound violations all
// come back as field errors. An empty error slice means the form is valid and
// fully defaulted (absent services become an empty list, absent optional
// strings become empty strings).
func ValidateContactForm(payload map[string]any) (ContactForm, []FieldError) {
	var form ContactForm
	var errs []FieldError

	form.FirstName = requiredBounded(payload, "firstName", nameMin, nameMax, &errs)
	form.LastName = requiredBounded(payload, "lastName", nameMin, nameMax, &errs)
	form.Email = requiredEmail(payload, "email", &errs)
	form.Phone = requiredPhone(payload, "phone", &errs)
	form.CompanyName = optionalBounded(payload, "companyName", companyMin, companyMax, &errs)
	form.Services = serviceSelection(payload, "services", &errs)
	form.Message = optionalBounded(payload, "message", messageMin, messageMax, &errs)
	form.Website = honeypotValue(payload, "website", &errs)

	if len(errs) > 0 {
		return ContactForm{}, errs
	}
	return form, nil
}

// ValidateStripForm checks the condensed lead form. Every business field is
// required here; only the honeypot may be absent.
func ValidateStripForm(payload map[string]any) (StripForm, []FieldError) {
	var form StripForm
	var errs []FieldError

	form.FirstName = requiredBounded(payload, "firstName", nameMin, nameMax, &errs)
	form.LastName = requiredBounded(payload, "lastName", nameMin, nameMax, &errs)
	form.CompanyName = requiredBounded(payload, "companyName", companyMin, companyMax, &errs)
	form.Location = requiredBounded(payload, "location", companyMin, companyMax, &errs)
	form.Phone = requiredPhone(payload, "phone", &errs)
	form.Email = requiredEmail(payload, "email", &errs)
	form.Website = honeypotValue(payload, "website", &errs)

	if len(errs) > 0 {
		return StripForm{}, errs
	}
	return form, nil
}

// stringValue extracts a string field. A present non-string value records a
// field error; absent keys come back as the empty string with typeOK still
// true so the bound checks produce the user-facing message.
func stringValue(payload map[string]any, key string, errs *[]FieldError) (value string, typeOK bool) {
	raw, ok := payload[key]
	if !ok || raw == nil {
		return "", true
	}
	str, ok := raw.(string)
	if !ok {
		*errs = append(*errs, FieldError{Field: key, Message: "must be a string"})
		return "", false
	}
	return str, true
}

func requiredBounded(payload map[string]any, key string, min, max int, errs *[]FieldError) string {
	value, typeOK := stringValue(payload, key, errs)
	if !typeOK {
		return ""
	}
	length := len([]rune(value))
	if length < min || length > max {
		*errs = append(*errs, FieldError{Field: key, Message: fmt.Sprintf("must be between %d and %d characters", min, max)})
		return ""
	}
	return value
}

// optionalBounded accepts an absent or empty value and enforces the length
// bounds otherwise. Absent values default to the empty string.
func optionalBounded(payload map[string]any, key string, min, max int, errs *[]FieldError) string {
	value, typeOK := stringValue(payload, key, errs)
	if !typeOK || value == "" {
		return ""
	}
	length := len([]rune(value))
	if length < min || length > max {
		*errs = append(*errs, FieldError{Field: key, Message: fmt.Sprintf("must be empty or between %d and %d characters", min, max)})
		return ""
	}
	return value
}

func requiredEmail(payload map[string]any, key string, errs *[]FieldError) string {
	value, typeOK := stringValue(payload, key, errs)
	if !typeOK {
		return ""
	}
	if !isValidEmail(value) {
		*errs = append(*errs, FieldError{Field: key, Message: "must be a valid email address"})
		return ""
	}
	return value
}

func requiredPhone(payload map[string]any, key string, errs *[]FieldError) string {
	value, typeOK := stringValue(payload, key, errs)
	if !typeOK {
		return ""
	}
	if !isValidPhone(value) {
		*errs = append(*errs, FieldError{Field: key, Message: "must be a valid phone number"})
		return ""
	}
	return value
}

// serviceSelection validates the multi-select against the catalogue. The
// schema keeps order and does not deduplicate; an absent field defaults to an
// empty list.
func serviceSelection(payload map[string]any, key string, errs *[]FieldError) []string {
	raw, ok := payload[key]
	if !ok || raw == nil {
		return []string{}
	}
	items, ok := raw.([]any)
	if !ok {
		*errs = append(*errs, FieldError{Field: key, Message: "must be a list of service identifiers"})
		return []string{}
	}
	selected := make([]string, 0, len(items))
	for _, item := range items {
		name, ok := item.(string)
		if !ok || !slices.Contains(serviceKeys, name) {
			*errs = append(*errs, FieldError{Field: key, Message: "contains an unknown service identifier"})
			return []string{}
		}
		selected = append(selected, name)
	}
	return selected
}

// honeypotValue only type-checks the field; emptiness is the spam gate's
// concern, not the schema's.
func honeypotValue(payload map[string]any, key string, errs *[]FieldError) string {
	value, _ := stringValue(payload, key, errs)
	return value
}

func isValidEmail(email string) bool {
	lowered := strings.ToLower(email)
	if !emailPattern.MatchString(lowered) {
		return false
	}
	domain := lowered[strings.LastIndex(lowered, "@")+1:]
	if !isDomainValid(domain) {
		return false
	}
	ascii, err := idnaProfile.ToASCII(domain)
	return err == nil && ascii != ""
}

// isValidPhone applies a deliberately loose international pattern: the right
// character set and a plausible digit count. Numbers written with a country
// prefix additionally have to pass libphonenumber's possible-length check.
func isValidPhone(phone string) bool {
	if !phonePattern.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 7 || digits > 15 {
		return false
	}
	if strings.HasPrefix(phone, "+") {
		number, err := phonenumbers.Parse(phone, "")
		if err != nil || !phonenumbers.IsPossibleNumber(number) {
			return false
		}
	}
	return true
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
