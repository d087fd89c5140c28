package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"estate-builder/models"
	"estate-builder/utils"
)

// emailRegexp checks for a local@domain.tld shape. A miss flags the record
// but never rejects it — malformed emails are kept for inspection.
var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Scraped exports name their columns inconsistently; each canonical field
// is resolved from its aliases, first non-empty wins.
var (
	nameAliases     = []string{"name", "businessName", "business_name", "title", "isim", "unvan"}
	phoneAliases    = []string{"phone", "phoneNumber", "phone_number", "telefon", "tel", "gsm", "mobile"}
	emailAliases    = []string{"email", "mail", "eposta", "e_posta"}
	addressAliases  = []string{"address", "adres", "location"}
	websiteAliases  = []string{"website", "web", "site", "url"}
	ratingAliases   = []string{"rating", "puan", "stars"}
	reviewsAliases  = []string{"reviews", "reviewCount", "review_count", "yorum"}
	categoryAliases = []string{"category", "kategori", "type"}
)

// minPhoneDigits is the floor below which a normalised number is unusable.
const minPhoneDigits = 10

// Cleaner transforms raw scraped contact records into deduplicated,
// validated partitions in a single order-preserving pass.
type Cleaner struct {
	countryCode string
	logger      *utils.Logger
}

// NewCleaner creates a Cleaner normalising phones against the given bare
// country code (e.g. "90").
func NewCleaner(countryCode string, logger *utils.Logger) *Cleaner {
	return &Cleaner{countryCode: countryCode, logger: logger}
}

// Clean partitions raw records into valid, duplicates and invalid. Every
// input record lands in exactly one partition; for records sharing a
// composite key the first occurrence wins and later ones carry a
// back-reference to it. Counters are accumulated during the same pass.
func (c *Cleaner) Clean(raw []models.RawContact) *models.CleaningResult {
	result := &models.CleaningResult{
		Valid:      make([]*models.Contact, 0, len(raw)),
		Duplicates: []*models.DuplicateRecord{},
		Invalid:    []*models.InvalidRecord{},
	}
	seen := make(map[string]*models.Contact)

	for _, r := range raw {
		result.Stats.Total++

		phone, ok := c.NormalisePhone(resolveField(r, phoneAliases))
		if !ok {
			result.Stats.NoPhone++
			result.Invalid = append(result.Invalid, &models.InvalidRecord{
				Reason: "No valid phone",
				Record: r,
			})
			continue
		}

		name := normaliseName(resolveField(r, nameAliases))
		email := strings.TrimSpace(resolveField(r, emailAliases))
		if email != "" && !emailRegexp.MatchString(email) {
			result.Stats.InvalidEmail++
			c.logger.Debug("[cleaner] Malformed email kept for inspection: %q", email)
		}

		key := strings.ToLower(phone + "_" + email + "_" + name)
		if original, dup := seen[key]; dup {
			result.Stats.Duplicates++
			result.Duplicates = append(result.Duplicates, &models.DuplicateRecord{
				Key:       key,
				Original:  original,
				Duplicate: r,
			})
			continue
		}

		contact := &models.Contact{
			Name:     name,
			Phone:    phone,
			Address:  normaliseName(resolveField(r, addressAliases)),
			Website:  strings.TrimSpace(resolveField(r, websiteAliases)),
			Rating:   resolveFloat(r, ratingAliases),
			Reviews:  resolveInt(r, reviewsAliases),
			Category: strings.TrimSpace(resolveField(r, categoryAliases)),
			Raw:      r,
		}
		if email != "" {
			contact.Email = &email
		}

		seen[key] = contact
		result.Valid = append(result.Valid, contact)
		result.Stats.Valid++
	}

	c.logger.Info("[cleaner] Cleaned %d records → %d valid, %d duplicates, %d invalid",
		result.Stats.Total, result.Stats.Valid, result.Stats.Duplicates, result.Stats.NoPhone)
	return result
}

// NormalisePhone strips formatting and rewrites the number in
// +<countryCode> form. The second return is false when the result has fewer
// than ten digits or nothing survives the stripping. Already-normalised
// numbers pass through unchanged.
func (c *Cleaner) NormalisePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) || r == '+' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return "", false
	}

	switch {
	case strings.HasPrefix(s, "0"):
		s = "+" + c.countryCode + s[1:]
	case strings.HasPrefix(s, c.countryCode):
		s = "+" + s
	case !strings.HasPrefix(s, "+"):
		s = "+" + c.countryCode + s
	}

	if digitCount(s) < minPhoneDigits {
		return "", false
	}
	return s, true
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// normaliseName trims and collapses internal whitespace runs to one space.
func normaliseName(s string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

// resolveField returns the first non-empty alias value, stringified.
func resolveField(r models.RawContact, aliases []string) string {
	for _, alias := range aliases {
		v, ok := r[alias]
		if !ok || v == nil {
			continue
		}
		s := stringify(v)
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func resolveFloat(r models.RawContact, aliases []string) *float64 {
	s := strings.TrimSpace(resolveField(r, aliases))
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func resolveInt(r models.RawContact, aliases []string) *int {
	s := strings.TrimSpace(resolveField(r, aliases))
	s = strings.Trim(s, "()")
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(s, ".", ""))
	if err != nil {
		return nil
	}
	return &n
}

// stringify renders a raw JSON value as text. Numbers come out of
// encoding/json as float64 and must not pick up an exponent.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
