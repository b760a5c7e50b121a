// Package rules models authoring overrides ("custom fields") for the fill
// engine and resolves them against control fingerprints.
//
// Rules live in ordered tiers. The profile tier is scanned first, then the
// global tier, then a built-in defaults tier that classifies common field
// names (first name, email, phone, ...) without any authoring. Within a
// tier, earlier rules win.
package rules

// Type identifies the synthesis strategy a rule selects.
type Type string

const (
	TypeText           Type = "text"
	TypeUsername       Type = "username"
	TypeFirstName      Type = "first-name"
	TypeLastName       Type = "last-name"
	TypeFullName       Type = "full-name"
	TypeOrganization   Type = "organization"
	TypeEmail          Type = "email"
	TypeDate           Type = "date"
	TypeNumber         Type = "number"
	TypeTelephone      Type = "telephone"
	TypeRegex          Type = "regex"
	TypeAlphanumeric   Type = "alphanumeric"
	TypeRandomizedList Type = "randomized-list"
)

// Rule is one authoring override. Any of its Match patterns, interpreted as
// a case-insensitive regular expression, matching a substring of a control's
// fingerprint makes the rule apply.
type Rule struct {
	ID       string   `yaml:"id,omitempty" json:"id,omitempty"`
	Name     string   `yaml:"name,omitempty" json:"name,omitempty"`
	Match    []string `yaml:"match" json:"match"`
	Type     Type     `yaml:"type" json:"type"`
	Template string   `yaml:"template,omitempty" json:"template,omitempty"`
	Min      *int     `yaml:"min,omitempty" json:"min,omitempty"`
	Max      *int     `yaml:"max,omitempty" json:"max,omitempty"`
	MinDate  string   `yaml:"min_date,omitempty" json:"min_date,omitempty"`
	MaxDate  string   `yaml:"max_date,omitempty" json:"max_date,omitempty"`
	List     []string `yaml:"list,omitempty" json:"list,omitempty"`
}

// Tier names the two stored rule scopes.
type Tier string

const (
	TierProfile Tier = "profile"
	TierGlobal  Tier = "global"
)

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t == TierProfile || t == TierGlobal
}

// Defaults returns the built-in lowest-precedence rules. They classify
// common field names so a bare engine produces sensible values without any
// configured rules. Order is significant: more specific name patterns come
// before the catch-alls they would otherwise shadow.
func Defaults() []Rule {
	return []Rule{
		{Name: "username", Match: []string{"userid", "user.?name", `\blogin\b`, "nick.?name"}, Type: TypeUsername},
		{Name: "first name", Match: []string{"first.?name", `\bfname\b`, "given.?name", "forename"}, Type: TypeFirstName},
		{Name: "last name", Match: []string{"last.?name", `\blname\b`, "surname", "family.?name"}, Type: TypeLastName},
		{Name: "full name", Match: []string{"full.?name", "your.?name", "contact.?name", `^name$`}, Type: TypeFullName},
		{Name: "email", Match: []string{"e.?mail", "courriel"}, Type: TypeEmail},
		{Name: "organization", Match: []string{"organi[sz]ation", "company", "employer"}, Type: TypeOrganization},
		{Name: "telephone", Match: []string{"phone", `\btel\b`, "mobile", `\bcell\b`, `\bfax\b`}, Type: TypeTelephone},
		{Name: "zip code", Match: []string{"zip.?code", "post.?code", "postal"}, Type: TypeAlphanumeric, Template: "NNNNN"},
	}
}
