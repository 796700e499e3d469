package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field validation is table-driven: each profile is an ordered list of
// per-field rule chains, and each rule pairs a validator.v10 tag with the
// message returned to the client. Handlers feed the profile the raw body
// fields and reject the request with every accumulated failure at once,
// so a client can display all problems in a single response.

var v = validator.New()

// Rule is a single check on one field. Tag is a go-playground/validator
// tag evaluated against the field value.
type Rule struct {
	Tag     string
	Message string
}

// FieldRules is an ordered rule chain for one named body field.
// Trim strips surrounding whitespace before the chain runs.
type FieldRules struct {
	Field string
	Trim  bool
	Rules []Rule
}

// Profile is a named rule table. When Optional is set, fields absent from
// the request body are skipped entirely; present fields still run their
// full chain.
type Profile struct {
	Name     string
	Optional bool
	Fields   []FieldRules
}

// FieldError is one accumulated validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var firstNameRules = []Rule{
	{Tag: "required", Message: "First name is required"},
	{Tag: "alpha", Message: "First name must contain only letters"},
}

var lastNameRules = []Rule{
	{Tag: "required", Message: "Last name is required"},
	{Tag: "alpha", Message: "Last name must contain only letters"},
}

var emailRules = []Rule{
	{Tag: "required", Message: "Email cannot be empty"},
	{Tag: "email", Message: "Invalid email address"},
}

var passwordRules = []Rule{
	{Tag: "required", Message: "Password cannot be empty"},
	{Tag: "min=6", Message: "Password must be at least 6 characters"},
}

// Register requires and fully validates every registration field.
var Register = Profile{
	Name: "register",
	Fields: []FieldRules{
		{Field: "firstName", Trim: true, Rules: firstNameRules},
		{Field: "lastName", Trim: true, Rules: lastNameRules},
		{Field: "email", Trim: true, Rules: emailRules},
		{Field: "password", Rules: passwordRules},
	},
}

// Login validates only the credential fields.
var Login = Profile{
	Name: "login",
	Fields: []FieldRules{
		{Field: "email", Trim: true, Rules: emailRules},
		{Field: "password", Rules: passwordRules},
	},
}

// UpdateProfile runs the registration rules over whichever body fields are
// present, including email and password even though only the name fields are
// applied. The "name" alias follows the firstName chain.
var UpdateProfile = Profile{
	Name:     "update",
	Optional: true,
	Fields: []FieldRules{
		{Field: "firstName", Trim: true, Rules: firstNameRules},
		{Field: "lastName", Trim: true, Rules: lastNameRules},
		{Field: "name", Trim: true, Rules: firstNameRules},
		{Field: "email", Trim: true, Rules: emailRules},
		{Field: "password", Rules: passwordRules},
	},
}

// Apply runs a profile against the body fields and returns every failure in
// table order. fields holds only the keys present in the request body; an
// empty result means the body passed.
func Apply(p Profile, fields map[string]string) []FieldError {
	var failures []FieldError
	for _, fr := range p.Fields {
		val, present := fields[fr.Field]
		if !present {
			if p.Optional {
				continue
			}
			val = ""
		}
		if fr.Trim {
			val = strings.TrimSpace(val)
		}
		for _, rule := range fr.Rules {
			if err := v.Var(val, rule.Tag); err != nil {
				failures = append(failures, FieldError{Field: fr.Field, Message: rule.Message})
			}
		}
	}
	return failures
}
