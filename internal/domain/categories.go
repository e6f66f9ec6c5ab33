package domain

import "fmt"

// PIICategory identifies a kind of personal information.
type PIICategory string

const (
	PIIEmail          PIICategory = "email"
	PIIPhone          PIICategory = "phone"
	PIICreditCard     PIICategory = "credit_card"
	PIISSN            PIICategory = "ssn"
	PIIDateOfBirth    PIICategory = "date_of_birth"
	PIIDriversLicense PIICategory = "drivers_license"
	PIIStreet         PIICategory = "street"
	PIICity           PIICategory = "city"
	PIIBuilding       PIICategory = "building"
	PIIZipCode        PIICategory = "zip_code"
	PIIGivenName      PIICategory = "given_name"
	PIISurname        PIICategory = "surname"
	PIIUsername       PIICategory = "username"
	PIIPassword       PIICategory = "password"
	PIIAccountNumber  PIICategory = "account_number"
	PIIIDCard         PIICategory = "id_card"
	PIITaxNumber      PIICategory = "tax_number"
)

// ContentCategory is a harmful-content classification label.
type ContentCategory string

const (
	ContentSafe           ContentCategory = "safe"
	ContentSexual         ContentCategory = "sexual"
	ContentHate           ContentCategory = "hate"
	ContentViolence       ContentCategory = "violence"
	ContentHarassment     ContentCategory = "harassment"
	ContentSexualHate     ContentCategory = "sexual_hate"
	ContentSevereSexual   ContentCategory = "severe_sexual"
	ContentSevereHate     ContentCategory = "severe_hate"
	ContentSevereViolence ContentCategory = "severe_violence"
)

// ContentCategories lists every known label in enumeration order.
// The order matters: when two labels tie on score, the earlier one wins,
// so safe is listed first to bias exact ties toward no action.
var ContentCategories = []ContentCategory{
	ContentSafe,
	ContentSexual,
	ContentHate,
	ContentViolence,
	ContentHarassment,
	ContentSexualHate,
	ContentSevereSexual,
	ContentSevereHate,
	ContentSevereViolence,
}

// IsSevere reports whether the category requires more than a warning.
func (c ContentCategory) IsSevere() bool {
	switch c {
	case ContentSevereSexual, ContentSevereHate, ContentSevereViolence:
		return true
	}
	return false
}

// Action is an automated moderation action.
type Action string

const (
	ActionWarn             Action = "warn"
	ActionRemove           Action = "remove_from_conversation"
	ActionBanPendingReview Action = "ban_pending_review"
)

// ParseAction converts a label to an Action, rejecting unknown values.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionWarn, ActionRemove, ActionBanPendingReview:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}
