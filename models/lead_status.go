package models

// LeadStatus labels a lead's stage in the sales pipeline. Any status can be
// assigned from any other; staff use it as a label, not a locked sequence.
type LeadStatus string

const (
	StatusPotentialLead     LeadStatus = "POTENTIAL_LEAD"
	StatusFollowUpEmailSent LeadStatus = "FOLLOW_UP_EMAIL_SENT"
	StatusDiscoveryCall     LeadStatus = "DISCOVERY_CALL_BOOKED"
	StatusSuccessfulClosure LeadStatus = "SUCCESSFUL_CLOSURE"
	StatusFailedClosure     LeadStatus = "FAILED_CLOSURE"
)

// AllLeadStatuses lists every recognized status, in pipeline order.
var AllLeadStatuses = []LeadStatus{
	StatusPotentialLead,
	StatusFollowUpEmailSent,
	StatusDiscoveryCall,
	StatusSuccessfulClosure,
	StatusFailedClosure,
}

// ValidLeadStatus reports whether s is a recognized status value.
func ValidLeadStatus(s string) bool {
	for _, status := range AllLeadStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}
