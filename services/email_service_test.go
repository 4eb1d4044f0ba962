package services

import (
	"errors"
	"strings"
	"testing"

	"cosmobits-leads-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubMailers(t *testing.T, plain func(to []string, subject, html string) error, withReply func(to []string, replyTo, subject, html string) error) {
	t.Helper()
	prevPlain, prevReply := sendMailFunc, sendMailWithReplyToFunc
	sendMailFunc = plain
	sendMailWithReplyToFunc = withReply
	t.Cleanup(func() {
		sendMailFunc = prevPlain
		sendMailWithReplyToFunc = prevReply
	})
}

func testLead() *models.ContactSubmission {
	return &models.ContactSubmission{
		ID:            "lead-1",
		Name:          "Jane Doe",
		Email:         "jane@ex.com",
		Service:       "General Inquiry",
		Message:       "Hello there,\nneed help.",
		CurrentStatus: models.StatusPotentialLead,
	}
}

func TestSendIntakeNotificationsHappyPath(t *testing.T) {
	t.Setenv("CONTACT_EMAIL", "hello@cosmobits.tech")

	var order []string
	stubMailers(t,
		func(to []string, subject, html string) error {
			order = append(order, "confirmation")
			assert.Equal(t, []string{"jane@ex.com"}, to)
			assert.Contains(t, subject, "Thank you")
			assert.Contains(t, html, "General Inquiry")
			return nil
		},
		func(to []string, replyTo, subject, html string) error {
			order = append(order, "admin-alert")
			assert.Equal(t, []string{"hello@cosmobits.tech"}, to)
			assert.Equal(t, "jane@ex.com", replyTo)
			assert.Equal(t, "New Contact: General Inquiry - Jane Doe", subject)
			assert.Contains(t, html, "Jane Doe")
			return nil
		},
	)

	sent, errMsg := SendIntakeNotifications(testLead())
	assert.True(t, sent)
	assert.Empty(t, errMsg)
	// The admin alert goes first; the confirmation only follows a successful alert.
	require.Equal(t, []string{"admin-alert", "confirmation"}, order)
}

func TestSendIntakeNotificationsStopsAfterAlertFailure(t *testing.T) {
	confirmationSent := false
	stubMailers(t,
		func(to []string, subject, html string) error {
			confirmationSent = true
			return nil
		},
		func(to []string, replyTo, subject, html string) error {
			return errors.New("provider rejected")
		},
	)

	sent, errMsg := SendIntakeNotifications(testLead())
	assert.False(t, sent)
	assert.Equal(t, "provider rejected", errMsg)
	assert.False(t, confirmationSent)
}

func TestSendIntakeNotificationsReportsConfirmationFailure(t *testing.T) {
	stubMailers(t,
		func(to []string, subject, html string) error {
			return errors.New("mailbox full")
		},
		func(to []string, replyTo, subject, html string) error {
			return nil
		},
	)

	sent, errMsg := SendIntakeNotifications(testLead())
	assert.False(t, sent)
	assert.Equal(t, "mailbox full", errMsg)
}

func TestSendLeadEmailRendersMessage(t *testing.T) {
	var gotSubject, gotHTML string
	stubMailers(t,
		func(to []string, subject, html string) error {
			assert.Equal(t, []string{"jane@ex.com"}, to)
			gotSubject, gotHTML = subject, html
			return nil
		},
		func(to []string, replyTo, subject, html string) error {
			t.Fatal("ad-hoc emails carry no reply-to")
			return nil
		},
	)

	err := SendLeadEmail(testLead(), "Following up", "First line.\nSecond <line>.")
	require.NoError(t, err)

	assert.Equal(t, "Following up", gotSubject)
	assert.Contains(t, gotHTML, "Hi Jane Doe")
	assert.Contains(t, gotHTML, "First line.<br />Second &lt;line&gt;.")
	assert.True(t, strings.Contains(gotHTML, "CosmoBits Technologies"))
}
