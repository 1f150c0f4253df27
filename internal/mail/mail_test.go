package mail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(t *testing.T) *Mailer {
	m, err := New(&Config{
		APIKey:         "test-key",
		FromEmail:      "stars@horoskooppi.example",
		FromName:       "Horoskooppi",
		WorkerInterval: time.Minute,
	}, nil)
	require.NoError(t, err)
	return m.(*Mailer)
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(&Config{FromEmail: "a@b.co", FromName: "x"}, nil)
	assert.Error(t, err)
}

func TestBuildWaitlistConfirmation(t *testing.T) {
	m := newTestMailer(t)

	ser, err := m.buildSendEmailRequest("luna@example.com", WaitlistConfirmation, struct {
		Email string
		Plan  string
	}{
		Email: "luna@example.com",
		Plan:  "cosmic",
	})
	require.NoError(t, err)

	assert.Equal(t, "luna@example.com", ser.Recipient)
	assert.Equal(t, templateSubjects[WaitlistConfirmation], ser.Subject)
	assert.Contains(t, ser.HTML, "luna@example.com")
	assert.Contains(t, ser.HTML, "cosmic")
}

func TestBuildSendEmailRequest_UnknownTemplate(t *testing.T) {
	m := newTestMailer(t)

	_, err := m.buildSendEmailRequest("a@b.co", "missing.gohtml", nil)
	assert.Error(t, err)
}
