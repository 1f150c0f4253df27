package mail

import (
	"context"

	"github.com/horoskooppi/checkout-manager/internal/dependency"
	"github.com/horoskooppi/checkout-manager/internal/entity"
)

const (
	WaitlistConfirmation = "waitlist_confirmation.gohtml"
)

// Define a map for template names to subjects
var templateSubjects = map[string]string{
	WaitlistConfirmation: "You're on the Horoskooppi waiting list",
}

// SendWaitlistConfirmation queues a confirmation email for a new
// waitlist member.
func (m *Mailer) SendWaitlistConfirmation(ctx context.Context, rep dependency.Repository, to string, plan entity.PlanName) error {
	ser, err := m.buildSendEmailRequest(to, WaitlistConfirmation, struct {
		Email string
		Plan  string
	}{
		Email: to,
		Plan:  plan.String(),
	})
	if err != nil {
		return err
	}
	return m.sendWithInsert(ctx, rep, ser)
}
