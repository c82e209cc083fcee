package mailer

import (
	"context"
	"errors"
	"testing"

	"trailhub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAdminRegistry struct {
	mock.Mock
}

func (m *MockAdminRegistry) Exists(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(msg *Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func smtpConfig() config.SMTP {
	return config.SMTP{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "mailer",
		Password: "secret",
		From:     "noreply@trailhub.io",
	}
}

func approvalRequest() ApprovalEmailRequest {
	return ApprovalEmailRequest{
		OrganizerEmail:   "lena@trailco.my",
		OrganizerName:    "Lena",
		OrganizationName: "TrailCo",
	}
}

func TestSendApprovalEmail_Success(t *testing.T) {
	admins := new(MockAdminRegistry)
	transport := new(MockTransport)
	admins.On("Exists", mock.Anything, "admin-1").Return(true, nil)

	var sent *Message
	transport.On("Send", mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(0).(*Message)
	}).Return(nil)

	svc := NewService(smtpConfig(), admins, transport)
	msg, err := svc.SendApprovalEmail(context.Background(), "admin-1", approvalRequest())

	assert.NoError(t, err)
	assert.Equal(t, "Approval email sent successfully", msg)
	if assert.NotNil(t, sent) {
		assert.Equal(t, "lena@trailco.my", sent.To)
		assert.Equal(t, "noreply@trailhub.io", sent.From)
		assert.Equal(t, approvalSubject, sent.Subject)
		assert.Contains(t, sent.HTML, "Lena")
		assert.Contains(t, sent.HTML, "TrailCo")
		assert.Contains(t, sent.Text, "Lena")
	}
}

func TestSendApprovalEmail_Unauthenticated(t *testing.T) {
	svc := NewService(smtpConfig(), new(MockAdminRegistry), new(MockTransport))

	_, err := svc.SendApprovalEmail(context.Background(), "", approvalRequest())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSendApprovalEmail_PermissionDenied(t *testing.T) {
	admins := new(MockAdminRegistry)
	admins.On("Exists", mock.Anything, "user-1").Return(false, nil)
	transport := new(MockTransport)

	svc := NewService(smtpConfig(), admins, transport)
	_, err := svc.SendApprovalEmail(context.Background(), "user-1", approvalRequest())

	assert.ErrorIs(t, err, ErrPermissionDenied)
	transport.AssertNotCalled(t, "Send", mock.Anything)
}

func TestSendApprovalEmail_MissingFields(t *testing.T) {
	admins := new(MockAdminRegistry)
	admins.On("Exists", mock.Anything, "admin-1").Return(true, nil)

	svc := NewService(smtpConfig(), admins, new(MockTransport))

	req := approvalRequest()
	req.OrganizerEmail = ""
	_, err := svc.SendApprovalEmail(context.Background(), "admin-1", req)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	req = approvalRequest()
	req.OrganizerName = ""
	_, err = svc.SendApprovalEmail(context.Background(), "admin-1", req)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSendApprovalEmail_NotConfigured(t *testing.T) {
	admins := new(MockAdminRegistry)
	admins.On("Exists", mock.Anything, "admin-1").Return(true, nil)

	// auth and validation run before the config check
	svc := NewService(config.SMTP{}, admins, new(MockTransport))
	_, err := svc.SendApprovalEmail(context.Background(), "admin-1", approvalRequest())

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSendApprovalEmail_TransportFailure(t *testing.T) {
	admins := new(MockAdminRegistry)
	admins.On("Exists", mock.Anything, "admin-1").Return(true, nil)
	transport := new(MockTransport)
	transport.On("Send", mock.Anything).Return(errors.New("dial tcp: refused"))

	svc := NewService(smtpConfig(), admins, transport)
	_, err := svc.SendApprovalEmail(context.Background(), "admin-1", approvalRequest())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send email")
	assert.Contains(t, err.Error(), "dial tcp: refused")
}

func TestSendRejectionEmail(t *testing.T) {
	admins := new(MockAdminRegistry)
	admins.On("Exists", mock.Anything, "admin-1").Return(true, nil)

	req := RejectionEmailRequest{
		OrganizerEmail:   "lena@trailco.my",
		OrganizerName:    "Lena",
		OrganizationName: "TrailCo",
		RejectionReason:  "Incomplete business registration documents.",
	}

	t.Run("success", func(t *testing.T) {
		transport := new(MockTransport)
		var sent *Message
		transport.On("Send", mock.Anything).Run(func(args mock.Arguments) {
			sent = args.Get(0).(*Message)
		}).Return(nil)

		svc := NewService(smtpConfig(), admins, transport)
		msg, err := svc.SendRejectionEmail(context.Background(), "admin-1", req)

		assert.NoError(t, err)
		assert.Equal(t, "Rejection email sent successfully", msg)
		if assert.NotNil(t, sent) {
			assert.Equal(t, rejectionSubject, sent.Subject)
			assert.Contains(t, sent.HTML, "Incomplete business registration documents.")
			assert.Contains(t, sent.Text, "Incomplete business registration documents.")
		}
	})

	t.Run("reason is required", func(t *testing.T) {
		svc := NewService(smtpConfig(), admins, new(MockTransport))

		missing := req
		missing.RejectionReason = ""
		_, err := svc.SendRejectionEmail(context.Background(), "admin-1", missing)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}
