package mailer

import (
	"bytes"
	htmltemplate "html/template"
	texttemplate "text/template"
)

type templateData struct {
	OrganizerName    string
	OrganizerEmail   string
	OrganizationName string
	RejectionReason  string
	DashboardURL     string
	SupportEmail     string
}

const approvalSubject = "Welcome to TrailHub - Your Organizer Account is Approved!"
const rejectionSubject = "Organizer Application Status - TrailHub"

const approvalHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Welcome to TrailHub - Account Approved</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f8f9fa; }
    .header { background: linear-gradient(135deg, #4B7F3F, #94BC45); color: white; padding: 30px 20px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: white; padding: 30px; border: 1px solid #ddd; border-top: none; border-radius: 0 0 10px 10px; }
    .welcome-box { background: #e8f5e8; border-left: 5px solid #4B7F3F; padding: 20px; margin: 20px 0; border-radius: 8px; }
    .button { display: inline-block; background: #4B7F3F; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; margin: 20px 0; }
    .footer { text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; color: #666; font-size: 14px; }
  </style>
</head>
<body>
  <div class="header">
    <h1>TrailHub</h1>
    <p>Event Organizer Platform</p>
  </div>
  <div class="content">
    <div class="welcome-box">
      <h2>Welcome to the TrailHub Organizer Community!</h2>
      <p><strong>Congratulations {{.OrganizerName}}!</strong> Your organizer application{{if .OrganizationName}} for {{.OrganizationName}}{{end}} has been approved. You can now create and manage events on our platform.</p>
    </div>
    <p><strong>Email:</strong> {{.OrganizerEmail}}<br>
    <strong>Login Status:</strong> APPROVED</p>
    <p>Use the email and password you provided during registration to access your dashboard.</p>
    <h3>Getting Started</h3>
    <ol>
      <li>Access your dashboard and log in with your registration credentials.</li>
      <li>Complete your profile with your logo, description and contact information.</li>
      <li>Create your first event!</li>
    </ol>
    <a href="{{.DashboardURL}}" class="button">Access Organizer Dashboard</a>
    <p>If you have any questions or need assistance getting started, our support team is here to help.</p>
    <p><strong>Welcome to the team!</strong><br>The TrailHub Team</p>
  </div>
  <div class="footer">
    <p>Need help? Email {{.SupportEmail}}</p>
    <p>This is an automated message from TrailHub. Please do not reply to this email.</p>
  </div>
</body>
</html>`

const approvalText = `Welcome to TrailHub - Your Organizer Account is Approved!

Dear {{.OrganizerName}},

Congratulations! Your organizer application{{if .OrganizationName}} for {{.OrganizationName}}{{end}} has been approved. You can now create and manage events on our platform.

Your Account Information:
Email: {{.OrganizerEmail}}
Login Status: APPROVED

Use the email and password you provided during registration to access your dashboard.

Getting Started:
1. Access your dashboard and log in with your registration credentials
2. Complete your profile with your logo, description and contact information
3. Create your first event!

Access Organizer Dashboard: {{.DashboardURL}}

Welcome to the team!
The TrailHub Team

Need help? Email {{.SupportEmail}}

This is an automated message from TrailHub. Please do not reply to this email.`

const rejectionHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Application Status Update</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #4B7F3F, #94BC45); color: white; padding: 30px 20px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: white; padding: 30px; border: 1px solid #ddd; border-top: none; border-radius: 0 0 10px 10px; }
    .rejection-box { background: #fee; border-left: 4px solid #dc3545; padding: 20px; margin: 20px 0; border-radius: 5px; }
    .footer { text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; color: #666; font-size: 14px; }
  </style>
</head>
<body>
  <div class="header">
    <h1>TrailHub</h1>
    <h2>Organizer Application Update</h2>
  </div>
  <div class="content">
    <p>Dear {{.OrganizerName}},</p>
    <p>Thank you for your interest in becoming an organizer with TrailHub{{if .OrganizationName}} and for submitting your application on behalf of {{.OrganizationName}}{{end}}.</p>
    <p>After careful review of your application, we regret to inform you that we cannot approve your organizer account at this time.</p>
    <div class="rejection-box">
      <h3>Reason for Rejection:</h3>
      <p>{{.RejectionReason}}</p>
    </div>
    <p>We appreciate the time and effort you put into your application. If you believe this decision was made in error, please reach out to our support team. You may also reapply in the future once any issues have been resolved.</p>
    <p>Best regards,<br>The TrailHub Team</p>
  </div>
  <div class="footer">
    <p>This is an automated message from TrailHub. Please do not reply to this email.</p>
    <p>If you have questions, contact us at {{.SupportEmail}}</p>
  </div>
</body>
</html>`

const rejectionText = `Dear {{.OrganizerName}},

Thank you for your interest in becoming an organizer with TrailHub{{if .OrganizationName}} and for submitting your application on behalf of {{.OrganizationName}}{{end}}.

After careful review of your application, we regret to inform you that we cannot approve your organizer account at this time.

Reason for Rejection:
{{.RejectionReason}}

We appreciate the time and effort you put into your application. If you believe this decision was made in error, please reach out to our support team. You may also reapply in the future once any issues have been resolved.

Best regards,
The TrailHub Team

Contact Support: {{.SupportEmail}}

This is an automated message from TrailHub. Please do not reply to this email.`

var (
	approvalHTMLTmpl  = htmltemplate.Must(htmltemplate.New("approval_html").Parse(approvalHTML))
	approvalTextTmpl  = texttemplate.Must(texttemplate.New("approval_text").Parse(approvalText))
	rejectionHTMLTmpl = htmltemplate.Must(htmltemplate.New("rejection_html").Parse(rejectionHTML))
	rejectionTextTmpl = texttemplate.Must(texttemplate.New("rejection_text").Parse(rejectionText))
)

func renderApproval(data templateData) (html, text string, err error) {
	var hb, tb bytes.Buffer
	if err := approvalHTMLTmpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err := approvalTextTmpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func renderRejection(data templateData) (html, text string, err error) {
	var hb, tb bytes.Buffer
	if err := rejectionHTMLTmpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err := rejectionTextTmpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}
