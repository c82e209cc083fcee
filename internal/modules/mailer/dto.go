package mailer

type ApprovalEmailRequest struct {
	OrganizerEmail   string `json:"organizerEmail"`
	OrganizerName    string `json:"organizerName"`
	OrganizationName string `json:"organizationName"`
}

type RejectionEmailRequest struct {
	OrganizerEmail   string `json:"organizerEmail"`
	OrganizerName    string `json:"organizerName"`
	OrganizationName string `json:"organizationName"`
	RejectionReason  string `json:"rejectionReason"`
}
