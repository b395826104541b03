package create_lead

// CreateLeadResponse HTTP response model
type CreateLeadResponse struct {
	Success bool   `json:"success"`
	LeadID  string `json:"leadId"`
	Message string `json:"message"`
}
