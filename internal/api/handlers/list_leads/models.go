package list_leads

import "github.com/m04kA/realty-intake-service/internal/service/leads/models"

// ListLeadsResponse HTTP response model
type ListLeadsResponse struct {
	Success bool                  `json:"success"`
	Leads   []models.LeadResponse `json:"leads"`
}
