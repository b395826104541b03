package update_lead_status

import "github.com/m04kA/realty-intake-service/internal/service/leads/models"

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	Success bool                 `json:"success"`
	Lead    *models.LeadResponse `json:"lead"`
}
