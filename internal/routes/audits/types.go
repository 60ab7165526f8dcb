package audits

import (
	"time"

	"mealmaster.app/planner/internal/data"
)

type Audit struct {
	Id           string    `json:"id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resourceType"`
	ResourceId   string    `json:"resourceId"`
	Message      string    `json:"message"`
	CreateTime   time.Time `json:"createTime"`
}

func NewAudit(auditDTO data.AuditDTO) Audit {
	return Audit{
		Id:           auditDTO.SK,
		Action:       auditDTO.Action,
		ResourceType: auditDTO.ResourceType,
		ResourceId:   auditDTO.ResourceId,
		Message:      auditDTO.Message,
		CreateTime:   auditDTO.CreateTime,
	}
}
