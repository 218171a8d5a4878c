package services

import (
	"context"
	"encoding/json"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
)

// audit writes one entry inside the caller's transaction. before/after are
// JSON-encoded snapshots; nil encodes as an empty string.
func audit(ctx context.Context, r repositories.Repos, actor *models.User, action models.AuditAction,
	resource models.AuditResourceType, id uint, before, after any) error {
	entry := models.AuditLog{
		ActorUserID:  actor.ID,
		Action:       action,
		ResourceType: resource,
		ResourceID:   id,
		BeforeJSON:   snapshot(before),
		AfterJSON:    snapshot(after),
	}
	return r.AuditLogs().Create(ctx, entry)
}

func snapshot(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
