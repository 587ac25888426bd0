package audit

import (
	"time"

	"github.com/google/uuid"
)

// Security and CRUD actions recorded in the audit trail.
const (
	ActionLogin                 = "LOGIN"
	ActionLogout                = "LOGOUT"
	ActionLogoutAll             = "LOGOUT_ALL"
	ActionRegister              = "REGISTER"
	ActionPasswordResetRequest  = "PASSWORD_RESET_REQUEST"
	ActionPasswordResetComplete = "PASSWORD_RESET_COMPLETE"
	ActionCreate                = "CREATE"
	ActionUpdate                = "UPDATE"
	ActionDelete                = "DELETE"
)

const (
	EntityUser         = "USER"
	EntityAuth         = "AUTH"
	EntityNotification = "NOTIFICATION"
)

// Log is an append-only record. Application logic never updates or deletes
// entries; retention is an operational concern.
type Log struct {
	ID        uuid.UUID              `json:"id"`
	UserID    *uuid.UUID             `json:"user_id,omitempty"`
	Action    string                 `json:"action"`
	Entity    string                 `json:"entity"`
	EntityID  *string                `json:"entity_id,omitempty"`
	Changes   map[string]interface{} `json:"changes,omitempty"`
	IPAddress *string                `json:"ip_address,omitempty"`
	UserAgent *string                `json:"user_agent,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
