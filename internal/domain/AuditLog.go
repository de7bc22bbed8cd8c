package domain

import "time"

// Audit actions. Closed set so handlers and exports can switch exhaustively.
const (
	AuditActionApplied        = "APPLIED"
	AuditActionPolicyRejected = "POLICY_REJECTED"
	AuditActionAIScored       = "AI_SCORED"
	AuditActionShortlisted    = "SHORTLISTED"
)

const (
	PolicyCheckPassed = "PASSED"
	PolicyCheckFailed = "FAILED"
	PolicyCheckNA     = "N/A"
)

const ActorSystem = "SYSTEM"

// AuditLog entries are append-only: written once by the ledger, never
// updated or deleted. Every gateway/scoring/shortlist decision lands here.
type AuditLog struct {
	ID            string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Timestamp     time.Time  `gorm:"autoCreateTime;index" json:"timestamp"`
	StudentID     string     `gorm:"not null;index" json:"student_id"`
	DriveID       string     `gorm:"not null;index" json:"drive_id"`
	Actor         string     `gorm:"type:varchar(100);not null;default:SYSTEM" json:"actor"`
	Action        string     `gorm:"type:varchar(50);not null" json:"action"`
	Reasoning     string     `gorm:"type:text" json:"reasoning"`
	PolicyCheck   string     `gorm:"type:varchar(10)" json:"policy_check"`
	AIScore       *float64   `json:"ai_score,omitempty"`
	MissingSkills StringList `gorm:"type:text" json:"missing_skills"`
	FinalDecision string     `json:"final_decision,omitempty"`
}
