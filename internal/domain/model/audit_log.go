package model

import "time"

// 操作の種類。
type AuditAction string

const (
	//アカウント削除（カート・明細のカスケード削除を含む）。
	AuditActionDeleteAccount AuditAction = "DELETE_ACCOUNT"
)

// 何に対する操作か
type AuditResourceType string

const (
	//ユーザーに対する操作。
	AuditResourceUser AuditResourceType = "user"

	//カートに対する操作。
	AuditResourceCart AuditResourceType = "cart"
)

// 監査ログ。
// 「誰が」「何を」「どの対象に」行ったかを残す。
type AuditLog struct {
	//IDは監査ログの主キー
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザーのID。
	ActorUserID string `gorm:"type:varchar(36);not null;index" json:"actor_user_id"`

	//Actionは操作の種類（DELETE_ACCOUNT など）。
	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	//対象の種類（user / cart）。
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	//対象のID）。
	ResourceID int64 `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	DetailJSON string `gorm:"type:text" json:"detail_json"`

	//作成時刻
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
