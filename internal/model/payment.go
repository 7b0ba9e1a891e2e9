package model

import "time"

type PaymentStatus string

const (
	PaymentReady    PaymentStatus = "READY"
	PaymentApproved PaymentStatus = "APPROVED"
	PaymentCanceled PaymentStatus = "CANCELED"
)

// Payment 支付订单，OrderID 为对外暴露的 UUID
// swagger:model Payment
type Payment struct {
	BaseModel
	OrderID    string        `gorm:"size:36;uniqueIndex;not null" json:"orderId"`
	UserID     uint          `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	BookID     uint          `gorm:"index;type:bigint unsigned;not null" json:"bookId"`
	Amount     int           `gorm:"not null" json:"amount"` // 单位：分
	Status     PaymentStatus `gorm:"type:varchar(20);default:'READY'" json:"status"`
	TID        string        `gorm:"size:64" json:"-"` // 网关交易号
	ApprovedAt *time.Time    `json:"approvedAt,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
