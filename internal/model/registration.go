package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	TicketCodePrefix = "TKT-"
	ticketCodeLength = 8

	ScanStatusUsed = "Active -> Used"
)

var ticketCodePattern = regexp.MustCompile(`^TKT-[A-Z0-9]{8}$`)

// NewTicketCode 產生票券代碼：TKT- 加上隨機 UUID 前 8 碼（大寫）
func NewTicketCode() string {
	return TicketCodePrefix + strings.ToUpper(uuid.New().String()[:ticketCodeLength])
}

func IsValidTicketCode(code string) bool {
	return ticketCodePattern.MatchString(code)
}

// Registration 報名模型
type Registration struct {
	ID           int        `json:"registrationId" db:"id"`
	UserID       int        `json:"userId" db:"user_id"`
	EventID      int        `json:"eventId" db:"event_id"`
	TicketCode   string     `json:"ticketCode" db:"ticket_code"`
	Quantity     int        `json:"quantity" db:"quantity"`
	TotalPrice   float64    `json:"totalPrice" db:"total_price"`
	RegisteredAt time.Time  `json:"registeredDate" db:"registered_at"`
	IsScanned    bool       `json:"isScanned" db:"is_scanned"`
	ScannedAt    *time.Time `json:"scannedAt,omitempty" db:"scanned_at"`

	User  *User  `json:"user,omitempty" db:"-"`
	Event *Event `json:"event,omitempty" db:"-"`
}

// CreateRegistrationRequest 報名請求
type CreateRegistrationRequest struct {
	EventID  int `json:"eventId" binding:"required"`
	Quantity int `json:"quantity"`
}

// ScanRequest 驗票請求
type ScanRequest struct {
	TicketCode string `json:"ticketCode" binding:"required"`
}

// ScanResult 驗票結果
type ScanResult struct {
	Message    string     `json:"message"`
	HolderName string     `json:"holderName"`
	EventTitle string     `json:"eventTitle"`
	Quantity   int        `json:"quantity"`
	Status     string     `json:"status,omitempty"`
	ScannedAt  *time.Time `json:"scannedAt,omitempty"`
}

// TicketConfirmation 訂票確認通知內容
type TicketConfirmation struct {
	Email       string    `json:"email"`
	TicketCode  string    `json:"ticketCode"`
	EventTitle  string    `json:"eventTitle"`
	RequestedAt time.Time `json:"requestedAt"`
}
