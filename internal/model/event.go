package model

import "time"

const (
	DefaultEventDescription = "No description provided."
	DefaultEventCategory    = "General"
	DefaultEventImageURL    = "https://images.unsplash.com/photo-1540575861501-7cf05a4b125a?w=800"
)

// Event 活動模型
type Event struct {
	ID          int       `json:"eventId" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	Venue       string    `json:"venue" db:"venue"`
	MaxSeats    int       `json:"maxSeats" db:"max_seats"`
	Price       float64   `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	CreatedBy   int       `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ApplyDefaults 填入空白欄位的預設值
func (e *Event) ApplyDefaults() {
	if e.Description == "" {
		e.Description = DefaultEventDescription
	}
	if e.Category == "" {
		e.Category = DefaultEventCategory
	}
	if e.ImageURL == "" {
		e.ImageURL = DefaultEventImageURL
	}
}

// EventRequest 建立/更新活動請求
type EventRequest struct {
	ID          int       `json:"eventId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Venue       string    `json:"venue"`
	MaxSeats    int       `json:"maxSeats"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
}

func (r EventRequest) ToEvent() *Event {
	return &Event{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Venue:       r.Venue,
		MaxSeats:    r.MaxSeats,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
	}
}
