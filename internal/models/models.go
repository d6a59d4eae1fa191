package models

import "time"

// Style is the visual style of the generated video
type Style string

const (
	StyleRealistic Style = "realistic"
	StyleCinematic Style = "cinematic"
	StyleAnimated  Style = "animated"
	StyleStylized  Style = "stylized"
)

// Valid reports whether s is one of the four supported styles
func (s Style) Valid() bool {
	switch s {
	case StyleRealistic, StyleCinematic, StyleAnimated, StyleStylized:
		return true
	}
	return false
}

// Duration domain: 10..45 seconds in steps of 5
const (
	DurationMin     = 10
	DurationMax     = 45
	DurationStep    = 5
	DurationDefault = 15
)

// ValidDuration reports whether d is in the allowed duration domain
func ValidDuration(d int) bool {
	return d >= DurationMin && d <= DurationMax && d%DurationStep == 0
}

// MinDescriptionLen is the minimum activity description length
const MinDescriptionLen = 10

// Upload is the handle the upload collaborator supplies for a selected file
type Upload struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ImageRef is an opaque reference to an uploaded image, owned by the draft
type ImageRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// OrderDraft is the in-progress order being assembled by the wizard
type OrderDraft struct {
	ActivityDescription string     `json:"activity_description"`
	DurationSeconds     int        `json:"duration_seconds"`
	Style               Style      `json:"style"`
	AdditionalNotes     string     `json:"additional_notes,omitempty"`
	ReferenceImages     []ImageRef `json:"reference_images"`
	Price               int64      `json:"price"`
}

// OrderSummary is the frozen draft handed to the payment and
// order-finalization boundaries on submission
type OrderSummary struct {
	ActivityDescription string `json:"activity_description"`
	DurationSeconds     int    `json:"duration_seconds"`
	Style               Style  `json:"style"`
	AdditionalNotes     string `json:"additional_notes,omitempty"`
	ImageCount          int    `json:"image_count"`
	Price               int64  `json:"price"`
}

// Payment methods
type PaymentMethod string

const (
	MethodCard   PaymentMethod = "card"
	MethodWallet PaymentMethod = "wallet"
)

// Payment attempt statuses
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusValidating PaymentStatus = "VALIDATING"
	PaymentStatusSucceeded  PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
)

// CardDetails are the card-method payment fields
type CardDetails struct {
	Number string `json:"number"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// WalletDetails are the wallet-method payment fields
type WalletDetails struct {
	Email string `json:"email"`
}

// PaymentAttempt is a single payment try. Exactly one of Card or Wallet is
// set, selected by Method.
type PaymentAttempt struct {
	ID            string         `json:"id"`
	Method        PaymentMethod  `json:"method"`
	Card          *CardDetails   `json:"card,omitempty"`
	Wallet        *WalletDetails `json:"wallet,omitempty"`
	Status        PaymentStatus  `json:"status"`
	TransactionID string         `json:"transaction_id,omitempty"`
}

// PaymentRecord is the only payment artifact retained after validation.
// It carries redacted display fields; raw card and wallet values never
// leave the attempt.
type PaymentRecord struct {
	Method        PaymentMethod `json:"method"`
	TransactionID string        `json:"transaction_id"`
	CardLast4     string        `json:"card_last4,omitempty"`
	WalletEmail   string        `json:"wallet_email,omitempty"`
	Amount        int64         `json:"amount"`
}

// Video generation statuses
const (
	GenerationStatusProcessing = "processing"
	GenerationStatusRendering  = "rendering"
	GenerationStatusComplete   = "complete"
	GenerationStatusFailed     = "failed"
)

// VideoOrder is a finalized order tracked through video generation
type VideoOrder struct {
	ID                  int64     `db:"id" json:"id"`
	ActivityDescription string    `db:"activity_description" json:"activity_description"`
	DurationSeconds     int       `db:"duration_seconds" json:"duration_seconds"`
	Style               string    `db:"style" json:"style"`
	AdditionalNotes     string    `db:"additional_notes" json:"additional_notes,omitempty"`
	ImageCount          int       `db:"image_count" json:"image_count"`
	Price               int64     `db:"price" json:"price"`
	TransactionID       string    `db:"transaction_id" json:"transaction_id"`
	Status              string    `db:"status" json:"status"`
	Progress            int       `db:"progress" json:"progress"`
	VideoURL            string    `db:"video_url" json:"video_url,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// Payment is the persisted, redacted payment row for a finalized order
type Payment struct {
	ID            int64     `db:"id" json:"id"`
	OrderID       int64     `db:"order_id" json:"order_id"`
	Method        string    `db:"method" json:"method"`
	TransactionID string    `db:"transaction_id" json:"transaction_id"`
	CardLast4     string    `db:"card_last4" json:"card_last4,omitempty"`
	WalletEmail   string    `db:"wallet_email" json:"wallet_email,omitempty"`
	Amount        int64     `db:"amount" json:"amount"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Video is a sample video shown in the gallery
type Video struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	Category     string    `db:"category" json:"category"`
	ThumbnailURL string    `db:"thumbnail_url" json:"thumbnail_url"`
	VideoURL     string    `db:"video_url" json:"video_url"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ProcessedEvent for idempotency
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
