package address

import (
	"time"

	"github.com/google/uuid"
)

// Address is a shipping destination a signed-in shopper has used at checkout.
type Address struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	IsDefault  bool      `json:"isDefault"`
	LastUsedAt time.Time `json:"lastUsedAt"`
}

type RememberInput struct {
	Name    string
	Phone   string
	Address string
}
