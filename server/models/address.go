package models

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Address struct {
	BaseModel
	UserID  string  `json:"-" gorm:"size:36;not null;uniqueIndex"`
	Street  string  `json:"street"`
	City    string  `json:"city"`
	Zipcode string  `json:"zipcode"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Replace overwrites every client owned field with the values in other
func (address *Address) Replace(other *Address) {
	address.Street = other.Street
	address.City = other.City
	address.Zipcode = other.Zipcode
	address.Lat = other.Lat
	address.Lng = other.Lng
}

func upsertAddress(tx *gorm.DB, userID string, address *Address) error {
	existing := Address{}

	err := tx.First(&existing, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		address.UserID = userID
		return tx.Create(address).Error
	}

	if err != nil {
		return err
	}

	existing.Replace(address)
	return tx.Save(&existing).Error
}
