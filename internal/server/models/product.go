package models

import (
	"errors"
	"math"
	"strconv"
	"time"
)

// MaxPrice bounds prices so cents always fit comfortably in int64.
const MaxPrice = 1_000_000_000.0

var ErrInvalidPrice = errors.New("invalid price")

// Price is an amount in cents. It is rendered in JSON as a number with two
// decimals, e.g. 10.99.
type Price int64

// PriceFromFloat converts a decimal amount to cents, rounding half away from zero.
func PriceFromFloat(v float64) (Price, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > MaxPrice {
		return 0, ErrInvalidPrice
	}
	return Price(math.Round(v * 100)), nil
}

func (p Price) String() string {
	sign := ""
	c := int64(p)
	if c < 0 {
		sign = "-"
		c = -c
	}
	cents := strconv.FormatInt(c%100, 10)
	if len(cents) == 1 {
		cents = "0" + cents
	}
	return sign + strconv.FormatInt(c/100, 10) + "." + cents
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// Product is a catalog item.
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Price       Price     `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductPatch lists the fields of a partial update; nil means unchanged.
type ProductPatch struct {
	Title       *string
	Price       *Price
	Description *string
	Image       *string
}

// Apply copies every provided field onto p.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
}

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Items []*Product `json:"items"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Pages int        `json:"pages"`
}
