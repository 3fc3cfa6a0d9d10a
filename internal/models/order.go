package models

// Order is a single entry returned by the order search service.
type Order struct {
	PhoneNumber string `json:"phoneNumber"`
	OrderNumber string `json:"orderNumber"`
	ProductCode string `json:"productCode"`
}

// Product is a candidate returned by the product info service. Higher Score is better.
type Product struct {
	ProductID   string  `json:"productId"`
	ProductCode string  `json:"productCode"`
	ProductName string  `json:"productName"`
	Score       float64 `json:"score"`
}

// NoProduct is used when product lookup timed out, failed or returned nothing.
var NoProduct = Product{}
