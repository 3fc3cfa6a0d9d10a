package models

import "encoding/json"

// UserOrder joins one User, one Order and the best Product found for it.
// Product fields are empty when the record is degraded and are encoded as
// JSON null in that case.
type UserOrder struct {
	OrderNumber string `json:"orderNumber"`
	UserName    string `json:"userName"`
	PhoneNumber string `json:"phoneNumber"`
	ProductCode string `json:"productCode"`
	ProductName string `json:"productName"`
	ProductID   string `json:"productId"`
}

func NewUserOrder(u User, o Order, p Product) UserOrder {
	return UserOrder{
		OrderNumber: o.OrderNumber,
		UserName:    u.Name,
		PhoneNumber: u.Phone,
		ProductCode: p.ProductCode,
		ProductName: p.ProductName,
		ProductID:   p.ProductID,
	}
}

// Degraded reports whether the record carries no product.
func (uo UserOrder) Degraded() bool {
	return uo.ProductID == "" && uo.ProductCode == "" && uo.ProductName == ""
}

type userOrderWire struct {
	OrderNumber string  `json:"orderNumber"`
	UserName    string  `json:"userName"`
	PhoneNumber string  `json:"phoneNumber"`
	ProductCode *string `json:"productCode"`
	ProductName *string `json:"productName"`
	ProductID   *string `json:"productId"`
}

func (uo UserOrder) MarshalJSON() ([]byte, error) {
	w := userOrderWire{
		OrderNumber: uo.OrderNumber,
		UserName:    uo.UserName,
		PhoneNumber: uo.PhoneNumber,
	}
	if !uo.Degraded() {
		w.ProductCode = &uo.ProductCode
		w.ProductName = &uo.ProductName
		w.ProductID = &uo.ProductID
	}
	return json.Marshal(w)
}
