// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The gateway order ref carries a unique index because it is the lookup key
// of every payment confirmation. Tracking id is stored as an empty string
// until a shipment is attached; the conditional writes key on that.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	GatewayOrderRef string     `gorm:"size:64;uniqueIndex"`
	Status          int        `gorm:"index"`
	Amounts         AmountsDTO `gorm:"embedded"`
	Address         AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	TrackingID      string     `gorm:"size:64;index"`
	TrackingURL     string
	CourierName     string
	Items           []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AmountsDTO represents the embedded monetary breakdown within the order table.
type AmountsDTO struct {
	Subtotal float64
	Shipping float64
	Total    float64
}

// AddressDTO represents the embedded recipient address within the order table.
type AddressDTO struct {
	RecipientName string
	Email         string
	Phone         string
	Street        string
	City          string
	State         string
	PostalCode    string
}

// ItemDTO represents one order line in the order_items table.
type ItemDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID string
	Name      string
	UnitPrice float64
	Quantity  int
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:              o.ID().Bytes(),
		GatewayOrderRef: o.GatewayOrderRef(),
		Status:          int(o.Status()),
		Amounts: AmountsDTO{
			Subtotal: o.Amounts().Subtotal(),
			Shipping: o.Amounts().Shipping(),
			Total:    o.Amounts().Total(),
		},
		Address: AddressDTO{
			RecipientName: o.Address().RecipientName(),
			Email:         o.Address().Email(),
			Phone:         o.Address().Phone(),
			Street:        o.Address().Street(),
			City:          o.Address().City(),
			State:         o.Address().State(),
			PostalCode:    o.Address().PostalCode(),
		},
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}

	if shipment := o.Shipment(); shipment != nil {
		dto.TrackingID = shipment.TrackingID()
		dto.TrackingURL = shipment.TrackingURL()
		dto.CourierName = shipment.CourierName()
	}

	for _, item := range o.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:   o.ID().Bytes(),
			ProductID: item.ProductID(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
		})
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including shipment data using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	amounts, err := order.RestoreAmounts(dto.Amounts.Subtotal, dto.Amounts.Shipping, dto.Amounts.Total)
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(
		dto.Address.RecipientName,
		dto.Address.Email,
		dto.Address.Phone,
		dto.Address.Street,
		dto.Address.City,
		dto.Address.State,
		dto.Address.PostalCode,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.ProductID, itemDTO.Name, itemDTO.UnitPrice, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var shipment *order.ShipmentInfo
	if dto.TrackingID != "" {
		info, shipErr := order.NewShipmentInfo(dto.TrackingID, dto.TrackingURL, dto.CourierName)
		if shipErr != nil {
			return nil, shipErr
		}
		shipment = &info
	}

	return order.RestoreOrder(
		id,
		dto.GatewayOrderRef,
		amounts,
		address,
		items,
		order.Status(dto.Status),
		shipment,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
