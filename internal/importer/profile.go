package importer

import "fmt"

// Profile describes one import flow: its required-field contract, its natural
// grouping key, and the column layout its template is emitted with. Profiles
// form a small closed set so grouping behavior stays enumerable per flow.
type Profile struct {
	// Name identifies the flow ("purchase-orders", "shipments").
	Name string

	// RequiredFields must all be present in the first projected record.
	RequiredFields []string

	// GroupKey is the header whose value partitions rows into entities.
	GroupKey string

	// Columns is the header order used when emitting a template for this flow.
	Columns []string
}

// PurchaseOrders is the purchase-order import profile.
var PurchaseOrders = Profile{
	Name:           "purchase-orders",
	RequiredFields: []string{"poNumber", "vendorId", "vendorWarehouseId", "poDate", "expectedDeliveryDate", "poQty"},
	GroupKey:       "poNumber",
	Columns:        []string{"poNumber", "vendorId", "vendorWarehouseId", "poDate", "expectedDeliveryDate", "sku", "productName", "poQty", "notes"},
}

// Shipments is the shipment import profile.
var Shipments = Profile{
	Name:           "shipments",
	RequiredFields: []string{"shipmentNumber", "poNumber", "transporterId", "shipmentDate", "sentQty"},
	GroupKey:       "shipmentNumber",
	Columns:        []string{"shipmentNumber", "poNumber", "transporterId", "shipmentDate", "sku", "sentQty", "notes"},
}

// ProfileByName resolves a flow name to its profile.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case PurchaseOrders.Name:
		return PurchaseOrders, nil
	case Shipments.Name:
		return Shipments, nil
	default:
		return Profile{}, fmt.Errorf("unknown import flow %q (expected %q or %q)", name, PurchaseOrders.Name, Shipments.Name)
	}
}
