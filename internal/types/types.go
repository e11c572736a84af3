// Package types holds the domain entities the import pipeline produces and
// the reference entities fetched from the collaborator API. These are pure
// data carriers; behavior lives with the packages that build them.
package types

// PurchaseOrder is a grouped purchase order: header fields shared by every
// spreadsheet row carrying the same poNumber, plus one line item per row.
type PurchaseOrder struct {
	PONumber             string       `json:"poNumber"`
	VendorID             string       `json:"vendorId"`
	VendorWarehouseID    string       `json:"vendorWarehouseId"`
	PODate               string       `json:"poDate"`
	ExpectedDeliveryDate string       `json:"expectedDeliveryDate"`
	Notes                string       `json:"notes,omitempty"`
	Items                []POLineItem `json:"items"`
}

// POLineItem is one ordered line of a purchase order.
type POLineItem struct {
	SKU         string `json:"sku,omitempty"`
	ProductName string `json:"productName,omitempty"`
	POQuantity  int    `json:"poQuantity"`
}

// Shipment is a grouped shipment keyed by shipmentNumber, with one item per
// contributing spreadsheet row.
type Shipment struct {
	ShipmentNumber string         `json:"shipmentNumber"`
	PONumber       string         `json:"poNumber"`
	TransporterID  string         `json:"transporterId"`
	ShipmentDate   string         `json:"shipmentDate"`
	Notes          string         `json:"notes,omitempty"`
	Items          []ShipmentItem `json:"items"`
}

// ShipmentItem is one shipped line of a shipment.
type ShipmentItem struct {
	SKU          string `json:"sku,omitempty"`
	SentQuantity int    `json:"sentQty"`
}

// Vendor is collaborator reference data used for template dropdowns.
type Vendor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Transporter is collaborator reference data used for template dropdowns.
type Transporter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
