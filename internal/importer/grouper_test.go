package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhikandeshmukh/po-tracker-sub001/internal/workbook"
)

func poRecord(overrides workbook.Record) workbook.Record {
	record := workbook.Record{
		"poNumber": "PO-1", "vendorId": "V-1", "vendorWarehouseId": "W-1",
		"poDate": "2025-01-01", "expectedDeliveryDate": "2025-01-10",
		"sku": "SKU-1", "poQty": "50",
	}
	for k, v := range overrides {
		record[k] = v
	}
	return record
}

func TestGroupPurchaseOrdersSingleRow(t *testing.T) {
	orders, err := GroupPurchaseOrders([]workbook.Record{poRecord(nil)})
	require.NoError(t, err)

	require.Len(t, orders, 1)
	po := orders[0]
	assert.Equal(t, "PO-1", po.PONumber)
	assert.Equal(t, "V-1", po.VendorID)
	assert.Equal(t, "W-1", po.VendorWarehouseID)
	assert.Equal(t, "2025-01-01T00:00:00Z", po.PODate)
	assert.Equal(t, "2025-01-10T00:00:00Z", po.ExpectedDeliveryDate)
	require.Len(t, po.Items, 1)
	assert.Equal(t, 50, po.Items[0].POQuantity)
}

func TestGroupPurchaseOrdersFoldsSharedKey(t *testing.T) {
	records := []workbook.Record{
		poRecord(workbook.Record{"sku": "SKU-1"}),
		poRecord(workbook.Record{"poNumber": "PO-2", "sku": "SKU-9"}),
		poRecord(workbook.Record{"sku": "SKU-2", "poQty": float64(7)}),
	}

	orders, err := GroupPurchaseOrders(records)
	require.NoError(t, err)

	// First-seen-key order, one line item per contributing row.
	require.Len(t, orders, 2)
	assert.Equal(t, "PO-1", orders[0].PONumber)
	require.Len(t, orders[0].Items, 2)
	assert.Equal(t, "SKU-2", orders[0].Items[1].SKU)
	assert.Equal(t, 7, orders[0].Items[1].POQuantity)
	assert.Equal(t, "PO-2", orders[1].PONumber)
}

func TestGroupPurchaseOrdersLenientQuantity(t *testing.T) {
	orders, err := GroupPurchaseOrders([]workbook.Record{
		poRecord(workbook.Record{"poQty": "not a number"}),
	})
	require.NoError(t, err)

	// Bad quantities coerce to 0 instead of failing the row.
	assert.Equal(t, 0, orders[0].Items[0].POQuantity)
}

func TestGroupPurchaseOrdersSerialDates(t *testing.T) {
	orders, err := GroupPurchaseOrders([]workbook.Record{
		poRecord(workbook.Record{"poDate": float64(25569), "expectedDeliveryDate": "45658"}),
	})
	require.NoError(t, err)

	// Serial 25569 is the epoch; serials arrive as numbers or digit strings.
	assert.Equal(t, "1970-01-01T00:00:00Z", orders[0].PODate)
	assert.Equal(t, "2025-01-01T00:00:00Z", orders[0].ExpectedDeliveryDate)
}

func TestGroupPurchaseOrdersMissingKey(t *testing.T) {
	_, err := GroupPurchaseOrders([]workbook.Record{
		poRecord(nil),
		{"vendorId": "V-2"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestGroupShipments(t *testing.T) {
	records := []workbook.Record{
		{"shipmentNumber": "SH-1", "poNumber": "PO-1", "transporterId": "T-1", "shipmentDate": "2025-02-01", "sku": "SKU-1", "sentQty": "10"},
		{"shipmentNumber": "SH-1", "poNumber": "PO-1", "transporterId": "T-1", "shipmentDate": "2025-02-01", "sku": "SKU-2", "sentQty": float64(4)},
	}

	shipments, err := GroupShipments(records)
	require.NoError(t, err)

	require.Len(t, shipments, 1)
	s := shipments[0]
	assert.Equal(t, "SH-1", s.ShipmentNumber)
	assert.Equal(t, "T-1", s.TransporterID)
	assert.Equal(t, "2025-02-01T00:00:00Z", s.ShipmentDate)
	require.Len(t, s.Items, 2)
	assert.Equal(t, 10, s.Items[0].SentQuantity)
	assert.Equal(t, 4, s.Items[1].SentQuantity)
}

func TestStringFieldNumericIdentifier(t *testing.T) {
	// Numeric cells used as identifiers must not grow a decimal point.
	record := workbook.Record{"poNumber": float64(1001)}
	assert.Equal(t, "1001", stringField(record, "poNumber"))
}
