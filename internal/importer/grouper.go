// =============================================================================
// PO Tracker - Domain Groupers
// =============================================================================
//
// Fold flat projected records into nested domain entities. The first record
// carrying a key establishes that group's header fields; every record sharing
// the key contributes one line item. Group order follows first-seen-key
// order, item order follows row order.
//
// Field coercion is lenient per field (bad quantity -> 0, unparseable date
// passes through) but a record with no grouping key at all is a cross-record
// inconsistency and fails the grouping.
//
// =============================================================================

package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bhikandeshmukh/po-tracker-sub001/internal/types"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/workbook"
)

// excelEpochOffset is the Excel serial for 1970-01-01.
const excelEpochOffset = 25569

// GroupPurchaseOrders partitions records by poNumber into purchase orders.
func GroupPurchaseOrders(records []workbook.Record) ([]types.PurchaseOrder, error) {
	var orders []types.PurchaseOrder
	index := map[string]int{}

	for i, record := range records {
		key := stringField(record, "poNumber")
		if key == "" {
			// +2: rows are 1-based and row 1 is the header.
			return nil, fmt.Errorf("row %d has no poNumber", i+2)
		}

		pos, seen := index[key]
		if !seen {
			orders = append(orders, types.PurchaseOrder{
				PONumber:             key,
				VendorID:             stringField(record, "vendorId"),
				VendorWarehouseID:    stringField(record, "vendorWarehouseId"),
				PODate:               dateField(record, "poDate"),
				ExpectedDeliveryDate: dateField(record, "expectedDeliveryDate"),
				Notes:                stringField(record, "notes"),
			})
			pos = len(orders) - 1
			index[key] = pos
		}

		orders[pos].Items = append(orders[pos].Items, types.POLineItem{
			SKU:         stringField(record, "sku"),
			ProductName: stringField(record, "productName"),
			POQuantity:  intField(record, "poQty"),
		})
	}

	return orders, nil
}

// GroupShipments partitions records by shipmentNumber into shipments.
func GroupShipments(records []workbook.Record) ([]types.Shipment, error) {
	var shipments []types.Shipment
	index := map[string]int{}

	for i, record := range records {
		key := stringField(record, "shipmentNumber")
		if key == "" {
			return nil, fmt.Errorf("row %d has no shipmentNumber", i+2)
		}

		pos, seen := index[key]
		if !seen {
			shipments = append(shipments, types.Shipment{
				ShipmentNumber: key,
				PONumber:       stringField(record, "poNumber"),
				TransporterID:  stringField(record, "transporterId"),
				ShipmentDate:   dateField(record, "shipmentDate"),
				Notes:          stringField(record, "notes"),
			})
			pos = len(shipments) - 1
			index[key] = pos
		}

		shipments[pos].Items = append(shipments[pos].Items, types.ShipmentItem{
			SKU:          stringField(record, "sku"),
			SentQuantity: intField(record, "sentQty"),
		})
	}

	return shipments, nil
}

// stringField renders a record value as a trimmed string. Numeric values
// render without a trailing ".0" so identifiers like 1001 survive intact.
func stringField(record workbook.Record, key string) string {
	switch v := record[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// intField parses a quantity-bearing field as an integer.
// Non-numeric or missing values coerce to 0 rather than failing the row.
func intField(record workbook.Record, key string) int {
	switch v := record[key].(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// dateField renders a date value as a full ISO-8601 timestamp. It accepts a
// parseable date string or a legacy Excel serial number; anything else passes
// through unchanged for the collaborator to judge.
func dateField(record workbook.Record, key string) string {
	switch v := record[key].(type) {
	case float64:
		return serialToISO(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return ""
		}
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			return serialToISO(serial)
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", "2006/01/02", "01/02/2006", "1/2/2006"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC().Format(time.RFC3339)
			}
		}
		return s
	default:
		return ""
	}
}

// serialToISO converts an Excel date serial to ISO-8601.
// Serial 25569 is 1970-01-01T00:00:00Z.
func serialToISO(serial float64) string {
	seconds := (serial - excelEpochOffset) * 86400
	return time.Unix(int64(seconds), 0).UTC().Format(time.RFC3339)
}
