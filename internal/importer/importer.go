// =============================================================================
// PO Tracker - Import Orchestrator
// =============================================================================
//
// Runs one import end to end: acceptance -> bounded parse -> projection ->
// structure validation -> grouping -> one create-call per grouped entity.
//
// Acceptance and structural failures resolve before any network call is made.
// Parse failures abort the attempt. Per-entity create failures are isolated:
// one entity's failure never blocks its siblings, and the outcome reports a
// partial-success count plus the first failing entity's detailed error.
//
// Create-calls are issued sequentially and awaited one at a time. This caps
// throughput but keeps error attribution unambiguous and avoids racing
// sibling creates against the collaborator.
//
// =============================================================================

package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/bhikandeshmukh/po-tracker-sub001/internal/types"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/upload"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/workbook"
)

// ErrImportInFlight is returned when an import is triggered while another is
// still running. A double-click must not issue two overlapping imports.
var ErrImportInFlight = errors.New("an import is already in progress")

// Collaborator is the slice of the REST collaborator the orchestrator needs.
type Collaborator interface {
	CreatePurchaseOrder(ctx context.Context, po types.PurchaseOrder) error
	CreateShipment(ctx context.Context, s types.Shipment) error
}

// Logger is the minimal logging surface the importer writes to.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type defaultLogger struct{}

func (defaultLogger) Info(msg string, args ...any)  { log.Printf("[INFO] "+msg, args...) }
func (defaultLogger) Warn(msg string, args ...any)  { log.Printf("[WARN] "+msg, args...) }
func (defaultLogger) Error(msg string, args ...any) { log.Printf("[ERROR] "+msg, args...) }

// EntityError records one grouped entity's create failure.
type EntityError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Outcome summarizes one import attempt.
//
// When ValidationErrors is non-empty the attempt stopped before any network
// call and the remaining fields are zero. Otherwise Succeeded/Total carry the
// partial-success accounting and Errors the per-entity failures.
type Outcome struct {
	Flow             string        `json:"flow"`
	RowCount         int           `json:"rowCount"`
	Truncated        bool          `json:"truncated,omitempty"`
	ValidationErrors []string      `json:"validationErrors,omitempty"`
	Succeeded        int           `json:"succeeded"`
	Total            int           `json:"total"`
	Errors           []EntityError `json:"errors,omitempty"`
	FirstError       string        `json:"firstError,omitempty"`
}

// Importer wires the pipeline stages together.
type Importer struct {
	client Collaborator
	parser *workbook.Parser
	cfg    workbook.ParseConfig
	log    Logger

	mu       sync.Mutex
	inFlight bool
}

// New builds an importer talking to the given collaborator.
func New(client Collaborator, cfg workbook.ParseConfig) *Importer {
	return &Importer{
		client: client,
		parser: workbook.NewParser(),
		cfg:    cfg,
		log:    defaultLogger{},
	}
}

// SetLogger replaces the importer's logger. A nil logger restores the default.
func (im *Importer) SetLogger(l Logger) {
	if l == nil {
		l = defaultLogger{}
	}
	im.log = l
}

// Run executes one import attempt for the given flow.
//
// Returned error cases are terminal problems: a second concurrent trigger,
// parse failures, or a grouping inconsistency. Expected business-rule
// violations (acceptance, structure) come back inside the Outcome instead.
func (im *Importer) Run(ctx context.Context, candidate *upload.Candidate, data []byte, profile Profile) (*Outcome, error) {
	im.mu.Lock()
	if im.inFlight {
		im.mu.Unlock()
		return nil, ErrImportInFlight
	}
	im.inFlight = true
	im.mu.Unlock()
	defer func() {
		im.mu.Lock()
		im.inFlight = false
		im.mu.Unlock()
	}()

	// Acceptance resolves first, with zero side effects.
	if res := upload.Validate(candidate); !res.Valid {
		return &Outcome{Flow: profile.Name, ValidationErrors: res.Errors}, nil
	}

	wb, err := im.parser.Parse(ctx, candidate, data, im.cfg)
	if err != nil {
		return nil, err
	}

	// Imports read the first sheet; extra sheets were already bounded by the
	// parser and are ignored here.
	proj := workbook.Project(wb.First(), im.cfg.MaxRows)
	if proj.Truncated {
		im.log.Warn("import %s: row cap reached, sheet truncated at %d rows", profile.Name, len(proj.Records))
	}

	if res := ValidateStructure(proj.Records, profile.RequiredFields); !res.Valid {
		return &Outcome{Flow: profile.Name, RowCount: res.RowCount, ValidationErrors: res.Errors}, nil
	}

	outcome := &Outcome{
		Flow:      profile.Name,
		RowCount:  len(proj.Records),
		Truncated: proj.Truncated,
	}

	switch profile.Name {
	case PurchaseOrders.Name:
		err = im.createPurchaseOrders(ctx, proj.Records, outcome)
	case Shipments.Name:
		err = im.createShipments(ctx, proj.Records, outcome)
	default:
		err = fmt.Errorf("unknown import flow %q", profile.Name)
	}
	if err != nil {
		return nil, err
	}

	if len(outcome.Errors) > 0 {
		outcome.FirstError = outcome.Errors[0].Message
	}
	im.log.Info("import %s finished: %d/%d entities created", profile.Name, outcome.Succeeded, outcome.Total)
	return outcome, nil
}

func (im *Importer) createPurchaseOrders(ctx context.Context, records []workbook.Record, outcome *Outcome) error {
	orders, err := GroupPurchaseOrders(records)
	if err != nil {
		return err
	}

	outcome.Total = len(orders)
	for _, po := range orders {
		if !hasPositiveQty(len(po.Items), func(i int) int { return po.Items[i].POQuantity }) {
			outcome.Errors = append(outcome.Errors, EntityError{
				Key:     po.PONumber,
				Message: fmt.Sprintf("purchase order %s has no valid items", po.PONumber),
			})
			continue
		}
		if err := im.client.CreatePurchaseOrder(ctx, po); err != nil {
			im.log.Error("create purchase order %s: %v", po.PONumber, err)
			outcome.Errors = append(outcome.Errors, EntityError{Key: po.PONumber, Message: err.Error()})
			continue
		}
		outcome.Succeeded++
	}
	return nil
}

func (im *Importer) createShipments(ctx context.Context, records []workbook.Record, outcome *Outcome) error {
	shipments, err := GroupShipments(records)
	if err != nil {
		return err
	}

	outcome.Total = len(shipments)
	for _, s := range shipments {
		if !hasPositiveQty(len(s.Items), func(i int) int { return s.Items[i].SentQuantity }) {
			outcome.Errors = append(outcome.Errors, EntityError{
				Key:     s.ShipmentNumber,
				Message: fmt.Sprintf("shipment %s has no valid items", s.ShipmentNumber),
			})
			continue
		}
		if err := im.client.CreateShipment(ctx, s); err != nil {
			im.log.Error("create shipment %s: %v", s.ShipmentNumber, err)
			outcome.Errors = append(outcome.Errors, EntityError{Key: s.ShipmentNumber, Message: err.Error()})
			continue
		}
		outcome.Succeeded++
	}
	return nil
}

// hasPositiveQty reports whether any line item carries a quantity > 0.
// A group without one is rejected with a "no valid items" error.
func hasPositiveQty(n int, qty func(int) int) bool {
	for i := 0; i < n; i++ {
		if qty(i) > 0 {
			return true
		}
	}
	return false
}
