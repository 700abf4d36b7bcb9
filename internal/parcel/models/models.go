package models

import (
	"fmt"
	"strings"
	"time"

	dErrors "respass/pkg/domain-errors"
)

// Status of an inventory entry. Transitions only awaiting -> collected.
type Status string

const (
	StatusAwaiting  Status = "awaiting"
	StatusCollected Status = "collected"
)

const intakeRowFields = 6

// IntakeItem is one delivered parcel as reported by the front desk.
type IntakeItem struct {
	Type          string
	Building      string
	Unit          string
	RecipientName string
	DropLocation  string
	Note          string
}

// Recipient identifies the intended owner of a parcel. Matching against
// residents is exact and case-sensitive.
type Recipient struct {
	Name     string
	Building string
	Unit     string
}

// UnitKey identifies a dwelling.
type UnitKey struct {
	Building string
	Unit     string
}

func (r Recipient) UnitKey() UnitKey {
	return UnitKey{Building: r.Building, Unit: r.Unit}
}

func (i IntakeItem) Recipient() Recipient {
	return Recipient{Name: i.RecipientName, Building: i.Building, Unit: i.Unit}
}

// LogEntry is one custody hop. Entries are stored newest first.
type LogEntry struct {
	By string `json:"by"`
	To string `json:"to"`
	TS int64  `json:"ts"`
}

// InventoryEntry is a row to insert.
type InventoryEntry struct {
	Type      string
	Building  string
	Unit      string
	OwnerName string
	Log       []LogEntry
	Note      string
	Receiver  string
	Received  time.Time
}

// ResidentMatch is a resident selected for notification.
type ResidentMatch struct {
	ID       int64
	Name     string
	Building string
	Unit     string
}

// IntakeResult lists the resident ids notified directly and through the
// unit fallback. Both lists are always non-nil.
type IntakeResult struct {
	Notified   []int64 `json:"notified"`
	NotMatched []int64 `json:"notMatched"`
}

// IntakeRequest is the addInventory body:
// [[type, building, unit, recipientName, dropLocation, note], ...]
type IntakeRequest [][]string

func (r *IntakeRequest) Validate() error {
	for i, row := range *r {
		if len(row) != intakeRowFields {
			return dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("inventory row %d has %d fields, expected %d", i, len(row), intakeRowFields))
		}
	}
	return nil
}

func (r IntakeRequest) Items() []IntakeItem {
	items := make([]IntakeItem, 0, len(r))
	for _, row := range r {
		items = append(items, IntakeItem{
			Type:          row[0],
			Building:      row[1],
			Unit:          row[2],
			RecipientName: row[3],
			DropLocation:  row[4],
			Note:          row[5],
		})
	}
	return items
}

// InventoryQueryRequest accepts "building" or the legacy "bld" key.
type InventoryQueryRequest struct {
	Building string `json:"building"`
	Bld      string `json:"bld"`
	Unit     string `json:"unit"`
}

func (r *InventoryQueryRequest) Validate() error {
	if r.Building == "" {
		r.Building = r.Bld
	}
	r.Building = strings.TrimSpace(r.Building)
	r.Unit = strings.TrimSpace(r.Unit)
	if r.Building == "" || r.Unit == "" {
		return dErrors.New(dErrors.CodeValidation, "building and unit are required")
	}
	return nil
}

// CollectionRequest is the submitInventoryCollection body.
type CollectionRequest struct {
	Collected    []int64 `json:"collected"`
	RecipientJWT string  `json:"recipientJWT"`
}

func (r *CollectionRequest) Validate() error {
	for _, id := range r.Collected {
		if id <= 0 {
			return dErrors.New(dErrors.CodeInvalidInput, "Invalid ID")
		}
	}
	return nil
}

type CollectionResponse struct {
	Count   int64  `json:"count"`
	Message string `json:"message"`
}

// CollectionLabel is the log destination recorded for a collection.
func CollectionLabel(verifiedSubject string) string {
	if verifiedSubject == "" {
		return "unverified collection"
	}
	return "verified collection: " + verifiedSubject
}
