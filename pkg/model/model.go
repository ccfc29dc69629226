package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// NotAvailable is the placeholder rendered for values that cannot be computed.
const NotAvailable = "N/A"

// Amount is a monetary value that tolerates the loose shapes upstream intake
// forms produce: JSON numbers, numeric strings, null, or garbage (zero).
type Amount float64

// UnmarshalJSON accepts numbers, numeric strings, and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		*a = Amount(leadingFloat(s))
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

// Float returns the amount as a float64.
func (a Amount) Float() float64 { return float64(a) }

// Int truncates toward zero, matching an integer parse of the textual value.
func (a Amount) Int() int64 { return int64(math.Trunc(float64(a))) }

// leadingFloat parses the longest numeric prefix of s, returning 0 when there
// is none ("20abc" -> 20, "abc" -> 0).
func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDigit, seenDot := false, false
scan:
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			end = i + 1
		case r == '.' && !seenDot:
			seenDot = true
		case (r == '-' || r == '+') && i == 0:
		default:
			break scan
		}
	}
	if !seenDigit {
		return 0
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}

// dateLayouts are tried in order when parsing DateString values.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// DateString is an ISO-ish date as stored by the intake flows. It is kept as
// text so malformed values survive a round trip untouched.
type DateString string

// UnmarshalJSON accepts strings and null; other JSON values become empty.
func (d *DateString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*d = ""
		return nil
	}
	*d = DateString(strings.TrimSpace(s))
	return nil
}

// Time parses the value. ok is false for empty or unparseable values.
func (d DateString) Time() (time.Time, bool) {
	s := strings.TrimSpace(string(d))
	if s == "" || s == NotAvailable {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsZero reports whether no date was recorded.
func (d DateString) IsZero() bool { return strings.TrimSpace(string(d)) == "" }

// Display returns the raw value or the N/A placeholder.
func (d DateString) Display() string {
	if d.IsZero() {
		return NotAvailable
	}
	return string(d)
}

// NewDateString formats t the way the service writes dates.
func NewDateString(t time.Time) DateString {
	return DateString(t.UTC().Format(time.RFC3339))
}

// Repair is a single jewelry-repair job stored in the `repairs` collection.
type Repair struct {
	ID              string     `json:"id,omitempty" firestore:"id,omitempty"`
	RepairNumber    string     `json:"repairNumber,omitempty" firestore:"repairNumber,omitempty"`
	ClientName      string     `json:"clientName,omitempty" firestore:"clientName,omitempty"`
	ClientEmail     string     `json:"clientEmail,omitempty" firestore:"clientEmail,omitempty"`
	UserID          string     `json:"userID,omitempty" firestore:"userID,omitempty"`
	Description     string     `json:"description,omitempty" firestore:"description,omitempty"`
	ItemType        string     `json:"itemType,omitempty" firestore:"itemType,omitempty"`
	Metal           string     `json:"metal,omitempty" firestore:"metal,omitempty"`
	Status          string     `json:"status,omitempty" firestore:"status,omitempty"`
	StatusCategory  string     `json:"statusCategory,omitempty" firestore:"statusCategory,omitempty"`
	Completed       bool       `json:"completed" firestore:"completed"`
	IsRush          bool       `json:"isRush,omitempty" firestore:"isRush,omitempty"`
	TotalCost       Amount     `json:"totalCost" firestore:"totalCost"`
	LaborHours      Amount     `json:"laborHours,omitempty" firestore:"laborHours,omitempty"`
	MaterialCost    Amount     `json:"materialCost,omitempty" firestore:"materialCost,omitempty"`
	CreatedAt       DateString `json:"createdAt,omitempty" firestore:"createdAt,omitempty"`
	CompletedAt     DateString `json:"completedAt,omitempty" firestore:"completedAt,omitempty"`
	PromiseDate     DateString `json:"promiseDate,omitempty" firestore:"promiseDate,omitempty"`
	AssignedArtisan string     `json:"assignedArtisan,omitempty" firestore:"assignedArtisan,omitempty"`
}

// DecodeRepairs decodes a JSON list of repairs. Anything that is not a JSON
// array yields an empty list; elements that are not objects are skipped.
func DecodeRepairs(raw []byte) []Repair {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []Repair{}
	}
	out := make([]Repair, 0, len(items))
	for _, item := range items {
		r, err := DecodeRepair(item)
		if err != nil {
			continue
		}
		out = append(out, r)
	}
	return out
}

// DecodeRepair decodes one repair object. Text and flag fields holding the
// wrong JSON type are coerced (1042 -> "1042", "true" -> true) or zeroed;
// only input that is not a JSON object is an error.
func DecodeRepair(raw []byte) (Repair, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return Repair{}, errNotObject
	}
	var r Repair
	err := json.Unmarshal(raw, &r)
	if err == nil {
		return r, nil
	}
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return Repair{}, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Repair{}, err
	}
	for name, p := range r.textFields() {
		if v, ok := fields[name]; ok {
			*p = looseText(v)
		}
	}
	for name, p := range r.flagFields() {
		if v, ok := fields[name]; ok {
			*p = looseBool(v)
		}
	}
	return r, nil
}

var errNotObject = errors.New("repair is not a JSON object")

func (r *Repair) textFields() map[string]*string {
	return map[string]*string{
		"id":              &r.ID,
		"repairNumber":    &r.RepairNumber,
		"clientName":      &r.ClientName,
		"clientEmail":     &r.ClientEmail,
		"userID":          &r.UserID,
		"description":     &r.Description,
		"itemType":        &r.ItemType,
		"metal":           &r.Metal,
		"status":          &r.Status,
		"statusCategory":  &r.StatusCategory,
		"assignedArtisan": &r.AssignedArtisan,
	}
}

func (r *Repair) flagFields() map[string]*bool {
	return map[string]*bool{
		"completed": &r.Completed,
		"isRush":    &r.IsRush,
	}
}

// looseText renders strings as-is and numbers or booleans as their literal
// text. Objects and arrays become empty.
func looseText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	default:
		return string(raw)
	}
}

// looseBool accepts booleans, "true"/"false"/"1"/"0" strings and numbers
// (non-zero is true). Anything else is false.
func looseBool(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch raw[0] {
	case 't':
		return bytes.Equal(raw, []byte("true"))
	case 'f', 'n', '{', '[':
		return false
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return false
		}
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		return err == nil && b
	default:
		f, err := strconv.ParseFloat(string(raw), 64)
		return err == nil && f != 0
	}
}

// PricingSettings mirrors `settings.pricing`.
type PricingSettings struct {
	Wage              float64 `json:"wage" firestore:"wage"`
	MaterialMarkup    float64 `json:"materialMarkup" firestore:"materialMarkup"`
	AdministrativeFee float64 `json:"administrativeFee" firestore:"administrativeFee"`
	BusinessFee       float64 `json:"businessFee" firestore:"businessFee"`
	ConsumablesFee    float64 `json:"consumablesFee" firestore:"consumablesFee"`
}

// Settings is the singleton `system/settings` document.
type Settings struct {
	Pricing   PricingSettings `json:"pricing" firestore:"pricing"`
	UpdatedAt time.Time       `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
	UpdatedBy string          `json:"updatedBy,omitempty" firestore:"updatedBy,omitempty"`
}

// Payment is one recorded payment against an invoice.
type Payment struct {
	ID        string    `json:"id,omitempty" firestore:"id,omitempty"`
	Amount    Amount    `json:"amount" firestore:"amount"`
	Method    string    `json:"method,omitempty" firestore:"method,omitempty"`
	Reference string    `json:"reference,omitempty" firestore:"reference,omitempty"`
	PaidAt    time.Time `json:"paidAt,omitempty" firestore:"paidAt,omitempty"`
}

// Invoice is a custom-ticket invoice stored in the `invoices` collection.
type Invoice struct {
	ID          string     `json:"id,omitempty" firestore:"id,omitempty"`
	TicketID    string     `json:"ticketId,omitempty" firestore:"ticketId,omitempty"`
	RepairID    string     `json:"repairId,omitempty" firestore:"repairId,omitempty"`
	ClientName  string     `json:"clientName,omitempty" firestore:"clientName,omitempty"`
	ClientEmail string     `json:"clientEmail,omitempty" firestore:"clientEmail,omitempty"`
	Description string     `json:"description,omitempty" firestore:"description,omitempty"`
	Amount      Amount     `json:"amount" firestore:"amount"`
	Payments    []Payment  `json:"payments,omitempty" firestore:"payments,omitempty"`
	CreatedAt   DateString `json:"createdAt,omitempty" firestore:"createdAt,omitempty"`
}

// PaymentStatus carries the deposit threshold flags.
type PaymentStatus struct {
	HasReached50Percent bool    `json:"hasReached50Percent"`
	AmountFor50Percent  float64 `json:"amountFor50Percent"`
}

// PaymentProgress summarizes how much of an invoice is paid.
type PaymentProgress struct {
	TotalPaid       float64       `json:"totalPaid"`
	RemainingAmount float64       `json:"remainingAmount"`
	PaymentProgress float64       `json:"paymentProgress"`
	Status          PaymentStatus `json:"status"`
}
