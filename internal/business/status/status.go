package status

// Status is a repair workflow status. Stored repairs carry free-text status
// strings; Parse maps them onto this enum.
type Status int

const (
	Unknown Status = iota
	Received
	NeedsQuote
	AwaitingApproval
	NeedsParts
	PartsOrdered
	ReadyForWork
	InProgress
	InTheOven
	StoneSetting
	Polishing
	QualityControl
	ReadyForPickup
	Delivery
	Completed
	PickedUp
	Cancelled
)

// Category is a coarse workflow bucket used for dashboard counts.
type Category string

const (
	CategoryInitial        Category = "Initial"
	CategoryPreparation    Category = "Preparation"
	CategoryProduction     Category = "Production"
	CategoryQualityControl Category = "Quality Control"
	CategoryCompletion     Category = "Completion"
	CategoryUnknown        Category = "Unknown"
)

// DefaultColor is the color of statuses missing from the table.
const DefaultColor = "default"

const unknownIcon = "help_outline"

// Descriptor is the display metadata derived from a status.
type Descriptor struct {
	Status        Status   `json:"-"`
	Code          string   `json:"code"`
	Label         string   `json:"label"`
	CustomerLabel string   `json:"customerLabel"`
	Color         string   `json:"color"`
	Icon          string   `json:"icon"`
	Category      Category `json:"category"`
}

type entry struct {
	code          string
	label         string
	customerLabel string
	color         string
	icon          string
	category      Category
	// aliases are the other spellings found in stored records: the workflow
	// board writes uppercase phrases, the customer portal writes kebab-case.
	aliases []string
}

var table = map[Status]entry{
	Received:         {"RECEIVED", "Received", "Received", "info", "inbox", CategoryInitial, []string{"RECEIVING", "received", "receiving"}},
	NeedsQuote:       {"NEEDS QUOTE", "Needs Quote", "Awaiting Quote", "warning", "request_quote", CategoryInitial, []string{"needs-quote"}},
	AwaitingApproval: {"AWAITING APPROVAL", "Awaiting Approval", "Awaiting Your Approval", "warning", "hourglass_empty", CategoryInitial, []string{"awaiting-approval"}},
	NeedsParts:       {"NEEDS PARTS", "Needs Parts", "Preparing", "warning", "build", CategoryPreparation, []string{"needs-parts"}},
	PartsOrdered:     {"PARTS ORDERED", "Parts Ordered", "Waiting on Parts", "secondary", "local_shipping", CategoryPreparation, []string{"parts-ordered"}},
	ReadyForWork:     {"READY FOR WORK", "Ready for Work", "Scheduled", "primary", "assignment", CategoryPreparation, []string{"ready-for-work"}},
	InProgress:       {"IN PROGRESS", "In Progress", "In Progress", "primary", "handyman", CategoryProduction, []string{"in-progress"}},
	InTheOven:        {"IN THE OVEN", "In the Oven", "Casting", "secondary", "local_fire_department", CategoryProduction, []string{"in-the-oven"}},
	StoneSetting:     {"STONE SETTING", "Stone Setting", "Stone Setting", "primary", "diamond", CategoryProduction, []string{"stone-setting"}},
	Polishing:        {"POLISHING", "Polishing", "Finishing", "primary", "auto_awesome", CategoryProduction, []string{"polishing"}},
	QualityControl:   {"QUALITY CONTROL", "Quality Control", "Quality Check", "info", "fact_check", CategoryQualityControl, []string{"quality-control"}},
	ReadyForPickup:   {"READY FOR PICK-UP", "Ready for Pick-up", "Ready for Pick-up", "success", "storefront", CategoryCompletion, []string{"ready-for-pickup"}},
	Delivery:         {"DELIVERY BATCH", "Delivery Batch", "Out for Delivery", "success", "local_shipping", CategoryCompletion, []string{"delivery-batch"}},
	Completed:        {"COMPLETED", "Completed", "Completed", "success", "check_circle", CategoryCompletion, []string{"completed"}},
	PickedUp:         {"PICKED UP", "Picked Up", "Picked Up", "success", "done_all", CategoryCompletion, []string{"picked-up"}},
	Cancelled:        {"CANCELLED", "Cancelled", "Cancelled", "error", "cancel", CategoryCompletion, []string{"cancelled"}},
}

var lookup = make(map[string]Status)

func init() {
	for s, e := range table {
		lookup[e.code] = s
		for _, a := range e.aliases {
			lookup[a] = s
		}
	}
}

// Parse resolves a raw status string by exact, case-sensitive match against
// both vocabularies. Other spellings are unknown.
func Parse(raw string) (Status, bool) {
	if s, ok := lookup[raw]; ok {
		return s, true
	}
	return Unknown, false
}

// Classify returns the display metadata for a raw status string. Unknown
// strings get the default color and their own text as label.
func Classify(raw string) Descriptor {
	s, ok := Parse(raw)
	if !ok {
		return Descriptor{
			Status:        Unknown,
			Code:          raw,
			Label:         raw,
			CustomerLabel: raw,
			Color:         DefaultColor,
			Icon:          unknownIcon,
			Category:      CategoryUnknown,
		}
	}
	return s.Descriptor()
}

// Descriptor returns the projections of a known status.
func (s Status) Descriptor() Descriptor {
	e, ok := table[s]
	if !ok {
		return Descriptor{Status: Unknown, Color: DefaultColor, Icon: unknownIcon, Category: CategoryUnknown}
	}
	return Descriptor{
		Status:        s,
		Code:          e.code,
		Label:         e.label,
		CustomerLabel: e.customerLabel,
		Color:         e.color,
		Icon:          e.icon,
		Category:      e.category,
	}
}

func (s Status) String() string {
	if e, ok := table[s]; ok {
		return e.code
	}
	return "UNKNOWN"
}

// Category returns the bucket of s.
func (s Status) Category() Category {
	if e, ok := table[s]; ok {
		return e.category
	}
	return CategoryUnknown
}

// IsTerminal reports whether the status ends the shop's work on a repair.
func (s Status) IsTerminal() bool {
	return s.Category() == CategoryCompletion
}

// CategoryOf is shorthand for Classify(raw).Category.
func CategoryOf(raw string) Category {
	s, ok := Parse(raw)
	if !ok {
		return CategoryUnknown
	}
	return s.Category()
}

// Categories lists the known categories in dashboard order.
func Categories() []Category {
	return []Category{
		CategoryInitial,
		CategoryPreparation,
		CategoryProduction,
		CategoryQualityControl,
		CategoryCompletion,
	}
}

// All returns every known status in workflow order.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(table))
	for s := Received; s <= Cancelled; s++ {
		out = append(out, s.Descriptor())
	}
	return out
}
