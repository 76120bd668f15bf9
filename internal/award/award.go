package award

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Award is a single entry of the financial-aid catalog. The catalog owns the
// record; the matching engine only reads snapshots of it.
type Award struct {
	ID                    string              `json:"id"`
	Name                  string              `json:"name"`
	Type                  string              `json:"type,omitempty"`
	University            string              `json:"university,omitempty"`
	Amount                Amount              `json:"amount"`
	Description           string              `json:"description,omitempty"`
	Category              string              `json:"category,omitempty"`
	Eligibility           EligibilityCriteria `json:"eligibility"`
	RequiredDocumentation []string            `json:"requiredDocumentation,omitempty"`
	ApplicationDeadline   string              `json:"applicationDeadline,omitempty"`
	SourceURL             string              `json:"sourceUrl,omitempty"`
}

// EligibilityCriteria is the declarative rule set attached to an award. Every
// field is optional; presence of a field activates its check. Empty slices are
// equivalent to absent fields ("open to all"). Pointer booleans are tri-state:
// nil means the criterion is not declared.
type EligibilityCriteria struct {
	Campus              []string `json:"campus,omitempty"`
	RequiredYear        []int    `json:"requiredYear,omitempty"`
	RequiredFaculty     []string `json:"requiredFaculty,omitempty"`
	MinGPA              float64  `json:"minGPA,omitempty"`
	CitizenshipRequired []string `json:"citizenshipRequired,omitempty"`
	IndigenousOnly      bool     `json:"indigenousOnly,omitempty"`
	HasDisability       *bool    `json:"hasDisability,omitempty"`
	Gender              []string `json:"gender,omitempty"`
	FinancialNeed       bool     `json:"financialNeed,omitempty"`
	StudentLoanRequired bool     `json:"studentLoanRequired,omitempty"`
	Affiliation         string   `json:"affiliation,omitempty"`
	SchoolDistrict      string   `json:"schoolDistrict,omitempty"`
	PartTimeEligible    *bool    `json:"partTimeEligible,omitempty"`
	FormerYouthInCare   bool     `json:"formerYouthInCare,omitempty"`
}

// Amount is either a monetary value or a free-text descriptor such as
// "Variable". Text takes precedence when set.
type Amount struct {
	Value float64
	Text  string
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Text != "" {
		return json.Marshal(a.Text)
	}
	return json.Marshal(a.Value)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var value float64
	if err := json.Unmarshal(data, &value); err == nil {
		a.Value = value
		a.Text = ""
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("amount must be a number or a string: %s", data)
	}

	a.Value = 0
	a.Text = text
	return nil
}

// Display renders the amount for prompts and reports.
func (a Amount) Display() string {
	if a.Text != "" {
		return a.Text
	}
	return "$" + strconv.FormatFloat(a.Value, 'f', -1, 64)
}

// Awards is a read-only snapshot of the catalog in its original order.
type Awards struct {
	Items []*Award
}

func (a *Awards) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Items)
}

func (a *Awards) FindByID(id string) *Award {
	if a == nil {
		return nil
	}
	for _, item := range a.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (a *Awards) IDs() []string {
	ids := make([]string, 0, a.Len())
	if a == nil {
		return ids
	}
	for _, item := range a.Items {
		ids = append(ids, item.ID)
	}
	return ids
}
