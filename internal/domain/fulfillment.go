package domain

type PostalAddress struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	StreetAddress   string `json:"street_address"`
	AddressLocality string `json:"address_locality"`
	AddressRegion   string `json:"address_region"`
	PostalCode      string `json:"postal_code"`
	AddressCountry  string `json:"address_country"`
}

// FulfillmentDestination is a shipping destination derived from a buyer
// supplied postal address.
type FulfillmentDestination struct {
	ID string `json:"id"`
	PostalAddress
}

// FulfillmentOption is one shippable choice (carrier + speed) with its
// own totals breakdown.
type FulfillmentOption struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Carrier     string  `json:"carrier,omitempty"`
	Totals      []Total `json:"totals"`
}

// FulfillmentGroup is a package of line items offered a set of options.
// If SelectedOptionID is non-empty, exactly one option carries that id.
type FulfillmentGroup struct {
	ID               string              `json:"id"`
	LineItemIDs      []string            `json:"line_item_ids"`
	Options          []FulfillmentOption `json:"options"`
	SelectedOptionID string              `json:"selected_option_id,omitempty"`
}

type FulfillmentMethod struct {
	ID                    string                   `json:"id"`
	Type                  string                   `json:"type"`
	LineItemIDs           []string                 `json:"line_item_ids"`
	Destinations          []FulfillmentDestination `json:"destinations"`
	SelectedDestinationID string                   `json:"selected_destination_id,omitempty"`
	Groups                []FulfillmentGroup       `json:"groups"`
}

type Fulfillment struct {
	Methods []FulfillmentMethod `json:"methods"`
}

func (f *Fulfillment) clone() *Fulfillment {
	if f == nil {
		return nil
	}
	clone := Fulfillment{Methods: make([]FulfillmentMethod, len(f.Methods))}
	for i, method := range f.Methods {
		m := method
		m.LineItemIDs = append([]string(nil), method.LineItemIDs...)
		m.Destinations = append([]FulfillmentDestination(nil), method.Destinations...)
		m.Groups = make([]FulfillmentGroup, len(method.Groups))
		for j, group := range method.Groups {
			g := group
			g.LineItemIDs = append([]string(nil), group.LineItemIDs...)
			g.Options = make([]FulfillmentOption, len(group.Options))
			for k, option := range group.Options {
				o := option
				o.Totals = append([]Total(nil), option.Totals...)
				g.Options[k] = o
			}
			m.Groups[j] = g
		}
		clone.Methods[i] = m
	}
	return &clone
}

// SelectedOption walks methods and groups for the first group with a
// selected option and returns the matching option, or nil.
func (f *Fulfillment) SelectedOption() *FulfillmentOption {
	if f == nil {
		return nil
	}
	for _, method := range f.Methods {
		for _, group := range method.Groups {
			if group.SelectedOptionID == "" {
				continue
			}
			for i := range group.Options {
				if group.Options[i].ID == group.SelectedOptionID {
					return &group.Options[i]
				}
			}
		}
	}
	return nil
}
