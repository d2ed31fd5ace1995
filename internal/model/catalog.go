package model

// KeyFeature icons the storefront knows how to render.
const (
	IconCamera     = "camera"
	IconCrew       = "crew"
	IconEdit       = "edit"
	IconStream     = "stream"
	IconAudio      = "audio"
	IconLighting   = "lighting"
	IconDelivery   = "delivery"
	IconMultiCam   = "multicam"
	IconTeleprompt = "teleprompter"
)

type KeyFeature struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// Package is a rentable production package. Prices are in major currency
// units. Orders snapshot the package at purchase time, so editing or removing
// a package never touches existing orders.
type Package struct {
	ID               string       `json:"id"` // stable slug
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	Price            float64      `json:"price"`
	Image            string       `json:"image"`
	AdditionalImages []string     `json:"additionalImages,omitempty"`
	KeyFeatures      []KeyFeature `json:"keyFeatures,omitempty"`
	IncludedItems    []string     `json:"includedItems,omitempty"`
}

// AddOn carries a Value key distinct from ID for compatibility with older
// stored orders that referenced add-ons by value.
type AddOn struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Value       string   `json:"value"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Packages    []string `json:"packages,omitempty"` // compatible package ids
}

type AddonGroup struct {
	Name        string   `json:"name"`
	AddOnValues []string `json:"addOnValues"`
}

// CatalogDocument is the parsed form of the RentalConfig row. It is the single
// deserialization boundary for the JSON blob columns.
type CatalogDocument struct {
	Packages    []Package    `json:"packages"`
	AddOns      []AddOn      `json:"addOns"`
	KeyFeatures []KeyFeature `json:"keyFeatures"`
	AddonGroups []AddonGroup `json:"addonGroups"`
}

func (d *CatalogDocument) PackageByID(id string) *Package {
	for i := range d.Packages {
		if d.Packages[i].ID == id {
			return &d.Packages[i]
		}
	}
	return nil
}

func (d *CatalogDocument) AddOnByID(id string) *AddOn {
	for i := range d.AddOns {
		if d.AddOns[i].ID == id {
			return &d.AddOns[i]
		}
	}
	return nil
}
