package domain

// StatusTable maps UI status labels to a vendor's status enum. Pairs are
// one-to-one so mapping there and back is lossless; values outside the table
// pass through unchanged in both directions.
type StatusTable struct {
	toVendor map[string]string
	toUI     map[string]string
}

type StatusPair struct {
	UI     string
	Vendor string
}

func NewStatusTable(pairs ...StatusPair) StatusTable {
	table := StatusTable{
		toVendor: make(map[string]string, len(pairs)),
		toUI:     make(map[string]string, len(pairs)),
	}

	for _, pair := range pairs {
		table.toVendor[pair.UI] = pair.Vendor
		table.toUI[pair.Vendor] = pair.UI
	}

	return table
}

func (t StatusTable) ToVendor(uiStatus string) string {
	if vendor, ok := t.toVendor[uiStatus]; ok {
		return vendor
	}

	return uiStatus
}

func (t StatusTable) ToUI(vendorStatus string) string {
	if ui, ok := t.toUI[vendorStatus]; ok {
		return ui
	}

	return vendorStatus
}
