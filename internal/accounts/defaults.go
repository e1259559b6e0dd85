package accounts

// Node describes an account and its sub-accounts for seeding.
type Node struct {
	Name     string
	Children []Node
}

func leaves(names ...string) []Node {
	nodes := make([]Node, len(names))
	for i, n := range names {
		nodes[i] = Node{Name: n}
	}
	return nodes
}

// DefaultChart returns the starter chart of accounts created by init.
// vatIn and vatOut name the top-level accounts used for VAT bookings.
func DefaultChart(vatIn, vatOut string) []Node {
	return []Node{
		{Name: "Income", Children: leaves("Sales", "Consulting", "Interest", "Other income")},
		{Name: "Expenses", Children: []Node{
			{Name: "Office", Children: leaves("Supplies", "Software", "Hardware")},
			{Name: "Travel"},
			{Name: "Rent"},
			{Name: "Insurance"},
			{Name: "Bank fees"},
		}},
		{Name: "Private", Children: leaves("Deposits", "Withdrawals")},
		{Name: "Taxes", Children: leaves("Income tax", "VAT payments")},
		{Name: vatIn},
		{Name: vatOut},
	}
}
