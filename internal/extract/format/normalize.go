package format

// metricKeyPaths is the ordered mapping from candidate response keys to
// normalized metric names. Order matters: earlier metrics are matched first
// and the candidate keys for each metric are tried in declaration order.
var metricKeyPaths = []struct {
	Metric string
	Keys   []string
}{
	{"revenue", []string{"revenue", "revenues", "totalRevenue", "Revenues"}},
	{"net_income", []string{"netIncome", "net_income", "NetIncomeLoss"}},
	{"total_assets", []string{"totalAssets", "total_assets", "Assets"}},
	{"price", []string{"price", "currentPrice", "close"}},
	{"market_cap", []string{"marketCap", "market_cap", "mktCap"}},
	{"eps", []string{"eps", "earningsPerShare", "EarningsPerShareBasic"}},
}

// Normalized is a fixed metric set projected out of an arbitrary structured
// response.
type Normalized struct {
	Source  string             `json:"source"`
	Metrics map[string]float64 `json:"metrics"`
}

// NormalizeFinancial walks the tree for each known metric and keeps the
// numeric scalars it finds. Non-numeric matches are skipped, not errors.
func NormalizeFinancial(root Value, source string) Normalized {
	n := Normalized{Source: source, Metrics: make(map[string]float64)}
	for _, mp := range metricKeyPaths {
		v, ok := Lookup(root, mp.Keys)
		if !ok || v.Kind != KindScalar || !v.IsNum {
			continue
		}
		n.Metrics[mp.Metric] = v.Num
	}
	return n
}
