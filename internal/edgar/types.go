package edgar

// Submissions is the subset of the EDGAR submissions feed the fetcher reads.
// The recent block is column-oriented: index i across the arrays describes one
// filing.
type Submissions struct {
	Filings struct {
		Recent RecentFilings `json:"recent"`
	} `json:"filings"`
}

// RecentFilings holds the parallel arrays of the recent-filings block.
type RecentFilings struct {
	Form             []string `json:"form"`
	AccessionNumber  []string `json:"accessionNumber"`
	FilingDate       []string `json:"filingDate"`
	ReportDate       []string `json:"reportDate"`
	PrimaryDocument  []string `json:"primaryDocument"`
}

// at returns the element of arr at i, or "" when the array is shorter. EDGAR
// occasionally truncates trailing arrays in the recent block.
func at(arr []string, i int) string {
	if i < len(arr) {
		return arr[i]
	}
	return ""
}
