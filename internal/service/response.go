package service

type Receipt struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// Result is the outcome for one recipient of a bulk send. Success selects
// which of SID/Status or Error is set.
type Result struct {
	Phone   string `json:"phone"`
	Success bool   `json:"success"`
	SID     string `json:"sid,omitempty"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Summary struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Failed    int `json:"failed"`
}

func Summarize(results []Result) Summary {
	summary := Summary{Total: len(results)}
	for _, r := range results {
		if r.Success {
			summary.Scheduled++
		} else {
			summary.Failed++
		}
	}

	return summary
}
